package models

import (
	"bytes"
	"encoding/json"
)

// ShapeNode is a node of an inferred shape tree: a type-label string, a
// *ShapeMap for mapping shapes, or a []ShapeNode with at most one element
// for sequence shapes. The whole tree is directly JSON-serializable.
type ShapeNode interface{}

// ShapeMap is an insertion-ordered mapping from rewritten keys to child
// shapes. Plain Go maps would randomize key order and break the determinism
// the sort option promises, so shape trees carry their own ordering.
type ShapeMap struct {
	keys   []string
	values map[string]ShapeNode
}

// NewShapeMap creates an empty ShapeMap.
func NewShapeMap() *ShapeMap {
	return &ShapeMap{values: make(map[string]ShapeNode)}
}

// Set binds key to node, appending the key if it is new. Re-setting an
// existing key keeps its original position.
func (m *ShapeMap) Set(key string, node ShapeNode) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = node
}

// Get returns the child shape bound to key, if any.
func (m *ShapeMap) Get(key string) (ShapeNode, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *ShapeMap) Keys() []string {
	return m.keys
}

// Len returns the number of keys.
func (m *ShapeMap) Len() int {
	return len(m.keys)
}

// MarshalJSON encodes the mapping as a JSON object with keys in insertion
// order.
func (m *ShapeMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ShapeEqual reports deep structural equality of two shape trees, including
// key order of mapping nodes.
func ShapeEqual(a, b ShapeNode) bool {
	switch an := a.(type) {
	case string:
		bn, ok := b.(string)
		return ok && an == bn
	case *ShapeMap:
		bn, ok := b.(*ShapeMap)
		if !ok || an.Len() != bn.Len() {
			return false
		}
		for i, k := range an.keys {
			if bn.keys[i] != k {
				return false
			}
			if !ShapeEqual(an.values[k], bn.values[k]) {
				return false
			}
		}
		return true
	case []ShapeNode:
		bn, ok := b.([]ShapeNode)
		if !ok || len(an) != len(bn) {
			return false
		}
		for i := range an {
			if !ShapeEqual(an[i], bn[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}
