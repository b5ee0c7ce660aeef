// Package schema exports an inferred shape tree as a JSON Schema document.
package schema

import (
	"fmt"
	"strings"

	"github.com/aromatt/shape/internal/errors"
	"github.com/aromatt/shape/internal/models"
)

// Draft is the JSON Schema dialect emitted by Export.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// typeNames maps leaf labels onto JSON Schema primitive type names.
// Qualified numeric labels ("int:zero") strip their qualifier first.
var typeNames = map[string]string{
	models.IntLabel:    "integer",
	models.FloatLabel:  "number",
	models.StringLabel: "string",
	models.BoolLabel:   "boolean",
	models.NullLabel:   "null",
}

// Export converts a shape tree into a complete JSON Schema document, with
// the $schema marker on the root. The result is built from the same
// ordered-map nodes as shape trees, so property order follows key order.
func Export(node models.ShapeNode) (models.ShapeNode, error) {
	body, err := FromShape(node)
	if err != nil {
		return nil, err
	}
	doc := models.NewShapeMap()
	doc.Set("$schema", Draft)
	bodyMap, ok := body.(*models.ShapeMap)
	if !ok {
		return doc, errors.NewOutputError(
			fmt.Sprintf("unexpected schema node %T", body), nil,
		)
	}
	for _, k := range bodyMap.Keys() {
		v, _ := bodyMap.Get(k)
		doc.Set(k, v)
	}
	return doc, nil
}

// FromShape converts one shape node into a schema fragment.
func FromShape(node models.ShapeNode) (models.ShapeNode, error) {
	switch n := node.(type) {
	case string:
		return leafSchema(n), nil
	case *models.ShapeMap:
		s := models.NewShapeMap()
		s.Set("type", "object")
		if n.Len() > 0 {
			props := models.NewShapeMap()
			for _, k := range n.Keys() {
				child, _ := n.Get(k)
				cs, err := FromShape(child)
				if err != nil {
					return nil, err
				}
				props.Set(k, cs)
			}
			s.Set("properties", props)
		}
		return s, nil
	case []models.ShapeNode:
		s := models.NewShapeMap()
		s.Set("type", "array")
		if len(n) > 0 {
			items, err := FromShape(n[0])
			if err != nil {
				return nil, err
			}
			s.Set("items", items)
		}
		return s, nil
	default:
		return nil, errors.NewOutputError(
			fmt.Sprintf("unexpected shape node %T", node), nil,
		)
	}
}

// leafSchema maps a leaf label to a type schema. Labels with no JSON
// Schema equivalent (opaque atomics, rewritten labels) become the empty
// schema, which accepts anything.
func leafSchema(label string) *models.ShapeMap {
	base := label
	if i := strings.IndexByte(base, ':'); i >= 0 {
		base = base[:i]
	}
	s := models.NewShapeMap()
	if name, ok := typeNames[base]; ok {
		s.Set("type", name)
	}
	return s
}
