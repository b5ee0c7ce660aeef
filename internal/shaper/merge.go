package shaper

import (
	"fmt"

	"github.com/aromatt/shape/internal/errors"
	"github.com/aromatt/shape/internal/models"
)

// node is the merge accumulator: either a leaf label or an intermediate
// with ordered children. The child-segment kind is fixed by the first
// segment inserted, so a position reached through both a mapping key and a
// sequence index fails fast instead of silently picking one reading.
type node struct {
	label    string
	leafSet  bool
	kind     models.SegmentKind
	order    []string
	children map[string]*node
}

func newNode() *node {
	return &node{children: make(map[string]*node)}
}

// childID keys a child within its parent. All children of one node share a
// segment kind, so mapping keys and index ordinals cannot collide.
func childID(seg models.Segment) string {
	if seg.Kind == models.IndexSegment {
		return fmt.Sprintf("%d", seg.Index)
	}
	return seg.Key
}

// replaceable reports whether an assigned leaf may be overwritten by a
// later observation. Nulls and empty-container markers encode "no type
// seen yet"; everything else is a concrete assignment and wins by arrival.
func replaceable(label string) bool {
	switch label {
	case models.NullLabel, models.EmptyMappingLabel, models.EmptySequenceLabel:
		return true
	default:
		return false
	}
}

// overrides reports whether an incoming leaf label may replace an existing
// one. Anything overrides a null; concrete labels and markers override a
// marker; a null never overrides a marker (the empty container is the
// stronger observation).
func overrides(incoming, existing string) bool {
	if existing == models.NullLabel {
		return true
	}
	if replaceable(existing) {
		return incoming != models.NullLabel
	}
	return false
}

// mergePaths folds the collapsed path list into a single shape tree.
func (s *Shaper) mergePaths(paths []models.Path) (models.ShapeNode, error) {
	root := newNode()
	for _, p := range paths {
		if err := insert(root, p); err != nil {
			return nil, err
		}
	}
	return convert(root), nil
}

// insert walks one path into the accumulator, creating intermediate nodes
// on demand and applying the null-override rule at every step.
func insert(root *node, p models.Path) error {
	if len(p) == 0 {
		return nil
	}

	// A single-segment path means the whole input was a scalar or an
	// empty container: the root itself is the leaf.
	if len(p) == 1 {
		label := p[0].Label
		if root.leafSet {
			if overrides(label, root.label) {
				root.label = label
			}
			return nil
		}
		if len(root.order) > 0 {
			// a compound shape already occupies the root
			return nil
		}
		root.leafSet = true
		root.label = label
		return nil
	}

	cur := root
	for i := 0; i < len(p)-1; i++ {
		seg := p[i]

		if cur.leafSet {
			if !replaceable(cur.label) {
				// concrete leaf blocks deeper structure; first
				// observation wins
				return nil
			}
			cur.leafSet = false
			cur.label = ""
		}

		if len(cur.order) == 0 {
			cur.kind = seg.Kind
		} else if cur.kind != seg.Kind {
			return errors.NewShapeError(
				fmt.Sprintf("cannot merge path %s: segment %d mixes mapping keys and sequence indices", p, i),
				errors.ErrMixedNode,
			)
		}

		id := childID(seg)
		last := i == len(p)-2
		child, ok := cur.children[id]
		switch {
		case !ok:
			child = newNode()
			if last {
				child.leafSet = true
				child.label = p[len(p)-1].Label
			}
			cur.order = append(cur.order, id)
			cur.children[id] = child
		case child.leafSet && replaceable(child.label):
			if last {
				if overrides(p[len(p)-1].Label, child.label) {
					child.label = p[len(p)-1].Label
				}
			} else {
				// replaceable leaf gives way to an intermediate
				// node, keeping the key's original position
				child.leafSet = false
				child.label = ""
			}
		case child.leafSet && !last:
			// concrete leaf vs deeper structure; first wins
			return nil
		}
		cur = child
	}
	return nil
}

// convert turns the accumulator into the final shape tree: intermediates
// whose children are index segments become one-element sequences, the rest
// become ordered mappings, leaves stay strings (with empty-container
// markers materializing as their empty container).
func convert(n *node) models.ShapeNode {
	if n.leafSet {
		switch n.label {
		case models.EmptySequenceLabel:
			return []models.ShapeNode{}
		case models.EmptyMappingLabel:
			return models.NewShapeMap()
		default:
			return n.label
		}
	}
	if len(n.order) == 0 {
		return models.NewShapeMap()
	}
	if n.kind == models.IndexSegment {
		out := make([]models.ShapeNode, 0, len(n.order))
		for _, id := range n.order {
			out = append(out, convert(n.children[id]))
		}
		return out
	}
	m := models.NewShapeMap()
	for _, id := range n.order {
		m.Set(id, convert(n.children[id]))
	}
	return m
}
