// Package shaper infers a compact structural schema ("shape") from an
// arbitrary nested value, summarizing it by the type signature at every
// path rather than by literal content.
package shaper

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/aromatt/shape/internal/errors"
	"github.com/aromatt/shape/internal/models"
)

// KeyPattern is one regex rewrite rule applied to mapping keys before
// merging, used to unify structurally-identical-but-differently-named
// fields (e.g. collapsing "user_123" and "user_456" into one shape key).
type KeyPattern struct {
	Pattern string
	Replace string
}

// Options control shape inference.
type Options struct {
	// KeyPatterns are applied in order; each rule operates on the
	// previous rule's output, global substitution.
	KeyPatterns []KeyPattern

	// NormalizeKeys rewrites mapping keys to a uniform case after the
	// regex rules: "snake", "camel", "pascal", "kebab",
	// "screaming-snake", or ""/"none" to leave keys alone.
	NormalizeKeys string

	// DescribeNumbers refines numeric leaf labels with a zero/nonzero
	// qualifier, e.g. "int:nonzero" instead of "int".
	DescribeNumbers bool

	// Sort orders the path list lexicographically before merging, for
	// reproducible snapshots.
	Sort bool
}

type rule struct {
	re      *regexp.Regexp
	replace string
}

// Shaper runs the inference pipeline with a fixed set of compiled options.
// It is stateless between calls and safe for reuse.
type Shaper struct {
	opts      Options
	rules     []rule
	normalize func(string) string
}

// New compiles the options into a Shaper. Invalid regex patterns and
// unknown normalization names fail here, before any data is touched.
func New(opts Options) (*Shaper, error) {
	s := &Shaper{opts: opts}
	for _, kp := range opts.KeyPatterns {
		re, err := regexp.Compile(kp.Pattern)
		if err != nil {
			return nil, errors.NewPatternError(
				fmt.Sprintf("invalid key pattern '%s'", kp.Pattern),
				errors.ErrInvalidPattern,
			)
		}
		s.rules = append(s.rules, rule{re: re, replace: kp.Replace})
	}

	switch opts.NormalizeKeys {
	case "", "none":
		s.normalize = nil
	case "snake":
		s.normalize = strcase.ToSnake
	case "camel":
		s.normalize = strcase.ToLowerCamel
	case "pascal":
		s.normalize = strcase.ToCamel
	case "kebab":
		s.normalize = strcase.ToKebab
	case "screaming-snake":
		s.normalize = strcase.ToScreamingSnake
	default:
		return nil, errors.NewPatternError(
			fmt.Sprintf("unknown key normalization '%s'", opts.NormalizeKeys),
			nil,
		)
	}

	return s, nil
}

// Shape is a convenience wrapper: compile opts and shape data in one call.
func Shape(data models.JSONValue, opts Options) (models.ShapeNode, error) {
	s, err := New(opts)
	if err != nil {
		return nil, err
	}
	return s.Shape(data)
}

// Shape infers the shape tree of data. The pipeline runs five ordered
// stages: extract leaf paths, rewrite keys, describe numbers, collapse
// sequence indices (deduplicating), and merge the paths into a tree.
func (s *Shaper) Shape(data models.JSONValue) (models.ShapeNode, error) {
	return s.mergePaths(s.Paths(data))
}

// Paths runs every stage short of the merge and returns the collapsed,
// deduplicated path list. Exposed so callers can snapshot or diff the
// path set directly.
func (s *Shaper) Paths(data models.JSONValue) []models.Path {
	paths := s.extractPaths(data, nil)
	paths = s.applyPatterns(paths)
	paths = s.describeNumbers(paths)
	if s.opts.Sort {
		sort.Slice(paths, func(i, j int) bool { return paths[i].Less(paths[j]) })
	}
	return collapsePaths(paths)
}

// extractPaths walks the value depth-first, left-to-right, producing one
// path per leaf occurrence. Empty containers produce a marker leaf that
// loses to any concrete observation at the same position during the merge.
func (s *Shaper) extractPaths(data models.JSONValue, prefix models.Path) []models.Path {
	switch models.Classify(data) {
	case models.Mapping:
		keys, get := models.Entries(data)
		if len(keys) == 0 {
			return []models.Path{prefix.Child(models.LabelSeg(models.EmptyMappingLabel))}
		}
		var paths []models.Path
		for _, k := range keys {
			paths = append(paths, s.extractPaths(get(k), prefix.Child(models.KeySeg(k)))...)
		}
		return paths
	case models.Sequence:
		elems := models.Elements(data)
		if len(elems) == 0 {
			return []models.Path{prefix.Child(models.LabelSeg(models.EmptySequenceLabel))}
		}
		var paths []models.Path
		for i, v := range elems {
			paths = append(paths, s.extractPaths(v, prefix.Child(models.IndexSeg(i)))...)
		}
		return paths
	case models.StreamKind:
		stream := data.(models.Stream)
		var paths []models.Path
		i := 0
		stream(func(v models.JSONValue) bool {
			paths = append(paths, s.extractPaths(v, prefix.Child(models.IndexSeg(i)))...)
			i++
			return true
		})
		if i == 0 {
			return []models.Path{prefix.Child(models.LabelSeg(models.EmptySequenceLabel))}
		}
		return paths
	default:
		return []models.Path{prefix.Child(s.leafSegment(data))}
	}
}

// leafSegment labels a scalar. Numeric scalars carry their raw value so the
// describer stage can still qualify them later.
func (s *Shaper) leafSegment(v models.JSONValue) models.Segment {
	label := models.LabelFor(v)
	if num, ok := models.NumericValue(v); ok {
		if s.opts.DescribeNumbers {
			label = describeLabel(label, num)
		}
		return models.NumberSeg(label, num)
	}
	return models.LabelSeg(label)
}

// applyPatterns passes every string-valued segment (keys and labels)
// through the compiled rewrite rules, then case-normalizes keys. Index
// segments pass through unchanged.
func (s *Shaper) applyPatterns(paths []models.Path) []models.Path {
	if len(s.rules) == 0 && s.normalize == nil {
		return paths
	}
	out := make([]models.Path, len(paths))
	for i, p := range paths {
		np := make(models.Path, len(p))
		for j, seg := range p {
			switch seg.Kind {
			case models.KeySegment:
				k := seg.Key
				for _, r := range s.rules {
					k = r.re.ReplaceAllString(k, r.replace)
				}
				if s.normalize != nil {
					k = s.normalize(k)
				}
				seg.Key = k
			case models.LabelSegment:
				l := seg.Label
				for _, r := range s.rules {
					l = r.re.ReplaceAllString(l, r.replace)
				}
				seg.Label = l
			}
			np[j] = seg
		}
		out[i] = np
	}
	return out
}

// describeNumbers qualifies any numeric leaf label that is still
// unqualified. The extractor already qualifies numeric leaves when the
// option is on, so re-running this stage is a no-op; it exists for paths
// built by other producers.
func (s *Shaper) describeNumbers(paths []models.Path) []models.Path {
	if !s.opts.DescribeNumbers {
		return paths
	}
	for _, p := range paths {
		if len(p) == 0 {
			continue
		}
		last := p[len(p)-1]
		if last.Kind == models.LabelSegment && last.HasNum && !strings.Contains(last.Label, ":") {
			p[len(p)-1].Label = describeLabel(last.Label, last.Num)
		}
	}
	return paths
}

func describeLabel(label string, value float64) string {
	if value == 0 {
		return label + ":zero"
	}
	return label + ":nonzero"
}

// collapsePaths canonicalizes every sequence index to position 0 (the
// homogeneity assumption: all elements of a sequence fold into one
// representative slot), then deduplicates preserving first-seen order.
func collapsePaths(paths []models.Path) []models.Path {
	seen := make(map[string]struct{}, len(paths))
	out := make([]models.Path, 0, len(paths))
	for _, p := range paths {
		c := make(models.Path, len(p))
		for i, seg := range p {
			if seg.Kind == models.IndexSegment {
				seg.Index = 0
			}
			c[i] = seg
		}
		key := c.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}
