package formatter

import (
	"strings"

	gojson "github.com/goccy/go-json"

	"github.com/aromatt/shape/internal/errors"
	"github.com/aromatt/shape/internal/models"
)

// Formatter renders a shape tree as JSON text.
type Formatter struct {
	// Indent pretty-prints with this many spaces per level; 0 is compact.
	Indent int
}

// NewFormatter creates a Formatter with compact output.
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Format encodes the shape tree. Mapping nodes marshal their keys in
// insertion order, so formatted output is stable for a given shape.
func (f *Formatter) Format(node models.ShapeNode) (string, error) {
	var (
		out []byte
		err error
	)
	if f.Indent > 0 {
		out, err = gojson.MarshalIndent(node, "", strings.Repeat(" ", f.Indent))
	} else {
		out, err = gojson.Marshal(node)
	}
	if err != nil {
		return "", errors.NewOutputError("failed to encode shape as JSON", err)
	}
	return string(out), nil
}
