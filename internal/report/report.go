// Package report renders compiler diagnostics as a machine-readable
// Document, serialized as either JSON or YAML, for editor/CI consumers
// that want structured output alongside the caret-annotated text
// internal/errors produces. Grounded on the teacher's SemanticError.
// ToCompilerError conversion boundary (internal/semantic/errors.go):
// report.Build sits at the same boundary, one step further out, turning
// already-converted *errors.CompilerError values into a serializable
// shape instead of a human-facing string.
package report

import (
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/lat-compiler/latc/internal/errors"
)

// Diagnostic is one reported fault, position plus message, with no
// caret/source-context rendering: that belongs to the text format, not
// the structured one.
type Diagnostic struct {
	Line    int    `json:"line" yaml:"line"`
	Column  int    `json:"column" yaml:"column"`
	Message string `json:"message" yaml:"message"`
}

// Document is the full report for one compilation attempt.
type Document struct {
	File        string       `json:"file" yaml:"file"`
	OK          bool         `json:"ok" yaml:"ok"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// Build converts a batch of compiler errors (already carrying resolved
// positions, per internal/errors.CompilerError) into a Document. An
// empty errs reports OK with no diagnostics.
func Build(file string, errs []*errors.CompilerError) Document {
	doc := Document{File: file, OK: len(errs) == 0}
	for _, e := range errs {
		doc.Diagnostics = append(doc.Diagnostics, Diagnostic{
			Line:    e.Pos.Line,
			Column:  e.Pos.Column,
			Message: e.Message,
		})
	}
	return doc
}

// Format names the serialization a Document is rendered in.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// Marshal renders doc in the requested format. The CLI passes the
// --report-format value through unchecked, so an unrecognized format
// reaches here and returns an error rather than silently defaulting.
func Marshal(doc Document, format Format) ([]byte, error) {
	switch format {
	case JSON:
		return json.MarshalIndent(doc, "", "  ")
	case YAML:
		return yaml.Marshal(doc)
	default:
		return nil, fmt.Errorf("report: unknown format %q", format)
	}
}
