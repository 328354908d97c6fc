package report

import (
	"strings"
	"testing"

	"github.com/lat-compiler/latc/internal/errors"
	"github.com/lat-compiler/latc/internal/token"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name     string
		errs     []*errors.CompilerError
		wantOK   bool
		wantDiag int
	}{
		{
			name:   "no errors reports OK",
			errs:   nil,
			wantOK: true,
		},
		{
			name: "one error reports not OK",
			errs: []*errors.CompilerError{
				errors.NewCompilerError(token.Position{Line: 3, Column: 5}, "undeclared variable x", "", "main.lat"),
			},
			wantOK:   false,
			wantDiag: 1,
		},
		{
			name: "a batch carries one diagnostic per error",
			errs: []*errors.CompilerError{
				errors.NewCompilerError(token.Position{Line: 1, Column: 1}, "first", "", "main.lat"),
				errors.NewCompilerError(token.Position{Line: 2, Column: 1}, "second", "", "main.lat"),
			},
			wantOK:   false,
			wantDiag: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Build("main.lat", tt.errs)
			if doc.OK != tt.wantOK {
				t.Errorf("OK = %v, want %v", doc.OK, tt.wantOK)
			}
			if len(doc.Diagnostics) != tt.wantDiag {
				t.Errorf("len(Diagnostics) = %d, want %d", len(doc.Diagnostics), tt.wantDiag)
			}
			if doc.File != "main.lat" {
				t.Errorf("File = %q, want %q", doc.File, "main.lat")
			}
		})
	}
}

func TestMarshal_JSON(t *testing.T) {
	doc := Build("main.lat", []*errors.CompilerError{
		errors.NewCompilerError(token.Position{Line: 3, Column: 5}, "undeclared variable x", "", "main.lat"),
	})
	out, err := Marshal(doc, JSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := string(out)
	for _, want := range []string{`"file": "main.lat"`, `"ok": false`, `"line": 3`, `"message": "undeclared variable x"`} {
		if !strings.Contains(s, want) {
			t.Errorf("expected JSON output to contain %q, got:\n%s", want, s)
		}
	}
}

func TestMarshal_YAML(t *testing.T) {
	doc := Build("main.lat", nil)
	out, err := Marshal(doc, YAML)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, "ok: true") {
		t.Errorf("expected YAML output to contain %q, got:\n%s", "ok: true", s)
	}
	if strings.Contains(s, "diagnostics:") {
		t.Errorf("an empty diagnostics slice should be omitted, got:\n%s", s)
	}
}

func TestMarshal_UnknownFormat(t *testing.T) {
	if _, err := Marshal(Build("main.lat", nil), Format("xml")); err == nil {
		t.Error("expected an error for an unrecognized format")
	}
}
