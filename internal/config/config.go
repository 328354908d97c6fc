// Package config reads and writes a project's latc.json manifest: the
// source file, the default output path, and the default diagnostic
// report format, read next to the .lat source latc build is invoked
// against. Favors tidwall/gjson for reading and tidwall/sjson for
// writing over encoding/json round-trips, matching how the rest of the
// retrieved pack reaches for those two when a value is read or patched
// without needing the full manifest schema in memory as a struct.
package config

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// FileName is the manifest's conventional name, looked up next to the
// .lat source unless a path is given explicitly.
const FileName = "latc.json"

// Manifest is a project's latc.json content once read.
type Manifest struct {
	Source       string
	Output       string
	ReportFormat string
}

// Default returns the manifest latc init writes when none is given:
// source.lat assembled to source.s, text diagnostics.
func Default(source string) Manifest {
	return Manifest{
		Source:       source,
		Output:       "",
		ReportFormat: "text",
	}
}

// Load reads and parses path. A missing Output or ReportFormat falls
// back to its zero value. latc build uses Output when no -o flag is given
// and derives the path from the source's extension when Output is empty;
// it does not consult ReportFormat.
func Load(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("config: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return Manifest{}, fmt.Errorf("config: %s is not valid JSON", path)
	}
	return Manifest{
		Source:       gjson.GetBytes(data, "source").String(),
		Output:       gjson.GetBytes(data, "output").String(),
		ReportFormat: gjson.GetBytes(data, "reportFormat").String(),
	}, nil
}

// Write serializes m to path as latc.json, building the document field
// by field with sjson rather than marshaling the Manifest struct
// directly, so the on-disk key order and presence match what latc init
// documents rather than whatever encoding/json's reflection would emit.
func Write(path string, m Manifest) error {
	doc := "{}"
	var err error
	for _, kv := range []struct{ key, val string }{
		{"source", m.Source},
		{"output", m.Output},
		{"reportFormat", m.ReportFormat},
	} {
		if kv.val == "" {
			continue
		}
		doc, err = sjson.Set(doc, kv.key, kv.val)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	return os.WriteFile(path, []byte(doc+"\n"), 0644)
}
