package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteThenLoad_RoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)

	want := Manifest{Source: "main.lat", Output: "main.s", ReportFormat: "json"}
	if err := Write(path, want); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), FileName)); err == nil {
		t.Error("expected an error for a missing manifest")
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatalf("os.WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected an error for invalid JSON")
	}
}

func TestDefault(t *testing.T) {
	d := Default("main.lat")
	if d.Source != "main.lat" || d.ReportFormat != "text" {
		t.Errorf("Default(%q) = %+v", "main.lat", d)
	}
}
