package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSource(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "main.lat")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func TestRunPipeline_ValidProgramSucceeds(t *testing.T) {
	path := writeSource(t, `
int main() {
	return 0;
}
`)
	result, errs := runPipeline(path)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if result.Program == nil || result.TypeInfo == nil {
		t.Fatal("expected a populated pipelineResult")
	}
}

func TestRunPipeline_SyntaxErrorReportsPosition(t *testing.T) {
	path := writeSource(t, `
int main() {
	return
}
`)
	_, errs := runPipeline(path)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %d", len(errs))
	}
	if errs[0].Pos.Line == 0 {
		t.Errorf("expected a resolved source position, got %+v", errs[0].Pos)
	}
}

func TestRunPipeline_CheckErrorIncludesFunctionContext(t *testing.T) {
	path := writeSource(t, `
int main() {
	return "not an int";
}
`)
	_, errs := runPipeline(path)
	if len(errs) == 0 {
		t.Fatal("expected at least one type error")
	}
	if got := errs[0].Message; !strings.Contains(got, "function main") {
		t.Errorf("expected the diagnostic to name the enclosing function, got %q", got)
	}
}

func TestRunPipeline_MissingFile(t *testing.T) {
	_, errs := runPipeline(filepath.Join(t.TempDir(), "missing.lat"))
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error for a missing file, got %d", len(errs))
	}
}
