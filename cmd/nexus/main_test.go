package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSource(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prog.nx")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	return path
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	jsonOutput = false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCompileCleanSource(t *testing.T) {
	path := writeSource(t, "main { var int x; x = 5; }")

	out, err := runRoot(t, path)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if !strings.Contains(out, "Parsing successful!") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out, "x : int") {
		t.Fatalf("expected symbol listing:\n%s", out)
	}
}

func TestCompileFaultySourceSignalsDiagnostics(t *testing.T) {
	path := writeSource(t, "main { x = 1; }")

	out, err := runRoot(t, path)
	if !errors.Is(err, errDiagnostics) {
		t.Fatalf("expected errDiagnostics, got %v", err)
	}
	if !strings.Contains(out, "ERROR(SEMANTIC): Symbol 'x' not declared") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestCompileJSONOutput(t *testing.T) {
	path := writeSource(t, "nexus { shard core x = 1, y; broadcast x + y; }")

	out, err := runRoot(t, path, "--json")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if decoded["hasErrors"] != false {
		t.Fatalf("expected hasErrors false in %s", out)
	}
	ast := decoded["ast"].(map[string]any)
	if ast["label"] != "PROGRAM" {
		t.Fatalf("expected PROGRAM root, got %v", ast)
	}
}

func TestCompileMissingFile(t *testing.T) {
	_, err := runRoot(t, filepath.Join(t.TempDir(), "missing.nx"))
	if err == nil || errors.Is(err, errDiagnostics) {
		t.Fatalf("expected a read error, got %v", err)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := runRoot(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, "nexus v"+version) {
		t.Fatalf("unexpected version output %q", out)
	}
}
