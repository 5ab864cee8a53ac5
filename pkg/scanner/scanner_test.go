package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/asymptotic-dev/bigo/pkg/config"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create directory: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create file %s: %v", name, err)
		}
	}
}

func TestNewScanner(t *testing.T) {
	// With nil config
	s := NewScanner(nil)
	if s == nil {
		t.Fatal("NewScanner(nil) returned nil")
	}
	if s.config == nil {
		t.Error("scanner.config should not be nil when passing nil")
	}

	// With explicit config
	cfg := config.DefaultConfig()
	s = NewScanner(cfg)
	if s.config != cfg {
		t.Error("scanner.config should be the provided config")
	}
}

func TestScanDir(t *testing.T) {
	tmpDir := t.TempDir()

	writeTree(t, tmpDir, map[string]string{
		"main.c":          "int main(void) { return 0; }\n",
		"lib.cpp":         "int lib() { return 0; }\n",
		"include/lib.hpp": "#pragma once\n",
		"util/helper.h":   "void helper(void);\n",
		"util/helper.py":  "# python\n",
		"README.md":       "# readme\n",
	})

	s := NewScanner(nil)
	result, err := s.ScanDir(tmpDir)
	if err != nil {
		t.Fatalf("ScanDir() error: %v", err)
	}

	if len(result) != 4 {
		t.Errorf("ScanDir() found %d files, want 4: %v", len(result), result)
	}

	found := make(map[string]bool)
	for _, f := range result {
		rel, _ := filepath.Rel(tmpDir, f)
		found[rel] = true
	}
	for _, name := range []string{"main.c", "lib.cpp", filepath.Join("include", "lib.hpp"), filepath.Join("util", "helper.h")} {
		if !found[name] {
			t.Errorf("File %s was not found", name)
		}
	}
}

func TestScanDirExcludesDirectories(t *testing.T) {
	tmpDir := t.TempDir()

	writeTree(t, tmpDir, map[string]string{
		"src/main.c":            "int main(void) { return 0; }\n",
		"vendor/dep/dep.c":      "int dep(void) { return 0; }\n",
		"build/generated.c":     "int gen(void) { return 0; }\n",
		"third_party/lib/x.cpp": "int x() { return 0; }\n",
	})

	s := NewScanner(config.DefaultConfig())
	result, err := s.ScanDir(tmpDir)
	if err != nil {
		t.Fatalf("ScanDir() error: %v", err)
	}

	if len(result) != 1 {
		t.Fatalf("ScanDir() found %d files, want 1: %v", len(result), result)
	}
	if rel, _ := filepath.Rel(tmpDir, result[0]); rel != filepath.Join("src", "main.c") {
		t.Errorf("ScanDir() found %s, want src/main.c", rel)
	}
}

func TestScanDirExcludesPatterns(t *testing.T) {
	tmpDir := t.TempDir()

	writeTree(t, tmpDir, map[string]string{
		"algo.c":      "int f(void) { return 0; }\n",
		"algo_test.c": "int f_test(void) { return 0; }\n",
	})

	s := NewScanner(config.DefaultConfig())
	result, err := s.ScanDir(tmpDir)
	if err != nil {
		t.Fatalf("ScanDir() error: %v", err)
	}

	if len(result) != 1 {
		t.Fatalf("ScanDir() found %d files, want 1: %v", len(result), result)
	}
}

func TestScanDirRespectsGitignore(t *testing.T) {
	tmpDir := t.TempDir()

	writeTree(t, tmpDir, map[string]string{
		"kept.c":            "int kept(void) { return 0; }\n",
		"ignored/skipped.c": "int skipped(void) { return 0; }\n",
		".gitignore":        "ignored/\n",
	})
	if err := os.MkdirAll(filepath.Join(tmpDir, ".git"), 0755); err != nil {
		t.Fatalf("Failed to create .git: %v", err)
	}

	s := NewScanner(config.DefaultConfig())
	result, err := s.ScanDir(tmpDir)
	if err != nil {
		t.Fatalf("ScanDir() error: %v", err)
	}

	for _, f := range result {
		if filepath.Base(f) == "skipped.c" {
			t.Errorf("gitignored file %s was scanned", f)
		}
	}
	if len(result) != 1 {
		t.Errorf("ScanDir() found %d files, want 1: %v", len(result), result)
	}
}

func TestScanFile(t *testing.T) {
	tmpDir := t.TempDir()

	writeTree(t, tmpDir, map[string]string{
		"good.c":   "int f(void) { return 0; }\n",
		"notes.md": "# notes\n",
	})

	s := NewScanner(config.DefaultConfig())

	ok, err := s.ScanFile(filepath.Join(tmpDir, "good.c"))
	if err != nil {
		t.Fatalf("ScanFile() error: %v", err)
	}
	if !ok {
		t.Error("ScanFile(good.c) = false, want true")
	}

	ok, err = s.ScanFile(filepath.Join(tmpDir, "notes.md"))
	if err != nil {
		t.Fatalf("ScanFile() error: %v", err)
	}
	if ok {
		t.Error("ScanFile(notes.md) = true, want false")
	}

	if _, err := s.ScanFile(filepath.Join(tmpDir, "missing.c")); err == nil {
		t.Error("ScanFile() on missing file should return error")
	}
}
