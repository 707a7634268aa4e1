package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveOutput(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	cwd, _ := os.Getwd()

	tests := []struct {
		name   string
		output string
		src    string
		want   string
	}{
		{"no output", "", "test.zip", filepath.Join(cwd, "test.zip")},
		{"no output nested src", "", "a/b/c.txt", filepath.Join(cwd, "c.txt")},
		{"directory", dir, "a/b/c.txt", filepath.Join(dir, "c.txt")},
		{"file", filepath.Join(dir, "out.bin"), "a/b/c.txt", filepath.Join(dir, "out.bin")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveOutput(tt.output, tt.src)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestResolveOutput_NoBaseName(t *testing.T) {
	if _, err := resolveOutput("", "/"); err == nil {
		t.Error("expected error for root path")
	}
}

func TestWriteFile(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "out.txt")

	n, err := writeFile(dst, strings.NewReader("content"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != int64(len("content")) {
		t.Errorf("expected %d bytes, got %d", len("content"), n)
	}

	info, err := os.Stat(dst)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o644 {
		t.Errorf("expected 0644, got %v", info.Mode().Perm())
	}
}

func TestWriteFile_MissingDirectory(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "missing", "out.txt")

	_, err := writeFile(dst, strings.NewReader("content"))
	if err == nil || !strings.Contains(err.Error(), "failed to create file") {
		t.Errorf("expected create error, got %v", err)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatText, "text": FormatText, "json": FormatJSON, "yaml": FormatYAML} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for xml")
	}
}
