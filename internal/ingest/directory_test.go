package ingest

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDirectoryPicksOnlyPDFs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.pdf", []byte("fake pdf bytes a"))
	writeFile(t, dir, "b.PDF", []byte("fake pdf bytes b"))
	writeFile(t, dir, "readme.txt", []byte("not a pdf"))
	writeFile(t, dir, "sheet.xlsx", []byte("not a pdf either"))

	docs, stats, err := LoadDirectory(dir, true, nil)
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("loaded %d documents, want 2", len(docs))
	}
	if stats.Matched != 2 || stats.Loaded != 2 || stats.Failed != 0 {
		t.Errorf("stats = %+v", stats)
	}
	for _, d := range docs {
		if d.SourceID == "" || d.Filename == "" {
			t.Errorf("document missing identity: %+v", d)
		}
		if len(d.ContentHash) == 0 || len(d.Content) == 0 {
			t.Errorf("document %s missing content or hash", d.Filename)
		}
	}
}

func TestLoadDirectorySkipsHidden(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "visible.pdf", []byte("fake pdf"))
	writeFile(t, dir, ".hidden.pdf", []byte("fake pdf"))

	sub := filepath.Join(dir, ".cache")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, sub, "nested.pdf", []byte("fake pdf"))

	docs, _, err := LoadDirectory(dir, true, nil)
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	if len(docs) != 1 || docs[0].Filename != "visible.pdf" {
		t.Errorf("docs = %+v, want only visible.pdf", docs)
	}
}

func TestLoadDirectoryHiddenIncludedWhenNotSkipping(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".hidden.pdf", []byte("fake pdf"))

	docs, _, err := LoadDirectory(dir, false, nil)
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	if len(docs) != 1 {
		t.Errorf("loaded %d documents, want 1", len(docs))
	}
}

func TestLoadDirectoryEmptyRoot(t *testing.T) {
	if _, _, err := LoadDirectory("  ", true, nil); err == nil {
		t.Error("LoadDirectory accepted a blank root")
	}
}

func TestIsHidden(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/tmp/in/.hidden.pdf", true},
		{".cache", true},
		{"/tmp/in/visible.pdf", false},
		{".", false},
		{"..", false},
	}
	for _, tt := range tests {
		if got := IsHidden(tt.path); got != tt.want {
			t.Errorf("IsHidden(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
