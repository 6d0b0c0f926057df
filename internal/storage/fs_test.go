package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func tempVault(t *testing.T) *FS {
	t.Helper()
	dir := t.TempDir()
	fs, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return fs
}

func TestWriteAndRead(t *testing.T) {
	s := tempVault(t)
	content := []byte("# Hello\nWorld\n")
	if err := s.Write("note.md", content); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read("note.md")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("content mismatch: got %q", got)
	}
}

func TestWriteCreatesSubdirs(t *testing.T) {
	s := tempVault(t)
	if err := s.Write("a/b/c.md", []byte("deep")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read("a/b/c.md")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != "deep" {
		t.Errorf("content = %q", got)
	}
}

func TestExists(t *testing.T) {
	s := tempVault(t)
	ok, err := s.Exists("nope.md")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if ok {
		t.Error("missing file reported as existing")
	}
	_ = s.Write("yes.md", []byte("x"))
	ok, _ = s.Exists("yes.md")
	if !ok {
		t.Error("written file reported as missing")
	}
}

func TestIsDir(t *testing.T) {
	s := tempVault(t)
	if err := s.EnsureDir("folder"); err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}
	ok, err := s.IsDir("folder")
	if err != nil || !ok {
		t.Errorf("IsDir(folder) = %v, %v", ok, err)
	}
	_ = s.Write("file.md", []byte("x"))
	ok, _ = s.IsDir("file.md")
	if ok {
		t.Error("file reported as directory")
	}
	// Empty path is the vault root.
	ok, _ = s.IsDir("")
	if !ok {
		t.Error("vault root should be a directory")
	}
}

func TestEnsureDirNested(t *testing.T) {
	s := tempVault(t)
	if err := s.EnsureDir("a/b/c"); err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}
	ok, _ := s.IsDir("a/b/c")
	if !ok {
		t.Error("nested dir not created")
	}
	// Repeating is a no-op.
	if err := s.EnsureDir("a/b/c"); err != nil {
		t.Errorf("EnsureDir repeat: %v", err)
	}
}

func TestStat(t *testing.T) {
	s := tempVault(t)
	before := time.Now().Add(-time.Minute)
	_ = s.Write("stat.md", []byte("12345"))
	st, err := s.Stat("stat.md")
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if st.Size != 5 {
		t.Errorf("size = %d, want 5", st.Size)
	}
	if st.ModTime.Before(before) {
		t.Errorf("mtime = %v, too old", st.ModTime)
	}
}

func TestList(t *testing.T) {
	s := tempVault(t)
	_ = s.Write("a.md", []byte("a"))
	_ = s.Write("sub/b.md", []byte("b"))
	_ = s.Write("readme.txt", []byte("not md"))

	paths, err := s.List("", "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("len = %d, want 2: %v", len(paths), paths)
	}
	for _, p := range paths {
		if filepath.ToSlash(p) != p {
			t.Errorf("path %q not slash-normalized", p)
		}
	}
}

func TestListFolderScope(t *testing.T) {
	s := tempVault(t)
	_ = s.Write("top.md", []byte("t"))
	_ = s.Write("proj/one.md", []byte("1"))
	_ = s.Write("proj/deep/two.md", []byte("2"))

	paths, err := s.List("proj", ".md")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("len = %d, want 2: %v", len(paths), paths)
	}
	for _, p := range paths {
		if p != "proj/one.md" && p != "proj/deep/two.md" {
			t.Errorf("unexpected path %q", p)
		}
	}
}

func TestTraversalBlocked(t *testing.T) {
	s := tempVault(t)

	cases := []string{
		"../../etc/passwd",
		"../outside.md",
		"/etc/shadow",
	}
	for _, p := range cases {
		if _, err := s.Read(p); err == nil {
			t.Errorf("expected error for path %q", p)
		}
		if err := s.Write(p, []byte("x")); err == nil {
			t.Errorf("expected error for write to %q", p)
		}
	}
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	s := tempVault(t)
	_ = s.Write("atomic.md", []byte("original content"))
	if err := s.Write("atomic.md", []byte("updated content")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, _ := s.Read("atomic.md")
	if string(got) != "updated content" {
		t.Errorf("expected updated content, got %q", got)
	}

	matches, _ := filepath.Glob(filepath.Join(s.root, ".ansuz-tmp-*"))
	if len(matches) != 0 {
		t.Errorf("leftover temp files: %v", matches)
	}
}

func TestNewFS_NonExistentDir(t *testing.T) {
	_, err := NewFS("/tmp/ansuz-does-not-exist-" + t.Name())
	if err == nil {
		t.Error("expected error for non-existent dir")
	}
}

func TestNewFS_FileNotDir(t *testing.T) {
	f, _ := os.CreateTemp("", "ansuz-test-*")
	_ = f.Close()
	defer os.Remove(f.Name())
	_, err := NewFS(f.Name())
	if err == nil {
		t.Error("expected error when root is a file")
	}
}
