package files

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRemoveTree(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("removes an existing tree", func(t *testing.T) {
		target := filepath.Join(tmpDir, "a", "b")
		if err := os.MkdirAll(target, os.ModePerm); err != nil {
			t.Fatalf("setup failed: %v", err)
		}
		if err := os.WriteFile(filepath.Join(target, "file.yml"), []byte("x: 1\n"), 0644); err != nil {
			t.Fatalf("setup failed: %v", err)
		}

		if err := RemoveTree(filepath.Join(tmpDir, "a")); err != nil {
			t.Fatalf("RemoveTree returned error: %v", err)
		}
		if _, err := os.Stat(filepath.Join(tmpDir, "a")); !os.IsNotExist(err) {
			t.Errorf("expected tree to be removed, stat err: %v", err)
		}
	})

	t.Run("no-op on missing path", func(t *testing.T) {
		if err := RemoveTree(filepath.Join(tmpDir, "does", "not", "exist")); err != nil {
			t.Errorf("expected nil error for missing path, got: %v", err)
		}
	})
}

func TestSafeWrite(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("creates parent directories", func(t *testing.T) {
		path := filepath.Join(tmpDir, "nested", "dir", "index.html")
		if err := SafeWrite("<html></html>", path, false); err != nil {
			t.Fatalf("SafeWrite returned error: %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read written file: %v", err)
		}
		if string(data) != "<html></html>" {
			t.Errorf("unexpected content: %q", string(data))
		}
	})

	t.Run("truncates by default", func(t *testing.T) {
		path := filepath.Join(tmpDir, "truncate.txt")
		if err := SafeWrite("first", path, false); err != nil {
			t.Fatalf("SafeWrite returned error: %v", err)
		}
		if err := SafeWrite("second", path, false); err != nil {
			t.Fatalf("SafeWrite returned error: %v", err)
		}
		data, _ := os.ReadFile(path)
		if string(data) != "second" {
			t.Errorf("expected %q, got %q", "second", string(data))
		}
	})

	t.Run("appends when requested", func(t *testing.T) {
		path := filepath.Join(tmpDir, "append.txt")
		if err := SafeWrite("first", path, false); err != nil {
			t.Fatalf("SafeWrite returned error: %v", err)
		}
		if err := SafeWrite("+second", path, true); err != nil {
			t.Fatalf("SafeWrite returned error: %v", err)
		}
		data, _ := os.ReadFile(path)
		if string(data) != "first+second" {
			t.Errorf("expected %q, got %q", "first+second", string(data))
		}
	})
}

func TestCopyFile(t *testing.T) {
	tmpDir := t.TempDir()

	src := filepath.Join(tmpDir, "violations.xml")
	if err := os.WriteFile(src, []byte("<violations/>"), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	dest := filepath.Join(tmpDir, "review", "project", "version", "violations.xml")
	if err := CopyFile(src, dest); err != nil {
		t.Fatalf("CopyFile returned error: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("failed to read copy: %v", err)
	}
	if string(data) != "<violations/>" {
		t.Errorf("unexpected copy content: %q", string(data))
	}
}
