package fsutil

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"testing"
)

func TestOSFileSystem_Exists(t *testing.T) {
	fsys := OSFileSystem{}

	if !fsys.Exists("filesystem.go") {
		t.Error("expected filesystem.go to exist")
	}
	if fsys.Exists("nonexistent_file_xyz.go") {
		t.Error("expected nonexistent file to not exist")
	}
}

func TestWriteTo_OSFileSystem(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.json")

	n, err := WriteTo(OSFileSystem{}, path, bytes.NewBufferString(`{"ok":true}`))
	if err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	if n != 11 {
		t.Errorf("expected 11 bytes written, got %d", n)
	}

	data, err := OSFileSystem{}.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != `{"ok":true}` {
		t.Errorf("unexpected content %q", data)
	}
}

func TestWriteTo_MemoryFileSystem(t *testing.T) {
	mfs := NewMemoryFileSystem()

	if _, err := WriteTo(mfs, "out/run/a.png", bytes.NewBufferString("png")); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	if _, err := WriteTo(mfs, "out/run/b.html", bytes.NewBufferString("html")); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}

	if !mfs.Exists("out/run") || !mfs.Exists("out") {
		t.Error("expected parent directories to be created")
	}

	files := mfs.Files("out")
	want := []string{"out/run/a.png", "out/run/b.html"}
	if len(files) != len(want) || files[0] != want[0] || files[1] != want[1] {
		t.Errorf("Files() = %v, want %v", files, want)
	}

	data, err := mfs.ReadFile("out/run/b.html")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "html" {
		t.Errorf("expected %q, got %q", "html", data)
	}
}

func TestMemoryFileSystem_ReadMissing(t *testing.T) {
	_, err := NewMemoryFileSystem().ReadFile("missing.json")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestMemoryFileSystem_ReadReturnsCopy(t *testing.T) {
	mfs := NewMemoryFileSystem()
	if _, err := WriteTo(mfs, "a.txt", bytes.NewBufferString("abc")); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	data, _ := mfs.ReadFile("a.txt")
	data[0] = 'z'
	again, _ := mfs.ReadFile("a.txt")
	if string(again) != "abc" {
		t.Errorf("stored data was mutated: %q", again)
	}
}

// failingSource writes some bytes and then fails, like an encoder that
// errors halfway through a document.
type failingSource struct{}

func (failingSource) WriteTo(w io.Writer) (int64, error) {
	n, _ := w.Write([]byte(`{"panels": [`))
	return int64(n), errors.New("encoder failed")
}

func TestWriteTo_FailedWriteRemovesPartialFile(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		mfs := NewMemoryFileSystem()
		if _, err := WriteTo(mfs, "out/facade.json", failingSource{}); err == nil {
			t.Fatal("expected WriteTo to fail")
		}
		if mfs.Exists("out/facade.json") {
			t.Error("expected partial file to be removed")
		}
		if files := mfs.Files("out"); len(files) != 0 {
			t.Errorf("Files() = %v, want none", files)
		}
	})

	t.Run("os", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "facade.json")
		if _, err := WriteTo(OSFileSystem{}, path, failingSource{}); err == nil {
			t.Fatal("expected WriteTo to fail")
		}
		if (OSFileSystem{}).Exists(path) {
			t.Error("expected partial file to be removed")
		}
	})
}

func TestMemoryFileSystem_Remove(t *testing.T) {
	mfs := NewMemoryFileSystem()
	if _, err := WriteTo(mfs, "a.json", bytes.NewBufferString("{}")); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	if err := mfs.Remove("a.json"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if err := mfs.Remove("a.json"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected ErrNotExist on second Remove, got %v", err)
	}
}
