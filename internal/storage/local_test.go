package storage

import (
	"errors"
	"os"
	"strings"
	"testing"
)

func TestSaveResolveDelete(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}

	path, size, err := store.Save(strings.NewReader("fake jpeg bytes"), "toolboxes", "photo.JPG")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if size != int64(len("fake jpeg bytes")) {
		t.Fatalf("size = %d", size)
	}
	if !strings.HasPrefix(path, "/uploads/toolboxes/") || !strings.HasSuffix(path, ".jpg") {
		t.Fatalf("public path = %q", path)
	}

	abs, err := store.Resolve(path)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "fake jpeg bytes" {
		t.Fatalf("content = %q", data)
	}

	if err := store.Delete(path); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Resolve(path); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Resolve after delete: %v", err)
	}
	if err := store.Delete(path); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second Delete: %v", err)
	}
}

func TestSaveDefaultsExtensionAndSubfolder(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	path, _, err := store.Save(strings.NewReader("x"), "", "noextension")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(path, "/uploads/toolboxes/") || !strings.HasSuffix(path, ".jpg") {
		t.Fatalf("public path = %q", path)
	}
}

func TestRejectsTraversal(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}

	for _, sub := range []string{"../etc", "a/b", `a\b`, "two..dots"} {
		if _, _, err := store.Save(strings.NewReader("x"), sub, "f.png"); !errors.Is(err, ErrBadPath) {
			t.Fatalf("Save subfolder %q: err = %v, want ErrBadPath", sub, err)
		}
	}

	for _, p := range []string{
		"/uploads/../secret",
		"/uploads/..",
		"/elsewhere/a.jpg",
		"relative/a.jpg",
	} {
		if _, err := store.Resolve(p); !errors.Is(err, ErrBadPath) {
			t.Fatalf("Resolve %q: err = %v, want ErrBadPath", p, err)
		}
	}
}
