package images

import (
	"io"
	"strings"
	"testing"
)

func TestSaveOpenRemove(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	name, err := store.Save(strings.NewReader("fake png bytes"), ".png")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasSuffix(name, ".png") {
		t.Errorf("name = %q, want .png suffix", name)
	}

	f, err := store.Open(name)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	data, _ := io.ReadAll(f)
	f.Close()
	if string(data) != "fake png bytes" {
		t.Errorf("content = %q", data)
	}

	if err := store.Remove(name); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := store.Open(name); err == nil {
		t.Error("expected error opening removed image")
	}

	// Removing again is fine.
	if err := store.Remove(name); err != nil {
		t.Errorf("second Remove: %v", err)
	}
}

func TestOpenRejectsPathEscapes(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	for _, name := range []string{"../etc/passwd", "a/b.png", `a\b.png`, ""} {
		if _, err := store.Open(name); err == nil {
			t.Errorf("Open(%q) should fail", name)
		}
	}
}
