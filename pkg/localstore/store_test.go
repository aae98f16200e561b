package localstore

import (
	"context"
	"errors"
	"io/fs"
	"testing"
)

func TestStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ref, err := s.Put(ctx, "1700000000000-42.pdf", "application/pdf", []byte("%PDF-1.4"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if ref != "/Uploads/1700000000000-42.pdf" {
		t.Fatalf("ref: got %q", ref)
	}

	ok, err := s.Exists(ctx, ref)
	if err != nil || !ok {
		t.Fatalf("Exists after Put: %v %v", ok, err)
	}
	b, err := s.Read(ctx, "1700000000000-42.pdf")
	if err != nil || string(b) != "%PDF-1.4" {
		t.Fatalf("Read: %q %v", b, err)
	}

	if err := s.Delete(ctx, ref); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, ref); err != nil {
		t.Fatalf("second Delete should be a no-op: %v", err)
	}
	if ok, _ := s.Exists(ctx, ref); ok {
		t.Fatalf("file still exists after Delete")
	}
	if _, err := s.Read(ctx, "1700000000000-42.pdf"); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("Read missing: got %v", err)
	}
}

func TestRejectsPathNames(t *testing.T) {
	ctx := context.Background()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, name := range []string{"../secret", `..\secret`, "a/b.pdf", "..", ""} {
		if ValidName(name) {
			t.Fatalf("ValidName(%q) should be false", name)
		}
		if _, err := s.Read(ctx, name); !errors.Is(err, fs.ErrNotExist) {
			t.Fatalf("Read(%q): got %v", name, err)
		}
	}
	if _, err := s.Put(ctx, "../x.pdf", "", nil); err == nil {
		t.Fatalf("Put should reject path names")
	}
}
