package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	if err := store.Store("sessions", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	data, ok, err := store.Load("sessions")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !ok {
		t.Fatal("expected key to exist")
	}
	if string(data) != `{"a":1}` {
		t.Errorf("Load = %q", data)
	}
}

func TestFileStoreLoadAbsent(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	data, ok, err := store.Load("missing")
	if err != nil {
		t.Fatalf("absent key must not error, got %v", err)
	}
	if ok || data != nil {
		t.Errorf("absent key should report ok=false, got ok=%v data=%q", ok, data)
	}
}

func TestFileStoreRemove(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	store.Store("k", []byte("v"))
	if err := store.Remove("k"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, ok, _ := store.Load("k"); ok {
		t.Error("key still present after Remove")
	}

	// removing an absent key is not an error
	if err := store.Remove("k"); err != nil {
		t.Errorf("second Remove errored: %v", err)
	}
}

func TestFileStoreSanitizesKeys(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	key := "nested" + string(os.PathSeparator) + "key"
	if err := store.Store(key, []byte("v")); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one file in the data dir, got %d", len(entries))
	}
	if filepath.Ext(entries[0].Name()) != ".json" {
		t.Errorf("unexpected file name %q", entries[0].Name())
	}

	if _, ok, _ := store.Load(key); !ok {
		t.Error("sanitized key did not round-trip")
	}
}

func TestMemoryStoreIsolation(t *testing.T) {
	store := NewMemoryStore()

	payload := []byte("original")
	store.Store("k", payload)
	payload[0] = 'X'

	data, ok, err := store.Load("k")
	if err != nil || !ok {
		t.Fatalf("Load failed: ok=%v err=%v", ok, err)
	}
	if string(data) != "original" {
		t.Errorf("stored bytes aliased caller buffer: %q", data)
	}

	data[0] = 'Y'
	again, _, _ := store.Load("k")
	if string(again) != "original" {
		t.Errorf("loaded bytes aliased internal buffer: %q", again)
	}
}
