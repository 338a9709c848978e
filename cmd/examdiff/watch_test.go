package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
)

func TestRewatch(t *testing.T) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	dir := t.TempDir()
	p := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(p, []byte("hi\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := rewatch(w, p); err != nil {
		t.Fatalf("rewatch existing file: %v", err)
	}
}

func TestRewatchMissing(t *testing.T) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	p := filepath.Join(t.TempDir(), "gone.txt")
	if err := rewatch(w, p); err == nil {
		t.Fatal("rewatch of a missing path: no error")
	}
}
