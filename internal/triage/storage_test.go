package triage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := store.Save(KeySelections, []byte(`{"t1":"kept"}`)); err != nil {
		t.Fatal(err)
	}
	data, err := store.Load(KeySelections)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"t1":"kept"}` {
		t.Errorf("loaded %q", data)
	}
}

func TestFileStoreMissingKey(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	data, err := store.Load("never-saved")
	if err != nil {
		t.Errorf("missing key should not be an error, got %v", err)
	}
	if data != nil {
		t.Errorf("missing key should load nil, got %q", data)
	}
}

func TestFileStoreSaveReplaces(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Save(KeySessionIgnores, []byte(`["a@b.com","c@d.com"]`)); err != nil {
		t.Fatal(err)
	}
	// Save is replace, not merge.
	if err := store.Save(KeySessionIgnores, []byte(`[]`)); err != nil {
		t.Fatal(err)
	}
	data, err := store.Load(KeySessionIgnores)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `[]` {
		t.Errorf("loaded %q, want the replacement value", data)
	}
}

func TestFileStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")
	if _, err := NewFileStore(dir); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("state directory not created: %v", err)
	}
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Save(KeySelections, []byte(`{}`)); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != KeySelections+".json" {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Errorf("unexpected directory contents: %v", names)
	}
}
