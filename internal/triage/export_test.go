package triage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestExportKeptFidelity(t *testing.T) {
	threads := testCorpus()
	sel := NewSelectionStore()
	sel.SetStatus("t3", StatusKept)
	sel.SetStatus("t1", StatusKept)
	sel.SetStatus("t2", StatusDiscarded)

	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	doc := ExportKept(threads, sel, now)

	// Kept ids in original load order, regardless of decision order.
	if diff := cmp.Diff([]string{"t1", "t3"}, doc.ThreadIDs); diff != "" {
		t.Errorf("thread ids mismatch (-want +got):\n%s", diff)
	}
	if doc.TotalCount != 2 {
		t.Errorf("TotalCount = %d, want 2", doc.TotalCount)
	}
	if doc.ExportedAt != "2026-08-31T12:00:00Z" {
		t.Errorf("ExportedAt = %q", doc.ExportedAt)
	}
}

func TestExportKeptDoesNotMutateSelection(t *testing.T) {
	threads := testCorpus()
	sel := NewSelectionStore()
	sel.SetStatus("t1", StatusKept)
	before := sel.Snapshot()

	_ = ExportKept(threads, sel, time.Now())

	if diff := cmp.Diff(before, sel.Snapshot()); diff != "" {
		t.Errorf("selection changed during export (-before +after):\n%s", diff)
	}
}

func TestExportKeptContentFallsBackToPreview(t *testing.T) {
	full := makeThread("t1", "a@b.com", "s")
	full.FullContent = "the full text"
	full.EmailPreview = "short preview"
	previewOnly := makeThread("t2", "a@b.com", "s")
	previewOnly.EmailPreview = "only a preview"

	sel := NewSelectionStore()
	sel.SetStatus("t1", StatusKept)
	sel.SetStatus("t2", StatusKept)

	doc := ExportKept([]Thread{full, previewOnly}, sel, time.Now())
	if doc.Threads[0].Content != "the full text" {
		t.Errorf("content = %q, want full content", doc.Threads[0].Content)
	}
	if doc.Threads[1].Content != "only a preview" {
		t.Errorf("content = %q, want preview fallback", doc.Threads[1].Content)
	}
}

func TestExportKeptEmptySelection(t *testing.T) {
	doc := ExportKept(testCorpus(), NewSelectionStore(), time.Now())
	if doc.TotalCount != 0 {
		t.Errorf("TotalCount = %d, want 0", doc.TotalCount)
	}
	// Empty export still serializes with arrays, not nulls.
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if string(raw["thread_ids"]) != "[]" {
		t.Errorf("thread_ids = %s, want []", raw["thread_ids"])
	}
}

func TestExportDocumentWriteFile(t *testing.T) {
	threads := testCorpus()
	sel := NewSelectionStore()
	sel.SetStatus("t1", StatusKept)

	doc := ExportKept(threads, sel, time.Now())
	path := filepath.Join(t.TempDir(), "kept.json")
	if err := doc.WriteFile(path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var read ExportDocument
	if err := json.Unmarshal(data, &read); err != nil {
		t.Fatalf("written export is not valid JSON: %v", err)
	}
	if diff := cmp.Diff(doc, &read); diff != "" {
		t.Errorf("round-trip mismatch (-want +got):\n%s", diff)
	}
}
