package triage

import (
	"encoding/json"
	"os"
	"time"

	"github.com/rotisserie/eris"
)

// ExportedThread is the per-thread projection carried in an export
// document. Field names follow the thread records document so exports
// remain self-contained inputs for downstream tooling.
type ExportedThread struct {
	ThreadID    string   `json:"thread_id"`
	Category    Category `json:"personal_or_work"`
	NumMemories int      `json:"num_memories"`
	From        string   `json:"from"`
	To          string   `json:"to"`
	Subject     string   `json:"subject"`
	Time        string   `json:"time"`
	Headlines   string   `json:"headlines"`
	Topics      string   `json:"topics"`
	People      string   `json:"people"`
	Anchors     string   `json:"anchors"`
	Content     string   `json:"full_content"`
}

// ExportDocument is the portable artifact holding the kept subset. Only
// the resulting set is embedded, not the filter criteria that selected it.
type ExportDocument struct {
	TotalCount int              `json:"total_count"`
	ExportedAt string           `json:"exported_at"`
	ThreadIDs  []string         `json:"thread_ids"`
	Threads    []ExportedThread `json:"threads"`
}

// ExportKept serializes the threads whose status is exactly kept, in
// original load order. The selection store is read, never mutated.
func ExportKept(threads []Thread, sel *SelectionStore, now time.Time) *ExportDocument {
	doc := &ExportDocument{
		ExportedAt: now.UTC().Format(time.RFC3339),
		ThreadIDs:  []string{},
		Threads:    []ExportedThread{},
	}
	for i := range threads {
		t := &threads[i]
		if sel.Status(t.ThreadID) != StatusKept {
			continue
		}
		doc.ThreadIDs = append(doc.ThreadIDs, t.ThreadID)
		doc.Threads = append(doc.Threads, ExportedThread{
			ThreadID:    t.ThreadID,
			Category:    t.Category,
			NumMemories: t.NumMemories,
			From:        t.From,
			To:          t.To,
			Subject:     t.Subject,
			Time:        t.Time,
			Headlines:   t.Headlines,
			Topics:      t.Topics,
			People:      t.People,
			Anchors:     t.Anchors,
			Content:     t.Body(),
		})
	}
	doc.TotalCount = len(doc.Threads)
	return doc
}

// WriteFile writes the document as indented JSON, the form offered for
// download and inline inspection.
func (d *ExportDocument) WriteFile(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return eris.Wrap(err, "encode export document")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "write export document %s", path)
	}
	return nil
}
