// Package triage implements the review engine: ignore matching, selection
// state, the filter/search pipeline, pagination, statistics, and export.
package triage

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
)

// Category classifies a thread as work or personal correspondence.
type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
)

// Thread is one email thread record. Threads are immutable once loaded;
// identity is ThreadID and no two threads in a document share one.
//
// Headlines is kept in its raw serialized form (a JSON array of short
// summaries) because the export round-trips it verbatim; use HeadlineList
// or FirstHeadline for parsed access.
type Thread struct {
	ThreadID     string   `json:"thread_id"`
	From         string   `json:"from"`
	To           string   `json:"to"`
	Subject      string   `json:"subject"`
	Time         string   `json:"time"`
	Headlines    string   `json:"headlines"`
	Topics       string   `json:"topics"`
	People       string   `json:"people"`
	Anchors      string   `json:"anchors"`
	FullContent  string   `json:"full_content"`
	EmailPreview string   `json:"email_preview"`
	Category     Category `json:"personal_or_work"`
	NumMemories  int      `json:"num_memories"`
}

// Body returns the thread's message text, preferring the full content over
// the shorter preview.
func (t *Thread) Body() string {
	if t.FullContent != "" {
		return t.FullContent
	}
	return t.EmailPreview
}

// HeadlineList parses the serialized headlines field. Malformed or empty
// input yields an empty list, never an error: a thread without usable
// headlines is still reviewable.
func (t *Thread) HeadlineList() []string {
	if t.Headlines == "" {
		return nil
	}
	var headlines []string
	if err := json.Unmarshal([]byte(t.Headlines), &headlines); err != nil {
		return nil
	}
	return headlines
}

// FirstHeadline returns the first parsed headline, or "" when none exist.
func (t *Thread) FirstHeadline() string {
	if hs := t.HeadlineList(); len(hs) > 0 {
		return hs[0]
	}
	return ""
}

// LoadThreads reads the thread records document. Document order is
// preserved; it defines the stable ordering used by the filter pipeline
// and the export. A missing or unparseable document is an error — unlike
// the ignore list there is nothing to review without it.
func LoadThreads(path string) ([]Thread, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read threads document %s", path)
	}
	var threads []Thread
	if err := json.Unmarshal(data, &threads); err != nil {
		return nil, eris.Wrapf(err, "decode threads document %s", path)
	}
	return threads, nil
}
