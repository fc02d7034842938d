package triage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestThreadBodyPrefersFullContent(t *testing.T) {
	th := Thread{FullContent: "full", EmailPreview: "preview"}
	if got := th.Body(); got != "full" {
		t.Errorf("Body() = %q, want full content", got)
	}
	th.FullContent = ""
	if got := th.Body(); got != "preview" {
		t.Errorf("Body() = %q, want preview fallback", got)
	}
}

func TestFirstHeadline(t *testing.T) {
	tests := []struct {
		name      string
		headlines string
		want      string
	}{
		{"normal", `["first","second"]`, "first"},
		{"single", `["only"]`, "only"},
		{"empty array", `[]`, ""},
		{"empty string", "", ""},
		{"malformed json", `["unterminated`, ""},
		{"wrong shape", `{"a":1}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := Thread{Headlines: tt.headlines}
			if got := th.FirstHeadline(); got != tt.want {
				t.Errorf("FirstHeadline() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadThreads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emails.json")
	doc := `[
		{"thread_id":"t1","from":"a@b.com","subject":"hi","personal_or_work":"work","num_memories":3},
		{"thread_id":"t2","personal_or_work":"personal"}
	]`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	threads, err := LoadThreads(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(threads) != 2 {
		t.Fatalf("len = %d, want 2", len(threads))
	}
	if threads[0].ThreadID != "t1" || threads[0].NumMemories != 3 {
		t.Errorf("first thread = %+v", threads[0])
	}
	// Absent optional fields decode to zero values, never an error.
	if threads[1].Subject != "" || threads[1].Headlines != "" {
		t.Errorf("absent fields should be empty, got %+v", threads[1])
	}
}

func TestLoadThreadsMissingFileIsError(t *testing.T) {
	if _, err := LoadThreads(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("missing threads document must be an error")
	}
}

func TestLoadThreadsMalformedIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emails.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadThreads(path); err == nil {
		t.Error("malformed threads document must be an error")
	}
}
