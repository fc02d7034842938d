package triage

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// testCorpus builds a small fixed corpus:
//
//	t1 work    from alice, headline "grant review"
//	t2 personal from bob, headline "dinner plans"
//	t3 work    from carol, preview mentions "deadline"
//	t4 work    from noreply@spam.com (statically ignored)
func testCorpus() []Thread {
	t1 := makeThread("t1", "alice@co.com", "Grant")
	t1.Headlines = `["grant review","second"]`
	t2 := makeThread("t2", "bob@home.net", "Dinner")
	t2.Category = CategoryPersonal
	t2.Headlines = `["dinner plans"]`
	t3 := makeThread("t3", "carol@co.com", "Reminder")
	t3.EmailPreview = "the deadline is Friday"
	t4 := makeThread("t4", "noreply@spam.com", "Buy now")
	return []Thread{t1, t2, t3, t4}
}

func testStatic() *StaticIgnoreList {
	return &StaticIgnoreList{IgnoredSenders: []string{"noreply@spam.com"}}
}

func threadIDs(threads []Thread) []string {
	ids := make([]string, len(threads))
	for i, t := range threads {
		ids[i] = t.ThreadID
	}
	return ids
}

func TestFilteredThreadsPreservesLoadOrder(t *testing.T) {
	threads := testCorpus()
	got := FilteredThreads(threads, NewSelectionStore(), testStatic(), NewSessionIgnores(), NewView())

	want := []string{"t1", "t2", "t3"}
	if diff := cmp.Diff(want, threadIDs(got)); diff != "" {
		t.Errorf("filtered order mismatch (-want +got):\n%s", diff)
	}
}

func TestFilteredThreadsStatusFilter(t *testing.T) {
	threads := testCorpus()
	sel := NewSelectionStore()
	sel.SetStatus("t1", StatusKept)
	sel.SetStatus("t2", StatusDiscarded)

	tests := []struct {
		filter StatusFilter
		want   []string
	}{
		{FilterAll, []string{"t1", "t2", "t3"}},
		{FilterPending, []string{"t3"}},
		{FilterKept, []string{"t1"}},
		{FilterDiscarded, []string{"t2"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			view := View{StatusFilter: tt.filter}
			got := FilteredThreads(threads, sel, testStatic(), NewSessionIgnores(), view)
			if diff := cmp.Diff(tt.want, threadIDs(got)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilteredThreadsCategoryFilter(t *testing.T) {
	threads := testCorpus()
	view := View{StatusFilter: FilterAll, CategoryFilter: CategoryPersonal}
	got := FilteredThreads(threads, NewSelectionStore(), testStatic(), NewSessionIgnores(), view)

	if diff := cmp.Diff([]string{"t2"}, threadIDs(got)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFilteredThreadsStatusAndCategoryAreIndependent(t *testing.T) {
	threads := testCorpus()
	sel := NewSelectionStore()
	sel.SetStatus("t1", StatusKept)

	// kept + work: both dimensions applied together.
	view := View{StatusFilter: FilterKept, CategoryFilter: CategoryWork}
	got := FilteredThreads(threads, sel, testStatic(), NewSessionIgnores(), view)
	if diff := cmp.Diff([]string{"t1"}, threadIDs(got)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFilteredThreadsSearch(t *testing.T) {
	threads := testCorpus()

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"t1", "t2", "t3"}},      // empty query passes everything
		{"GRANT", []string{"t1"}},             // case-insensitive headline hit
		{"deadline", []string{"t3"}},          // preview hit
		{"zzz-not-there", nil},                // no hits
		{"  dinner  ", []string{"t2"}},        // query is trimmed
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("q=%q", tt.query), func(t *testing.T) {
			view := View{StatusFilter: FilterAll, Query: tt.query}
			got := FilteredThreads(threads, NewSelectionStore(), testStatic(), NewSessionIgnores(), view)
			if diff := cmp.Diff(tt.want, threadIDs(got), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestIgnoredThreadNeverResurfaces(t *testing.T) {
	threads := testCorpus()
	sel := NewSelectionStore()
	sel.SetStatus("t4", StatusKept) // even an explicit decision cannot resurrect it

	views := []View{
		{StatusFilter: FilterAll},
		{StatusFilter: FilterKept},
		{StatusFilter: FilterPending},
		{StatusFilter: FilterAll, CategoryFilter: CategoryWork},
		{StatusFilter: FilterAll, Query: "buy now"},
	}
	for _, view := range views {
		got := FilteredThreads(threads, sel, testStatic(), NewSessionIgnores(), view)
		for _, th := range got {
			if th.ThreadID == "t4" {
				t.Errorf("ignored thread surfaced under view %+v", view)
			}
		}
	}
}

func TestSessionIgnoreRemovesFromViewsAndStats(t *testing.T) {
	threads := testCorpus()
	sel := NewSelectionStore()
	session := NewSessionIgnores()

	before := ComputeStats(threads, sel, testStatic(), session)
	if before.Total != 3 {
		t.Fatalf("total = %d, want 3", before.Total)
	}

	session.Ignore("Alice <alice@co.com>")

	got := FilteredThreads(threads, sel, testStatic(), session, NewView())
	for _, th := range got {
		if th.ThreadID == "t1" {
			t.Error("session-ignored thread still visible")
		}
	}

	after := ComputeStats(threads, sel, testStatic(), session)
	if after.Total != 2 {
		t.Errorf("total = %d, want 2 after session ignore", after.Total)
	}
}
