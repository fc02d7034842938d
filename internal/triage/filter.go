package triage

import "strings"

// StatusFilter selects threads by review decision.
type StatusFilter string

const (
	FilterAll       StatusFilter = "all"
	FilterPending   StatusFilter = "pending"
	FilterKept      StatusFilter = "kept"
	FilterDiscarded StatusFilter = "discarded"
)

// View is the ephemeral display state: active filters, search query, and
// page position. Status and category filters are independent dimensions
// here; any mutual exclusivity is presentation policy imposed by the UI.
type View struct {
	StatusFilter   StatusFilter
	CategoryFilter Category // "" means no category filter
	Query          string
	PageIndex      int
}

// NewView returns the default view: all statuses, no category, no query.
func NewView() View {
	return View{StatusFilter: FilterAll}
}

// FilteredThreads runs the filter/search pipeline: ignore matching, then
// status filter, then category filter, then text search. Survivors keep
// the original load order of threads — a stable filter, never a re-sort.
// The pipeline is recomputed in full on every relevant state change.
func FilteredThreads(threads []Thread, sel *SelectionStore, static *StaticIgnoreList, session *SessionIgnores, view View) []Thread {
	query := strings.ToLower(strings.TrimSpace(view.Query))

	var out []Thread
	for i := range threads {
		t := &threads[i]

		if IsIgnored(t, static, session) {
			continue
		}

		switch view.StatusFilter {
		case FilterPending:
			if sel.Status(t.ThreadID) != StatusPending {
				continue
			}
		case FilterKept:
			if sel.Status(t.ThreadID) != StatusKept {
				continue
			}
		case FilterDiscarded:
			if sel.Status(t.ThreadID) != StatusDiscarded {
				continue
			}
		}

		if view.CategoryFilter != "" && t.Category != view.CategoryFilter {
			continue
		}

		if query != "" && !matchesQuery(t, query) {
			continue
		}

		out = append(out, *t)
	}
	return out
}

// matchesQuery reports whether the lowercased query appears in the first
// headline or the preview text.
func matchesQuery(t *Thread, query string) bool {
	if strings.Contains(strings.ToLower(t.FirstHeadline()), query) {
		return true
	}
	return strings.Contains(strings.ToLower(t.Body()), query)
}
