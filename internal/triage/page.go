package triage

// DefaultPageSize is the number of threads shown per page.
const DefaultPageSize = 50

// PageResult is one display slice of the filtered thread list.
type PageResult struct {
	Items      []Thread
	PageIndex  int // clamped into [0, TotalPages-1]
	TotalPages int // at least 1, even for an empty list
}

// Page slices the filtered list deterministically. The requested page
// index is clamped into range, so a stale page number after a filter
// change never produces an out-of-range slice.
func Page(filtered []Thread, pageIndex, pageSize int) PageResult {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	totalPages := (len(filtered) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if pageIndex < 0 {
		pageIndex = 0
	}
	if pageIndex > totalPages-1 {
		pageIndex = totalPages - 1
	}

	start := pageIndex * pageSize
	end := start + pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return PageResult{
		Items:      filtered[start:end],
		PageIndex:  pageIndex,
		TotalPages: totalPages,
	}
}
