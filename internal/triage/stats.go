package triage

// Stats are the triage counters over the non-ignored universe. Ignored
// threads never count toward any bucket.
type Stats struct {
	Total     int `json:"total"`
	Kept      int `json:"kept"`
	Discarded int `json:"discarded"`
	Pending   int `json:"pending"`
}

// ComputeStats recomputes the counters from scratch so they stay
// consistent with arbitrary selection or ignore-list edits. Pending is
// derived: Total - Kept - Discarded.
func ComputeStats(threads []Thread, sel *SelectionStore, static *StaticIgnoreList, session *SessionIgnores) Stats {
	var s Stats
	for i := range threads {
		t := &threads[i]
		if IsIgnored(t, static, session) {
			continue
		}
		s.Total++
		switch sel.Status(t.ThreadID) {
		case StatusKept:
			s.Kept++
		case StatusDiscarded:
			s.Discarded++
		}
	}
	s.Pending = s.Total - s.Kept - s.Discarded
	return s
}
