package triage

import (
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
)

// Session is the explicit state object for one reviewing session: the
// immutable thread records and static ignore list, the two persistent
// stores, and the ephemeral view. All recomputation happens synchronously
// inside the mutating call, so displayed state is never half-updated.
//
// Session is not safe for concurrent use. One reviewer drives one client,
// so there is exactly one logical thread of control.
type Session struct {
	threads []Thread
	static  *StaticIgnoreList

	selection *SelectionStore
	ignores   *SessionIgnores

	storage  Storage
	pageSize int

	// View is the ephemeral display state, owned by the presentation
	// layer but carried here so pipeline calls need no extra plumbing.
	View View
}

// NewSession builds a session over the loaded inputs and hydrates the
// selection and session-ignore stores from storage. Unparseable persisted
// state is treated as absent: the reviewer starts fresh rather than
// crashing on a corrupt state file.
func NewSession(threads []Thread, static *StaticIgnoreList, storage Storage, pageSize int) *Session {
	if static == nil {
		static = &StaticIgnoreList{}
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	s := &Session{
		threads:   threads,
		static:    static,
		selection: NewSelectionStore(),
		ignores:   NewSessionIgnores(),
		storage:   storage,
		pageSize:  pageSize,
		View:      NewView(),
	}
	s.hydrate()
	return s
}

func (s *Session) hydrate() {
	if s.storage == nil {
		return
	}
	if data, err := s.storage.Load(KeySelections); err == nil && len(data) > 0 {
		var statuses map[string]Status
		if json.Unmarshal(data, &statuses) == nil {
			s.selection.restore(statuses)
		}
	}
	if data, err := s.storage.Load(KeySessionIgnores); err == nil && len(data) > 0 {
		var senders []string
		if json.Unmarshal(data, &senders) == nil {
			s.ignores.restore(senders)
		}
	}
}

// Threads returns the full thread list in load order.
func (s *Session) Threads() []Thread {
	return s.threads
}

// Selection returns the selection store for read access.
func (s *Session) Selection() *SelectionStore {
	return s.selection
}

// Ignores returns the session ignore store for read access.
func (s *Session) Ignores() *SessionIgnores {
	return s.ignores
}

// PageSize returns the configured paginator size.
func (s *Session) PageSize() int {
	return s.pageSize
}

// Filtered runs the pipeline with the session's current view.
func (s *Session) Filtered() []Thread {
	return s.FilteredWith(s.View)
}

// FilteredWith runs the pipeline with an explicit view, leaving the
// session's own view untouched.
func (s *Session) FilteredWith(view View) []Thread {
	return FilteredThreads(s.threads, s.selection, s.static, s.ignores, view)
}

// CurrentPage returns the current page of the filtered list, clamping and
// writing back the view's page index so stale indices self-correct.
func (s *Session) CurrentPage() PageResult {
	page := Page(s.Filtered(), s.View.PageIndex, s.pageSize)
	s.View.PageIndex = page.PageIndex
	return page
}

// Stats recomputes the triage counters over the non-ignored universe.
func (s *Session) Stats() Stats {
	return ComputeStats(s.threads, s.selection, s.static, s.ignores)
}

// Export builds the kept-selection export document.
func (s *Session) Export(now time.Time) *ExportDocument {
	return ExportKept(s.threads, s.selection, now)
}

// SetStatus records a toggle decision and persists the selection map.
// Persistence is best-effort: the state change always takes effect and
// the error is returned for the caller to surface.
func (s *Session) SetStatus(threadID string, status Status) error {
	s.selection.SetStatus(threadID, status)
	return s.saveSelections()
}

// ToggleKept is SetStatus with StatusKept.
func (s *Session) ToggleKept(threadID string) error {
	return s.SetStatus(threadID, StatusKept)
}

// IgnoreSender adds a session sender suppression and persists the list.
// The bool reports whether the sender was newly added.
func (s *Session) IgnoreSender(raw string) (bool, error) {
	if !s.ignores.Ignore(raw) {
		return false, nil
	}
	return true, s.saveIgnores()
}

// UnignoreSender removes a session suppression and persists the list.
// The bool reports whether the sender was present.
func (s *Session) UnignoreSender(sender string) (bool, error) {
	if !s.ignores.Unignore(sender) {
		return false, nil
	}
	return true, s.saveIgnores()
}

// ClearSessionIgnores empties the session list and persists it.
func (s *Session) ClearSessionIgnores() error {
	s.ignores.Clear()
	return s.saveIgnores()
}

func (s *Session) saveSelections() error {
	if s.storage == nil {
		return nil
	}
	data, err := json.Marshal(s.selection.Snapshot())
	if err != nil {
		return eris.Wrap(err, "encode selections")
	}
	return s.storage.Save(KeySelections, data)
}

func (s *Session) saveIgnores() error {
	if s.storage == nil {
		return nil
	}
	data, err := json.Marshal(s.ignores.Senders())
	if err != nil {
		return eris.Wrap(err, "encode session ignores")
	}
	return s.storage.Save(KeySessionIgnores, data)
}
