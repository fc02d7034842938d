package triage

// Status is a reviewer's decision for a thread. A thread with no recorded
// status is pending.
type Status string

const (
	StatusKept      Status = "kept"
	StatusDiscarded Status = "discarded"
)

// StatusPending is the implicit zero decision. It is never stored: setting
// a thread's current status again removes the entry instead, so the map
// holds no redundant "un-set" state.
const StatusPending Status = "pending"

// SelectionStore maps thread IDs to kept/discarded decisions.
type SelectionStore struct {
	statuses map[string]Status
}

// NewSelectionStore returns an empty selection store.
func NewSelectionStore() *SelectionStore {
	return &SelectionStore{statuses: make(map[string]Status)}
}

// Status returns the recorded decision for a thread, or StatusPending.
func (ss *SelectionStore) Status(threadID string) Status {
	if s, ok := ss.statuses[threadID]; ok {
		return s
	}
	return StatusPending
}

// SetStatus records a decision. Setting the status a thread already has
// clears it back to pending; setting the opposite status overwrites
// directly, with no intermediate pending state observable.
func (ss *SelectionStore) SetStatus(threadID string, status Status) {
	if ss.statuses[threadID] == status {
		delete(ss.statuses, threadID)
		return
	}
	ss.statuses[threadID] = status
}

// ToggleKept is SetStatus(id, StatusKept), reachable from a quick-action
// control.
func (ss *SelectionStore) ToggleKept(threadID string) {
	ss.SetStatus(threadID, StatusKept)
}

// Len returns the number of recorded (non-pending) decisions.
func (ss *SelectionStore) Len() int {
	return len(ss.statuses)
}

// Snapshot returns a copy of the decision map for serialization.
func (ss *SelectionStore) Snapshot() map[string]Status {
	out := make(map[string]Status, len(ss.statuses))
	for id, s := range ss.statuses {
		out[id] = s
	}
	return out
}

// restore replaces the store contents from persisted state. Entries with
// unknown status values are dropped rather than trusted.
func (ss *SelectionStore) restore(statuses map[string]Status) {
	ss.statuses = make(map[string]Status, len(statuses))
	for id, s := range statuses {
		if s == StatusKept || s == StatusDiscarded {
			ss.statuses[id] = s
		}
	}
}
