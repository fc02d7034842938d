// Package tui provides the interactive triage interface for threadtriage.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"threadtriage/internal/triage"
)

// viewLevel identifies which screen is active.
type viewLevel int

const (
	levelList viewLevel = iota
	levelDetail
	levelIgnores
)

// modalType identifies the active overlay, if any.
type modalType int

const (
	modalNone modalType = iota
	modalHelp
	modalQuitConfirm
	modalClearIgnores
)

// flashDuration is how long flash messages are displayed.
const flashDuration = 4 * time.Second

// defaultSearchDebounce is the delay between the last keystroke and the
// search actually being applied to the thread list.
const defaultSearchDebounce = 300 * time.Millisecond

// Options configures a Model beyond its session.
type Options struct {
	Version    string
	Debounce   time.Duration
	ExportPath string
	// LoadErr records a fatal failure to read the thread document. When
	// set, the UI renders an error screen instead of the thread list.
	LoadErr error
}

// Model is the bubbletea model for the triage UI.
type Model struct {
	session    *triage.Session
	version    string
	debounce   time.Duration
	exportPath string
	loadErr    error

	level viewLevel
	modal modalType

	// Current page of the filtered list plus the aggregates shown in the
	// footer. Refreshed after every mutation or filter change.
	page        triage.PageResult
	stats       triage.Stats
	filteredLen int

	cursor       int // index into page.Items
	scrollOffset int // first visible row of the table
	rowsVisible  int

	detailLines  []string
	detailScroll int

	ignoresCursor int

	searchInput    textinput.Model
	searchActive   bool
	searchDebounce uint64 // increment to cancel pending debounce timers

	width  int
	height int

	flashMessage   string
	flashExpiresAt time.Time

	quitting bool
}

// flashClearMsg clears the flash message after timeout.
type flashClearMsg struct{}

// searchDebounceMsg fires after the debounce delay to apply a search query.
type searchDebounceMsg struct {
	query      string
	debounceID uint64
}

// New builds the initial model around a hydrated session.
func New(session *triage.Session, opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "search"
	ti.CharLimit = 200

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = defaultSearchDebounce
	}
	exportPath := opts.ExportPath
	if exportPath == "" {
		exportPath = "kept_threads_export.json"
	}

	m := Model{
		session:     session,
		version:     opts.Version,
		debounce:    debounce,
		exportPath:  exportPath,
		loadErr:     opts.LoadErr,
		searchInput: ti,
		width:       120,
		height:      40,
		rowsVisible: 30,
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refresh recomputes the filtered page and footer aggregates from the
// session, clamping the cursor to the new page bounds.
func (m *Model) refresh() {
	filtered := m.session.Filtered()
	m.filteredLen = len(filtered)
	m.page = triage.Page(filtered, m.session.View.PageIndex, m.session.PageSize())
	m.session.View.PageIndex = m.page.PageIndex
	m.stats = m.session.Stats()

	if m.cursor >= len(m.page.Items) {
		m.cursor = len(m.page.Items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.clampScroll()
}

func (m *Model) clampScroll() {
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.rowsVisible > 0 && m.cursor >= m.scrollOffset+m.rowsVisible {
		m.scrollOffset = m.cursor - m.rowsVisible + 1
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}

// currentThread returns the thread under the cursor, or nil when the page
// is empty.
func (m *Model) currentThread() *triage.Thread {
	if m.cursor < 0 || m.cursor >= len(m.page.Items) {
		return nil
	}
	return &m.page.Items[m.cursor]
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Title, filter line, table header, separator, footer, flash.
		m.rowsVisible = m.height - 7
		if m.rowsVisible < 1 {
			m.rowsVisible = 1
		}
		m.clampScroll()
		return m, nil

	case flashClearMsg:
		// Only clear if no newer flash superseded the one that set the timer.
		if time.Now().After(m.flashExpiresAt) || m.flashExpiresAt.IsZero() {
			m.flashMessage = ""
		}
		return m, nil

	case searchDebounceMsg:
		// Ignore stale timers from earlier keystrokes.
		if msg.debounceID != m.searchDebounce {
			return m, nil
		}
		m.applyQuery(msg.query)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// applyQuery sets the search query, returning to the first page.
func (m *Model) applyQuery(query string) {
	if m.session.View.Query == query {
		return
	}
	m.session.View.Query = query
	m.session.View.PageIndex = 0
	m.cursor = 0
	m.scrollOffset = 0
	m.refresh()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.loadErr != nil {
		switch msg.String() {
		case "q", "esc", "enter":
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	if m.modal != modalNone {
		return m.handleModalKeys(msg)
	}
	if m.searchActive {
		return m.handleSearchKeys(msg)
	}

	switch m.level {
	case levelList:
		return m.handleListKeys(msg)
	case levelDetail:
		return m.handleDetailKeys(msg)
	case levelIgnores:
		return m.handleIgnoresKeys(msg)
	}
	return m, nil
}

func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalHelp:
		m.modal = modalNone
		return m, nil

	case modalQuitConfirm:
		switch msg.String() {
		case "y", "Y", "enter":
			m.quitting = true
			return m, tea.Quit
		default:
			m.modal = modalNone
			return m, nil
		}

	case modalClearIgnores:
		switch msg.String() {
		case "y", "Y", "enter":
			m.modal = modalNone
			count := m.session.Ignores().Len()
			if err := m.session.ClearSessionIgnores(); err != nil {
				return m.showFlash(fmt.Sprintf("cleared ignores but saving state failed: %v", err))
			}
			m.ignoresCursor = 0
			m.refresh()
			return m.showFlash(fmt.Sprintf("cleared %d session ignore(s)", count))
		default:
			m.modal = modalNone
			return m, nil
		}
	}
	m.modal = modalNone
	return m, nil
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		// Apply immediately instead of waiting for the timer.
		m.searchDebounce++
		m.applyQuery(m.searchInput.Value())
		m.searchActive = false
		m.searchInput.Blur()
		return m, nil

	case "esc":
		// Cancel the search entirely.
		m.searchDebounce++
		m.searchInput.SetValue("")
		m.searchActive = false
		m.searchInput.Blur()
		m.applyQuery("")
		return m, nil

	default:
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)

		query := m.searchInput.Value()
		m.searchDebounce++
		debounceID := m.searchDebounce
		debounceCmd := tea.Tick(m.debounce, func(t time.Time) tea.Msg {
			return searchDebounceMsg{query: query, debounceID: debounceID}
		})
		return m, tea.Batch(cmd, debounceCmd)
	}
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.modal = modalQuitConfirm
		return m, nil

	case "?":
		m.modal = modalHelp
		return m, nil

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.clampScroll()
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.page.Items)-1 {
			m.cursor++
			m.clampScroll()
		}
		return m, nil

	case "pgup":
		m.cursor -= m.rowsVisible
		if m.cursor < 0 {
			m.cursor = 0
		}
		m.clampScroll()
		return m, nil

	case "pgdown":
		m.cursor += m.rowsVisible
		if m.cursor > len(m.page.Items)-1 {
			m.cursor = len(m.page.Items) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		m.clampScroll()
		return m, nil

	case "home", "g":
		m.cursor = 0
		m.clampScroll()
		return m, nil

	case "end", "G":
		m.cursor = len(m.page.Items) - 1
		if m.cursor < 0 {
			m.cursor = 0
		}
		m.clampScroll()
		return m, nil

	case "left", "h":
		if m.session.View.PageIndex > 0 {
			m.session.View.PageIndex--
			m.cursor = 0
			m.scrollOffset = 0
			m.refresh()
		}
		return m, nil

	case "right", "l":
		if m.session.View.PageIndex < m.page.TotalPages-1 {
			m.session.View.PageIndex++
			m.cursor = 0
			m.scrollOffset = 0
			m.refresh()
		}
		return m, nil

	case "enter":
		if t := m.currentThread(); t != nil {
			m.openDetail(t)
		}
		return m, nil

	case "s", " ":
		return m.markCurrent(triage.StatusKept)

	case "d":
		return m.markCurrent(triage.StatusDiscarded)

	case "i":
		t := m.currentThread()
		if t == nil {
			return m, nil
		}
		addr := triage.ExtractAddress(t.From)
		changed, err := m.session.IgnoreSender(t.From)
		if err != nil {
			return m.showFlash(fmt.Sprintf("ignored %s but saving state failed: %v", addr, err))
		}
		if !changed {
			return m.showFlash(fmt.Sprintf("%s already ignored", addr))
		}
		m.refresh()
		return m.showFlash(fmt.Sprintf("ignoring sender %s for this session", addr))

	case "I":
		m.level = levelIgnores
		m.ignoresCursor = 0
		return m, nil

	case "1":
		return m.setStatusFilter(triage.FilterAll)
	case "2":
		return m.setStatusFilter(triage.FilterPending)
	case "3":
		return m.setStatusFilter(triage.FilterKept)
	case "4":
		return m.setStatusFilter(triage.FilterDiscarded)

	case "c":
		// Cycle category: off, work, personal. Switching the axis resets
		// the status filter so the list shows one filter dimension at a
		// time.
		switch m.session.View.CategoryFilter {
		case "":
			m.session.View.CategoryFilter = triage.CategoryWork
		case triage.CategoryWork:
			m.session.View.CategoryFilter = triage.CategoryPersonal
		default:
			m.session.View.CategoryFilter = ""
		}
		m.session.View.StatusFilter = triage.FilterAll
		m.session.View.PageIndex = 0
		m.cursor = 0
		m.scrollOffset = 0
		m.refresh()
		return m, nil

	case "/":
		m.searchActive = true
		m.searchInput.SetValue(m.session.View.Query)
		m.searchInput.CursorEnd()
		m.searchInput.Focus()
		return m, nil

	case "e":
		return m.exportKept()
	}
	return m, nil
}

func (m Model) setStatusFilter(f triage.StatusFilter) (tea.Model, tea.Cmd) {
	m.session.View.StatusFilter = f
	m.session.View.CategoryFilter = ""
	m.session.View.PageIndex = 0
	m.cursor = 0
	m.scrollOffset = 0
	m.refresh()
	return m, nil
}

func (m Model) markCurrent(status triage.Status) (tea.Model, tea.Cmd) {
	t := m.currentThread()
	if t == nil {
		return m, nil
	}
	if err := m.session.SetStatus(t.ThreadID, status); err != nil {
		m.refresh()
		return m.showFlash(fmt.Sprintf("saving state failed: %v", err))
	}
	m.refresh()
	return m, nil
}

func (m Model) exportKept() (tea.Model, tea.Cmd) {
	doc := m.session.Export(time.Now())
	if doc.TotalCount == 0 {
		return m.showFlash("nothing to export: no threads marked kept")
	}
	if err := doc.WriteFile(m.exportPath); err != nil {
		return m.showFlash(fmt.Sprintf("export failed: %v", err))
	}
	return m.showFlash(fmt.Sprintf("exported %d thread(s) to %s", doc.TotalCount, m.exportPath))
}

// openDetail switches to the detail view for a thread, wrapping its body
// for the current terminal width.
func (m *Model) openDetail(t *triage.Thread) {
	m.level = levelDetail
	m.detailScroll = 0
	m.detailLines = buildDetailLines(t, m.session, m.contentWidth())
}

func (m *Model) contentWidth() int {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "enter":
		m.level = levelList
		m.detailLines = nil
		return m, nil

	case "up", "k":
		if m.detailScroll > 0 {
			m.detailScroll--
		}
		return m, nil

	case "down", "j":
		if m.detailScroll < m.maxDetailScroll() {
			m.detailScroll++
		}
		return m, nil

	case "pgup":
		m.detailScroll -= m.rowsVisible
		if m.detailScroll < 0 {
			m.detailScroll = 0
		}
		return m, nil

	case "pgdown":
		m.detailScroll += m.rowsVisible
		if max := m.maxDetailScroll(); m.detailScroll > max {
			m.detailScroll = max
		}
		return m, nil

	case "g", "home":
		m.detailScroll = 0
		return m, nil

	case "G", "end":
		m.detailScroll = m.maxDetailScroll()
		return m, nil

	case "s", " ":
		model, cmd := m.markCurrent(triage.StatusKept)
		mm := model.(Model)
		mm.level = levelList
		mm.detailLines = nil
		return mm, cmd

	case "d":
		model, cmd := m.markCurrent(triage.StatusDiscarded)
		mm := model.(Model)
		mm.level = levelList
		mm.detailLines = nil
		return mm, cmd

	case "?":
		m.modal = modalHelp
		return m, nil
	}
	return m, nil
}

func (m *Model) maxDetailScroll() int {
	max := len(m.detailLines) - m.rowsVisible
	if max < 0 {
		max = 0
	}
	return max
}

func (m Model) handleIgnoresKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	senders := m.session.Ignores().Senders()
	switch msg.String() {
	case "esc", "q", "I":
		m.level = levelList
		return m, nil

	case "up", "k":
		if m.ignoresCursor > 0 {
			m.ignoresCursor--
		}
		return m, nil

	case "down", "j":
		if m.ignoresCursor < len(senders)-1 {
			m.ignoresCursor++
		}
		return m, nil

	case "d", "u":
		if m.ignoresCursor < 0 || m.ignoresCursor >= len(senders) {
			return m, nil
		}
		addr := senders[m.ignoresCursor]
		changed, err := m.session.UnignoreSender(addr)
		if err != nil {
			return m.showFlash(fmt.Sprintf("removed %s but saving state failed: %v", addr, err))
		}
		if changed && m.ignoresCursor > 0 && m.ignoresCursor >= m.session.Ignores().Len() {
			m.ignoresCursor--
		}
		m.refresh()
		return m.showFlash(fmt.Sprintf("no longer ignoring %s", addr))

	case "x":
		if len(senders) > 0 {
			m.modal = modalClearIgnores
		}
		return m, nil

	case "?":
		m.modal = modalHelp
		return m, nil
	}
	return m, nil
}

// showFlash displays a temporary flash message.
func (m Model) showFlash(message string) (tea.Model, tea.Cmd) {
	m.flashMessage = message
	m.flashExpiresAt = time.Now().Add(flashDuration)
	return m, tea.Tick(flashDuration, func(t time.Time) tea.Msg {
		return flashClearMsg{}
	})
}
