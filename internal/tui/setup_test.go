package tui

import (
	"fmt"
	"regexp"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"threadtriage/internal/triage"
)

// colorProfileMu serializes tests that mutate the global lipgloss color profile.
var colorProfileMu sync.Mutex

// forceColorProfile sets lipgloss to ANSI color output for tests that assert
// on styled output. It acquires colorProfileMu to prevent data races with
// parallel tests and restores the original profile via t.Cleanup.
func forceColorProfile(t *testing.T) {
	t.Helper()
	colorProfileMu.Lock()
	orig := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.ANSI)
	t.Cleanup(func() {
		lipgloss.SetColorProfile(orig)
		colorProfileMu.Unlock()
	})
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// testThreads is the standard fixture: four threads across both categories
// with distinct senders and searchable content.
func testThreads() []triage.Thread {
	return []triage.Thread{
		{
			ThreadID:     "t1",
			From:         "Alice <alice@work.com>",
			To:           "me@work.com",
			Subject:      "Quarterly planning",
			Time:         "2026-03-01",
			Headlines:    `["Planning kickoff for Q2"]`,
			FullContent:  "Full planning notes with budget details",
			EmailPreview: "Planning notes",
			Category:     triage.CategoryWork,
		},
		{
			ThreadID:     "t2",
			From:         "Bob <bob@home.net>",
			To:           "me@home.net",
			Subject:      "Weekend trip",
			Time:         "2026-03-02",
			Headlines:    `["Cabin booking confirmed"]`,
			EmailPreview: "See you at the cabin",
			Category:     triage.CategoryPersonal,
		},
		{
			ThreadID:     "t3",
			From:         "carol@co.com",
			To:           "me@work.com",
			Subject:      "Invoice question",
			Time:         "2026-03-03",
			Headlines:    `["Invoice 442 needs review"]`,
			EmailPreview: "The invoice total looks wrong",
			Category:     triage.CategoryWork,
		},
		{
			ThreadID:     "t4",
			From:         "dave@home.net",
			To:           "me@home.net",
			Subject:      "Recipe swap",
			Time:         "2026-03-04",
			EmailPreview: "Here is the bread recipe",
			Category:     triage.CategoryPersonal,
		},
	}
}

func manyTestThreads(n int) []triage.Thread {
	threads := make([]triage.Thread, n)
	for i := range threads {
		threads[i] = triage.Thread{
			ThreadID: fmt.Sprintf("t%d", i+1),
			From:     fmt.Sprintf("sender%d@x.com", i+1),
			Subject:  fmt.Sprintf("subject %d", i+1),
			Category: triage.CategoryWork,
		}
	}
	return threads
}

// newTestModel builds a model over an in-memory session sized to the
// standard test terminal.
func newTestModel(t *testing.T, threads []triage.Thread) Model {
	t.Helper()
	session := triage.NewSession(threads, &triage.StaticIgnoreList{}, triage.NewMemoryStore(), 50)
	m := New(session, Options{Version: "test", ExportPath: t.TempDir() + "/export.json"})
	m, _ = sendMsg(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

// sendKey sends a key message to the model and returns the updated concrete Model.
func sendKey(t *testing.T, m Model, k tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	newM, cmd := m.Update(k)
	return newM.(Model), cmd
}

// sendMsg sends any tea.Msg through Update and returns the concrete Model.
func sendMsg(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	newM, cmd := m.Update(msg)
	return newM.(Model), cmd
}

// press is sendKey for a plain key name like "j" or "enter".
func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEscape}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "ctrl+c":
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ = sendKey(t, m, msg)
	}
	return m
}

// typeString feeds text into the focused search input one rune at a time.
func typeString(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m, _ = sendKey(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func cursorThreadID(t *testing.T, m Model) string {
	t.Helper()
	th := m.currentThread()
	if th == nil {
		t.Fatal("no thread under cursor")
	}
	return th.ThreadID
}
