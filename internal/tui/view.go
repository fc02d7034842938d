package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"threadtriage/internal/triage"
)

// Monochrome theme - adaptive for light and dark terminals
var (
	bgBase   = lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#000000"}
	bgCursor = lipgloss.AdaptiveColor{Light: "#e0e0e0", Dark: "#282828"}

	titleBarStyle = lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.AdaptiveColor{Light: "#e0e0e0", Dark: "#333333"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"}).
			Padding(0, 1)

	statsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#999999"}).
			Background(bgBase).
			Padding(0, 1)

	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Background(bgBase)

	separatorStyle = lipgloss.NewStyle().
			Faint(true).
			Background(bgBase)

	// Cursor row: subtle lighter background
	cursorRowStyle = lipgloss.NewStyle().
			Background(bgCursor)

	// Kept rows: bold so decisions stand out while scanning
	keptRowStyle = lipgloss.NewStyle().
			Bold(true).
			Background(bgBase)

	// Discarded rows: faint
	discardedRowStyle = lipgloss.NewStyle().
				Faint(true).
				Background(bgBase)

	// Normal rows need background to clear old content
	normalRowStyle = lipgloss.NewStyle().
			Background(bgBase)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#999999"}).
			Background(bgBase).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Background(bgBase)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2).
			Background(bgBase)

	modalTitleStyle = lipgloss.NewStyle().
			Bold(true)

	flashStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#996600", Dark: "#ffcc00"}).
			Background(bgBase)

	highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#000000"}).
			Background(lipgloss.AdaptiveColor{Light: "#e8d44d", Dark: "#e8d44d"}).
			Bold(true)
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.loadErr != nil {
		return m.errorScreen()
	}

	var sb strings.Builder
	sb.WriteString(m.titleBar())
	sb.WriteString("\n")
	sb.WriteString(m.filterLine())
	sb.WriteString("\n")

	switch m.level {
	case levelDetail:
		sb.WriteString(m.detailView())
	case levelIgnores:
		sb.WriteString(m.ignoresView())
	default:
		sb.WriteString(m.listView())
	}

	sb.WriteString("\n")
	sb.WriteString(m.notificationLine())
	sb.WriteString("\n")
	sb.WriteString(m.footerView())

	view := sb.String()
	if m.modal != modalNone {
		view = m.overlayModal(view)
	}
	return view
}

func (m Model) errorScreen() string {
	var sb strings.Builder
	sb.WriteString(m.titleBar())
	sb.WriteString("\n\n")
	sb.WriteString(errorStyle.Render(padRight(fmt.Sprintf("Error: %v", m.loadErr), m.width)))
	sb.WriteString("\n\n")
	sb.WriteString(normalRowStyle.Render(padRight("The thread document could not be read. Fix the file and restart.", m.width)))
	sb.WriteString("\n\n")
	sb.WriteString(footerStyle.Render("q quit"))
	return sb.String()
}

func (m Model) titleBar() string {
	title := "threadtriage"
	if m.version != "" {
		title += " v" + m.version
	}
	left := titleBarStyle.Render(title)

	stats := fmt.Sprintf("%d threads · %d kept · %d discarded · %d pending",
		m.stats.Total, m.stats.Kept, m.stats.Discarded, m.stats.Pending)
	right := statsStyle.Render(stats)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return padRight(left, m.width)
	}
	return left + normalRowStyle.Render(strings.Repeat(" ", gap)) + right
}

// filterLine shows the active filters and, while searching, the live input.
func (m Model) filterLine() string {
	var parts []string

	switch m.session.View.StatusFilter {
	case triage.FilterPending:
		parts = append(parts, "status: pending")
	case triage.FilterKept:
		parts = append(parts, "status: kept")
	case triage.FilterDiscarded:
		parts = append(parts, "status: discarded")
	default:
		parts = append(parts, "status: all")
	}

	if cat := m.session.View.CategoryFilter; cat != "" {
		parts = append(parts, "category: "+string(cat))
	}

	if m.searchActive {
		parts = append(parts, "search: "+m.searchInput.View())
	} else if q := m.session.View.Query; q != "" {
		parts = append(parts, fmt.Sprintf("search: %q", q))
	}

	parts = append(parts, fmt.Sprintf("%d matching", m.filteredLen))

	return statsStyle.Render(padRight(strings.Join(parts, "  ·  "), m.width-2))
}

// listView renders the current page of the filtered thread table.
func (m Model) listView() string {
	if len(m.page.Items) == 0 {
		msg := "No threads match the current filters"
		if m.filteredLen == 0 && m.session.View.Query == "" &&
			m.session.View.StatusFilter == triage.FilterAll &&
			m.session.View.CategoryFilter == "" {
			msg = "No threads to review"
		}
		return m.fillScreen(normalRowStyle.Render(padRight(msg, m.width)), 1)
	}

	dateWidth := 10
	fromWidth := 24
	catWidth := 8
	subjectWidth := m.width - dateWidth - fromWidth - catWidth - 12
	if subjectWidth < 20 {
		subjectWidth = 20
	}

	var sb strings.Builder
	headerRow := fmt.Sprintf("    %-*s  %-*s  %-*s  %-*s",
		dateWidth, "Date",
		fromWidth, "From",
		subjectWidth, "Subject",
		catWidth, "Category",
	)
	sb.WriteString(tableHeaderStyle.Render(padRight(headerRow, m.width)))
	sb.WriteString("\n")
	sb.WriteString(separatorStyle.Render(strings.Repeat("─", m.width)))
	sb.WriteString("\n")

	end := m.scrollOffset + m.rowsVisible
	if end > len(m.page.Items) {
		end = len(m.page.Items)
	}

	rows := 0
	for i := m.scrollOffset; i < end; i++ {
		t := &m.page.Items[i]
		isCursor := i == m.cursor

		marker := "  "
		switch m.session.Selection().Status(t.ThreadID) {
		case triage.StatusKept:
			marker = "✓ "
		case triage.StatusDiscarded:
			marker = "✗ "
		}

		pointer := "  "
		if isCursor {
			pointer = "▶ "
		}

		from := truncateRunes(triage.ExtractAddress(t.From), fromWidth)
		subject := truncateRunes(t.Subject, subjectWidth)
		row := fmt.Sprintf("%s%s%-*s  %-*s  %-*s  %-*s",
			pointer, marker,
			dateWidth, truncateRunes(t.Time, dateWidth),
			fromWidth, from,
			subjectWidth, subject,
			catWidth, string(t.Category),
		)
		row = padRight(row, m.width)

		// Highlight before styling so match offsets stay plain text.
		if q := m.session.View.Query; q != "" && !isCursor {
			row = highlightQuery(row, q)
		}

		switch {
		case isCursor:
			row = cursorRowStyle.Render(row)
		case m.session.Selection().Status(t.ThreadID) == triage.StatusKept:
			row = keptRowStyle.Render(row)
		case m.session.Selection().Status(t.ThreadID) == triage.StatusDiscarded:
			row = discardedRowStyle.Render(row)
		default:
			row = normalRowStyle.Render(row)
		}

		sb.WriteString(row)
		sb.WriteString("\n")
		rows++
	}

	return m.fillScreen(strings.TrimSuffix(sb.String(), "\n"), rows+2)
}

// buildDetailLines renders a thread's full record as wrapped plain lines.
func buildDetailLines(t *triage.Thread, session *triage.Session, width int) []string {
	var lines []string

	add := func(label, value string) {
		if value == "" {
			return
		}
		lines = append(lines, wrapText(label+": "+value, width)...)
	}

	add("Subject", t.Subject)
	add("From", t.From)
	add("To", t.To)
	add("Date", t.Time)
	add("Category", string(t.Category))
	if t.NumMemories > 0 {
		add("Memories", fmt.Sprintf("%d", t.NumMemories))
	}
	add("Status", string(session.Selection().Status(t.ThreadID)))
	add("Topics", t.Topics)
	add("People", t.People)
	add("Anchors", t.Anchors)

	if hs := t.HeadlineList(); len(hs) > 0 {
		lines = append(lines, "")
		lines = append(lines, "Headlines:")
		for _, h := range hs {
			lines = append(lines, wrapText("  • "+h, width)...)
		}
	}

	if body := t.Body(); body != "" {
		lines = append(lines, "")
		lines = append(lines, wrapText(body, width)...)
	}

	return lines
}

func (m Model) detailView() string {
	if len(m.detailLines) == 0 {
		return m.fillScreen(normalRowStyle.Render(padRight("(empty thread)", m.width)), 1)
	}

	end := m.detailScroll + m.rowsVisible
	if end > len(m.detailLines) {
		end = len(m.detailLines)
	}

	var sb strings.Builder
	rows := 0
	q := m.session.View.Query
	for _, line := range m.detailLines[m.detailScroll:end] {
		if q != "" {
			line = highlightQuery(line, q)
		}
		sb.WriteString(normalRowStyle.Render(padRight("  "+line, m.width)))
		sb.WriteString("\n")
		rows++
	}
	return m.fillScreen(strings.TrimSuffix(sb.String(), "\n"), rows)
}

func (m Model) ignoresView() string {
	senders := m.session.Ignores().Senders()

	var sb strings.Builder
	sb.WriteString(tableHeaderStyle.Render(padRight("  Session-ignored senders", m.width)))
	sb.WriteString("\n")
	sb.WriteString(separatorStyle.Render(strings.Repeat("─", m.width)))
	sb.WriteString("\n")

	if len(senders) == 0 {
		sb.WriteString(normalRowStyle.Render(padRight("  (none - press i on a thread to ignore its sender)", m.width)))
		return m.fillScreen(sb.String(), 3)
	}

	rows := 0
	for i, sender := range senders {
		pointer := "  "
		if i == m.ignoresCursor {
			pointer = "▶ "
		}
		row := padRight(pointer+sender, m.width)
		if i == m.ignoresCursor {
			row = cursorRowStyle.Render(row)
		} else {
			row = normalRowStyle.Render(row)
		}
		sb.WriteString(row)
		sb.WriteString("\n")
		rows++
	}
	return m.fillScreen(strings.TrimSuffix(sb.String(), "\n"), rows+2)
}

// fillScreen pads content with blank styled lines so old frames never
// show through below short views.
func (m Model) fillScreen(content string, usedLines int) string {
	if m.width <= 0 {
		return content
	}
	var sb strings.Builder
	sb.WriteString(content)
	for i := usedLines; i < m.rowsVisible+2; i++ {
		sb.WriteString("\n")
		sb.WriteString(normalRowStyle.Render(strings.Repeat(" ", m.width)))
	}
	return sb.String()
}

func (m Model) notificationLine() string {
	if m.flashMessage != "" {
		return flashStyle.Render(padRight(" "+m.flashMessage, m.width))
	}
	return normalRowStyle.Render(strings.Repeat(" ", m.width))
}

func (m Model) footerView() string {
	var keys []string
	switch m.level {
	case levelDetail:
		keys = []string{"↑/↓ scroll", "s keep", "d discard", "Esc back"}
	case levelIgnores:
		keys = []string{"↑/↓", "d remove", "x clear all", "Esc back"}
	default:
		keys = []string{"↑/↓", "←/→ page", "Enter open", "s keep", "d discard", "i ignore", "/ search"}
	}
	keys = append(keys, "? help")

	pos := fmt.Sprintf(" page %d/%d ", m.page.PageIndex+1, m.page.TotalPages)
	left := footerStyle.Render(strings.Join(keys, "  "))
	right := footerStyle.Render(pos)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return truncateToWidth(left, m.width)
	}
	return left + normalRowStyle.Render(strings.Repeat(" ", gap)) + right
}

func (m Model) renderQuitConfirmModal() string {
	return modalTitleStyle.Render("Quit?") + "\n\n" +
		"Are you sure you want to quit?\n\n" +
		"[Y] Yes    [N] No"
}

func (m Model) renderClearIgnoresModal() string {
	return modalTitleStyle.Render("Clear session ignores?") + "\n\n" +
		fmt.Sprintf("Remove all %d session-ignored sender(s)?\n", m.session.Ignores().Len()) +
		"Hidden threads will reappear in the list.\n\n" +
		"[Y] Yes    [N] No"
}

func (m Model) renderHelpModal() string {
	var sb strings.Builder
	sb.WriteString(modalTitleStyle.Render("Keys"))
	sb.WriteString("\n\n")
	sb.WriteString("↑/k ↓/j     move cursor\n")
	sb.WriteString("←/h →/l     previous / next page\n")
	sb.WriteString("Enter       open thread detail\n")
	sb.WriteString("s / Space   keep (press again to undo)\n")
	sb.WriteString("d           discard (press again to undo)\n")
	sb.WriteString("i           ignore sender for this session\n")
	sb.WriteString("I           review session ignores\n")
	sb.WriteString("1/2/3/4     filter: all / pending / kept / discarded\n")
	sb.WriteString("c           cycle category: all / work / personal\n")
	sb.WriteString("/           search headlines and content\n")
	sb.WriteString("e           export kept threads\n")
	sb.WriteString("q           quit\n")
	sb.WriteString("\nPress any key to close")
	return sb.String()
}

// overlayModal composites the active modal over the background view,
// preserving the background where the modal does not cover it.
func (m Model) overlayModal(background string) string {
	var modalContent string
	switch m.modal {
	case modalQuitConfirm:
		modalContent = m.renderQuitConfirmModal()
	case modalClearIgnores:
		modalContent = m.renderClearIgnoresModal()
	case modalHelp:
		modalContent = m.renderHelpModal()
	}
	if modalContent == "" {
		return background
	}

	modal := modalStyle.Render(modalContent)

	bgLines := strings.Split(background, "\n")
	modalLines := strings.Split(modal, "\n")

	startLine := (len(bgLines) - len(modalLines)) / 2
	if startLine < 0 {
		startLine = 0
	}

	modalWidth := lipgloss.Width(modal)
	leftPadding := (m.width - modalWidth) / 2
	if leftPadding < 0 {
		leftPadding = 0
	}

	for i, modalLine := range modalLines {
		lineIdx := startLine + i
		if lineIdx >= len(bgLines) {
			break
		}
		bgLine := bgLines[lineIdx]
		bgWidth := lipgloss.Width(bgLine)

		var composite strings.Builder
		if leftPadding > 0 {
			leftBg := truncateToWidth(bgLine, leftPadding)
			composite.WriteString(leftBg)
			if lipgloss.Width(leftBg) < leftPadding {
				composite.WriteString(strings.Repeat(" ", leftPadding-lipgloss.Width(leftBg)))
			}
		}
		composite.WriteString(modalLine)

		rightStart := leftPadding + modalWidth
		if rightStart < bgWidth {
			composite.WriteString(skipToWidth(bgLine, rightStart))
		}

		bgLines[lineIdx] = composite.String()
	}

	return strings.Join(bgLines, "\n")
}
