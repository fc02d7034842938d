package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// highlightQuery applies highlight styling to all case-insensitive
// occurrences of the search query in text. It operates on runes to avoid
// byte-offset mismatches when strings.ToLower changes byte length.
func highlightQuery(text, query string) string {
	query = strings.TrimSpace(query)
	if query == "" || text == "" {
		return text
	}

	textRunes := []rune(text)
	lowerRunes := []rune(strings.ToLower(text))
	queryRunes := []rune(strings.ToLower(query))
	qLen := len(queryRunes)
	if qLen == 0 || qLen > len(lowerRunes) {
		return text
	}

	var b strings.Builder
	last := 0
	for i := 0; i <= len(lowerRunes)-qLen; i++ {
		match := true
		for j := 0; j < qLen; j++ {
			if lowerRunes[i+j] != queryRunes[j] {
				match = false
				break
			}
		}
		if !match {
			continue
		}
		b.WriteString(string(textRunes[last:i]))
		b.WriteString(highlightStyle.Render(string(textRunes[i : i+qLen])))
		last = i + qLen
		i += qLen - 1
	}
	if last == 0 {
		return text
	}
	b.WriteString(string(textRunes[last:]))
	return b.String()
}

// padRight pads a string with spaces to fill width terminal cells.
// Uses lipgloss.Width to correctly handle ANSI codes and full-width characters.
func padRight(s string, width int) string {
	sw := lipgloss.Width(s)
	if sw >= width {
		// Use ANSI-aware truncation
		return ansi.Truncate(s, width, "")
	}
	return s + strings.Repeat(" ", width-sw)
}

// truncateRunes truncates a string to fit within maxWidth terminal cells.
// Uses runewidth to correctly handle full-width characters (CJK, emoji,
// etc.) that occupy 2 terminal cells but count as 1 rune. Also sanitizes
// the string by removing newlines and other control characters that could
// break the display layout.
func truncateRunes(s string, maxWidth int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\t", " ")

	width := runewidth.StringWidth(s)
	if width <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// truncateToWidth cuts a string to at most maxWidth visual columns,
// preserving ANSI escape sequences.
func truncateToWidth(s string, maxWidth int) string {
	return ansi.Truncate(s, maxWidth, "")
}

// skipToWidth returns the suffix of s starting after skipWidth visual columns.
// Uses ANSI-aware cutting to preserve escape sequences.
func skipToWidth(s string, skipWidth int) string {
	return ansi.Cut(s, skipWidth, 10000)
}

// wrapText wraps text to fit within width terminal cells.
// Uses runewidth to correctly handle full-width characters.
func wrapText(text string, width int) []string {
	if width <= 0 {
		width = 80
	}

	var result []string
	lines := strings.Split(text, "\n")

	for _, line := range lines {
		lineWidth := runewidth.StringWidth(line)
		if lineWidth <= width {
			result = append(result, line)
			continue
		}

		// Wrap long lines using terminal cell width
		runes := []rune(line)
		for len(runes) > 0 {
			currentWidth := 0
			breakAt := 0
			lastSpace := -1

			for i, r := range runes {
				rw := runewidth.RuneWidth(r)
				if currentWidth+rw > width {
					break
				}
				currentWidth += rw
				breakAt = i + 1
				if r == ' ' {
					lastSpace = i
				}
			}

			// Prefer breaking at a space if we found one in the latter half
			if lastSpace > breakAt/2 && breakAt < len(runes) {
				breakAt = lastSpace
			}

			if breakAt == 0 {
				// Single character too wide, take it anyway
				breakAt = 1
			}

			result = append(result, string(runes[:breakAt]))
			runes = runes[breakAt:]

			// Skip leading spaces on continuation lines
			for len(runes) > 0 && runes[0] == ' ' {
				runes = runes[1:]
			}
		}
	}

	return result
}
