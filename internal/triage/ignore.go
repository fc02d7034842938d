package triage

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/rotisserie/eris"
)

// bodyScanLimit bounds how much body text the subject-pattern check scans.
// Ignore matching runs on every recomputation, so scans must stay cheap.
const bodyScanLimit = 500

// StaticIgnoreList is the read-only suppression list loaded at startup.
// Senders and domains are matched as substrings against from/to; subject
// patterns are matched against subject, first headline, and a bounded
// body prefix.
type StaticIgnoreList struct {
	IgnoredSenders         []string `json:"ignored_senders"`
	IgnoredDomains         []string `json:"ignored_domains"`
	IgnoredSubjectPatterns []string `json:"ignored_subject_patterns"`
}

// LoadStaticIgnoreList reads the static ignore list document. A missing
// file degrades to an empty list with no error. An unparseable file also
// degrades to an empty list but reports the parse failure so the caller
// can log a warning; review continues either way.
func LoadStaticIgnoreList(path string) (*StaticIgnoreList, error) {
	empty := &StaticIgnoreList{}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return empty, nil
		}
		return empty, eris.Wrapf(err, "read ignore list %s", path)
	}
	var list StaticIgnoreList
	if err := json.Unmarshal(data, &list); err != nil {
		return empty, eris.Wrapf(err, "decode ignore list %s", path)
	}
	return &list, nil
}

// ExtractAddress pulls the bare address out of a display-name-wrapped
// sender like "Alice <alice@co.com>". Anything without angle brackets is
// returned verbatim (trimmed).
func ExtractAddress(raw string) string {
	raw = strings.TrimSpace(raw)
	open := strings.LastIndex(raw, "<")
	close := strings.LastIndex(raw, ">")
	if open >= 0 && close > open {
		return strings.TrimSpace(raw[open+1 : close])
	}
	return raw
}

// IsIgnored reports whether a thread is permanently hidden from all views.
// Matching is case-insensitive substring, short-circuiting on the first
// hit. The checks are exhaustive — any one of subject pattern, static
// sender, static domain, or session sender suffices. Pure and uncached:
// callers invoke it fresh on every filter or stats recomputation.
func IsIgnored(t *Thread, static *StaticIgnoreList, session *SessionIgnores) bool {
	from := strings.ToLower(t.From)
	to := strings.ToLower(t.To)

	if static != nil {
		if len(static.IgnoredSubjectPatterns) > 0 {
			subject := strings.ToLower(t.Subject)
			headline := strings.ToLower(t.FirstHeadline())
			body := strings.ToLower(bodyPrefix(t))
			for _, pattern := range static.IgnoredSubjectPatterns {
				p := strings.ToLower(pattern)
				if p == "" {
					continue
				}
				if strings.Contains(subject, p) || strings.Contains(headline, p) || strings.Contains(body, p) {
					return true
				}
			}
		}

		for _, sender := range static.IgnoredSenders {
			s := strings.ToLower(sender)
			if s == "" {
				continue
			}
			if strings.Contains(from, s) || strings.Contains(to, s) {
				return true
			}
		}

		for _, domain := range static.IgnoredDomains {
			d := strings.ToLower(domain)
			if d == "" {
				continue
			}
			if strings.Contains(from, "@"+d) || strings.Contains(from, "."+d) ||
				strings.Contains(to, "@"+d) || strings.Contains(to, "."+d) {
				return true
			}
		}
	}

	if session != nil {
		for _, sender := range session.Senders() {
			s := strings.ToLower(sender)
			if s == "" {
				continue
			}
			if strings.Contains(from, s) || strings.Contains(to, s) {
				return true
			}
		}
	}

	return false
}

// bodyPrefix returns the first bodyScanLimit characters of the thread
// body, never splitting a rune.
func bodyPrefix(t *Thread) string {
	body := t.Body()
	count := 0
	for i := range body {
		if count == bodyScanLimit {
			return body[:i]
		}
		count++
	}
	return body
}

// SessionIgnores holds reviewer-added sender suppressions, layered on top
// of the static list so they can be edited or cleared without touching
// the static file. Insertion order is preserved for display.
type SessionIgnores struct {
	senders []string
	index   map[string]bool
}

// NewSessionIgnores returns an empty session ignore list.
func NewSessionIgnores() *SessionIgnores {
	return &SessionIgnores{index: make(map[string]bool)}
}

// Ignore adds a sender to the session list. Display-name-wrapped input
// ("Alice <alice@co.com>") stores only the inner address. Adding an
// existing entry is a no-op. Reports whether the list changed.
func (si *SessionIgnores) Ignore(raw string) bool {
	addr := ExtractAddress(raw)
	if addr == "" || si.index[addr] {
		return false
	}
	si.index[addr] = true
	si.senders = append(si.senders, addr)
	return true
}

// Unignore removes a sender by exact string match. Reports whether the
// list changed.
func (si *SessionIgnores) Unignore(sender string) bool {
	if !si.index[sender] {
		return false
	}
	delete(si.index, sender)
	for i, s := range si.senders {
		if s == sender {
			si.senders = append(si.senders[:i], si.senders[i+1:]...)
			break
		}
	}
	return true
}

// Clear empties the session list.
func (si *SessionIgnores) Clear() {
	si.senders = nil
	si.index = make(map[string]bool)
}

// Senders returns the suppressed senders in insertion order. The returned
// slice is the store's own; callers must not mutate it.
func (si *SessionIgnores) Senders() []string {
	return si.senders
}

// Len returns the number of session-ignored senders.
func (si *SessionIgnores) Len() int {
	return len(si.senders)
}

// restore replaces the list contents from persisted state, dropping
// duplicates and empty entries.
func (si *SessionIgnores) restore(senders []string) {
	si.Clear()
	for _, s := range senders {
		if s == "" || si.index[s] {
			continue
		}
		si.index[s] = true
		si.senders = append(si.senders, s)
	}
}
