package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"threadtriage/internal/triage"
)

// maxPageSize caps the page_size query parameter.
const maxPageSize = 500

// ThreadSummary represents one thread in list responses.
type ThreadSummary struct {
	ThreadID      string `json:"thread_id"`
	From          string `json:"from"`
	To            string `json:"to"`
	Subject       string `json:"subject"`
	Time          string `json:"time"`
	Category      string `json:"category"`
	Status        string `json:"status"`
	FirstHeadline string `json:"first_headline,omitempty"`
}

// ThreadsResponse is the paginated thread list.
type ThreadsResponse struct {
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	TotalPages int             `json:"total_pages"`
	PageSize   int             `json:"page_size"`
	Threads    []ThreadSummary `json:"threads"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, err string, message string) {
	writeJSON(w, status, ErrorResponse{Error: err, Message: message})
}

// handleThreads returns the filtered thread list, one page at a time.
// Query parameters: status (all|pending|kept|discarded), category
// (work|personal), q (search text), page (1-based), page_size.
func (s *Server) handleThreads(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	view := triage.NewView()
	switch status := q.Get("status"); status {
	case "", "all":
	case "pending":
		view.StatusFilter = triage.FilterPending
	case "kept":
		view.StatusFilter = triage.FilterKept
	case "discarded":
		view.StatusFilter = triage.FilterDiscarded
	default:
		writeError(w, http.StatusBadRequest, "invalid_status",
			"status must be one of: all, pending, kept, discarded")
		return
	}

	switch category := q.Get("category"); category {
	case "":
	case "work":
		view.CategoryFilter = triage.CategoryWork
	case "personal":
		view.CategoryFilter = triage.CategoryPersonal
	default:
		writeError(w, http.StatusBadRequest, "invalid_category",
			"category must be work or personal")
		return
	}

	view.Query = q.Get("q")

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	view.PageIndex = page - 1

	pageSize, _ := strconv.Atoi(q.Get("page_size"))
	if pageSize < 1 {
		pageSize = s.session.PageSize()
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	filtered := s.session.FilteredWith(view)
	result := triage.Page(filtered, view.PageIndex, pageSize)

	threads := make([]ThreadSummary, 0, len(result.Items))
	for i := range result.Items {
		t := &result.Items[i]
		threads = append(threads, ThreadSummary{
			ThreadID:      t.ThreadID,
			From:          t.From,
			To:            t.To,
			Subject:       t.Subject,
			Time:          t.Time,
			Category:      string(t.Category),
			Status:        string(s.session.Selection().Status(t.ThreadID)),
			FirstHeadline: t.FirstHeadline(),
		})
	}

	writeJSON(w, http.StatusOK, ThreadsResponse{
		Total:      len(filtered),
		Page:       result.PageIndex + 1,
		TotalPages: result.TotalPages,
		PageSize:   pageSize,
		Threads:    threads,
	})
}

// handleStats returns the triage counters over the non-ignored universe.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Stats())
}

// handleExport returns the kept-thread export document.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Export(time.Now()))
}
