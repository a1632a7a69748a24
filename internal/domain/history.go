package domain

import "time"

// HistoryEntry records one request execution: the request as it went out
// (after variable substitution) and the response that came back.
// RequestID links back to the saved request when one was executed; it becomes
// nil if that request is later deleted.
type HistoryEntry struct {
	ID              int64             `json:"id"`
	RequestID       *int64            `json:"request_id"`
	Method          string            `json:"method"`
	URL             string            `json:"url"`
	RequestHeaders  map[string]string `json:"request_headers"`
	RequestBody     string            `json:"request_body,omitempty"`
	StatusCode      int               `json:"status_code"`
	StatusText      string            `json:"status_text"`
	ResponseHeaders map[string]string `json:"response_headers"`
	ResponseBody    string            `json:"response_body,omitempty"`
	ResponseTimeMS  int               `json:"response_time_ms"`
	ResponseSize    int               `json:"response_size"`
	ExecutedAt      time.Time         `json:"executed_at"`
}

// HistoryPage is one page of history entries, newest first.
type HistoryPage struct {
	Items []HistoryEntry `json:"items"`
	Total int            `json:"total"`
}
