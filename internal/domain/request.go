package domain

import "time"

// KeyValue is one row of a header or query-parameter table. Rows keep their
// authored order; disabled rows are kept in the editor but excluded from
// execution.
type KeyValue struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
	Enabled     bool   `json:"enabled"`
}

// Request is a saved HTTP request configuration. FolderID is nil for
// standalone requests that live at the root level.
type Request struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Method      string     `json:"method"`
	URL         string     `json:"url"`
	Headers     []KeyValue `json:"headers"`
	QueryParams []KeyValue `json:"query_params"`
	BodyType    string     `json:"body_type,omitempty"` // "none", "json", "form" or "text"
	Body        string     `json:"body,omitempty"`
	FolderID    *int64     `json:"folder_id"`
	SortOrder   int        `json:"sort_order"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ItemID implements Identifiable.
func (r Request) ItemID() int64 { return r.ID }
