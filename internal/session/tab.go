// Package session owns the multi-tab editing session: which requests are
// open, which tab is active, what has unsaved edits, and how tab identity is
// reconciled with persisted requests on save.
package session

import (
	"github.com/google/uuid"

	"github.com/warrenhq/warren/internal/domain"
)

// Tab is one open editor document. Tabs are session-local and never
// persisted; their id is client-generated and unique for the process
// lifetime. A tab starts as a draft (RequestID nil) and becomes bound to a
// persisted request on its first successful save.
type Tab struct {
	ID        string
	RequestID *int64

	Name        string
	Method      string
	URL         string
	Headers     []domain.KeyValue
	QueryParams []domain.KeyValue
	BodyType    string
	Body        string
	FolderID    *int64

	// Response holds the last execution result shown in this tab.
	Response *domain.ExecutionResult

	// Dirty is true when the in-memory fields differ from the last
	// saved/loaded state.
	Dirty bool

	// revision counts edits; Save uses it to detect edits that raced with
	// an in-flight save so the tab is not left falsely clean.
	revision uint64
}

// Bound reports whether the tab is linked to a persisted request.
func (t *Tab) Bound() bool { return t.RequestID != nil }

// newDraftTab creates a fresh unsaved draft. Drafts are dirty by definition.
func newDraftTab(folderID *int64) *Tab {
	return &Tab{
		ID:          uuid.NewString(),
		Name:        "New Request",
		Method:      "GET",
		Headers:     []domain.KeyValue{blankRow()},
		QueryParams: []domain.KeyValue{blankRow()},
		FolderID:    folderID,
		Dirty:       true,
	}
}

// newTabFromRequest seeds a tab from a persisted request. The editor always
// offers one ready-to-fill blank row after the last populated one.
func newTabFromRequest(req domain.Request) *Tab {
	id := req.ID
	return &Tab{
		ID:          uuid.NewString(),
		RequestID:   &id,
		Name:        req.Name,
		Method:      req.Method,
		URL:         req.URL,
		Headers:     withTrailingBlank(req.Headers),
		QueryParams: withTrailingBlank(req.QueryParams),
		BodyType:    req.BodyType,
		Body:        req.Body,
		FolderID:    req.FolderID,
		Dirty:       false,
	}
}

func blankRow() domain.KeyValue {
	return domain.KeyValue{Enabled: true}
}

// withTrailingBlank copies rows and appends an empty editable row.
func withTrailingBlank(rows []domain.KeyValue) []domain.KeyValue {
	out := make([]domain.KeyValue, 0, len(rows)+1)
	out = append(out, rows...)
	return append(out, blankRow())
}

// populatedRows drops rows with an empty key; those are editor scaffolding,
// not data to persist or send.
func populatedRows(rows []domain.KeyValue) []domain.KeyValue {
	out := make([]domain.KeyValue, 0, len(rows))
	for _, row := range rows {
		if row.Key != "" {
			out = append(out, row)
		}
	}
	return out
}

// TabPatch is a sparse field update applied by Edit; nil fields are left
// untouched.
type TabPatch struct {
	Name        *string
	Method      *string
	URL         *string
	Headers     *[]domain.KeyValue
	QueryParams *[]domain.KeyValue
	BodyType    *string
	Body        *string
}

func (t *Tab) apply(patch TabPatch) {
	if patch.Name != nil {
		t.Name = *patch.Name
	}
	if patch.Method != nil {
		t.Method = *patch.Method
	}
	if patch.URL != nil {
		t.URL = *patch.URL
	}
	if patch.Headers != nil {
		t.Headers = *patch.Headers
	}
	if patch.QueryParams != nil {
		t.QueryParams = *patch.QueryParams
	}
	if patch.BodyType != nil {
		t.BodyType = *patch.BodyType
	}
	if patch.Body != nil {
		t.Body = *patch.Body
	}
}
