package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/warrenhq/warren/internal/api"
	"github.com/warrenhq/warren/internal/domain"
)

// Manager owns the ordered tab list and the active-tab invariant. It runs on
// the UI event loop; it is not safe for concurrent use from other goroutines.
type Manager struct {
	store  api.Store
	logger *slog.Logger

	tabs     []*Tab
	activeID string
}

// NewManager creates an empty session.
func NewManager(store api.Store, logger *slog.Logger) *Manager {
	return &Manager{store: store, logger: logger}
}

// Tabs returns the open tabs in order. The returned slice is a copy; the tabs
// themselves are live.
func (m *Manager) Tabs() []*Tab {
	out := make([]*Tab, len(m.tabs))
	copy(out, m.tabs)
	return out
}

// Active returns the active tab, or nil when no tab is open.
func (m *Manager) Active() *Tab {
	return m.byID(m.activeID)
}

// SetActive activates the given tab; unknown ids are ignored.
func (m *Manager) SetActive(tabID string) {
	if m.byID(tabID) != nil {
		m.activeID = tabID
	}
}

// Open opens a persisted request in the session. If a tab is already bound to
// the same request it is activated instead — at most one tab may reference a
// given persisted request.
func (m *Manager) Open(req domain.Request) *Tab {
	for _, tab := range m.tabs {
		if tab.RequestID != nil && *tab.RequestID == req.ID {
			m.activeID = tab.ID
			return tab
		}
	}

	tab := newTabFromRequest(req)
	m.tabs = append(m.tabs, tab)
	m.activeID = tab.ID
	m.logger.Debug("opened request tab",
		slog.Int64("request_id", req.ID), slog.String("tab_id", tab.ID))
	return tab
}

// New creates a fresh draft tab, optionally pre-assigned to a folder. Drafts
// are never de-duplicated; every call yields a new tab.
func (m *Manager) New(folderID *int64) *Tab {
	tab := newDraftTab(folderID)
	m.tabs = append(m.tabs, tab)
	m.activeID = tab.ID
	return tab
}

// Edit applies a field patch to exactly one tab and marks it dirty. Unknown
// tab ids are a no-op.
func (m *Manager) Edit(tabID string, patch TabPatch) {
	tab := m.byID(tabID)
	if tab == nil {
		return
	}
	tab.apply(patch)
	tab.Dirty = true
	tab.revision++
}

// SetResponse attaches an execution result to a tab without touching its
// dirty state.
func (m *Manager) SetResponse(tabID string, result *domain.ExecutionResult) {
	if tab := m.byID(tabID); tab != nil {
		tab.Response = result
	}
}

// Save persists a tab: an update when it is already bound, otherwise a create
// followed by binding the returned id onto the tab. Binding and clearing the
// dirty flag happen together, and only when no edit raced with the in-flight
// call; a failed collaborator call leaves both identity and dirty state
// exactly as they were.
func (m *Manager) Save(ctx context.Context, tabID string, nameOverride string) (*Tab, error) {
	tab := m.byID(tabID)
	if tab == nil {
		return nil, fmt.Errorf("tab %s not found", tabID)
	}

	name := tab.Name
	if nameOverride != "" {
		name = nameOverride
	}

	revision := tab.revision

	if tab.Bound() {
		patch := api.RequestPatch{
			Name:        &name,
			Method:      &tab.Method,
			URL:         &tab.URL,
			Headers:     rowsPtr(populatedRows(tab.Headers)),
			QueryParams: rowsPtr(populatedRows(tab.QueryParams)),
			BodyType:    &tab.BodyType,
			Body:        &tab.Body,
		}
		if _, err := m.store.UpdateRequest(ctx, *tab.RequestID, patch); err != nil {
			return nil, fmt.Errorf("update request %d: %w", *tab.RequestID, err)
		}
		tab.Name = name
		if tab.revision == revision {
			tab.Dirty = false
		}
		return tab, nil
	}

	created, err := m.store.CreateRequest(ctx, api.RequestData{
		Name:        name,
		Method:      tab.Method,
		URL:         tab.URL,
		Headers:     populatedRows(tab.Headers),
		QueryParams: populatedRows(tab.QueryParams),
		BodyType:    tab.BodyType,
		Body:        tab.Body,
		FolderID:    tab.FolderID,
	})
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	// Draft → bound transition: identity and clean state change together.
	id := created.ID
	tab.RequestID = &id
	tab.Name = name
	if tab.revision == revision {
		tab.Dirty = false
	}
	m.logger.Debug("bound draft tab",
		slog.String("tab_id", tab.ID), slog.Int64("request_id", id))
	return tab, nil
}

// Close removes a tab. When the active tab is closed, activation falls to the
// tab now occupying the same index, clamped to the new last tab; closing the
// only tab leaves no tab active.
func (m *Manager) Close(tabID string) {
	idx := m.indexOf(tabID)
	if idx < 0 {
		return
	}

	wasActive := m.activeID == tabID
	m.tabs = append(m.tabs[:idx], m.tabs[idx+1:]...)

	if !wasActive {
		return
	}
	if len(m.tabs) == 0 {
		m.activeID = ""
		return
	}
	if idx > len(m.tabs)-1 {
		idx = len(m.tabs) - 1
	}
	m.activeID = m.tabs[idx].ID
}

// CloseOthers closes every tab except the given one, which stays active.
func (m *Manager) CloseOthers(tabID string) {
	tab := m.byID(tabID)
	if tab == nil {
		return
	}
	m.tabs = []*Tab{tab}
	m.activeID = tab.ID
}

// CloseAll removes every tab; no tab is active afterwards.
func (m *Manager) CloseAll() {
	m.tabs = nil
	m.activeID = ""
}

// DropDeleted closes bound tabs whose backing request no longer exists, using
// the usual close activation rule for each. Called by the sync coordinator
// after a reload.
func (m *Manager) DropDeleted(exists func(requestID int64) bool) []string {
	var closed []string
	for _, tab := range m.Tabs() {
		if tab.RequestID != nil && !exists(*tab.RequestID) {
			closed = append(closed, tab.ID)
			m.Close(tab.ID)
		}
	}
	return closed
}

func (m *Manager) byID(tabID string) *Tab {
	idx := m.indexOf(tabID)
	if idx < 0 {
		return nil
	}
	return m.tabs[idx]
}

func (m *Manager) indexOf(tabID string) int {
	for i, tab := range m.tabs {
		if tab.ID == tabID {
			return i
		}
	}
	return -1
}

func rowsPtr(rows []domain.KeyValue) *[]domain.KeyValue { return &rows }
