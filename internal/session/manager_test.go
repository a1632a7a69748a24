package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warrenhq/warren/internal/api"
	"github.com/warrenhq/warren/internal/domain"
	"github.com/warrenhq/warren/internal/logging"
)

// fakeStore implements api.Store; only the calls the session manager makes
// are backed by configurable funcs.
type fakeStore struct {
	createFn func(api.RequestData) (*domain.Request, error)
	updateFn func(int64, api.RequestPatch) (*domain.Request, error)

	created []api.RequestData
	updated []int64
}

func (f *fakeStore) CreateRequest(_ context.Context, data api.RequestData) (*domain.Request, error) {
	f.created = append(f.created, data)
	if f.createFn != nil {
		return f.createFn(data)
	}
	return &domain.Request{ID: int64(len(f.created)), Name: data.Name}, nil
}

func (f *fakeStore) UpdateRequest(_ context.Context, id int64, patch api.RequestPatch) (*domain.Request, error) {
	f.updated = append(f.updated, id)
	if f.updateFn != nil {
		return f.updateFn(id, patch)
	}
	return &domain.Request{ID: id}, nil
}

func (f *fakeStore) ListFolderTree(context.Context) ([]domain.Folder, error) { return nil, nil }
func (f *fakeStore) ListStandaloneRequests(context.Context) ([]domain.Request, error) {
	return nil, nil
}
func (f *fakeStore) ReorderRequests(context.Context, []int64) error { return nil }
func (f *fakeStore) ReorderFolders(context.Context, []int64) error  { return nil }
func (f *fakeStore) DeleteRequest(context.Context, int64) error     { return nil }
func (f *fakeStore) CreateFolder(context.Context, api.FolderData) (*domain.Folder, error) {
	return nil, nil
}
func (f *fakeStore) UpdateFolder(context.Context, int64, api.FolderPatch) (*domain.Folder, error) {
	return nil, nil
}
func (f *fakeStore) DeleteFolder(context.Context, int64) error { return nil }
func (f *fakeStore) ListEnvironments(context.Context) ([]domain.Environment, error) {
	return nil, nil
}
func (f *fakeStore) ActivateEnvironment(context.Context, int64) error { return nil }
func (f *fakeStore) ListHistory(context.Context, int, int) (*domain.HistoryPage, error) {
	return &domain.HistoryPage{}, nil
}
func (f *fakeStore) DeleteHistory(context.Context, int64) error { return nil }
func (f *fakeStore) ClearHistory(context.Context) error         { return nil }
func (f *fakeStore) Execute(context.Context, domain.ExecutionRequest) (*domain.ExecutionResult, error) {
	return &domain.ExecutionResult{}, nil
}

func newTestManager() (*Manager, *fakeStore) {
	store := &fakeStore{}
	return NewManager(store, logging.NewNopLogger()), store
}

func savedRequest(id int64) domain.Request {
	return domain.Request{
		ID:     id,
		Name:   "login",
		Method: "POST",
		URL:    "https://example.test/login",
		Headers: []domain.KeyValue{
			{Key: "Content-Type", Value: "application/json", Enabled: true},
		},
	}
}

func TestOpenSeedsTabFromRequest(t *testing.T) {
	m, _ := newTestManager()

	tab := m.Open(savedRequest(7))
	require.NotNil(t, tab)
	assert.False(t, tab.Dirty, "opened tabs start clean")
	assert.True(t, tab.Bound())
	assert.Equal(t, int64(7), *tab.RequestID)
	assert.Equal(t, tab, m.Active())

	// One blank trailing row is appended after the populated ones.
	require.Len(t, tab.Headers, 2)
	assert.Equal(t, "Content-Type", tab.Headers[0].Key)
	assert.Empty(t, tab.Headers[1].Key)
	assert.True(t, tab.Headers[1].Enabled)
	require.Len(t, tab.QueryParams, 1)
	assert.Empty(t, tab.QueryParams[0].Key)
}

func TestOpenSameRequestTwiceActivatesExistingTab(t *testing.T) {
	m, _ := newTestManager()

	first := m.Open(savedRequest(7))
	m.New(nil) // switch focus away
	second := m.Open(savedRequest(7))

	assert.Equal(t, first.ID, second.ID, "no duplicate tabs for one persisted request")
	assert.Len(t, m.Tabs(), 2)
	assert.Equal(t, first.ID, m.Active().ID)
}

func TestNewAlwaysCreatesDirtyDraft(t *testing.T) {
	m, _ := newTestManager()

	a := m.New(nil)
	b := m.New(nil)

	assert.NotEqual(t, a.ID, b.ID, "blank drafts are never de-duplicated")
	assert.Len(t, m.Tabs(), 2)
	for _, tab := range m.Tabs() {
		assert.True(t, tab.Dirty, "an unsaved draft is dirty by definition")
		assert.False(t, tab.Bound())
	}

	folderID := int64(3)
	c := m.New(&folderID)
	require.NotNil(t, c.FolderID)
	assert.Equal(t, int64(3), *c.FolderID)
}

func TestEditPatchesExactlyOneTab(t *testing.T) {
	m, _ := newTestManager()
	a := m.Open(savedRequest(1))
	b := m.Open(savedRequest(2))

	url := "https://example.test/other"
	m.Edit(a.ID, TabPatch{URL: &url})

	assert.True(t, a.Dirty)
	assert.Equal(t, url, a.URL)
	assert.False(t, b.Dirty, "other tabs must not be touched")

	m.Edit("no-such-tab", TabPatch{URL: &url}) // silent no-op
}

func TestSaveBoundTabUpdates(t *testing.T) {
	m, store := newTestManager()
	tab := m.Open(savedRequest(7))
	name := "renamed"
	m.Edit(tab.ID, TabPatch{Name: &name})
	require.True(t, tab.Dirty)

	saved, err := m.Save(context.Background(), tab.ID, "")
	require.NoError(t, err)
	assert.False(t, saved.Dirty)
	assert.Equal(t, []int64{7}, store.updated)
	assert.Empty(t, store.created)
}

func TestSaveDraftCreatesAndBinds(t *testing.T) {
	m, store := newTestManager()
	store.createFn = func(data api.RequestData) (*domain.Request, error) {
		return &domain.Request{ID: 99, Name: data.Name}, nil
	}

	tab := m.New(nil)
	url := "https://example.test"
	m.Edit(tab.ID, TabPatch{URL: &url})

	saved, err := m.Save(context.Background(), tab.ID, "My Request")
	require.NoError(t, err)
	require.True(t, saved.Bound(), "draft transitions to bound on first save")
	assert.Equal(t, int64(99), *saved.RequestID)
	assert.Equal(t, "My Request", saved.Name)
	assert.False(t, saved.Dirty)

	// Blank scaffolding rows are not persisted.
	require.Len(t, store.created, 1)
	assert.Empty(t, store.created[0].Headers)
	assert.Empty(t, store.created[0].QueryParams)
}

func TestSaveFailureLeavesTabUntouched(t *testing.T) {
	m, store := newTestManager()
	store.createFn = func(api.RequestData) (*domain.Request, error) {
		return nil, errors.New("server unavailable")
	}

	tab := m.New(nil)
	_, err := m.Save(context.Background(), tab.ID, "draft")
	require.Error(t, err)
	assert.True(t, tab.Dirty, "failed save must leave dirty set")
	assert.False(t, tab.Bound(), "no partial id binding on failure")
}

func TestSaveKeepsDirtyWhenEditRacesAhead(t *testing.T) {
	m, store := newTestManager()
	tab := m.Open(savedRequest(7))

	store.updateFn = func(id int64, patch api.RequestPatch) (*domain.Request, error) {
		// Simulate a field edit arriving while the save round trip is in
		// flight: the completed save must not mark the newer edit clean.
		url := "https://example.test/raced"
		m.Edit(tab.ID, TabPatch{URL: &url})
		return &domain.Request{ID: id}, nil
	}

	_, err := m.Save(context.Background(), tab.ID, "")
	require.NoError(t, err)
	assert.True(t, tab.Dirty, "edit during save keeps the tab dirty")
}

func TestCloseActivationRule(t *testing.T) {
	tests := []struct {
		name       string
		openIDs    []int64
		activate   int // index into openIDs to activate before closing
		closeIdx   int
		wantActive int64 // request id of expected active tab, 0 for none
		wantCount  int
	}{
		{"closing middle active tab activates successor", []int64{1, 2, 3}, 1, 1, 3, 2},
		{"closing last active tab clamps to new last", []int64{1, 2, 3}, 2, 2, 2, 2},
		{"closing first active tab activates new first", []int64{1, 2, 3}, 0, 0, 2, 2},
		{"closing only tab leaves none active", []int64{1}, 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestManager()
			var tabs []*Tab
			for _, id := range tt.openIDs {
				tabs = append(tabs, m.Open(savedRequest(id)))
			}
			m.SetActive(tabs[tt.activate].ID)

			m.Close(tabs[tt.closeIdx].ID)

			assert.Len(t, m.Tabs(), tt.wantCount)
			if tt.wantActive == 0 {
				assert.Nil(t, m.Active())
			} else {
				require.NotNil(t, m.Active())
				assert.Equal(t, tt.wantActive, *m.Active().RequestID)
			}
		})
	}
}

func TestCloseInactiveTabKeepsActive(t *testing.T) {
	m, _ := newTestManager()
	a := m.Open(savedRequest(1))
	b := m.Open(savedRequest(2))
	m.SetActive(b.ID)

	m.Close(a.ID)
	assert.Equal(t, b.ID, m.Active().ID)

	m.Close("missing") // no-op
	assert.Len(t, m.Tabs(), 1)
}

func TestCloseOthersAndCloseAll(t *testing.T) {
	m, _ := newTestManager()
	m.Open(savedRequest(1))
	keep := m.Open(savedRequest(2))
	m.Open(savedRequest(3))

	m.CloseOthers(keep.ID)
	require.Len(t, m.Tabs(), 1)
	assert.Equal(t, keep.ID, m.Active().ID)

	m.CloseAll()
	assert.Empty(t, m.Tabs())
	assert.Nil(t, m.Active())
}

func TestDropDeletedClosesStaleTabs(t *testing.T) {
	m, _ := newTestManager()
	m.Open(savedRequest(1))
	gone := m.Open(savedRequest(2))
	draft := m.New(nil)
	m.SetActive(gone.ID)

	closed := m.DropDeleted(func(id int64) bool { return id != 2 })

	assert.Equal(t, []string{gone.ID}, closed)
	assert.Len(t, m.Tabs(), 2)
	require.NotNil(t, m.Active())
	assert.Equal(t, draft.ID, m.Active().ID, "activation falls to the same index")
}
