package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warrenhq/warren/internal/api"
	"github.com/warrenhq/warren/internal/collection"
	"github.com/warrenhq/warren/internal/domain"
	"github.com/warrenhq/warren/internal/logging"
	"github.com/warrenhq/warren/internal/session"
)

func ptr(v int64) *int64 { return &v }

// memoryStore is an api.Store backed by in-memory fixtures, recording the
// mutation calls the coordinator makes.
type memoryStore struct {
	roots      []domain.Folder
	standalone []domain.Request
	envs       []domain.Environment
	history    domain.HistoryPage

	listCalls        int
	reorderRequests  [][]int64
	reorderFolders   [][]int64
	requestPatches   map[int64][]api.RequestPatch
	folderPatches    map[int64][]api.FolderPatch
	failNextMutation error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		requestPatches: map[int64][]api.RequestPatch{},
		folderPatches:  map[int64][]api.FolderPatch{},
	}
}

func (s *memoryStore) mutationErr() error {
	err := s.failNextMutation
	s.failNextMutation = nil
	return err
}

func (s *memoryStore) ListFolderTree(context.Context) ([]domain.Folder, error) {
	s.listCalls++
	return s.roots, nil
}
func (s *memoryStore) ListStandaloneRequests(context.Context) ([]domain.Request, error) {
	return s.standalone, nil
}
func (s *memoryStore) ReorderRequests(_ context.Context, ids []int64) error {
	if err := s.mutationErr(); err != nil {
		return err
	}
	s.reorderRequests = append(s.reorderRequests, ids)
	return nil
}
func (s *memoryStore) ReorderFolders(_ context.Context, ids []int64) error {
	if err := s.mutationErr(); err != nil {
		return err
	}
	s.reorderFolders = append(s.reorderFolders, ids)
	return nil
}
func (s *memoryStore) CreateRequest(_ context.Context, data api.RequestData) (*domain.Request, error) {
	if err := s.mutationErr(); err != nil {
		return nil, err
	}
	return &domain.Request{ID: 1000, Name: data.Name}, nil
}
func (s *memoryStore) UpdateRequest(_ context.Context, id int64, patch api.RequestPatch) (*domain.Request, error) {
	if err := s.mutationErr(); err != nil {
		return nil, err
	}
	s.requestPatches[id] = append(s.requestPatches[id], patch)
	return &domain.Request{ID: id}, nil
}
func (s *memoryStore) DeleteRequest(context.Context, int64) error { return s.mutationErr() }
func (s *memoryStore) CreateFolder(_ context.Context, data api.FolderData) (*domain.Folder, error) {
	if err := s.mutationErr(); err != nil {
		return nil, err
	}
	return &domain.Folder{ID: 2000, Name: data.Name}, nil
}
func (s *memoryStore) UpdateFolder(_ context.Context, id int64, patch api.FolderPatch) (*domain.Folder, error) {
	if err := s.mutationErr(); err != nil {
		return nil, err
	}
	s.folderPatches[id] = append(s.folderPatches[id], patch)
	return &domain.Folder{ID: id}, nil
}
func (s *memoryStore) DeleteFolder(context.Context, int64) error { return s.mutationErr() }
func (s *memoryStore) ListEnvironments(context.Context) ([]domain.Environment, error) {
	return s.envs, nil
}
func (s *memoryStore) ActivateEnvironment(context.Context, int64) error { return s.mutationErr() }
func (s *memoryStore) ListHistory(context.Context, int, int) (*domain.HistoryPage, error) {
	page := s.history
	return &page, nil
}
func (s *memoryStore) DeleteHistory(context.Context, int64) error { return s.mutationErr() }
func (s *memoryStore) ClearHistory(context.Context) error         { return s.mutationErr() }
func (s *memoryStore) Execute(context.Context, domain.ExecutionRequest) (*domain.ExecutionResult, error) {
	if err := s.mutationErr(); err != nil {
		return nil, err
	}
	return &domain.ExecutionResult{StatusCode: 200, StatusText: "OK"}, nil
}

// fixture: folder "api" (1) holding requests 10, 11; folder "misc" (2) with
// child folder "inner" (3); standalone requests 20, 21.
func fixtureStore() *memoryStore {
	s := newMemoryStore()
	s.roots = []domain.Folder{
		{ID: 1, Name: "api", Requests: []domain.Request{
			{ID: 10, FolderID: ptr(1)},
			{ID: 11, FolderID: ptr(1)},
		}},
		{ID: 2, Name: "misc", Children: []domain.Folder{
			{ID: 3, Name: "inner", ParentFolderID: ptr(2)},
		}},
	}
	s.standalone = []domain.Request{{ID: 20}, {ID: 21}}
	return s
}

func newTestCoordinator(t *testing.T, store *memoryStore) *Coordinator {
	t.Helper()
	sess := session.NewManager(store, logging.NewNopLogger())
	c := NewCoordinator(store, sess, logging.NewNopLogger())
	require.NoError(t, c.Refresh(context.Background()))
	return c
}

func TestRefreshReplacesSnapshots(t *testing.T) {
	store := fixtureStore()
	store.envs = []domain.Environment{{ID: 1, Name: "dev", IsActive: true}}
	store.history = domain.HistoryPage{Total: 2, Items: []domain.HistoryEntry{{ID: 1}, {ID: 2}}}

	c := newTestCoordinator(t, store)

	require.NotNil(t, c.Tree().FolderByID(1))
	require.NotNil(t, c.Tree().RequestByID(20))
	assert.Len(t, c.Environments(), 1)
	assert.Equal(t, 2, c.History().Total)

	var notified bool
	c.SetOnChange(func() { notified = true })
	require.NoError(t, c.Refresh(context.Background()))
	assert.True(t, notified)
}

func TestApplyDropReordersRequests(t *testing.T) {
	store := fixtureStore()
	c := newTestCoordinator(t, store)

	drag := collection.DragPayload{Kind: domain.KindRequest, ID: 11, SourceFolderID: ptr(1)}
	target := collection.DropTarget{
		Kind:          collection.TargetGap,
		ReferenceID:   10,
		ReferenceKind: domain.KindRequest,
		Position:      collection.Before,
	}

	require.NoError(t, c.ApplyDrop(context.Background(), drag, target))
	require.Len(t, store.reorderRequests, 1)
	assert.Equal(t, []int64{11, 10}, store.reorderRequests[0])
}

func TestApplyDropReordersRootFolders(t *testing.T) {
	store := fixtureStore()
	c := newTestCoordinator(t, store)

	drag := collection.DragPayload{Kind: domain.KindFolder, ID: 2}
	target := collection.DropTarget{
		Kind:          collection.TargetGap,
		ReferenceID:   1,
		ReferenceKind: domain.KindFolder,
		Position:      collection.Before,
	}

	require.NoError(t, c.ApplyDrop(context.Background(), drag, target))
	require.Len(t, store.reorderFolders, 1)
	assert.Equal(t, []int64{2, 1}, store.reorderFolders[0])
}

func TestApplyDropMismatchedKindsIsNoOp(t *testing.T) {
	store := fixtureStore()
	c := newTestCoordinator(t, store)

	drag := collection.DragPayload{Kind: domain.KindRequest, ID: 10}
	target := collection.DropTarget{
		Kind:          collection.TargetGap,
		ReferenceID:   1,
		ReferenceKind: domain.KindFolder,
	}

	require.NoError(t, c.ApplyDrop(context.Background(), drag, target))
	assert.Empty(t, store.reorderRequests)
	assert.Empty(t, store.reorderFolders)
}

func TestApplyDropStaleIDIsNoOp(t *testing.T) {
	store := fixtureStore()
	c := newTestCoordinator(t, store)
	before := store.listCalls

	drag := collection.DragPayload{Kind: domain.KindRequest, ID: 999}
	target := collection.DropTarget{
		Kind:          collection.TargetGap,
		ReferenceID:   10,
		ReferenceKind: domain.KindRequest,
	}

	require.NoError(t, c.ApplyDrop(context.Background(), drag, target))
	assert.Empty(t, store.reorderRequests, "stale drag must not persist anything")
	assert.Equal(t, before, store.listCalls, "no reload without a mutation")
}

func TestApplyDropReparentsRequestIntoFolder(t *testing.T) {
	store := fixtureStore()
	c := newTestCoordinator(t, store)

	drag := collection.DragPayload{Kind: domain.KindRequest, ID: 20}
	target := collection.DropTarget{Kind: collection.TargetContainer, FolderID: 2}

	require.NoError(t, c.ApplyDrop(context.Background(), drag, target))
	patches := store.requestPatches[20]
	require.Len(t, patches, 1)
	require.True(t, patches[0].FolderID.Set)
	require.NotNil(t, patches[0].FolderID.Value)
	assert.Equal(t, int64(2), *patches[0].FolderID.Value)
}

func TestApplyDropRejectsCycleWithoutPersisting(t *testing.T) {
	store := fixtureStore()
	c := newTestCoordinator(t, store)

	// Folder 2 into its own descendant 3, and into itself.
	for _, dest := range []int64{3, 2} {
		drag := collection.DragPayload{Kind: domain.KindFolder, ID: 2}
		target := collection.DropTarget{Kind: collection.TargetContainer, FolderID: dest}
		require.NoError(t, c.ApplyDrop(context.Background(), drag, target))
	}
	assert.Empty(t, store.folderPatches, "cycle-creating moves must not reach the store")
}

func TestFailedMutationSkipsReload(t *testing.T) {
	store := fixtureStore()
	c := newTestCoordinator(t, store)
	before := store.listCalls

	store.failNextMutation = errors.New("boom")
	drag := collection.DragPayload{Kind: domain.KindRequest, ID: 10}
	target := collection.DropTarget{
		Kind:          collection.TargetGap,
		ReferenceID:   11,
		ReferenceKind: domain.KindRequest,
		Position:      collection.After,
	}

	err := c.ApplyDrop(context.Background(), drag, target)
	require.Error(t, err)
	assert.Equal(t, before, store.listCalls, "failed mutation must not trigger a reload")
}

func TestRefreshClosesTabsForDeletedRequests(t *testing.T) {
	store := fixtureStore()
	c := newTestCoordinator(t, store)

	tab := c.Session().Open(domain.Request{ID: 10, Name: "r"})
	c.Session().New(nil)

	// Request 10 disappears server-side.
	store.roots[0].Requests = store.roots[0].Requests[1:]
	require.NoError(t, c.Refresh(context.Background()))

	for _, open := range c.Session().Tabs() {
		assert.NotEqual(t, tab.ID, open.ID, "tab bound to a deleted request must be closed")
	}
	assert.Len(t, c.Session().Tabs(), 1, "drafts survive reloads")
}

func TestExecuteAttachesResultAndRefreshes(t *testing.T) {
	store := fixtureStore()
	c := newTestCoordinator(t, store)
	tab := c.Session().Open(domain.Request{ID: 10, Name: "r", Method: "GET", URL: "https://x.test"})
	before := store.listCalls

	result, err := c.Execute(context.Background(), tab.ID)
	require.NoError(t, err)
	assert.Equal(t, 200, result.StatusCode)
	require.NotNil(t, tab.Response)
	assert.Equal(t, "OK", tab.Response.StatusText)
	assert.Greater(t, store.listCalls, before, "execution reloads history")
}
