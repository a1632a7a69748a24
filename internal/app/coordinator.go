package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/warrenhq/warren/internal/api"
	"github.com/warrenhq/warren/internal/collection"
	"github.com/warrenhq/warren/internal/domain"
	"github.com/warrenhq/warren/internal/session"
)

// historyPageSize is how many history entries one reload pulls.
const historyPageSize = 100

// Coordinator keeps the client's snapshots (tree, environments, history) in
// step with the server. After every successful structural mutation it reloads
// everything and replaces the snapshots wholesale — the server is the single
// source of truth and the client is only a cache. Failed mutations skip the
// reload so in-memory state stays exactly as it was.
type Coordinator struct {
	store   api.Store
	session *session.Manager
	logger  *slog.Logger

	tree         *collection.Tree
	environments []domain.Environment
	history      *domain.HistoryPage

	onChange func()
}

// NewCoordinator creates a coordinator with empty snapshots; call Refresh to
// populate them.
func NewCoordinator(store api.Store, sess *session.Manager, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		store:   store,
		session: sess,
		logger:  logger,
		tree:    collection.NewTree(nil, nil),
		history: &domain.HistoryPage{},
	}
}

// SetOnChange registers the callback fired after each successful refresh.
func (c *Coordinator) SetOnChange(fn func()) { c.onChange = fn }

// Tree returns the current tree snapshot.
func (c *Coordinator) Tree() *collection.Tree { return c.tree }

// Environments returns the current environment snapshot.
func (c *Coordinator) Environments() []domain.Environment { return c.environments }

// History returns the current history snapshot, newest first.
func (c *Coordinator) History() *domain.HistoryPage { return c.history }

// Session returns the tab session this coordinator reconciles.
func (c *Coordinator) Session() *session.Manager { return c.session }

// Refresh reloads every snapshot from the server and drops tabs whose
// backing request no longer exists. Tab content is otherwise untouched.
func (c *Coordinator) Refresh(ctx context.Context) error {
	roots, err := c.store.ListFolderTree(ctx)
	if err != nil {
		return fmt.Errorf("load folder tree: %w", err)
	}
	standalone, err := c.store.ListStandaloneRequests(ctx)
	if err != nil {
		return fmt.Errorf("load standalone requests: %w", err)
	}
	environments, err := c.store.ListEnvironments(ctx)
	if err != nil {
		return fmt.Errorf("load environments: %w", err)
	}
	history, err := c.store.ListHistory(ctx, 0, historyPageSize)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	c.tree = collection.NewTree(roots, standalone)
	c.environments = environments
	c.history = history

	closed := c.session.DropDeleted(func(id int64) bool {
		return c.tree.RequestByID(id) != nil
	})
	for _, tabID := range closed {
		c.logger.Info("closed tab for deleted request", slog.String("tab_id", tabID))
	}

	if c.onChange != nil {
		c.onChange()
	}
	return nil
}

// ApplyDrop executes a resolved drop: gap targets reorder a sibling group,
// container targets re-parent the dragged item. Stale ids (the item or its
// reference vanished mid-drag) make the whole operation a silent no-op with
// no persistence call; structural violations (folder into its own subtree)
// are likewise rejected before anything is sent.
func (c *Coordinator) ApplyDrop(ctx context.Context, drag collection.DragPayload, target collection.DropTarget) error {
	if !collection.AllowDrop(drag, target) {
		return nil
	}

	switch target.Kind {
	case collection.TargetContainer:
		return c.reparent(ctx, drag, target.FolderID)
	case collection.TargetGap:
		return c.reorder(ctx, drag, target)
	}
	return nil
}

func (c *Coordinator) reorder(ctx context.Context, drag collection.DragPayload, target collection.DropTarget) error {
	if drag.Kind == domain.KindRequest {
		siblings := c.tree.SiblingRequests(drag.ID)
		if siblings == nil {
			return nil
		}
		ordered := collection.Reorder(siblings, drag.ID, target.ReferenceID, target.Position)
		if err := c.store.ReorderRequests(ctx, collection.IDs(ordered)); err != nil {
			return fmt.Errorf("reorder requests: %w", err)
		}
		return c.Refresh(ctx)
	}

	siblings := c.tree.SiblingFolders(drag.ID)
	if siblings == nil {
		return nil
	}
	ordered := collection.Reorder(siblings, drag.ID, target.ReferenceID, target.Position)
	if err := c.store.ReorderFolders(ctx, collection.IDs(ordered)); err != nil {
		return fmt.Errorf("reorder folders: %w", err)
	}
	return c.Refresh(ctx)
}

func (c *Coordinator) reparent(ctx context.Context, drag collection.DragPayload, folderID int64) error {
	if c.tree.FolderByID(folderID) == nil {
		return nil
	}

	switch drag.Kind {
	case domain.KindRequest:
		if c.tree.RequestByID(drag.ID) == nil {
			return nil
		}
		if _, err := c.store.UpdateRequest(ctx, drag.ID, api.RequestPatch{FolderID: api.ToID(folderID)}); err != nil {
			return fmt.Errorf("move request: %w", err)
		}
	case domain.KindFolder:
		if c.tree.FolderByID(drag.ID) == nil {
			return nil
		}
		if !c.tree.CanReparentFolder(drag.ID, &folderID) {
			c.logger.Debug("rejected cycle-creating folder move",
				slog.Int64("folder_id", drag.ID), slog.Int64("destination_id", folderID))
			return nil
		}
		if _, err := c.store.UpdateFolder(ctx, drag.ID, api.FolderPatch{ParentFolderID: api.ToID(folderID)}); err != nil {
			return fmt.Errorf("move folder: %w", err)
		}
	}
	return c.Refresh(ctx)
}

// CreateFolder adds a folder under the given parent (nil for root).
func (c *Coordinator) CreateFolder(ctx context.Context, name string, parentID *int64) error {
	if _, err := c.store.CreateFolder(ctx, api.FolderData{Name: name, ParentFolderID: parentID}); err != nil {
		return fmt.Errorf("create folder: %w", err)
	}
	return c.Refresh(ctx)
}

// RenameFolder renames a folder.
func (c *Coordinator) RenameFolder(ctx context.Context, id int64, name string) error {
	if _, err := c.store.UpdateFolder(ctx, id, api.FolderPatch{Name: &name}); err != nil {
		return fmt.Errorf("rename folder: %w", err)
	}
	return c.Refresh(ctx)
}

// DeleteFolder removes a folder and everything beneath it.
func (c *Coordinator) DeleteFolder(ctx context.Context, id int64) error {
	if err := c.store.DeleteFolder(ctx, id); err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}
	return c.Refresh(ctx)
}

// DeleteRequest removes a saved request; the refresh closes any tab bound to it.
func (c *Coordinator) DeleteRequest(ctx context.Context, id int64) error {
	if err := c.store.DeleteRequest(ctx, id); err != nil {
		return fmt.Errorf("delete request: %w", err)
	}
	return c.Refresh(ctx)
}

// SaveTab persists a tab through the session manager, then refreshes so the
// sidebar picks up the new or renamed request.
func (c *Coordinator) SaveTab(ctx context.Context, tabID, nameOverride string) error {
	if _, err := c.session.Save(ctx, tabID, nameOverride); err != nil {
		return err
	}
	return c.Refresh(ctx)
}

// DeleteHistoryEntry removes one history entry.
func (c *Coordinator) DeleteHistoryEntry(ctx context.Context, id int64) error {
	if err := c.store.DeleteHistory(ctx, id); err != nil {
		return fmt.Errorf("delete history entry: %w", err)
	}
	return c.Refresh(ctx)
}

// ClearHistory removes every history entry.
func (c *Coordinator) ClearHistory(ctx context.Context) error {
	if err := c.store.ClearHistory(ctx); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return c.Refresh(ctx)
}

// ActivateEnvironment makes the given environment the active one.
func (c *Coordinator) ActivateEnvironment(ctx context.Context, id int64) error {
	if err := c.store.ActivateEnvironment(ctx, id); err != nil {
		return fmt.Errorf("activate environment: %w", err)
	}
	return c.Refresh(ctx)
}

// Execute runs a tab's request through the server-side executor, stores the
// result on the tab, and refreshes so the new history entry shows up.
func (c *Coordinator) Execute(ctx context.Context, tabID string) (*domain.ExecutionResult, error) {
	tab := c.session.Active()
	if tab == nil || tab.ID != tabID {
		found := false
		for _, open := range c.session.Tabs() {
			if open.ID == tabID {
				tab = open
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("tab %s not found", tabID)
		}
	}

	req := domain.ExecutionRequest{
		Method:      tab.Method,
		URL:         tab.URL,
		Headers:     enabledRows(tab.Headers),
		QueryParams: enabledRows(tab.QueryParams),
		BodyType:    tab.BodyType,
		Body:        tab.Body,
		RequestID:   tab.RequestID,
	}

	result, err := c.store.Execute(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}

	c.session.SetResponse(tabID, result)
	if err := c.Refresh(ctx); err != nil {
		return result, err
	}
	return result, nil
}

// enabledRows filters to rows that are enabled and have a key.
func enabledRows(rows []domain.KeyValue) []domain.KeyValue {
	out := make([]domain.KeyValue, 0, len(rows))
	for _, row := range rows {
		if row.Enabled && row.Key != "" {
			out = append(out, row)
		}
	}
	return out
}
