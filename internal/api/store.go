// Package api defines the contract with the persistence/execution
// collaborator and implements it over HTTP/JSON against warren-server.
// The rest of the client only ever sees the Store interface; the server is
// the single source of truth and the client re-reads from it after every
// successful mutation.
package api

import (
	"context"

	"github.com/warrenhq/warren/internal/domain"
)

// Store is the persistence/execution collaborator consumed by the core.
// All calls are plain request/response; there is no push channel.
type Store interface {
	// ListFolderTree returns root-level folders, each pre-populated with
	// nested children and requests already ordered by sort order.
	ListFolderTree(ctx context.Context) ([]domain.Folder, error)
	// ListStandaloneRequests returns requests outside any folder, ordered.
	ListStandaloneRequests(ctx context.Context) ([]domain.Request, error)

	// ReorderRequests and ReorderFolders replace a sibling order wholesale;
	// the server persists the given order as the new sort-order sequence.
	ReorderRequests(ctx context.Context, orderedIDs []int64) error
	ReorderFolders(ctx context.Context, orderedIDs []int64) error

	CreateRequest(ctx context.Context, data RequestData) (*domain.Request, error)
	UpdateRequest(ctx context.Context, id int64, patch RequestPatch) (*domain.Request, error)
	DeleteRequest(ctx context.Context, id int64) error

	CreateFolder(ctx context.Context, data FolderData) (*domain.Folder, error)
	UpdateFolder(ctx context.Context, id int64, patch FolderPatch) (*domain.Folder, error)
	// DeleteFolder cascades to all descendant folders and requests.
	DeleteFolder(ctx context.Context, id int64) error

	ListEnvironments(ctx context.Context) ([]domain.Environment, error)
	ActivateEnvironment(ctx context.Context, id int64) error

	ListHistory(ctx context.Context, skip, limit int) (*domain.HistoryPage, error)
	DeleteHistory(ctx context.Context, id int64) error
	ClearHistory(ctx context.Context) error

	Execute(ctx context.Context, req domain.ExecutionRequest) (*domain.ExecutionResult, error)
}

// RequestData is the payload for creating a request.
type RequestData struct {
	Name        string            `json:"name"`
	Method      string            `json:"method"`
	URL         string            `json:"url"`
	Headers     []domain.KeyValue `json:"headers"`
	QueryParams []domain.KeyValue `json:"query_params"`
	BodyType    string            `json:"body_type,omitempty"`
	Body        string            `json:"body,omitempty"`
	FolderID    *int64            `json:"folder_id"`
}

// FolderData is the payload for creating a folder.
type FolderData struct {
	Name           string `json:"name"`
	ParentFolderID *int64 `json:"parent_folder_id"`
}

// OptionalID expresses the three states a nullable id field can take in a
// patch: untouched (Set false), set to a folder (Set true, non-nil Value) or
// cleared to root/standalone (Set true, nil Value).
type OptionalID struct {
	Set   bool
	Value *int64
}

// ToID marks the field for assignment to the given id.
func ToID(id int64) OptionalID { return OptionalID{Set: true, Value: &id} }

// ToRoot marks the field for clearing (move to root / standalone).
func ToRoot() OptionalID { return OptionalID{Set: true} }

// RequestPatch updates a request; nil fields are left untouched. Setting
// FolderID re-parents the request.
type RequestPatch struct {
	Name        *string
	Method      *string
	URL         *string
	Headers     *[]domain.KeyValue
	QueryParams *[]domain.KeyValue
	BodyType    *string
	Body        *string
	FolderID    OptionalID
}

// payload builds the sparse JSON body; only fields present in the map reach
// the server, mirroring its partial-update semantics.
func (p RequestPatch) payload() map[string]any {
	body := map[string]any{}
	if p.Name != nil {
		body["name"] = *p.Name
	}
	if p.Method != nil {
		body["method"] = *p.Method
	}
	if p.URL != nil {
		body["url"] = *p.URL
	}
	if p.Headers != nil {
		body["headers"] = *p.Headers
	}
	if p.QueryParams != nil {
		body["query_params"] = *p.QueryParams
	}
	if p.BodyType != nil {
		body["body_type"] = *p.BodyType
	}
	if p.Body != nil {
		body["body"] = *p.Body
	}
	if p.FolderID.Set {
		body["folder_id"] = p.FolderID.Value
	}
	return body
}

// FolderPatch updates a folder; setting ParentFolderID re-parents it.
type FolderPatch struct {
	Name           *string
	ParentFolderID OptionalID
}

func (p FolderPatch) payload() map[string]any {
	body := map[string]any{}
	if p.Name != nil {
		body["name"] = *p.Name
	}
	if p.ParentFolderID.Set {
		body["parent_folder_id"] = p.ParentFolderID.Value
	}
	return body
}
