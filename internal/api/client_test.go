package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warrenhq/warren/internal/logging"
)

func ok(t *testing.T, w http.ResponseWriter, data any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"data":    data,
	}))
}

func TestClientListFolderTree(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/folders/tree", r.URL.Path)
		ok(t, w, []map[string]any{
			{"id": 1, "name": "api", "children": []any{}, "requests": []any{
				map[string]any{"id": 10, "name": "login", "method": "POST", "folder_id": 1},
			}},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, logging.NewNopLogger())
	tree, err := client.ListFolderTree(context.Background())
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, "api", tree[0].Name)
	require.Len(t, tree[0].Requests, 1)
	assert.Equal(t, int64(10), tree[0].Requests[0].ID)
}

func TestClientReorderRequestsSendsOrderedIDs(t *testing.T) {
	var got struct {
		RequestIDs []int64 `json:"request_ids"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/requests/reorder", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		ok(t, w, map[string]string{"message": "reordered"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, logging.NewNopLogger())
	require.NoError(t, client.ReorderRequests(context.Background(), []int64{3, 1, 2}))
	assert.Equal(t, []int64{3, 1, 2}, got.RequestIDs)
}

func TestClientUpdateRequestPatchIsSparse(t *testing.T) {
	var got map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/requests/42", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		ok(t, w, map[string]any{"id": 42, "name": "renamed"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, logging.NewNopLogger())
	name := "renamed"
	updated, err := client.UpdateRequest(context.Background(), 42, RequestPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)

	assert.Contains(t, got, "name")
	assert.NotContains(t, got, "method", "untouched fields must not be sent")
	assert.NotContains(t, got, "folder_id")
}

func TestClientReparentToRootSendsNullFolder(t *testing.T) {
	var got map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		ok(t, w, map[string]any{"id": 42})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, logging.NewNopLogger())
	_, err := client.UpdateRequest(context.Background(), 42, RequestPatch{FolderID: ToRoot()})
	require.NoError(t, err)

	raw, present := got["folder_id"]
	require.True(t, present, "folder_id must be sent when re-parenting")
	assert.Equal(t, "null", string(raw))
}

func TestClientSurfacesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error":   map[string]string{"code": "BAD_REQUEST", "message": "circular reference"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, logging.NewNopLogger())
	_, err := client.UpdateFolder(context.Background(), 7, FolderPatch{ParentFolderID: ToID(8)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circular reference")
}

func TestClientListHistoryPaging(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "5", r.URL.Query().Get("skip"))
		assert.Equal(t, "20", r.URL.Query().Get("limit"))
		ok(t, w, map[string]any{"items": []any{}, "total": 37})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, logging.NewNopLogger())
	page, err := client.ListHistory(context.Background(), 5, 20)
	require.NoError(t, err)
	assert.Equal(t, 37, page.Total)
	assert.Empty(t, page.Items)
}
