package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/warrenhq/warren/internal/domain"
)

const defaultTimeout = 30 * time.Second

// Client implements Store over HTTP/JSON against a warren-server instance.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a Store backed by the server at baseURL.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  logger,
	}
}

// envelope is the server's response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// do performs one round trip and decodes the envelope's data into out (when
// out is non-nil). Server-side failures come back as errors carrying the
// server's message so the UI can surface them verbatim.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug("api call",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)))

	var env envelope
	if len(data) > 0 {
		if err := json.Unmarshal(data, &env); err != nil {
			return fmt.Errorf("%s %s: unexpected response (status %d)", method, path, resp.StatusCode)
		}
	}

	if resp.StatusCode >= 400 || (len(data) > 0 && !env.Success) {
		if env.Error != nil {
			return fmt.Errorf("%s", env.Error.Message)
		}
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response data: %w", err)
		}
	}
	return nil
}

func (c *Client) ListFolderTree(ctx context.Context) ([]domain.Folder, error) {
	var tree []domain.Folder
	if err := c.do(ctx, http.MethodGet, "/api/folders/tree", nil, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}

func (c *Client) ListStandaloneRequests(ctx context.Context) ([]domain.Request, error) {
	var requests []domain.Request
	if err := c.do(ctx, http.MethodGet, "/api/folders/standalone-requests", nil, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (c *Client) ReorderRequests(ctx context.Context, orderedIDs []int64) error {
	return c.do(ctx, http.MethodPost, "/api/requests/reorder",
		map[string]any{"request_ids": orderedIDs}, nil)
}

func (c *Client) ReorderFolders(ctx context.Context, orderedIDs []int64) error {
	return c.do(ctx, http.MethodPost, "/api/folders/reorder",
		map[string]any{"folder_ids": orderedIDs}, nil)
}

func (c *Client) CreateRequest(ctx context.Context, data RequestData) (*domain.Request, error) {
	var created domain.Request
	if err := c.do(ctx, http.MethodPost, "/api/requests", data, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateRequest(ctx context.Context, id int64, patch RequestPatch) (*domain.Request, error) {
	var updated domain.Request
	if err := c.do(ctx, http.MethodPut, "/api/requests/"+strconv.FormatInt(id, 10), patch.payload(), &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteRequest(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/api/requests/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *Client) CreateFolder(ctx context.Context, data FolderData) (*domain.Folder, error) {
	var created domain.Folder
	if err := c.do(ctx, http.MethodPost, "/api/folders", data, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateFolder(ctx context.Context, id int64, patch FolderPatch) (*domain.Folder, error) {
	var updated domain.Folder
	if err := c.do(ctx, http.MethodPut, "/api/folders/"+strconv.FormatInt(id, 10), patch.payload(), &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteFolder(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/api/folders/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *Client) ListEnvironments(ctx context.Context) ([]domain.Environment, error) {
	var envs []domain.Environment
	if err := c.do(ctx, http.MethodGet, "/api/environments", nil, &envs); err != nil {
		return nil, err
	}
	return envs, nil
}

func (c *Client) ActivateEnvironment(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, "/api/environments/"+strconv.FormatInt(id, 10)+"/activate", nil, nil)
}

func (c *Client) ListHistory(ctx context.Context, skip, limit int) (*domain.HistoryPage, error) {
	query := url.Values{}
	query.Set("skip", strconv.Itoa(skip))
	query.Set("limit", strconv.Itoa(limit))

	var page domain.HistoryPage
	if err := c.do(ctx, http.MethodGet, "/api/history?"+query.Encode(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) DeleteHistory(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/api/history/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *Client) ClearHistory(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/history", nil, nil)
}

func (c *Client) Execute(ctx context.Context, req domain.ExecutionRequest) (*domain.ExecutionResult, error) {
	var result domain.ExecutionResult
	if err := c.do(ctx, http.MethodPost, "/api/execute", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// compile-time interface check
var _ Store = (*Client)(nil)
