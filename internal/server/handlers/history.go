package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/warrenhq/warren/pkg/response"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// ListHistory returns one page of executions, newest first. Query parameters
// skip and limit page through the full set.
func (h *Handler) ListHistory(c *gin.Context) {
	skip := queryInt(c, "skip", 0)
	limit := queryInt(c, "limit", defaultHistoryLimit)
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	page, err := h.history.List(skip, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

// DeleteHistoryEntry removes one entry.
func (h *Handler) DeleteHistoryEntry(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.history.Delete(id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

// ClearHistory removes every entry.
func (h *Handler) ClearHistory(c *gin.Context) {
	if err := h.history.Clear(); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cleared": true})
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
