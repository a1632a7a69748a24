package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/warrenhq/warren/internal/domain"
	"github.com/warrenhq/warren/internal/server/models"
	"github.com/warrenhq/warren/internal/server/services"
	appErrors "github.com/warrenhq/warren/pkg/errors"
	"github.com/warrenhq/warren/pkg/response"
)

// Execute runs a request through the executor against the selected (or
// active) environment and records the outcome in history. Transport failures
// still produce a 200 with the error in the result; the execution endpoint
// itself only fails on bad input.
func (h *Handler) Execute(c *gin.Context) {
	var input domain.ExecutionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.ErrValidation.WithInternal(err))
		return
	}
	if input.Method == "" || input.URL == "" {
		response.Error(c, appErrors.ErrValidation.WithMessage("Method and URL are required"))
		return
	}

	env, err := h.executionEnvironment(input.EnvironmentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	vars := services.ActiveVariables(env)
	baseURL := ""
	if env != nil {
		baseURL = env.BaseURL
	}

	result := h.executor.Execute(c.Request.Context(), input, vars, baseURL)

	if result.Error == "" {
		if err := h.recordExecution(input, vars, baseURL, result); err != nil {
			h.logger.Warn("history record failed", zap.Error(err))
		}
	}
	response.Success(c, http.StatusOK, result)
}

// executionEnvironment resolves which environment supplies variables: an
// explicit id wins, otherwise the active one (which may not exist).
func (h *Handler) executionEnvironment(id *int64) (*domain.Environment, error) {
	if id == nil {
		return h.activeEnvironment()
	}

	var env models.Environment
	if err := h.db.Preload("Variables").First(&env, *id).Error; err != nil {
		return nil, notFoundOr(err, "Environment not found")
	}
	out := env.ToDomain()
	return &out, nil
}

// recordExecution snapshots the request as it went out, after substitution
// and base URL resolution, so history stays meaningful if variables change.
func (h *Handler) recordExecution(input domain.ExecutionRequest, vars map[string]string, baseURL string, result *domain.ExecutionResult) error {
	target, _ := services.Substitute(input.URL, vars)
	target = services.ResolveURL(target, baseURL)

	headers, _ := services.SubstituteRows(input.Headers, vars)
	sent := make(map[string]string, len(headers))
	for _, kv := range headers {
		sent[kv.Key] = kv.Value
	}
	body, _ := services.Substitute(input.Body, vars)

	entry := models.History{
		RequestID:       input.RequestID,
		Method:          input.Method,
		URL:             target,
		RequestHeaders:  sent,
		RequestBody:     body,
		StatusCode:      result.StatusCode,
		StatusText:      result.StatusText,
		ResponseHeaders: result.Headers,
		ResponseBody:    result.Body,
		ResponseTimeMS:  result.ResponseTimeMS,
		ResponseSize:    result.ResponseSize,
	}
	return h.history.Record(&entry)
}
