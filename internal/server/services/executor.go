package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/warrenhq/warren/internal/domain"
	"github.com/warrenhq/warren/pkg/logger"
)

const executeTimeout = 30 * time.Second

// Executor performs the outbound HTTP call for a request execution. Variable
// substitution and base URL resolution happen here so history records the
// request exactly as it went out.
type Executor struct {
	client *http.Client
	logger *zap.Logger
}

func NewExecutor() *Executor {
	return &Executor{
		client: &http.Client{Timeout: executeTimeout},
		logger: logger.WithModule("executor"),
	}
}

// Execute resolves variables and the base URL, performs the call, and returns
// the outcome. Transport failures are reported in the result's Error field
// rather than as a Go error; the execution itself succeeded in producing an
// outcome either way.
func (e *Executor) Execute(ctx context.Context, req domain.ExecutionRequest, vars map[string]string, baseURL string) *domain.ExecutionResult {
	var warnings []string

	target, w := Substitute(req.URL, vars)
	warnings = append(warnings, w...)
	target = ResolveURL(target, baseURL)

	headers, w := SubstituteRows(req.Headers, vars)
	warnings = append(warnings, w...)

	params, w := SubstituteRows(req.QueryParams, vars)
	warnings = append(warnings, w...)

	body, w := Substitute(req.Body, vars)
	warnings = append(warnings, w...)

	httpReq, err := buildRequest(ctx, req.Method, target, headers, params, req.BodyType, body)
	if err != nil {
		return &domain.ExecutionResult{Error: err.Error(), Warnings: warnings}
	}

	start := time.Now()
	resp, err := e.client.Do(httpReq)
	if err != nil {
		e.logger.Warn("request execution failed",
			zap.String("method", req.Method),
			zap.String("url", target),
			zap.Error(err),
		)
		return &domain.ExecutionResult{Error: err.Error(), Warnings: warnings}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.ExecutionResult{Error: err.Error(), Warnings: warnings}
	}
	elapsed := time.Since(start)

	result := &domain.ExecutionResult{
		StatusCode:     resp.StatusCode,
		StatusText:     http.StatusText(resp.StatusCode),
		Headers:        flattenHeaders(resp.Header),
		Body:           string(raw),
		ResponseTimeMS: int(elapsed.Milliseconds()),
		ResponseSize:   len(raw),
		Warnings:       warnings,
	}

	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		var parsed any
		if json.Unmarshal(raw, &parsed) == nil {
			result.BodyJSON = parsed
		}
	}

	e.logger.Debug("request executed",
		zap.String("method", req.Method),
		zap.String("url", target),
		zap.Int("status", resp.StatusCode),
		zap.Int("size", result.ResponseSize),
		zap.Int("elapsed_ms", result.ResponseTimeMS),
	)
	return result
}

// ResolveURL prepends the environment base URL to relative targets. Absolute
// URLs pass through untouched.
func ResolveURL(target, baseURL string) string {
	if baseURL == "" || strings.Contains(target, "://") {
		return target
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(target, "/")
}

func buildRequest(ctx context.Context, method, target string, headers, params []domain.KeyValue, bodyType, body string) (*http.Request, error) {
	var reader io.Reader
	contentType := ""

	switch bodyType {
	case "json":
		reader = strings.NewReader(body)
		contentType = "application/json"
	case "form":
		form := url.Values{}
		for _, pair := range strings.Split(body, "&") {
			if pair == "" {
				continue
			}
			key, value, _ := strings.Cut(pair, "=")
			form.Add(key, value)
		}
		reader = strings.NewReader(form.Encode())
		contentType = "application/x-www-form-urlencoded"
	case "text":
		reader = strings.NewReader(body)
		contentType = "text/plain"
	default: // "none" or empty
	}

	httpReq, err := http.NewRequestWithContext(ctx, strings.ToUpper(method), target, reader)
	if err != nil {
		return nil, err
	}

	query := httpReq.URL.Query()
	for _, p := range params {
		query.Add(p.Key, p.Value)
	}
	httpReq.URL.RawQuery = query.Encode()

	for _, h := range headers {
		httpReq.Header.Set(h.Key, h.Value)
	}
	// The explicit body type sets Content-Type only when the user has not.
	if contentType != "" && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	return httpReq, nil
}

func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for key := range h {
		out[key] = h.Get(key)
	}
	return out
}
