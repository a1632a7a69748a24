package domain

// ExecutionRequest is the request configuration sent to the executor. It is
// the editable subset of Request, without identity or ordering fields.
type ExecutionRequest struct {
	Method      string     `json:"method"`
	URL         string     `json:"url"`
	Headers     []KeyValue `json:"headers"`
	QueryParams []KeyValue `json:"query_params"`
	BodyType    string     `json:"body_type,omitempty"`
	Body        string     `json:"body,omitempty"`

	// RequestID links the execution to a saved request for history purposes.
	RequestID *int64 `json:"request_id,omitempty"`
	// EnvironmentID selects a specific environment; nil uses the active one.
	EnvironmentID *int64 `json:"environment_id,omitempty"`
}

// ExecutionResult is the outcome of executing a request. When the transport
// itself failed (connection refused, timeout) Error is non-empty and the
// response fields are zero.
type ExecutionResult struct {
	StatusCode     int               `json:"status_code"`
	StatusText     string            `json:"status_text"`
	Headers        map[string]string `json:"headers"`
	Body           string            `json:"body"`
	BodyJSON       any               `json:"body_json,omitempty"`
	ResponseTimeMS int               `json:"response_time_ms"`
	ResponseSize   int               `json:"response_size"`
	Warnings       []string          `json:"warnings,omitempty"`
	Error          string            `json:"error,omitempty"`
}
