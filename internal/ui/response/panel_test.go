package response

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/warrenhq/warren/internal/domain"
)

func TestStatusLine(t *testing.T) {
	tests := []struct {
		name   string
		result domain.ExecutionResult
		want   string
	}{
		{
			name: "success",
			result: domain.ExecutionResult{
				StatusCode: 200, StatusText: "OK",
				ResponseTimeMS: 42, ResponseSize: 512,
			},
			want: "200 OK · 42 ms · 512 B",
		},
		{
			name: "kilobytes",
			result: domain.ExecutionResult{
				StatusCode: 404, StatusText: "Not Found",
				ResponseTimeMS: 3, ResponseSize: 2048,
			},
			want: "404 Not Found · 3 ms · 2.0 KB",
		},
		{
			name:   "transport failure",
			result: domain.ExecutionResult{Error: "connection refused"},
			want:   "Request failed: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusLine(&tt.result))
		})
	}
}

func TestBodyText(t *testing.T) {
	parsed := domain.ExecutionResult{
		Body:     `{"b":2,"a":1}`,
		BodyJSON: map[string]any{"b": 2, "a": 1},
	}
	assert.Equal(t, "{\n  \"a\": 1,\n  \"b\": 2\n}", BodyText(&parsed))

	raw := domain.ExecutionResult{Body: "plain text"}
	assert.Equal(t, "plain text", BodyText(&raw))
}
