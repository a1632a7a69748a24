package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warrenhq/warren/internal/domain"
)

func TestSubstitute(t *testing.T) {
	vars := map[string]string{"host": "api.test", "token": "abc"}

	tests := []struct {
		name         string
		in           string
		want         string
		wantWarnings int
	}{
		{name: "replaces known variables", in: "https://{{host}}/v1", want: "https://api.test/v1"},
		{name: "multiple in one string", in: "{{host}}:{{token}}", want: "api.test:abc"},
		{name: "unknown placeholder preserved", in: "https://{{missing}}/v1", want: "https://{{missing}}/v1", wantWarnings: 1},
		{name: "no placeholders", in: "plain", want: "plain"},
		{name: "empty value is still a match", in: "x{{host}}x", want: "xapi.testx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, warnings := Substitute(tt.in, vars)
			assert.Equal(t, tt.want, got)
			assert.Len(t, warnings, tt.wantWarnings)
		})
	}
}

func TestSubstituteWarnsOncePerName(t *testing.T) {
	_, warnings := Substitute("{{gone}} and {{gone}} again", nil)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "gone")
}

func TestSubstituteRows(t *testing.T) {
	vars := map[string]string{"token": "abc"}
	rows := []domain.KeyValue{
		{Key: "Authorization", Value: "Bearer {{token}}", Enabled: true},
		{Key: "X-Debug", Value: "{{missing}}", Enabled: true},
		{Key: "Skipped", Value: "{{token}}", Enabled: false},
		{Key: "", Value: "no key", Enabled: true},
	}

	out, warnings := SubstituteRows(rows, vars)
	require.Len(t, out, 2, "disabled and empty-key rows are dropped")
	assert.Equal(t, "Bearer abc", out[0].Value)
	assert.Equal(t, "{{missing}}", out[1].Value)
	assert.Len(t, warnings, 1)
}

func TestActiveVariables(t *testing.T) {
	assert.Empty(t, ActiveVariables(nil))

	env := &domain.Environment{Variables: []domain.Variable{
		{Key: "a", Value: "1"},
		{Key: "b", Value: "2"},
	}}
	vars := ActiveVariables(env)
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, vars)
}
