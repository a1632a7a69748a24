package services

import (
	"fmt"
	"regexp"

	"github.com/warrenhq/warren/internal/domain"
)

var placeholderPattern = regexp.MustCompile(`\{\{(\w+)\}\}`)

// Substitute replaces {{name}} placeholders in s with values from vars.
// Placeholders without a matching variable are left in place and reported as
// warnings so the caller can surface them without failing the request.
func Substitute(s string, vars map[string]string) (string, []string) {
	var warnings []string
	seen := map[string]bool{}

	out := placeholderPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		if value, ok := vars[name]; ok {
			return value
		}
		if !seen[name] {
			seen[name] = true
			warnings = append(warnings, fmt.Sprintf("variable %q is not defined", name))
		}
		return match
	})
	return out, warnings
}

// SubstituteRows applies Substitute to the value of every enabled row.
func SubstituteRows(rows []domain.KeyValue, vars map[string]string) ([]domain.KeyValue, []string) {
	var warnings []string
	out := make([]domain.KeyValue, 0, len(rows))
	for _, row := range rows {
		if !row.Enabled || row.Key == "" {
			continue
		}
		value, w := Substitute(row.Value, vars)
		warnings = append(warnings, w...)
		row.Value = value
		out = append(out, row)
	}
	return out, warnings
}

// ActiveVariables flattens an environment's variables into a lookup map.
// A nil environment yields an empty map.
func ActiveVariables(env *domain.Environment) map[string]string {
	vars := map[string]string{}
	if env == nil {
		return vars
	}
	for _, v := range env.Variables {
		vars[v.Key] = v.Value
	}
	return vars
}
