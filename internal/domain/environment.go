package domain

import "time"

// Variable is a key/value pair referenced in requests via {{key}} placeholders.
type Variable struct {
	ID            int64  `json:"id"`
	EnvironmentID int64  `json:"environment_id"`
	Key           string `json:"key"`
	Value         string `json:"value"`
}

// Environment is a named set of variables plus an optional base URL that is
// prepended to relative request URLs. At most one environment is active at a
// time; the active one supplies variables during execution.
type Environment struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	BaseURL   string     `json:"base_url"`
	IsActive  bool       `json:"is_active"`
	Variables []Variable `json:"variables"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
