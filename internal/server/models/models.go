// Package models defines the GORM persistence models for the Warren server.
package models

import (
	"time"

	"github.com/warrenhq/warren/internal/domain"
)

// Folder is a collection folder. Folders nest via ParentFolderID; deleting a
// folder cascades to its children and requests.
type Folder struct {
	ID             int64     `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:255;not null" json:"name"`
	ParentFolderID *int64    `gorm:"index" json:"parent_folder_id"`
	SortOrder      int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Children []Folder  `gorm:"foreignKey:ParentFolderID;constraint:OnDelete:CASCADE" json:"-"`
	Requests []Request `gorm:"foreignKey:FolderID;constraint:OnDelete:CASCADE" json:"-"`
}

// Request is a saved HTTP request. A nil FolderID means the request lives at
// the collection root.
type Request struct {
	ID          int64             `gorm:"primaryKey" json:"id"`
	Name        string            `gorm:"size:255;not null" json:"name"`
	Method      string            `gorm:"size:10;not null;default:GET" json:"method"`
	URL         string            `gorm:"not null;default:''" json:"url"`
	Headers     []domain.KeyValue `gorm:"serializer:json" json:"headers"`
	QueryParams []domain.KeyValue `gorm:"serializer:json" json:"query_params"`
	BodyType    string            `gorm:"size:20;not null;default:none" json:"body_type"`
	Body        string            `json:"body"`
	FolderID    *int64            `gorm:"index" json:"folder_id"`
	SortOrder   int               `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// Environment is a named set of variables with an optional base URL. At most
// one environment is active at a time.
type Environment struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null;uniqueIndex" json:"name"`
	BaseURL   string    `gorm:"not null;default:''" json:"base_url"`
	IsActive  bool      `gorm:"not null;default:false" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Variables []Variable `gorm:"foreignKey:EnvironmentID;constraint:OnDelete:CASCADE" json:"variables"`
}

// Variable is a single key/value pair belonging to an environment.
type Variable struct {
	ID            int64  `gorm:"primaryKey" json:"id"`
	EnvironmentID int64  `gorm:"index;not null" json:"environment_id"`
	Key           string `gorm:"size:255;not null;column:key" json:"key"`
	Value         string `gorm:"not null;default:''" json:"value"`
}

// History records one execution of a request. RequestID is nulled when the
// underlying request is deleted so history outlives its source.
type History struct {
	ID              int64             `gorm:"primaryKey" json:"id"`
	RequestID       *int64            `gorm:"index" json:"request_id"`
	Method          string            `gorm:"size:10;not null" json:"method"`
	URL             string            `gorm:"not null" json:"url"`
	RequestHeaders  map[string]string `gorm:"serializer:json" json:"request_headers"`
	RequestBody     string            `json:"request_body"`
	StatusCode      int               `json:"status_code"`
	StatusText      string            `gorm:"size:64" json:"status_text"`
	ResponseHeaders map[string]string `gorm:"serializer:json" json:"response_headers"`
	ResponseBody    string            `json:"response_body"`
	ResponseTimeMS  int               `json:"response_time_ms"`
	ResponseSize    int               `json:"response_size"`
	ExecutedAt      time.Time         `gorm:"index;autoCreateTime" json:"executed_at"`

	Request *Request `gorm:"foreignKey:RequestID;constraint:OnDelete:SET NULL" json:"-"`
}

// ToDomain converts a persisted request into its API representation.
func (r Request) ToDomain() domain.Request {
	return domain.Request{
		ID:          r.ID,
		Name:        r.Name,
		Method:      r.Method,
		URL:         r.URL,
		Headers:     r.Headers,
		QueryParams: r.QueryParams,
		BodyType:    r.BodyType,
		Body:        r.Body,
		FolderID:    r.FolderID,
		SortOrder:   r.SortOrder,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// ToDomain converts a folder row into its API representation. Children and
// requests are attached by the tree service, not here.
func (f Folder) ToDomain() domain.Folder {
	return domain.Folder{
		ID:             f.ID,
		Name:           f.Name,
		ParentFolderID: f.ParentFolderID,
		SortOrder:      f.SortOrder,
		CreatedAt:      f.CreatedAt,
		UpdatedAt:      f.UpdatedAt,
	}
}

// ToDomain converts an environment with its variables.
func (e Environment) ToDomain() domain.Environment {
	env := domain.Environment{
		ID:        e.ID,
		Name:      e.Name,
		BaseURL:   e.BaseURL,
		IsActive:  e.IsActive,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
	for _, v := range e.Variables {
		env.Variables = append(env.Variables, domain.Variable{
			ID:            v.ID,
			EnvironmentID: v.EnvironmentID,
			Key:           v.Key,
			Value:         v.Value,
		})
	}
	return env
}

// ToDomain converts a history row into its API representation.
func (h History) ToDomain() domain.HistoryEntry {
	return domain.HistoryEntry{
		ID:              h.ID,
		RequestID:       h.RequestID,
		Method:          h.Method,
		URL:             h.URL,
		RequestHeaders:  h.RequestHeaders,
		RequestBody:     h.RequestBody,
		StatusCode:      h.StatusCode,
		StatusText:      h.StatusText,
		ResponseHeaders: h.ResponseHeaders,
		ResponseBody:    h.ResponseBody,
		ResponseTimeMS:  h.ResponseTimeMS,
		ResponseSize:    h.ResponseSize,
		ExecutedAt:      h.ExecutedAt,
	}
}
