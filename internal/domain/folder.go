package domain

import "time"

// Folder organises requests hierarchically. The tree endpoint returns folders
// pre-populated with their children and requests, both ordered by sort order.
// ParentFolderID is nil for root-level folders.
type Folder struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	ParentFolderID *int64    `json:"parent_folder_id"`
	SortOrder      int       `json:"sort_order"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Children []Folder  `json:"children"`
	Requests []Request `json:"requests"`
}

// ItemID implements Identifiable.
func (f Folder) ItemID() int64 { return f.ID }
