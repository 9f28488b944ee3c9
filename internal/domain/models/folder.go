package models

import (
	"time"
)

type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ParentID  *string   `json:"parent_id"` // NULL = root level
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// IsRoot reports whether the folder sits at the top of its owner's forest.
func (f *Folder) IsRoot() bool {
	return f.ParentID == nil
}
