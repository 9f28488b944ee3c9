package models

import (
	"time"
)

// Tree is the nested folder/document view of one owner's forest,
// as rendered by the dashboard sidebar.
type Tree struct {
	Folders   []*FolderNode  `json:"folders"`
	Documents []DocumentNode `json:"documents"` // root-level documents
}

type FolderNode struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	ParentID  *string        `json:"parent_id"`
	CreatedAt time.Time      `json:"created_at"`
	Folders   []*FolderNode  `json:"folders"`
	Documents []DocumentNode `json:"documents"`
}

type DocumentNode struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	MimeType   string    `json:"mime_type"`
	FolderID   *string   `json:"folder_id"`
	UploadedAt time.Time `json:"uploaded_at"`
}
