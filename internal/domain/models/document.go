package models

import (
	"time"
)

type Document struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"` // user-provided display name
	OriginalFileName string    `json:"original_file_name"`
	MimeType         string    `json:"mime_type"`
	StorageRef       string    `json:"-"` // handle into blob storage, never serialized
	FolderID         *string   `json:"folder_id"` // NULL = root level
	OwnerID          string    `json:"owner_id"`
	UploadedAt       time.Time `json:"uploaded_at"`
}
