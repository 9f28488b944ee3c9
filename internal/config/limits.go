package config

const (
	// MaxFolderNameLength is the maximum length for folder names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (names should be short and descriptive).
	MaxFolderNameLength = 255

	// MaxDocumentNameLength is the maximum length for document display
	// names. Same bound as folder names for consistency.
	MaxDocumentNameLength = 255

	// MaxUploadBytes caps a single multipart file upload.
	MaxUploadBytes = 25 << 20 // 25MB

	// MaxJSONBodyBytes caps JSON request bodies.
	MaxJSONBodyBytes = 1 << 20 // 1MB

	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 8

	// MaxPasswordLength matches bcrypt's 72-byte input limit; longer
	// passwords would be silently truncated by the hash.
	MaxPasswordLength = 72
)

// AllowedUploadMimeTypes is the boundary-level allow-list for uploads:
// documents, spreadsheets, presentations, images, plain text and CSV.
// The core never inspects MIME types; enforcement happens in the upload
// handler before any storage call.
var AllowedUploadMimeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document":   true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         true,
	"application/vnd.ms-powerpoint": true,
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": true,
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/webp": true,
	"text/plain": true,
	"text/csv":   true,
}
