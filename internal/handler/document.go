package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"docvault/internal/config"
	"docvault/internal/domain/services"
	"docvault/internal/httputil"
)

// DocumentHandler handles document metadata and upload requests.
type DocumentHandler struct {
	docService services.DocumentService
	logger     *slog.Logger
}

// NewDocumentHandler creates a new document handler.
func NewDocumentHandler(docService services.DocumentService, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		docService: docService,
		logger:     logger,
	}
}

// Upload stores a new document from a multipart form. Fields:
//   - file: the content (required)
//   - name: display name (required)
//   - folderId: target folder; absent, empty or "null" means root
//
// POST /api/documents/upload
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadBytes)

	if err := r.ParseMultipartForm(config.MaxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			httputil.RespondError(w, http.StatusRequestEntityTooLarge, "file exceeds the upload limit")
			return
		}
		httputil.RespondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	if !config.AllowedUploadMimeTypes[mimeType] {
		httputil.RespondError(w, http.StatusBadRequest, "unsupported file type: "+mimeType)
		return
	}

	displayName := r.FormValue("name")
	if displayName == "" {
		httputil.RespondError(w, http.StatusBadRequest, "name field is required")
		return
	}

	var folderID *string
	if v := r.FormValue("folderId"); v != "" && v != "null" {
		folderID = &v
	}

	doc, err := h.docService.Upload(r.Context(), &services.UploadRequest{
		OwnerID:          httputil.GetUserID(r),
		DisplayName:      displayName,
		OriginalFileName: header.Filename,
		MimeType:         mimeType,
		FolderID:         folderID,
		Content:          file,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, doc)
}

// List returns documents directly in one folder, newest first. The
// folderId query parameter selects the folder; absent or "null" means
// root-level documents
// GET /api/documents
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	docs, err := h.docService.ListByFolder(r.Context(), httputil.GetUserID(r), optionalQueryID(r, "folderId"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, docs)
}

// Get returns one document's metadata
// GET /api/documents/{id}
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "document ID is required")
		return
	}

	doc, err := h.docService.Get(r.Context(), httputil.GetUserID(r), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// Update renames and/or moves a document. The folder_id field is
// tri-state: absent leaves the location, null moves to root, an ID
// moves into that folder
// PUT /api/documents/{id}
func (h *DocumentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "document ID is required")
		return
	}

	var req struct {
		Name     *string                 `json:"name"`
		FolderID httputil.OptionalString `json:"folder_id"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	update := &services.UpdateDocumentRequest{
		Name: req.Name,
		Folder: services.MoveTarget{
			Set: req.FolderID.Present,
			ID:  req.FolderID.Value,
		},
	}

	doc, err := h.docService.Update(r.Context(), httputil.GetUserID(r), id, update)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// Delete removes a document and its content
// DELETE /api/documents/{id}
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "document ID is required")
		return
	}

	if err := h.docService.Delete(r.Context(), httputil.GetUserID(r), id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
