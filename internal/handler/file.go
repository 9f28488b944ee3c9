package handler

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"docvault/internal/domain/services"
	"docvault/internal/httputil"
)

// FileHandler streams document content for download.
type FileHandler struct {
	docService services.DocumentService
	logger     *slog.Logger
}

// NewFileHandler creates a new file handler.
func NewFileHandler(docService services.DocumentService, logger *slog.Logger) *FileHandler {
	return &FileHandler{
		docService: docService,
		logger:     logger,
	}
}

// Download streams the document's bytes with the original file name in
// the Content-Disposition header
// GET /api/files/{id}
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "document ID is required")
		return
	}

	doc, rc, size, err := h.docService.OpenContent(r.Context(), httputil.GetUserID(r), id)
	if err != nil {
		handleError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", doc.MimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.OriginalFileName))
	if size >= 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	}

	if _, err := io.Copy(w, rc); err != nil {
		// Headers are out; nothing to send but a log line.
		h.logger.Warn("download stream interrupted",
			"document_id", id,
			"error", err,
		)
	}
}
