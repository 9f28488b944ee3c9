package handler

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"docvault/internal/domain/models"
	"docvault/internal/domain/services"
	"docvault/internal/httputil"
)

// stubDocService records the last request it saw and replies with
// canned values.
type stubDocService struct {
	lastUpload *services.UploadRequest
	lastUpdate *services.UpdateDocumentRequest
	doc        *models.Document
	content    string
	err        error
}

func (s *stubDocService) Upload(ctx context.Context, req *services.UploadRequest) (*models.Document, error) {
	s.lastUpload = req
	// Drain so multipart streaming is exercised.
	if req.Content != nil {
		io.Copy(io.Discard, req.Content)
	}
	return s.doc, s.err
}

func (s *stubDocService) Get(ctx context.Context, ownerID, documentID string) (*models.Document, error) {
	return s.doc, s.err
}

func (s *stubDocService) ListByFolder(ctx context.Context, ownerID string, folderID *string) ([]models.Document, error) {
	return nil, s.err
}

func (s *stubDocService) Update(ctx context.Context, ownerID, documentID string, req *services.UpdateDocumentRequest) (*models.Document, error) {
	s.lastUpdate = req
	return s.doc, s.err
}

func (s *stubDocService) Delete(ctx context.Context, ownerID, documentID string) error {
	return s.err
}

func (s *stubDocService) OpenContent(ctx context.Context, ownerID, documentID string) (*models.Document, io.ReadCloser, int64, error) {
	if s.err != nil {
		return nil, nil, 0, s.err
	}
	return s.doc, io.NopCloser(strings.NewReader(s.content)), int64(len(s.content)), nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func authed(r *http.Request, userID string) *http.Request {
	return httputil.WithUserID(r, userID)
}

func multipartBody(t *testing.T, fields map[string]string, fileName, fileType, fileContent string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	hdr := make(map[string][]string)
	hdr["Content-Disposition"] = []string{`form-data; name="file"; filename="` + fileName + `"`}
	hdr["Content-Type"] = []string{fileType}
	part, err := mw.CreatePart(hdr)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write([]byte(fileContent)); err != nil {
		t.Fatalf("write file: %v", err)
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestUploadHandler(t *testing.T) {
	t.Run("accepts pdf and maps fields", func(t *testing.T) {
		stub := &stubDocService{doc: &models.Document{ID: "d-1", Name: "W2"}}
		h := NewDocumentHandler(stub, testLogger())

		body, contentType := multipartBody(t,
			map[string]string{"name": "W2", "folderId": "f-1"},
			"w2 2024.pdf", "application/pdf", "%PDF-1.4")
		req := authed(httptest.NewRequest(http.MethodPost, "/api/documents/upload", body), "u-1")
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		h.Upload(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status %d: %s", rec.Code, rec.Body)
		}
		up := stub.lastUpload
		if up.OwnerID != "u-1" || up.DisplayName != "W2" || up.OriginalFileName != "w2 2024.pdf" {
			t.Errorf("mapped request: %+v", up)
		}
		if up.FolderID == nil || *up.FolderID != "f-1" {
			t.Errorf("folder: %v", up.FolderID)
		}
	})

	t.Run("missing name field", func(t *testing.T) {
		stub := &stubDocService{doc: &models.Document{ID: "d-1"}}
		h := NewDocumentHandler(stub, testLogger())

		body, contentType := multipartBody(t, nil, "scan.png", "image/png", "png-bytes")
		req := authed(httptest.NewRequest(http.MethodPost, "/api/documents/upload", body), "u-1")
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		h.Upload(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status: got %d, want 400", rec.Code)
		}
		if stub.lastUpload != nil {
			t.Error("service must not be called without a name")
		}
	})

	t.Run("null folderId means root", func(t *testing.T) {
		stub := &stubDocService{doc: &models.Document{ID: "d-1"}}
		h := NewDocumentHandler(stub, testLogger())

		body, contentType := multipartBody(t,
			map[string]string{"name": "Scan", "folderId": "null"},
			"scan.png", "image/png", "png-bytes")
		req := authed(httptest.NewRequest(http.MethodPost, "/api/documents/upload", body), "u-1")
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		h.Upload(rec, req)

		if stub.lastUpload.FolderID != nil {
			t.Errorf("expected root, got %v", *stub.lastUpload.FolderID)
		}
	})

	t.Run("rejects disallowed mime type", func(t *testing.T) {
		stub := &stubDocService{}
		h := NewDocumentHandler(stub, testLogger())

		body, contentType := multipartBody(t, nil, "tool.exe", "application/x-msdownload", "MZ")
		req := authed(httptest.NewRequest(http.MethodPost, "/api/documents/upload", body), "u-1")
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		h.Upload(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status: got %d, want 400", rec.Code)
		}
		if stub.lastUpload != nil {
			t.Error("service must not be called for rejected types")
		}
	})

	t.Run("missing file field", func(t *testing.T) {
		stub := &stubDocService{}
		h := NewDocumentHandler(stub, testLogger())

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		mw.WriteField("name", "W2")
		mw.Close()
		req := authed(httptest.NewRequest(http.MethodPost, "/api/documents/upload", &buf), "u-1")
		req.Header.Set("Content-Type", mw.FormDataContentType())
		rec := httptest.NewRecorder()

		h.Upload(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status: got %d, want 400", rec.Code)
		}
	})
}

func TestUpdateHandlerMoveTriState(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantSet bool
		wantNil bool
		wantID  string
	}{
		{name: "absent leaves location", body: `{"name":"x"}`, wantSet: false},
		{name: "null moves to root", body: `{"folder_id":null}`, wantSet: true, wantNil: true},
		{name: "empty string moves to root", body: `{"folder_id":""}`, wantSet: true, wantNil: false, wantID: ""},
		{name: "id moves into folder", body: `{"folder_id":"f-9"}`, wantSet: true, wantID: "f-9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubDocService{doc: &models.Document{ID: "d-1"}}
			h := NewDocumentHandler(stub, testLogger())

			req := authed(httptest.NewRequest(http.MethodPut, "/api/documents/d-1", strings.NewReader(tt.body)), "u-1")
			req.SetPathValue("id", "d-1")
			rec := httptest.NewRecorder()

			h.Update(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("status %d: %s", rec.Code, rec.Body)
			}
			move := stub.lastUpdate.Folder
			if move.Set != tt.wantSet {
				t.Fatalf("set: got %v, want %v", move.Set, tt.wantSet)
			}
			if !tt.wantSet {
				return
			}
			if tt.wantNil {
				if move.ID != nil {
					t.Fatalf("want nil target, got %q", *move.ID)
				}
				return
			}
			if move.ID == nil || *move.ID != tt.wantID {
				t.Fatalf("target: got %v, want %q", move.ID, tt.wantID)
			}
		})
	}
}

func TestDownloadHandler(t *testing.T) {
	stub := &stubDocService{
		doc: &models.Document{
			ID:               "d-1",
			Name:             "W2",
			OriginalFileName: "w2 2024.pdf",
			MimeType:         "application/pdf",
		},
		content: "%PDF-1.4 data",
	}
	h := NewFileHandler(stub, testLogger())

	req := authed(httptest.NewRequest(http.MethodGet, "/api/files/d-1", nil), "u-1")
	req.SetPathValue("id", "d-1")
	rec := httptest.NewRecorder()

	h.Download(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="w2 2024.pdf"` {
		t.Errorf("disposition: %q", got)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
		t.Errorf("content type: %q", got)
	}
	if rec.Body.String() != "%PDF-1.4 data" {
		t.Errorf("body: %q", rec.Body)
	}
}
