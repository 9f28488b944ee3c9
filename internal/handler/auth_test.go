package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/internal/domain/services"
)

type stubUserService struct {
	user *models.User
	err  error
}

func (s *stubUserService) Register(ctx context.Context, req *services.RegisterRequest) (*models.User, error) {
	return s.user, s.err
}

func (s *stubUserService) Login(ctx context.Context, req *services.LoginRequest) (*models.User, error) {
	return s.user, s.err
}

func (s *stubUserService) Get(ctx context.Context, actorID, targetID string) (*models.User, error) {
	return s.user, s.err
}

func (s *stubUserService) List(ctx context.Context, actorID string) ([]models.User, error) {
	return nil, s.err
}

func (s *stubUserService) ChangeRole(ctx context.Context, actorID, targetID string, role models.Role) (*models.User, error) {
	return s.user, s.err
}

func (s *stubUserService) Delete(ctx context.Context, actorID, targetID string) error {
	return s.err
}

func TestLoginHandler(t *testing.T) {
	t.Run("returns only the user id", func(t *testing.T) {
		stub := &stubUserService{user: &models.User{
			ID:    "u-1",
			Email: "alice@example.com",
			Role:  models.RoleMember,
		}}
		h := NewAuthHandler(stub, testLogger())

		body := `{"email":"alice@example.com","password":"password"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
		rec := httptest.NewRecorder()

		h.Login(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status %d: %s", rec.Code, rec.Body)
		}
		var got map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got["user_id"] != "u-1" {
			t.Errorf("user_id: %q", got["user_id"])
		}
		if len(got) != 1 {
			t.Errorf("extra fields in response: %v", got)
		}
	})

	t.Run("bad credentials map to 401", func(t *testing.T) {
		stub := &stubUserService{err: domain.ErrUnauthorized}
		h := NewAuthHandler(stub, testLogger())

		body := `{"email":"alice@example.com","password":"wrong"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
		rec := httptest.NewRecorder()

		h.Login(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status: got %d, want 401", rec.Code)
		}
	})
}
