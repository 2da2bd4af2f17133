package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tindi/chamaledger/internal/domain"
)

type authenticatorStub struct {
	sessions map[string]*domain.Session
}

func (a *authenticatorStub) Authenticate(ctx context.Context, token string) (*domain.Session, error) {
	if session, ok := a.sessions[token]; ok {
		return session, nil
	}
	return nil, domain.ErrUnauthenticated
}

func okHandler(t *testing.T, wantUser string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := SessionFromContext(r.Context())
		if !ok {
			t.Error("expected session in context")
		} else if session.UserID != wantUser {
			t.Errorf("expected user %s, got %s", wantUser, session.UserID)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestSessionAuth_ValidCookie(t *testing.T) {
	auth := &authenticatorStub{sessions: map[string]*domain.Session{
		"tok-1": {UserID: "user-1", Role: domain.RoleAdmin},
	}}

	handler := SessionAuth(auth)(okHandler(t, "user-1"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "tok-1"})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSessionAuth_MissingCookie(t *testing.T) {
	handler := SessionAuth(&authenticatorStub{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestSessionAuth_UnknownToken(t *testing.T) {
	handler := SessionAuth(&authenticatorStub{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "expired"})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRecorder(t *testing.T) {
	tests := []struct {
		role   domain.Role
		status int
	}{
		{domain.RoleAdmin, http.StatusOK},
		{domain.RoleTreasurer, http.StatusOK},
		{domain.RoleMember, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			handler := RequireRecorder(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodPost, "/", nil)
			ctx := context.WithValue(req.Context(), SessionContextKey, &domain.Session{UserID: "u", Role: tt.role})
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req.WithContext(ctx))

			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rec.Code)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		role   domain.Role
		status int
	}{
		{domain.RoleAdmin, http.StatusOK},
		{domain.RoleTreasurer, http.StatusForbidden},
		{domain.RoleMember, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			handler := RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodDelete, "/", nil)
			ctx := context.WithValue(req.Context(), SessionContextKey, &domain.Session{UserID: "u", Role: tt.role})
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req.WithContext(ctx))

			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rec.Code)
			}
		})
	}
}

func TestRequireAdmin_NoSession(t *testing.T) {
	handler := RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
