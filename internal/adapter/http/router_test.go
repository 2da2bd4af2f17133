package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tindi/chamaledger/internal/adapter/http/handler"
	apimiddleware "github.com/tindi/chamaledger/internal/adapter/http/middleware"
	"github.com/tindi/chamaledger/internal/domain"
	"github.com/tindi/chamaledger/internal/usecase"
)

type stubAuthenticator struct {
	sessions map[string]*domain.Session
}

func (a *stubAuthenticator) Authenticate(ctx context.Context, token string) (*domain.Session, error) {
	if session, ok := a.sessions[token]; ok {
		return session, nil
	}
	return nil, domain.ErrUnauthenticated
}

type stubMemberService struct{}

func (s *stubMemberService) CreateMember(ctx context.Context, input usecase.CreateMemberInput) (*domain.Member, error) {
	return &domain.Member{ID: "mem-1", FullName: input.FullName, Status: domain.MemberActive}, nil
}

func (s *stubMemberService) GetMember(ctx context.Context, id string) (*domain.Member, error) {
	return &domain.Member{ID: id, Status: domain.MemberActive}, nil
}

func (s *stubMemberService) UpdateMember(ctx context.Context, input usecase.UpdateMemberInput) (*domain.Member, error) {
	return &domain.Member{ID: input.ID, Status: domain.MemberActive}, nil
}

func (s *stubMemberService) ListMembers(ctx context.Context, input usecase.ListMembersInput) ([]*domain.Member, error) {
	return nil, nil
}

func newRouterConfig(overrides ...func(*RouterConfig)) RouterConfig {
	cfg := RouterConfig{
		MemberHandler: handler.NewMemberHandler(&stubMemberService{}),
		HealthHandler: handler.NewHealthHandler(nil, nil),
		Authenticator: &stubAuthenticator{sessions: map[string]*domain.Session{
			"admin-token":  {UserID: "user-1", Role: domain.RoleAdmin},
			"member-token": {UserID: "user-2", Role: domain.RoleMember},
		}},
	}

	for _, override := range overrides {
		override(&cfg)
	}

	return cfg
}

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_APIRequiresSession(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/members/", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session cookie, got %d", rec.Code)
	}
}

func TestNewRouter_SessionCookieGrantsAccess(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/members/mem-1", nil)
	req.AddCookie(&http.Cookie{Name: apimiddleware.SessionCookieName, Value: "admin-token"})
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with session cookie, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestNewRouter_MemberRoleCannotCreateMembers(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/members/", strings.NewReader(`{"full_name":"X Y","phone":"+254700000000"}`))
	req.AddCookie(&http.Cookie{Name: apimiddleware.SessionCookieName, Value: "member-token"})
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for member role, got %d", rec.Code)
	}
}

func TestNewRouter_MetricsEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /metrics to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}
