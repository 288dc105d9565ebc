package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bramantyo/ombot-backend/internal/identity"
	"github.com/bramantyo/ombot-backend/internal/modules/user"
)

func TestMiddleware(t *testing.T) {
	svc, users, _ := newAuthService(t)
	users.add(&user.User{ID: 1, Email: "owner@example.com",
		Role: user.RoleMerchant, Status: user.StatusActive}, "pw-12345678")

	resp, err := svc.Login(context.Background(), "owner@example.com", "pw-12345678")
	if err != nil {
		t.Fatal(err)
	}

	var gotIdentity *identity.Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := identity.FromContext(r.Context()); ok {
			gotIdentity = &id
		}
		w.WriteHeader(http.StatusOK)
	})
	handler := Middleware(svc, "/auth/login")(next)

	t.Run("public path passes without a token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/login", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("missing token rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/points/balance", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("malformed header rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/points/balance", nil)
		req.Header.Set("Authorization", "Basic abc")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("valid token attaches identity", func(t *testing.T) {
		gotIdentity = nil
		req := httptest.NewRequest(http.MethodGet, "/points/balance", nil)
		req.Header.Set("Authorization", "Bearer "+resp.AccessToken)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if gotIdentity == nil || gotIdentity.UserID != 1 {
			t.Fatalf("identity = %+v", gotIdentity)
		}
	})

	t.Run("expired token rejected", func(t *testing.T) {
		impl := svc.(*service)
		old := impl.now
		impl.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		defer func() { impl.now = old }()

		req := httptest.NewRequest(http.MethodGet, "/points/balance", nil)
		req.Header.Set("Authorization", "Bearer "+resp.AccessToken)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})
}
