package dashclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// fakeBackend mimics the API surface the client talks to. Tokens are opaque
// strings here; the client never inspects them beyond storage.
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct{ Email, Password string }
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.Email != "owner@example.com" || req.Password != "correct-horse" {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "token-unscoped",
			"token_type":   "Bearer",
			"expires_in":   86400,
			"user":         map[string]interface{}{"id": 1, "username": "owner", "role": "merchant"},
		})
	})

	mux.HandleFunc("/auth/choose-store", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer token-unscoped" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		var req struct {
			StoreID int64 `json:"store_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.StoreID != 42 {
			http.Error(w, "not a member of this store", http.StatusForbidden)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "token-store-42",
			"token_type":   "Bearer",
			"expires_in":   86400,
			"user":         map[string]interface{}{"id": 1, "username": "owner", "role": "merchant"},
		})
	})

	mux.HandleFunc("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("/stores/mine", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": 42, "name": "Toko Berkah"},
		})
	})

	mux.HandleFunc("/points/balance", func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer token-store-") {
			http.Error(w, "no store selected", http.StatusForbidden)
			return
		}
		json.NewEncoder(w).Encode(map[string]int64{"balance": 500})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestLoginStoresToken(t *testing.T) {
	server := fakeBackend(t)
	store := NewMemoryStore()
	client := NewClient(server.URL, store, zerolog.Nop())

	sess, err := client.Login(context.Background(), "owner@example.com", "correct-horse")
	if err != nil {
		t.Fatal(err)
	}
	if sess.AccessToken != "token-unscoped" {
		t.Fatalf("unexpected token %q", sess.AccessToken)
	}
	if got, _ := store.Load(); got != "token-unscoped" {
		t.Fatalf("stored token = %q", got)
	}
}

func TestLoginFailureStoresNothing(t *testing.T) {
	server := fakeBackend(t)
	store := NewMemoryStore()
	client := NewClient(server.URL, store, zerolog.Nop())

	_, err := client.Login(context.Background(), "owner@example.com", "wrong")
	if err == nil {
		t.Fatal("expected an error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized {
		t.Fatalf("unexpected error %v", err)
	}
	if _, err := store.Load(); err != ErrNoToken {
		t.Fatalf("expected no stored token, got %v", err)
	}
}

func TestSwitchStoreReplacesTokenAndRefreshes(t *testing.T) {
	server := fakeBackend(t)
	store := NewMemoryStore()
	client := NewClient(server.URL, store, zerolog.Nop())

	var refreshed int
	client.OnSessionRefresh = func() { refreshed++ }

	if _, err := client.Login(context.Background(), "owner@example.com", "correct-horse"); err != nil {
		t.Fatal(err)
	}

	sess, err := client.SwitchStore(context.Background(), 42)
	if err != nil {
		t.Fatal(err)
	}
	if sess.AccessToken != "token-store-42" {
		t.Fatalf("unexpected token %q", sess.AccessToken)
	}
	if got, _ := store.Load(); got != "token-store-42" {
		t.Fatalf("stored token = %q, want the store-scoped one", got)
	}
	if refreshed != 1 {
		t.Fatalf("refresh hook fired %d times, want 1", refreshed)
	}

	balance, err := client.Balance(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if balance != 500 {
		t.Fatalf("balance = %d, want 500", balance)
	}
}

func TestSwitchStoreRejectedKeepsOldToken(t *testing.T) {
	server := fakeBackend(t)
	store := NewMemoryStore()
	client := NewClient(server.URL, store, zerolog.Nop())

	var refreshed int
	client.OnSessionRefresh = func() { refreshed++ }

	if _, err := client.Login(context.Background(), "owner@example.com", "correct-horse"); err != nil {
		t.Fatal(err)
	}

	if _, err := client.SwitchStore(context.Background(), 99); err == nil {
		t.Fatal("expected the switch to be rejected")
	}
	if got, _ := store.Load(); got != "token-unscoped" {
		t.Fatalf("stored token = %q, want the original kept", got)
	}
	if refreshed != 0 {
		t.Fatalf("refresh hook fired %d times on a failed switch", refreshed)
	}
}

func TestEmptyStoreListKeepsLoginSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "token-lonely",
			"token_type":   "Bearer",
		})
	})
	mux.HandleFunc("/stores/mine", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]interface{}{})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	store := NewMemoryStore()
	client := NewClient(server.URL, store, zerolog.Nop())

	if _, err := client.Login(context.Background(), "lonely@example.com", "correct-horse"); err != nil {
		t.Fatal(err)
	}
	stores, err := client.MyStores(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	// With nothing to pick, the dashboard skips the picker and carries on
	// with the login credential as-is.
	if len(stores) != 0 {
		t.Fatalf("got %d stores, want none", len(stores))
	}
	if got, _ := store.Load(); got != "token-lonely" {
		t.Fatalf("stored token = %q, want the login token untouched", got)
	}
}

func TestLogoutClearsToken(t *testing.T) {
	server := fakeBackend(t)
	store := NewMemoryStore()
	client := NewClient(server.URL, store, zerolog.Nop())

	if _, err := client.Login(context.Background(), "owner@example.com", "correct-horse"); err != nil {
		t.Fatal(err)
	}
	if err := client.Logout(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Load(); err != ErrNoToken {
		t.Fatalf("expected the token gone, got %v", err)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := t.TempDir() + "/token"
	store := NewFileStore(path)

	if _, err := store.Load(); err != ErrNoToken {
		t.Fatalf("fresh store: %v", err)
	}
	if err := store.Save("abc"); err != nil {
		t.Fatal(err)
	}
	if got, err := store.Load(); err != nil || got != "abc" {
		t.Fatalf("load = %q, %v", got, err)
	}
	if err := store.Clear(); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Load(); err != ErrNoToken {
		t.Fatalf("after clear: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("double clear: %v", err)
	}
}
