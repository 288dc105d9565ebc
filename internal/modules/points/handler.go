package points

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/bramantyo/ombot-backend/internal/identity"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Get("/points/balance", h.balance)
	router.Get("/points/histories", h.histories)
}

// requireStore resolves the store scope from the verified token claim. A
// token without a store claim must never reach store-scoped data.
func requireStore(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := identity.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return 0, false
	}
	if id.StoreID == 0 {
		http.Error(w, "no store selected", http.StatusForbidden)
		return 0, false
	}
	return id.StoreID, true
}

func (h *Handler) balance(w http.ResponseWriter, r *http.Request) {
	storeID, ok := requireStore(w, r)
	if !ok {
		return
	}
	balance, err := h.service.Balance(r.Context(), storeID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int64{"balance": balance})
}

func (h *Handler) histories(w http.ResponseWriter, r *http.Request) {
	storeID, ok := requireStore(w, r)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	history, err := h.service.History(r.Context(), storeID, page, limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(history)
}
