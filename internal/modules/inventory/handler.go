package inventory

import (
	"encoding/json"
	"errors"
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
	router.Get("/inventory", h.list)
	router.Get("/inventory/{productID}", h.getStock)
	router.Post("/inventory/adjust", h.adjust)
	router.Post("/inventory/import", h.importQuantities)
	router.Get("/inventory/logs", h.logs)
}

func scope(w http.ResponseWriter, r *http.Request) (identity.Identity, bool) {
	id, ok := identity.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return identity.Identity{}, false
	}
	if id.StoreID == 0 {
		http.Error(w, "no store selected", http.StatusForbidden)
		return identity.Identity{}, false
	}
	return id, true
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	id, ok := scope(w, r)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	stocks, err := h.service.ListStock(r.Context(), id.StoreID, page, limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stocks)
}

func (h *Handler) getStock(w http.ResponseWriter, r *http.Request) {
	id, ok := scope(w, r)
	if !ok {
		return
	}
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	stock, err := h.service.GetStock(r.Context(), id.StoreID, productID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stock)
}

func (h *Handler) adjust(w http.ResponseWriter, r *http.Request) {
	id, ok := scope(w, r)
	if !ok {
		return
	}
	var req AdjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.service.Adjust(r.Context(), id.StoreID, id.UserID, req); err != nil {
		if errors.Is(err, ErrStockBelowZero) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) importQuantities(w http.ResponseWriter, r *http.Request) {
	id, ok := scope(w, r)
	if !ok {
		return
	}
	var req struct {
		Rows []QuantityRow `json:"rows"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	okCount, failed, err := h.service.ImportQuantities(r.Context(), id.StoreID, id.UserID, req.Rows)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"succeeded": okCount, "failed": failed})
}

func (h *Handler) logs(w http.ResponseWriter, r *http.Request) {
	id, ok := scope(w, r)
	if !ok {
		return
	}
	productID, _ := strconv.ParseInt(r.URL.Query().Get("product_id"), 10, 64)
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	logs, err := h.service.Logs(r.Context(), id.StoreID, productID, page, limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(logs)
}
