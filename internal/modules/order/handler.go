package order

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/bramantyo/ombot-backend/internal/identity"
	"github.com/bramantyo/ombot-backend/internal/modules/points"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Get("/orders", h.list)
	router.Get("/orders/export", h.export)
	router.Get("/orders/{id}", h.get)
	router.Post("/orders", h.create)
	router.Patch("/orders/{id}/status", h.updateStatus)
}

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

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	storeID, ok := requireStore(w, r)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	status := Status(r.URL.Query().Get("status"))

	orders, err := h.service.List(r.Context(), storeID, status, page, limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(orders)
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	storeID, ok := requireStore(w, r)
	if !ok {
		return
	}
	status := Status(r.URL.Query().Get("status"))

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="orders.csv"`)
	if err := h.service.ExportCSV(r.Context(), w, storeID, status); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	storeID, ok := requireStore(w, r)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}
	o, err := h.service.Get(r.Context(), storeID, id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(o)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	storeID, ok := requireStore(w, r)
	if !ok {
		return
	}
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	o, err := h.service.Create(r.Context(), storeID, req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(o)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	storeID, ok := requireStore(w, r)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	o, err := h.service.UpdateStatus(r.Context(), storeID, id, Status(req.Status))
	if err != nil {
		if errors.Is(err, points.ErrInsufficientPoints) {
			http.Error(w, err.Error(), http.StatusPaymentRequired)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(o)
}
