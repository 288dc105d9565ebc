package settings

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
	router.Get("/settings/smtp", h.getSMTP)
	router.Put("/settings/smtp", h.upsertSMTP)
	router.Post("/settings/smtp/test", h.testSMTP)
	router.Get("/settings/emails", h.emailHistory)
	router.Post("/settings/emails/{id}/resend", h.resendEmail)
	router.Get("/settings/app", h.appSettings)
	router.Put("/settings/app", h.updateAppSettings)
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

func (h *Handler) getSMTP(w http.ResponseWriter, r *http.Request) {
	storeID, ok := requireStore(w, r)
	if !ok {
		return
	}
	cfg, err := h.service.GetSMTP(r.Context(), storeID)
	if err != nil {
		http.Error(w, "smtp settings not configured", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cfg)
}

func (h *Handler) upsertSMTP(w http.ResponseWriter, r *http.Request) {
	storeID, ok := requireStore(w, r)
	if !ok {
		return
	}
	var req UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	cfg, err := h.service.UpsertSMTP(r.Context(), storeID, req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cfg)
}

func (h *Handler) testSMTP(w http.ResponseWriter, r *http.Request) {
	storeID, ok := requireStore(w, r)
	if !ok {
		return
	}
	if err := h.service.TestSMTP(r.Context(), storeID); err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

func (h *Handler) emailHistory(w http.ResponseWriter, r *http.Request) {
	storeID, ok := requireStore(w, r)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := h.service.EmailHistory(r.Context(), storeID, page, limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

func (h *Handler) resendEmail(w http.ResponseWriter, r *http.Request) {
	storeID, ok := requireStore(w, r)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := h.service.ResendEmail(r.Context(), storeID, id); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// appSettings is readable by any authenticated principal: the dashboard
// needs the widget client key before opening checkout.
func (h *Handler) appSettings(w http.ResponseWriter, r *http.Request) {
	if _, ok := identity.FromContext(r.Context()); !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	settings, err := h.service.AppSettings(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(settings)
}

func (h *Handler) updateAppSettings(w http.ResponseWriter, r *http.Request) {
	id, ok := identity.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	if !id.IsAdmin() {
		http.Error(w, "admin access required", http.StatusForbidden)
		return
	}
	var req AppSettings
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.service.UpdateAppSettings(r.Context(), req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
