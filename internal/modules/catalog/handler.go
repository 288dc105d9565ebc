package catalog

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
	router.Get("/catalog/products", h.listProducts)
	router.Post("/catalog/products", h.createProduct)
	router.Get("/catalog/products/{id}", h.getProduct)
	router.Put("/catalog/products/{id}", h.updateProduct)
	router.Delete("/catalog/products/{id}", h.deleteProduct)

	router.Get("/catalog/attributes", h.listAttributes)
	router.Post("/catalog/attributes", h.createAttribute)
	router.Put("/catalog/attributes/{id}", h.updateAttribute)
	router.Delete("/catalog/attributes/{id}", h.deleteAttribute)

	router.Post("/catalog/import", h.importProducts)
	router.Get("/catalog/import/history", h.importHistory)
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

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	storeID, ok := requireStore(w, r)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	search := r.URL.Query().Get("search")

	products, err := h.service.ListProducts(r.Context(), storeID, search, page, limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	storeID, ok := requireStore(w, r)
	if !ok {
		return
	}
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	p, err := h.service.CreateProduct(r.Context(), storeID, req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	storeID, ok := requireStore(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, err := h.service.GetProduct(r.Context(), storeID, id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	storeID, ok := requireStore(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	p, err := h.service.UpdateProduct(r.Context(), storeID, id, req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	storeID, ok := requireStore(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteProduct(r.Context(), storeID, id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listAttributes(w http.ResponseWriter, r *http.Request) {
	storeID, ok := requireStore(w, r)
	if !ok {
		return
	}
	attrs, err := h.service.ListAttributes(r.Context(), storeID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if attrs == nil {
		attrs = []*Attribute{}
	}
	writeJSON(w, http.StatusOK, attrs)
}

func (h *Handler) createAttribute(w http.ResponseWriter, r *http.Request) {
	storeID, ok := requireStore(w, r)
	if !ok {
		return
	}
	var req AttributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	a, err := h.service.CreateAttribute(r.Context(), storeID, req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (h *Handler) updateAttribute(w http.ResponseWriter, r *http.Request) {
	storeID, ok := requireStore(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req AttributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	a, err := h.service.UpdateAttribute(r.Context(), storeID, id, req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *Handler) deleteAttribute(w http.ResponseWriter, r *http.Request) {
	storeID, ok := requireStore(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteAttribute(r.Context(), storeID, id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) importProducts(w http.ResponseWriter, r *http.Request) {
	storeID, ok := requireStore(w, r)
	if !ok {
		return
	}
	var req struct {
		Filename string      `json:"filename,omitempty"`
		Rows     []ImportRow `json:"rows"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	batch, err := h.service.ImportProducts(r.Context(), storeID, req.Filename, req.Rows)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, batch)
}

func (h *Handler) importHistory(w http.ResponseWriter, r *http.Request) {
	storeID, ok := requireStore(w, r)
	if !ok {
		return
	}
	batches, err := h.service.ImportHistory(r.Context(), storeID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if batches == nil {
		batches = []*ImportBatch{}
	}
	writeJSON(w, http.StatusOK, batches)
}
