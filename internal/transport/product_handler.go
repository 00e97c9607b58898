package transport

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"catalog-desk/internal/catalog"
	"catalog-desk/internal/debounce"
	"catalog-desk/internal/domain"
	"catalog-desk/internal/filter"
	"catalog-desk/internal/middleware"
	"catalog-desk/internal/validation"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateProductRequest carries a draft exactly as typed into a form: every
// field a raw string, validated by the validation package rather than by
// struct tags.
type CreateProductRequest struct {
	Name        string `json:"name"`
	Price       string `json:"price"`
	Category    string `json:"category"`
	Stock       string `json:"stock"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// UpdateProductRequest is a partial draft; absent fields keep their value.
type UpdateProductRequest struct {
	Name        *string `json:"name"`
	Price       *string `json:"price"`
	Category    *string `json:"category"`
	Stock       *string `json:"stock"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
}

// BulkDeleteRequest names the products to remove in one call
type BulkDeleteRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}

// ListResponse is the collection view the dashboard renders
type ListResponse struct {
	Products      []domain.Product `json:"products"`
	Total         int              `json:"total"`
	ActiveFilters int              `json:"active_filters"`
	CanUndo       bool             `json:"can_undo"`
}

// ProductHandler handles HTTP requests for catalog operations
type ProductHandler struct {
	catalog       *catalog.Catalog
	logger        *zap.Logger
	debounceDelay time.Duration
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(c *catalog.Catalog, logger *zap.Logger, debounceDelay time.Duration) *ProductHandler {
	if debounceDelay <= 0 {
		debounceDelay = domain.DebounceDelay
	}
	return &ProductHandler{
		catalog:       c,
		logger:        logger,
		debounceDelay: debounceDelay,
	}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/changes", h.Changes)
		r.Post("/bulk-delete", h.BulkDelete)
		r.Post("/undo", h.Undo)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
	r.Get("/api/categories", h.Categories)
}

// Categories returns the fixed category set and filter constants the
// dashboard builds its controls from
func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"categories":          domain.Categories,
		"stock_statuses":      []domain.StockStatus{domain.StockStatusAll, domain.StockStatusIn, domain.StockStatusOut, domain.StockStatusLow},
		"low_stock_threshold": domain.LowStockThreshold,
	})
}

// List returns the collection, filtered when query parameters are present
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := domain.Filters{
		Search:      q.Get("search"),
		Category:    q.Get("category"),
		MinPrice:    q.Get("min_price"),
		MaxPrice:    q.Get("max_price"),
		StockStatus: domain.StockStatus(q.Get("stock_status")),
	}

	products := filter.Apply(h.catalog.Products(), filters)
	middleware.RespondWithJSON(w, http.StatusOK, ListResponse{
		Products:      products,
		Total:         len(products),
		ActiveFilters: filter.ActiveCount(filters),
		CanUndo:       h.catalog.CanUndo(),
	})
}

// Create validates the draft and adds it to the catalog
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := validation.FormInput(req)
	if errs := validation.ValidateDraft(input); len(errs) > 0 {
		h.logger.Debug("Draft validation failed", zap.Int("fields", len(errs)))
		middleware.RespondWithFieldErrors(w, errs)
		return
	}

	product := h.catalog.Add(validation.ParseDraft(input))
	h.logger.Info("Product created", zap.String("product_id", product.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// Update patches an existing product. The catalog itself treats an unknown
// ID as a no-op; the API maps that silence to a 404 for callers.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	existing, ok := h.findProduct(id)
	if !ok {
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		return
	}

	// Validate the would-be result: the stored product rendered back to form
	// input, overlaid with the supplied fields.
	input := formInputFor(existing)
	overlay(&input, req)
	if errs := validation.ValidateDraft(input); len(errs) > 0 {
		middleware.RespondWithFieldErrors(w, errs)
		return
	}

	updated, ok := h.catalog.Update(id, patchFrom(req))
	if !ok {
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		return
	}

	h.logger.Info("Product updated", zap.String("product_id", id))
	middleware.RespondWithJSON(w, http.StatusOK, updated)
}

// Delete removes a product. Deletion is idempotent: an unknown ID still
// returns 204.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.catalog.Delete(id)
	h.logger.Info("Product deleted", zap.String("product_id", id))
	w.WriteHeader(http.StatusNoContent)
}

// BulkDelete removes every listed product in a single transition
func (h *ProductHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req BulkDeleteRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if fields := middleware.FormatValidationErrors(err); len(fields) > 0 {
			middleware.RespondWithFieldErrors(w, fields)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.catalog.DeleteMultiple(req.IDs)
	h.logger.Info("Products deleted", zap.Int("requested", len(req.IDs)))
	w.WriteHeader(http.StatusNoContent)
}

// Undo restores the most recently deleted product
func (h *ProductHandler) Undo(w http.ResponseWriter, r *http.Request) {
	restored, ok := h.catalog.Undo()
	if !ok {
		middleware.RespondWithError(w, http.StatusConflict, "nothing to undo")
		return
	}

	h.logger.Info("Product restored", zap.String("product_id", restored.ID))
	middleware.RespondWithJSON(w, http.StatusOK, restored)
}

// Changes streams collection snapshots over SSE. Bursts of mutations are
// collapsed through the debouncer so clients see one event per quiet period.
func (h *ProductHandler) Changes(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	updates := make(chan []domain.Product, 1)
	push := func(products []domain.Product) {
		// Keep only the newest snapshot if the client is slow
		select {
		case updates <- products:
		default:
			select {
			case <-updates:
			default:
			}
			updates <- products
		}
	}

	d := debounce.New(h.debounceDelay, push)
	defer d.Stop()
	unsubscribe := h.catalog.Subscribe(d.Set)
	defer unsubscribe()

	writeEvent(w, h.catalog.Products())
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case products := <-updates:
			writeEvent(w, products)
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, products []domain.Product) {
	payload, err := json.Marshal(products)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "data: %s\n\n", payload)
}

func (h *ProductHandler) findProduct(id string) (domain.Product, bool) {
	for _, p := range h.catalog.Products() {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

func formInputFor(p domain.Product) validation.FormInput {
	return validation.FormInput{
		Name:        p.Name,
		Price:       strconv.FormatFloat(p.Price, 'f', -1, 64),
		Category:    p.Category,
		Stock:       strconv.Itoa(p.Stock),
		Description: p.Description,
		ImageURL:    p.ImageURL,
	}
}

func overlay(input *validation.FormInput, req UpdateProductRequest) {
	if req.Name != nil {
		input.Name = *req.Name
	}
	if req.Price != nil {
		input.Price = *req.Price
	}
	if req.Category != nil {
		input.Category = *req.Category
	}
	if req.Stock != nil {
		input.Stock = *req.Stock
	}
	if req.Description != nil {
		input.Description = *req.Description
	}
	if req.ImageURL != nil {
		input.ImageURL = *req.ImageURL
	}
}

func patchFrom(req UpdateProductRequest) domain.Patch {
	patch := domain.Patch{
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		patch.Name = &name
	}
	if req.Category != nil {
		category := strings.TrimSpace(*req.Category)
		patch.Category = &category
	}
	if req.Price != nil {
		price, _ := strconv.ParseFloat(*req.Price, 64)
		patch.Price = &price
	}
	if req.Stock != nil {
		parsed, _ := strconv.ParseFloat(*req.Stock, 64)
		stock := int(math.Trunc(parsed))
		patch.Stock = &stock
	}
	return patch
}
