package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/folioforge/folioforge/internal/api/middleware"
	"github.com/folioforge/folioforge/internal/api/response"
	"github.com/folioforge/folioforge/internal/api/validation"
	"github.com/folioforge/folioforge/internal/portfolio"
)

// createPortfolioRequest is the request body for POST /portfolios.
type createPortfolioRequest struct {
	Title string          `json:"title"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// updatePortfolioRequest is the request body for PATCH /portfolios/{id}.
type updatePortfolioRequest struct {
	Title    *string         `json:"title,omitempty"`
	Data     json.RawMessage `json:"data,omitempty"`
	IsPublic *bool           `json:"isPublic,omitempty"`
}

// reserveSlugRequest is the request body for POST /portfolios/{id}/slug.
type reserveSlugRequest struct {
	Slug string `json:"slug"`
}

// portfolioResponse is the API representation of a portfolio record.
type portfolioResponse struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Data      json.RawMessage `json:"data"`
	Slug      *string         `json:"slug"`
	IsPublic  bool            `json:"isPublic"`
	URL       string          `json:"url,omitempty"`
	CreatedAt string          `json:"createdAt"`
	UpdatedAt string          `json:"updatedAt"`
}

// allocationResponse is returned by a successful slug claim.
type allocationResponse struct {
	Slug      string            `json:"slug"`
	URL       string            `json:"url"`
	Portfolio portfolioResponse `json:"portfolio"`
}

// PortfolioHandler handles portfolio CRUD and publishing endpoints.
type PortfolioHandler struct {
	repo      portfolio.Repository
	allocator *portfolio.Allocator
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(repo portfolio.Repository, allocator *portfolio.Allocator) *PortfolioHandler {
	return &PortfolioHandler{
		repo:      repo,
		allocator: allocator,
	}
}

func (h *PortfolioHandler) toResponse(p *portfolio.Portfolio) portfolioResponse {
	resp := portfolioResponse{
		ID:        p.ID.String(),
		Title:     p.Title,
		Data:      json.RawMessage(p.Data),
		Slug:      p.Slug,
		IsPublic:  p.IsPublic,
		CreatedAt: p.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		UpdatedAt: p.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
	if p.Slug != nil {
		resp.URL = h.allocator.PublicURL(*p.Slug)
	}
	return resp
}

// ownerID resolves the authenticated identity to an owner UUID. A token
// whose identity claim is not a UUID cannot own any resource here.
func ownerID(r *http.Request) (uuid.UUID, bool) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		return uuid.UUID{}, false
	}
	id, err := uuid.Parse(identity.UserID)
	if err != nil {
		return uuid.UUID{}, false
	}
	return id, true
}

// Create handles POST /portfolios.
func (h *PortfolioHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	owner, ok := ownerID(r)
	if !ok {
		response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", requestID)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit
	var req createPortfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	req.Title = strings.TrimSpace(req.Title)

	fieldErrors := validation.ValidateCreatePortfolioRequest(validation.CreatePortfolioRequest{
		Title: req.Title,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	p := &portfolio.Portfolio{
		OwnerID: owner,
		Title:   req.Title,
		Data:    req.Data,
	}

	if err := h.repo.Create(r.Context(), p); err != nil {
		slog.Error("failed to create portfolio", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create portfolio", requestID)
		return
	}

	response.Success(w, http.StatusCreated, h.toResponse(p), requestID)
}

// List handles GET /portfolios.
func (h *PortfolioHandler) List(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	owner, ok := ownerID(r)
	if !ok {
		response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", requestID)
		return
	}

	filter := portfolio.ListFilter{
		OwnerID: owner,
		Page:    1,
		Limit:   20,
	}

	if v := r.URL.Query().Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			response.Err(w, http.StatusBadRequest, "INVALID_PARAM", "page must be a positive integer", requestID)
			return
		}
		filter.Page = page
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			response.Err(w, http.StatusBadRequest, "INVALID_PARAM", "limit must be a positive integer", requestID)
			return
		}
		filter.Limit = limit
	}

	result, err := h.repo.List(r.Context(), filter)
	if err != nil {
		slog.Error("failed to list portfolios", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list portfolios", requestID)
		return
	}

	items := make([]portfolioResponse, 0, len(result.Portfolios))
	for i := range result.Portfolios {
		items = append(items, h.toResponse(&result.Portfolios[i]))
	}

	response.SuccessList(w, http.StatusOK, items, result.Total, result.Page, result.Limit, requestID)
}

// getOwned resolves {id} and loads the portfolio, answering 404 for both
// missing and non-owned records so existence is never disclosed.
func (h *PortfolioHandler) getOwned(w http.ResponseWriter, r *http.Request) (*portfolio.Portfolio, bool) {
	requestID := middleware.GetRequestID(r.Context())

	owner, ok := ownerID(r)
	if !ok {
		response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", requestID)
		return nil, false
	}

	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return nil, false
	}

	p, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, portfolio.ErrNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Portfolio not found", requestID)
			return nil, false
		}
		slog.Error("failed to get portfolio", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get portfolio", requestID)
		return nil, false
	}

	if p.OwnerID != owner {
		response.Err(w, http.StatusNotFound, "NOT_FOUND", "Portfolio not found", requestID)
		return nil, false
	}

	return p, true
}

// GetByID handles GET /portfolios/{id}.
func (h *PortfolioHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	p, ok := h.getOwned(w, r)
	if !ok {
		return
	}

	response.Success(w, http.StatusOK, h.toResponse(p), requestID)
}

// Update handles PATCH /portfolios/{id}.
func (h *PortfolioHandler) Update(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	p, ok := h.getOwned(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit
	var req updatePortfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		fieldErrors := validation.ValidateCreatePortfolioRequest(validation.CreatePortfolioRequest{
			Title: title,
		})
		if len(fieldErrors) > 0 {
			response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
			return
		}
		req.Title = &title
	}

	updated, err := h.repo.Update(r.Context(), p.ID, portfolio.UpdateFields{
		Title:    req.Title,
		Data:     req.Data,
		IsPublic: req.IsPublic,
	})
	if err != nil {
		if errors.Is(err, portfolio.ErrNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Portfolio not found", requestID)
			return
		}
		slog.Error("failed to update portfolio", "error", err, "id", p.ID)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update portfolio", requestID)
		return
	}

	response.Success(w, http.StatusOK, h.toResponse(updated), requestID)
}

// Delete handles DELETE /portfolios/{id}.
func (h *PortfolioHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	p, ok := h.getOwned(w, r)
	if !ok {
		return
	}

	if err := h.repo.Delete(r.Context(), p.ID); err != nil {
		if errors.Is(err, portfolio.ErrNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Portfolio not found", requestID)
			return
		}
		slog.Error("failed to delete portfolio", "error", err, "id", p.ID)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete portfolio", requestID)
		return
	}

	response.NoContent(w)
}

// ReserveSlug handles POST /portfolios/{id}/slug.
func (h *PortfolioHandler) ReserveSlug(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", requestID)
		return
	}

	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit
	var req reserveSlugRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	allocation, err := h.allocator.Reserve(r.Context(), req.Slug, id, identity.UserID)
	if err != nil {
		switch {
		case errors.Is(err, portfolio.ErrInvalidSlug):
			response.Err(w, http.StatusBadRequest, "INVALID_SLUG", "Slug may only contain lowercase letters, digits and hyphens", requestID)
		case errors.Is(err, portfolio.ErrNotFound):
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Portfolio not found", requestID)
		case errors.Is(err, portfolio.ErrSlugTaken):
			response.Err(w, http.StatusConflict, "SLUG_TAKEN", "This URL is already taken, please try a different one", requestID)
		default:
			slog.Error("failed to reserve slug", "error", err, "id", id)
			response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to reserve slug", requestID)
		}
		return
	}

	response.Success(w, http.StatusOK, allocationResponse{
		Slug:      allocation.Slug,
		URL:       allocation.FullURL,
		Portfolio: h.toResponse(allocation.Portfolio),
	}, requestID)
}

// CheckAvailability handles GET /slugs/{slug}/availability.
func (h *PortfolioHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	candidate := chi.URLParam(r, "slug")

	availability, err := h.allocator.CheckAvailability(r.Context(), candidate)
	if err != nil {
		slog.Error("failed to check slug availability", "error", err, "slug", candidate)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to check availability", requestID)
		return
	}

	response.Success(w, http.StatusOK, availability, requestID)
}

// PublicBySlug handles GET /p/{slug}. It resolves a published portfolio by
// its custom URL; private or unknown slugs answer the same 404.
func (h *PortfolioHandler) PublicBySlug(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	slug := chi.URLParam(r, "slug")
	if !portfolio.ValidSlug(slug) {
		response.Err(w, http.StatusNotFound, "NOT_FOUND", "Portfolio not found", requestID)
		return
	}

	p, err := h.repo.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, portfolio.ErrNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Portfolio not found", requestID)
			return
		}
		slog.Error("failed to resolve public portfolio", "error", err, "slug", slug)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load portfolio", requestID)
		return
	}

	if !p.IsPublic {
		response.Err(w, http.StatusNotFound, "NOT_FOUND", "Portfolio not found", requestID)
		return
	}

	response.Success(w, http.StatusOK, h.toResponse(p), requestID)
}
