package rest

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/contextkeys"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/contracts"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/domain"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/port"
	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

// HealthChecker - то, что проверяет /health
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// APIHandler обслуживает JSON API под /api
type APIHandler struct {
	uc     ListingUseCases
	health HealthChecker
}

func NewAPIHandler(uc ListingUseCases, health HealthChecker) *APIHandler {
	return &APIHandler{uc: uc, health: health}
}

// writeUseCaseError переводит ошибку use case в JSON-ответ
func writeUseCaseError(w http.ResponseWriter, logger port.LoggerPort, err error, failure string) {
	status := statusForError(err)
	switch {
	case errors.Is(err, domain.ErrListingNotFound):
		WriteJSONError(w, status, "Listing not found")
	case status == http.StatusInternalServerError:
		logger.Error("Use case failed", err, nil)
		WriteJSONError(w, status, failure)
	default:
		WriteJSONError(w, status, err.Error())
	}
}

// readValidatedBody читает тело и проверяет его по JSON-схеме объявления
func readValidatedBody(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, domain.NewValidationError("Failed to read request body")
	}
	doc, err := contracts.Validate(contracts.ListingPayloadV1, body)
	if err != nil {
		return nil, domain.NewValidationError("%s", err.Error())
	}
	return doc, nil
}

// ListListings обрабатывает GET /api/listings
func (h *APIHandler) ListListings(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListListings"})

	listings, err := h.uc.List.Execute(r.Context())
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to retrieve listings")
		return
	}
	RespondWithJSON(w, http.StatusOK, listingsOrEmpty(listings))
}

// GetListing обрабатывает GET /api/listing/{id}
func (h *APIHandler) GetListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetListing", "listing_id": id})

	listing, err := h.uc.Get.Execute(r.Context(), id)
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to retrieve listing")
		return
	}
	RespondWithJSON(w, http.StatusOK, listing)
}

// CreateListing обрабатывает POST /api/listings
func (h *APIHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateListing"})

	doc, err := readValidatedBody(w, r)
	if err != nil {
		logger.Warn("Invalid request body", port.Fields{"reason": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.uc.Create.Execute(r.Context(), domain.DisplayFromDocument(doc))
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to create listing")
		return
	}
	RespondWithJSON(w, http.StatusCreated, created)
}

// UpdateListing обрабатывает PUT /api/listings/{id}
func (h *APIHandler) UpdateListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateListing", "listing_id": id})

	doc, err := readValidatedBody(w, r)
	if err != nil {
		logger.Warn("Invalid request body", port.Fields{"reason": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	patch, err := domain.PatchFromDocument(doc)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.uc.Update.Execute(r.Context(), id, patch)
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to update listing")
		return
	}
	RespondWithJSON(w, http.StatusOK, updated)
}

// DeleteListing обрабатывает DELETE /api/listings/{id}
func (h *APIHandler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "DeleteListing", "listing_id": id})

	if err := h.uc.Delete.Execute(r.Context(), id); err != nil {
		writeUseCaseError(w, logger, err, "Failed to delete listing")
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Listing deleted successfully"})
}

// Health обрабатывает GET /health
func (h *APIHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.health.Ping(r.Context()); err != nil {
		contextkeys.LoggerFromContext(r.Context()).Error("Health check failed", err, nil)
		WriteJSONError(w, http.StatusServiceUnavailable, "storage unavailable")
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
