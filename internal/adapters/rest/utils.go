package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/domain"
)

// WriteJSONError отправляет JSON-ответ с полем "error" и заданным статусом
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, map[string]string{"error": message})
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	w.Write(response)
}

// statusForError: ошибки ввода и конфликт id -> 400, нет объявления -> 404, остальное -> 500
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrListingExists):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrListingNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// listingsOrEmpty не дает nil-срезу уйти в JSON как null
func listingsOrEmpty(listings []domain.DisplayListing) []domain.DisplayListing {
	if listings == nil {
		return []domain.DisplayListing{}
	}
	return listings
}
