package controller

import (
	"errors"
	"net/http"

	"github.com/marketjoys/AutomatedResponder/internal/apperrors"
)

// writeServiceError maps service errors onto HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case apperrors.IsNotFound(err):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, apperrors.ErrCampaignAlreadyActive):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, apperrors.ErrQueueFull):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	case errors.Is(err, apperrors.ErrAudienceResolve):
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
