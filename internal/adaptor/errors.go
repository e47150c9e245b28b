package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"ecommerce-rbac/internal/usecase"
	"ecommerce-rbac/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// handleServiceError maps a usecase error onto one response. Internal
// causes are logged here and never reach the client.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	message := "Internal Server Error"
	var fields map[string]string

	var svcErr *usecase.Error
	if errors.As(err, &svcErr) {
		message = svcErr.Message
		fields = svcErr.Fields
	}

	switch {
	case errors.Is(err, usecase.ErrValidation):
		log.Warn(operation+" failed - validation", zap.Any("errors", fields))
		utils.ResponseBadRequest(w, message, fields)

	case errors.Is(err, usecase.ErrBadRequest),
		errors.Is(err, usecase.ErrConflict),
		errors.Is(err, usecase.ErrExpired),
		errors.Is(err, usecase.ErrInvalidCode):
		log.Warn(operation+" failed - bad request", zap.String("reason", message))
		utils.ResponseBadRequest(w, message, nil)

	case errors.Is(err, usecase.ErrUnauthenticated):
		utils.ResponseUnauthorized(w, message)

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.String("reason", message))
		utils.ResponseForbidden(w, message)

	case errors.Is(err, usecase.ErrNotFound):
		log.Debug(operation+" failed - not found", zap.String("reason", message))
		utils.ResponseNotFound(w, message)

	case errors.Is(err, usecase.ErrTooManyRequests):
		log.Warn(operation+" failed - throttled")
		utils.ResponseTooManyRequests(w, message)

	default:
		log.Error(operation+" failed - internal error",
			zap.Error(err),
			zap.String("operation", operation),
		)
		utils.ResponseInternalError(w, message)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

// pathID reads the {id} route param. A malformed id is answered with 400.
func pathID(w http.ResponseWriter, r *http.Request, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid "+resource+" id", nil)
		return uuid.Nil, false
	}
	return id, true
}

func callerIdentity(w http.ResponseWriter, r *http.Request) (*utils.Identity, bool) {
	identity, ok := utils.GetIdentity(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Please login first")
		return nil, false
	}
	return identity, true
}
