package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/minhhoangvu/catalog-service/internal/apperr"
	"github.com/minhhoangvu/catalog-service/internal/http/apierr"
	"github.com/minhhoangvu/catalog-service/pkg/validator"
)

// responder centralizes JSON/error writing so every handler surfaces the
// same error shape and logging behavior.
type responder struct {
	logger *slog.Logger
}

func (rp responder) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if v == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(v); err != nil {
		rp.logger.ErrorContext(r.Context(), "error encoding response",
			slog.Any("error", err))
	}
}

func (rp responder) writeError(w http.ResponseWriter, r *http.Request, err error) {
	res := apierr.New(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.StatusCode)

	logLevel := slog.LevelInfo
	if res.StatusCode >= 500 {
		logLevel = slog.LevelError
	} else if res.StatusCode >= 400 {
		logLevel = slog.LevelWarn
	}
	rp.logger.Log(r.Context(), logLevel, "http response error", slog.Any("error", err))

	if err := json.NewEncoder(w).Encode(res); err != nil {
		rp.logger.ErrorContext(r.Context(), "error encoding error response",
			slog.Any("error", err))
	}
}

// decodeJSON decodes the request body into v and runs the shape validator.
// Decode failures and shape violations surface as validation errors; the
// semantic checks stay in the service layer.
func decodeJSON(r *http.Request, v any, validate validator.Validator) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.ValidationErr.WrapParent(fmt.Errorf("decode request body: %w", err))
	}

	if validate != nil {
		if err := validate.Validate(v); err != nil {
			return err
		}
	}

	return nil
}
