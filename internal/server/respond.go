package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/singme/internal/services"
	"github.com/desertthunder/singme/internal/validation"
	"github.com/goccy/go-json"
)

const typeValidation = "validation"

type errorBody struct {
	Type    string                  `json:"type"`
	Message string                  `json:"message"`
	Fields  []validation.FieldError `json:"fields,omitempty"`
}

// writeJSON sends v as the JSON body with status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// respondError maps err to a status code and error body.
func respondError(w http.ResponseWriter, logger *log.Logger, err error) {
	var (
		appErr *services.AppError
		verr   *validation.RequestValidationError
	)

	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Type: typeValidation, Message: verr.Error(), Fields: verr.Fields()})
	case errors.As(err, &appErr) && appErr.Type == services.TypeConflict:
		writeJSON(w, http.StatusConflict, errorBody{Type: string(appErr.Type), Message: appErr.Message})
	case errors.As(err, &appErr) && appErr.Type == services.TypeNotFound:
		writeJSON(w, http.StatusNotFound, errorBody{Type: string(appErr.Type), Message: appErr.Message})
	default:
		logger.Error("internal error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Type: "internal", Message: "internal server error"})
	}
}

// decodeJSON reads exactly one JSON object into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return validation.NewRequestValidationError("body", "json", "body must be a valid JSON object: "+err.Error())
	}
	return nil
}
