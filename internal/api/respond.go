package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/ukaji3/seatplan-go/internal/logging"
	"github.com/ukaji3/seatplan-go/pkg/seatplan"
	"github.com/ukaji3/seatplan-go/pkg/seatplan/xlsxio"
	"go.uber.org/zap"
)

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Error     string   `json:"error"`
	Code      string   `json:"code"`
	Available []string `json:"available,omitempty"`
}

// Error codes.
const (
	CodeBadRequest   = "bad_request"
	CodeNotFound     = "not_found"
	CodeConflict     = "conflict"
	CodeTooLarge     = "too_large"
	CodeInvalidInput = "invalid_input"
	CodeColumn       = "column_not_found"
	CodeInternal     = "internal"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, code string, err error) {
	log := logging.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	} else {
		log.Debug("request rejected", zap.String("path", r.URL.Path), zap.Int("status", status), zap.Error(err))
	}
	respondJSON(w, status, ErrorResponse{Error: err.Error(), Code: code})
}

func notFound(w http.ResponseWriter, r *http.Request, kind string, id int) {
	respondError(w, r, http.StatusNotFound, CodeNotFound, fmt.Errorf("%s %d not found", kind, id))
}

// respondLoadError maps a workbook or document read error to a status.
func respondLoadError(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	var column *xlsxio.ColumnNotFoundError
	switch {
	case errors.As(err, &tooLarge):
		respondError(w, r, http.StatusRequestEntityTooLarge, CodeTooLarge, err)
	case errors.As(err, &column):
		respondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:     column.Error(),
			Code:      CodeColumn,
			Available: column.Available,
		})
	case errors.Is(err, xlsxio.ErrInvalidFormat), errors.Is(err, seatplan.ErrInvalidPlanFile):
		respondError(w, r, http.StatusBadRequest, CodeInvalidInput, err)
	default:
		respondError(w, r, http.StatusInternalServerError, CodeInternal, err)
	}
}

// decodeJSON decodes a request body, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// idParam parses the {id} URL parameter.
func idParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

// boolQuery parses a boolean query parameter with a default value.
func boolQuery(r *http.Request, name string, def bool) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def, fmt.Errorf("invalid %s %q", name, raw)
	}
	return v, nil
}
