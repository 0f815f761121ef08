// Package respond writes the JSON envelopes of the API.
//
// Successful reads and writes answer {"data": ..., "count": n}. Failures answer
// {"main": ..., "details": ...}: details lists every violation for a validation
// failure and is a fixed sentence for a store failure, so driver messages never
// reach the client.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"gowhere/internal/domain/entity"
	"gowhere/internal/observability/logging"
	"gowhere/internal/observability/metrics"
)

// Main messages of the failure envelope.
const (
	MainValidation = "Not Acceptable. Request has failed validation."
	MainNotFound   = "Not Found. Requested document does not exist."
	MainMalformed  = "Bad Request. Identity is malformed."
	MainBadRequest = "Bad Request. Request body could not be decoded."
	MainInternal   = "Internal Server Error. Please contact administrator."
	MainThrottled  = "Too Many Requests. Please retry later."
)

// Envelope is the success body.
type Envelope struct {
	Data  any `json:"data"`
	Count int `json:"count"`
}

// Failure is the error body. Details is either a list of violations or a sentence.
type Failure struct {
	Main    string `json:"main"`
	Details any    `json:"details"`
}

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Log the error but cannot send error response as headers already sent
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// List writes items with their count. A nil slice is written as [].
func List[T any](w http.ResponseWriter, items []T) {
	if items == nil {
		items = []T{}
	}
	JSON(w, http.StatusOK, Envelope{Data: items, Count: len(items)})
}

// One writes a single document with a count of 1.
func One(w http.ResponseWriter, code int, item any) {
	JSON(w, code, Envelope{Data: item, Count: 1})
}

// BadRequest answers a request whose body could not be decoded.
func BadRequest(w http.ResponseWriter, err error) {
	JSON(w, http.StatusBadRequest, Failure{Main: MainBadRequest, Details: SanitizeError(err)})
}

// Error maps err onto the failure envelope:
//
//	entity.Violations         406 with every violation
//	*entity.NotFoundError     404 with the identity violation
//	*entity.MalformedIDError  400 with the identity violation
//	anything else             500 with storeDetail; err is logged
func Error(w http.ResponseWriter, r *http.Request, err error, storeDetail string) {
	if err == nil {
		return
	}

	var violations entity.Violations
	var notFound *entity.NotFoundError
	var malformed *entity.MalformedIDError
	switch {
	case errors.As(err, &violations):
		JSON(w, http.StatusNotAcceptable, Failure{Main: MainValidation, Details: violations})
	case errors.As(err, &notFound):
		JSON(w, http.StatusNotFound, Failure{Main: MainNotFound, Details: []entity.ValidationError{notFound.Violation}})
	case errors.As(err, &malformed):
		JSON(w, http.StatusBadRequest, Failure{Main: MainMalformed, Details: []entity.ValidationError{malformed.Violation}})
	default:
		logging.FromContext(r.Context()).Error("store failure",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", SanitizeError(err)))
		JSON(w, http.StatusInternalServerError, Failure{Main: MainInternal, Details: storeDetail})
	}
}

// Rejected is Error for write handlers: validation failures are also counted
// per entity and mode before the envelope is written.
func Rejected(w http.ResponseWriter, r *http.Request, err error, entityName, mode, storeDetail string) {
	var violations entity.Violations
	if errors.As(err, &violations) {
		metrics.RecordValidationFailure(entityName, mode, len(violations))
	}
	Error(w, r, err, storeDetail)
}

// StatusOf returns the status code Error would answer for err.
func StatusOf(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, entity.ErrValidationFailed):
		return http.StatusNotAcceptable
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrMalformedID):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
