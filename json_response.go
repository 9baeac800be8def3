package schoolkit

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// JSONResponse is the envelope for every JSON body.
type JSONResponse struct {
	Data  any          `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail describes a rejected request.
type ErrorDetail struct {
	Code      int    `json:"code"`
	Key       string `json:"key"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// WriteJSON writes data inside the JSON envelope.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	return writeEnvelope(w, status, JSONResponse{Data: data})
}

// WriteError writes err as a JSON error body with the mapped status code.
func WriteError(w http.ResponseWriter, r *http.Request, err error) error {
	httpErr := HTTPErrorFor(err)
	return writeEnvelope(w, httpErr.Code, JSONResponse{Error: &ErrorDetail{
		Code:      httpErr.Code,
		Key:       httpErr.Key,
		Message:   httpErr.Message,
		RequestID: middleware.GetReqID(r.Context()),
	}})
}

// ErrorResponder returns an error handler for the tenant, access and
// routebind middleware. Server errors are logged with their cause; client
// errors are already logged by the middleware that produced them.
func ErrorResponder(logger *slog.Logger) func(w http.ResponseWriter, r *http.Request, err error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return func(w http.ResponseWriter, r *http.Request, err error) {
		if StatusFor(err) >= http.StatusInternalServerError {
			logger.ErrorContext(r.Context(), "request failed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Any("error", err),
			)
		}
		if werr := WriteError(w, r, err); werr != nil {
			logger.WarnContext(r.Context(), "write error response", slog.Any("error", werr))
		}
	}
}

func writeEnvelope(w http.ResponseWriter, status int, body JSONResponse) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}
