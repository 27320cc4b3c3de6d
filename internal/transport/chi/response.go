package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/kailas-cloud/contentd/internal/domain"
)

// ErrorCode is a machine-readable error code in JSON error bodies.
type ErrorCode string

// Error codes returned by the API.
const (
	ErrorCodeNotFound          ErrorCode = "not_found"
	ErrorCodeSearchTimeout     ErrorCode = "search_timeout"
	ErrorCodeSearchUnavailable ErrorCode = "search_unavailable"
	ErrorCodeRequestCanceled   ErrorCode = "request_canceled"
	ErrorCodeInternalError     ErrorCode = "internal_error"
)

// Diagnostic messages of the article-details endpoint.
const (
	MsgMissingArticleID = "Missing article id."
	MsgInvalidArticleID = "Invalid article id."
)

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// ArticleDetails is the article-details success body.
type ArticleDetails struct {
	ID    uuid.UUID `json:"Id"`
	Title string    `json:"Title"`
	Body  string    `json:"Body"`
}

// HealthResponse is the health endpoint body.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error
// and answers with a fixed message.
func sentinelHandler(sentinel error, status int, code ErrorCode, message string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, message)
		return true
	}
}

// searchTimeoutHandler answers 504 with the timeout text verbatim.
func searchTimeoutHandler(w http.ResponseWriter, err error) bool {
	var te *domain.SearchTimeoutError
	if !errors.As(err, &te) {
		return false
	}
	writeError(w, http.StatusGatewayTimeout, ErrorCodeSearchTimeout, te.Error())
	return true
}
