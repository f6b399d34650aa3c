package web

// errors.go provides unified error response handling for the web layer.
//
// The error flow:
//  1. A handler encounters an error.
//  2. It calls respondError(w, r, err, statusCode), usually with
//     statusForError picking the code.
//  3. The error is mapped via core.MapError to a user-facing message.
//  4. The technical error is logged with the request ID for correlation.

import (
	"errors"
	"net/http"

	"github.com/timberworks/timberlog/internal/core"
	"github.com/timberworks/timberlog/internal/logging"
)

// ErrorResponse is the JSON structure for API error responses. It carries
// both machine-readable (Code) and human-readable (Message, Action)
// fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError logs the technical error server-side and returns its
// user-facing mapping as JSON.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := core.MapError(err)

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
	)

	writeJSON(w, statusCode, ErrorResponse{
		Error:   userMsg.Message,
		Message: userMsg.Message,
		Action:  userMsg.Action,
		Code:    userMsg.Code,
	})
}

// statusForError picks the HTTP status for a service error.
func statusForError(err error) int {
	switch {
	case errors.Is(err, core.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrEmptyCollection):
		return http.StatusConflict
	}

	var decErr *core.ImportDecodingError
	var colErr *core.MissingColumnsError
	if errors.As(err, &decErr) || errors.As(err, &colErr) {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

// writeError writes a plain JSON error for request-shape problems where
// the message is already user-appropriate, such as a malformed parameter.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	logging.FromContext(r.Context()).Warn("bad request",
		"path", r.URL.Path,
		"status", status,
		"reason", message,
	)
	writeJSON(w, status, map[string]string{"error": message})
}
