package api

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/wahid1099/generate-qa/errors"
	"github.com/wahid1099/generate-qa/middleware"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.WithError(err).Error("Failed to encode response")
	}
}

// respondError writes {"error": message}. Errors outside the AppError
// taxonomy are reported as a 500 carrying their text.
func respondError(w http.ResponseWriter, r *http.Request, logger *logrus.Logger, err error) {
	code := http.StatusInternalServerError
	msg := "Server error: " + err.Error()

	if appErr, ok := errors.As(err); ok {
		code = appErr.Code
		msg = appErr.Message
	}

	entry := logger.WithFields(logrus.Fields{
		"error":      err,
		"status":     code,
		"request_id": middleware.GetRequestID(r.Context()),
		"path":       r.URL.Path,
		"method":     r.Method,
	})
	if code >= http.StatusInternalServerError {
		entry.Error("Request error")
	} else {
		entry.Warn("Request rejected")
	}

	respondJSON(w, code, errorResponse{Error: msg})
}
