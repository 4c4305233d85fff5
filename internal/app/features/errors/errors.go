// internal/app/features/errors/errors.go

// Package errors centralizes JSON error responses. Handlers log the
// real error with context and answer the client with a generic message;
// internal error structures never reach the response body.
package errors

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// ErrorLogger pairs zap logging with uniform JSON error responses.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// JSON writes v as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Message writes a `{"message": ...}` body with the given status.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"message": msg})
}

// LogBadRequest logs err and answers 400 with userMsg.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg string) {
	e.write(w, r, http.StatusBadRequest, logMsg, err, userMsg)
}

// LogNotFound logs err and answers 404 with userMsg.
func (e *ErrorLogger) LogNotFound(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg string) {
	e.write(w, r, http.StatusNotFound, logMsg, err, userMsg)
}

// LogServerError logs err and answers 500 with userMsg.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg string) {
	e.write(w, r, http.StatusInternalServerError, logMsg, err, userMsg)
}

// LogUnauthorized logs and answers 401.
func (e *ErrorLogger) LogUnauthorized(w http.ResponseWriter, r *http.Request, logMsg string) {
	e.write(w, r, http.StatusUnauthorized, logMsg, nil, "unauthorized")
}

func (e *ErrorLogger) write(w http.ResponseWriter, r *http.Request, status int, logMsg string, err error, userMsg string) {
	fields := []zap.Field{
		zap.Int("status", status),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	if status >= http.StatusInternalServerError {
		e.log.Error(logMsg, fields...)
	} else {
		e.log.Warn(logMsg, fields...)
	}
	Message(w, status, userMsg)
}
