package handler

import (
	"errors"
	"net/http"

	"github.com/yndnr/sealslot-go/internal/core/domain"
	"github.com/yndnr/sealslot-go/internal/core/service"
	"github.com/yndnr/sealslot-go/internal/telemetry/logger"
)

// Handler is the main HTTP handler that routes requests to appropriate handlers.
type Handler struct {
	protocol *service.ProtocolService
	logger   logger.Logger
	ready    func() bool
	mux      *http.ServeMux
}

// Option configures a Handler.
type Option func(*Handler)

// WithReadiness makes GET /ready answer 503 while ready returns false.
func WithReadiness(ready func() bool) Option {
	return func(h *Handler) {
		if ready != nil {
			h.ready = ready
		}
	}
}

// New creates a new Handler over the protocol service.
func New(protocol *service.ProtocolService, l logger.Logger, opts ...Option) *Handler {
	if l == nil {
		l = logger.Default()
	}
	h := &Handler{
		protocol: protocol,
		logger:   l,
		ready:    func() bool { return true },
		mux:      http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(h)
	}

	h.registerRoutes()
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.mux.HandleFunc("GET /health", h.handleHealth)
	h.mux.HandleFunc("GET /ready", h.handleReady)

	h.mux.HandleFunc("POST /init", h.handleRegister)
	h.mux.HandleFunc("GET /{$}", h.handleRead)
	h.mux.HandleFunc("POST /{$}", h.handleWrite)
	h.mux.HandleFunc("GET /recover", h.handleRecover)
}

// writeJSON writes a success response with standard envelope format.
func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	WriteData(w, r, status, data)
}

// handleServiceError converts service errors to HTTP responses.
func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if !domain.IsDomainError(err, "") || domain.GetErrorCode(err) == domain.CodeInternalServer {
		logger.L(r.Context()).Error("internal error", "error", err)
	}
	WriteError(w, r, err)
}

// WriteData writes data inside a success envelope.
func WriteData(w http.ResponseWriter, r *http.Request, status int, data any) {
	requestID := getRequestID(r)
	w.Header().Set("X-Request-ID", requestID)
	if err := encodeResponse(w, r, status, NewResponse(requestID, data)); err != nil {
		logger.L(r.Context()).Error("failed to encode response", "error", err)
	}
}

// WriteError writes err inside an error envelope. Errors that are not
// domain errors are reported as internal errors without their text.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		code    = domain.CodeInternalServer
		message = domain.ErrInternalServer.Message
		details any
	)
	if de := asDomainError(err); de != nil {
		code = de.Code
		message = de.Message
		if de.Details != "" {
			details = de.Details
		}
	}

	requestID := getRequestID(r)
	w.Header().Set("X-Error-Code", code)
	w.Header().Set("X-Request-ID", requestID)
	resp := NewErrorResponse(requestID, code, message, details)
	if encErr := encodeResponse(w, r, StatusForCode(code), resp); encErr != nil {
		logger.L(r.Context()).Error("failed to encode response", "error", encErr)
	}
}

func asDomainError(err error) *domain.DomainError {
	var de *domain.DomainError
	if errors.As(err, &de) {
		return de
	}
	return nil
}

// StatusForCode maps error codes to HTTP status codes.
func StatusForCode(code string) int {
	switch code {
	case domain.CodeUnauthorized:
		return http.StatusForbidden
	case domain.CodeIntegrityFailed, domain.CodeBadRequest:
		return http.StatusBadRequest
	case domain.CodeHistoryEmpty:
		return http.StatusNotFound
	case domain.CodePayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case domain.CodeRateLimited:
		return http.StatusTooManyRequests
	case domain.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// getRequestID returns the request ID set by the RequestID middleware,
// falling back to the request header.
func getRequestID(r *http.Request) string {
	if reqID := logger.RequestIDFromContext(r.Context()); reqID != "" {
		return reqID
	}
	return r.Header.Get("X-Request-ID")
}
