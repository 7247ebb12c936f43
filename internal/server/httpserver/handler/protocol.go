package handler

import (
	"net/http"

	"github.com/yndnr/sealslot-go/internal/core/domain"
	"github.com/yndnr/sealslot-go/internal/core/service"
	"github.com/yndnr/sealslot-go/internal/telemetry/logger"
	"github.com/yndnr/sealslot-go/pkg/token"
)

// handleRegister handles POST /init.
func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	id, err := h.protocol.HandleRegister(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	logger.L(r.Context()).Info("client registered", "client", token.Fingerprint(id.Token))
	h.writeJSON(w, r, http.StatusOK, RegisterResponse{
		Token:  id.Token,
		Secret: id.Secret,
	})
}

// handleRead handles GET /.
func (h *Handler) handleRead(w http.ResponseWriter, r *http.Request) {
	id, err := h.client(r)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	view := h.protocol.ReadAs(r.Context(), id)
	h.writeJSON(w, r, http.StatusOK, viewToResponse(view))
}

// handleWrite handles POST /.
func (h *Handler) handleWrite(w http.ResponseWriter, r *http.Request) {
	id, err := h.client(r)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	req, err := decodeWriteRequest(r)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	result, err := h.protocol.WriteAs(r.Context(), id, domain.Record{
		Payload:  req.Data,
		Checksum: req.Checksum,
		Tag:      req.HMAC,
	})
	if err != nil {
		logger.L(r.Context()).Warn("write rejected", "code", domain.GetErrorCode(err))
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, WriteRecordResponse{
		Accepted:     true,
		HistoryDepth: result.HistoryDepth,
	})
}

// handleRecover handles GET /recover.
func (h *Handler) handleRecover(w http.ResponseWriter, r *http.Request) {
	id, err := h.client(r)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	view, err := h.protocol.RecoverAs(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, viewToResponse(view))
}

// client returns the identity resolved by the auth middleware, or
// authenticates the request token itself when mounted without it.
func (h *Handler) client(r *http.Request) (domain.ClientIdentity, error) {
	if id, ok := ClientFromContext(r.Context()); ok {
		return id, nil
	}
	return h.protocol.Registry().Authenticate(r.Context(), r.Header.Get(HeaderClientToken))
}

func viewToResponse(v service.RecordView) RecordResponse {
	return RecordResponse{
		Data:      v.Payload,
		Checksum:  v.Checksum,
		HMAC:      v.Tag,
		IsValid:   v.Verified,
		Timestamp: formatTimestamp(v.CapturedAt),
	}
}
