package handler

import "time"

// Response is the standard API response envelope.
// All responses use this format (except /metrics which uses Prometheus format).
type Response struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	Timestamp int64  `json:"timestamp"`
	Data      any    `json:"data,omitempty"`
	Details   any    `json:"details,omitempty"` // Additional error details
}

// NewResponse creates a success response.
func NewResponse(requestID string, data any) *Response {
	return &Response{
		Code:      "OK",
		Message:   "Success",
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
		Data:      data,
	}
}

// NewErrorResponse creates an error response.
func NewErrorResponse(requestID, code, message string, details any) *Response {
	return &Response{
		Code:      code,
		Message:   message,
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
		Details:   details,
	}
}

// RegisterResponse is the response body for POST /init.
//
// The secret is only ever returned here.
type RegisterResponse struct {
	Token  string `json:"token"`
	Secret string `json:"secret"`
}

// WriteRecordRequest is the request body for POST /.
// Missing fields decode as empty strings and fail verification.
type WriteRecordRequest struct {
	Data     string `json:"data"`
	Checksum string `json:"checksum"`
	HMAC     string `json:"hmac"`
}

// WriteRecordResponse is the response body for POST /.
type WriteRecordResponse struct {
	Accepted     bool `json:"accepted"`
	HistoryDepth int  `json:"history_depth"`
}

// RecordResponse is the response body for GET / and GET /recover.
type RecordResponse struct {
	Data     string `json:"data"`
	Checksum string `json:"checksum"`
	HMAC     string `json:"hmac"`
	IsValid  bool   `json:"isValid"`

	// Timestamp is the history capture time, set only by GET /recover.
	Timestamp string `json:"timestamp,omitempty"`
}

// HealthResponse is the response body for GET /health and GET /ready.
type HealthResponse struct {
	Status       string `json:"status"`
	Time         string `json:"time"`
	Clients      int    `json:"clients,omitempty"`
	HistoryDepth int    `json:"history_depth,omitempty"`
}

// timestampLayout matches the millisecond ISO-8601 form used by browsers.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timestampLayout)
}
