package connection

import "encoding/json"

type envelope struct {
	Code      string          `json:"code"`
	Message   string          `json:"message"`
	RequestID string          `json:"request_id"`
	Data      json.RawMessage `json:"data"`
}

// Credentials are returned once by POST /init.
type Credentials struct {
	Token  string `json:"token" yaml:"token"`
	Secret string `json:"secret" yaml:"secret"`
}

// Record is the record view returned by GET / and GET /recover.
type Record struct {
	Data      string `json:"data" yaml:"data"`
	Checksum  string `json:"checksum" yaml:"checksum"`
	HMAC      string `json:"hmac" yaml:"hmac"`
	IsValid   bool   `json:"isValid" yaml:"isValid"`
	Timestamp string `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
}

// WriteRequest is the body of POST /.
type WriteRequest struct {
	Data     string `json:"data"`
	Checksum string `json:"checksum"`
	HMAC     string `json:"hmac"`
}

// WriteResult is the data of a successful write.
type WriteResult struct {
	Accepted     bool `json:"accepted" yaml:"accepted"`
	HistoryDepth int  `json:"history_depth" yaml:"history_depth"`
}

// Health is the data of /health and /ready.
type Health struct {
	Status       string `json:"status" yaml:"status"`
	Time         string `json:"time" yaml:"time"`
	Clients      int    `json:"clients,omitempty" yaml:"clients,omitempty"`
	HistoryDepth int    `json:"history_depth,omitempty" yaml:"history_depth,omitempty"`
}
