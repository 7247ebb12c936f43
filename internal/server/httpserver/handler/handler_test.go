package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/yndnr/sealslot-go/internal/core/domain"
	"github.com/yndnr/sealslot-go/internal/core/service"
	"github.com/yndnr/sealslot-go/internal/storage/memory"
	"github.com/yndnr/sealslot-go/internal/telemetry/logger"
	"github.com/yndnr/sealslot-go/pkg/integrity"
)

func testHandler(t *testing.T) (*Handler, *service.ProtocolService) {
	t.Helper()
	l, err := logger.New(logger.Config{Level: "error", Format: "text", Output: io.Discard})
	if err != nil {
		t.Fatalf("logger.New() error = %v", err)
	}
	reg := service.NewRegistryService(memory.NewClientStore())
	protocol := service.NewProtocolService(reg, memory.NewRecordStore(), nil)
	return New(protocol, l), protocol
}

func do(t *testing.T, h http.Handler, method, path, tok, body string) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", ContentTypeJSON)
	}
	if tok != "" {
		req.Header.Set(HeaderClientToken, tok)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp Response
	if err := json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v (body %q)", err, rec.Body.String())
	}
	return rec, resp
}

func dataMap(t *testing.T, resp Response) map[string]any {
	t.Helper()
	data, ok := resp.Data.(map[string]any)
	if !ok {
		t.Fatalf("expected data to be a map, got %T", resp.Data)
	}
	return data
}

func register(t *testing.T, h http.Handler) (tok, secret string) {
	t.Helper()
	rec, resp := do(t, h, "POST", "/init", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /init status = %d, want 200", rec.Code)
	}
	data := dataMap(t, resp)
	tok, _ = data["token"].(string)
	secret, _ = data["secret"].(string)
	return tok, secret
}

func writeBody(t *testing.T, rec domain.Record) string {
	t.Helper()
	body, err := json.Marshal(WriteRecordRequest{Data: rec.Payload, Checksum: rec.Checksum, HMAC: rec.Tag})
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	return string(body)
}

func TestHandler_Register(t *testing.T) {
	h, protocol := testHandler(t)

	tok, secret := register(t, h)
	if tok == "" {
		t.Error("expected token in response")
	}
	if len(secret) != 64 {
		t.Errorf("secret length = %d, want 64", len(secret))
	}
	if protocol.Registry().Count() != 1 {
		t.Errorf("Count() = %d, want 1", protocol.Registry().Count())
	}

	tok2, _ := register(t, h)
	if tok2 == tok {
		t.Error("expected distinct tokens")
	}
}

func TestHandler_Unauthorized(t *testing.T) {
	h, _ := testHandler(t)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   string
	}{
		{"read without token", "GET", "/", "", ""},
		{"read with unknown token", "GET", "/", "00000000-0000-4000-8000-000000000000", ""},
		{"read with malformed token", "GET", "/", "not-a-token", ""},
		{"write with unknown token", "POST", "/", "00000000-0000-4000-8000-000000000000", `{"data":"x"}`},
		{"recover with unknown token", "GET", "/recover", "nope", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := do(t, h, tt.method, tt.path, tt.token, tt.body)
			if rec.Code != http.StatusForbidden {
				t.Errorf("status = %d, want 403", rec.Code)
			}
			if resp.Code != domain.CodeUnauthorized {
				t.Errorf("code = %q, want %q", resp.Code, domain.CodeUnauthorized)
			}
			if got := rec.Header().Get("X-Error-Code"); got != domain.CodeUnauthorized {
				t.Errorf("X-Error-Code = %q", got)
			}
		})
	}
}

func TestHandler_HelloWorldScenario(t *testing.T) {
	h, _ := testHandler(t)
	tok, secret := register(t, h)

	// The seed record carries no tag.
	rec, resp := do(t, h, "GET", "/", tok, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET / status = %d", rec.Code)
	}
	data := dataMap(t, resp)
	if data["data"] != "Hello World" || data["checksum"] != "" || data["hmac"] != "" {
		t.Errorf("seed record = %v", data)
	}
	if data["isValid"] != false {
		t.Errorf("seed isValid = %v, want false", data["isValid"])
	}

	sealed := integrity.Seal("Hello World", secret)
	rec, resp = do(t, h, "POST", "/", tok, writeBody(t, domain.Record{
		Payload: sealed.Payload, Checksum: sealed.Checksum, Tag: sealed.Tag,
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("POST / status = %d, code %s", rec.Code, resp.Code)
	}
	data = dataMap(t, resp)
	if data["accepted"] != true || data["history_depth"] != float64(1) {
		t.Errorf("write response = %v", data)
	}

	_, resp = do(t, h, "GET", "/", tok, "")
	data = dataMap(t, resp)
	if data["isValid"] != true || data["hmac"] != sealed.Tag {
		t.Errorf("read after write = %v", data)
	}

	// Another client sees the record but cannot verify it.
	other, _ := register(t, h)
	_, resp = do(t, h, "GET", "/", other, "")
	if dataMap(t, resp)["isValid"] != false {
		t.Error("expected isValid false for a different client")
	}

	rec, resp = do(t, h, "GET", "/recover", tok, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /recover status = %d", rec.Code)
	}
	data = dataMap(t, resp)
	if data["data"] != "Hello World" || data["checksum"] != "" {
		t.Errorf("recovered = %v, want seed record", data)
	}
	if ts, _ := data["timestamp"].(string); !strings.HasSuffix(ts, "Z") {
		t.Errorf("timestamp = %q, want UTC ISO-8601", ts)
	}
}

func TestHandler_WriteRejected(t *testing.T) {
	h, protocol := testHandler(t)
	tok, secret := register(t, h)

	good := integrity.Seal("payload", secret)
	tests := []struct {
		name     string
		body     string
		wantCode string
		status   int
	}{
		{
			name:     "invalid json",
			body:     "invalid json",
			wantCode: domain.CodeBadRequest,
			status:   http.StatusBadRequest,
		},
		{
			name:     "missing fields",
			body:     `{}`,
			wantCode: domain.CodeIntegrityFailed,
			status:   http.StatusBadRequest,
		},
		{
			name:     "tampered payload",
			body:     writeBody(t, domain.Record{Payload: "payload!", Checksum: good.Checksum, Tag: good.Tag}),
			wantCode: domain.CodeIntegrityFailed,
			status:   http.StatusBadRequest,
		},
		{
			name:     "wrong secret",
			body:     writeBody(t, domain.Record{Payload: "payload", Checksum: good.Checksum, Tag: integrity.Tag("payload", good.Checksum, "other")}),
			wantCode: domain.CodeIntegrityFailed,
			status:   http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := do(t, h, "POST", "/", tok, tt.body)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if resp.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", resp.Code, tt.wantCode)
			}
		})
	}

	if protocol.HistoryDepth() != 0 {
		t.Errorf("HistoryDepth() = %d, want 0 after rejected writes", protocol.HistoryDepth())
	}
	_, resp := do(t, h, "GET", "/", tok, "")
	if dataMap(t, resp)["data"] != "Hello World" {
		t.Error("rejected writes must leave the record unchanged")
	}
}

func TestHandler_WritePayloadTooLarge(t *testing.T) {
	h, _ := testHandler(t)
	tok, secret := register(t, h)

	body := writeBody(t, domain.Record{Payload: strings.Repeat("a", 128), Checksum: "c", Tag: secret})
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	req.Header.Set(HeaderClientToken, tok)
	rec := httptest.NewRecorder()
	req.Body = http.MaxBytesReader(rec, req.Body, 16)

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}
}

func TestHandler_RecoverSeed(t *testing.T) {
	h, protocol := testHandler(t)
	tok, _ := register(t, h)

	rec, resp := do(t, h, "GET", "/recover", tok, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 on a fresh store", rec.Code)
	}

	data := dataMap(t, resp)
	if data["data"] != memory.DefaultSeedPayload {
		t.Errorf("data = %v, want %q", data["data"], memory.DefaultSeedPayload)
	}
	if data["isValid"] != false {
		t.Errorf("isValid = %v, want false for the unsealed seed", data["isValid"])
	}
	ts, _ := data["timestamp"].(string)
	if _, err := time.Parse(timestampLayout, ts); err != nil {
		t.Errorf("timestamp = %q, want %s layout: %v", ts, timestampLayout, err)
	}
	if protocol.HistoryDepth() != 0 {
		t.Errorf("HistoryDepth() = %d, want 0", protocol.HistoryDepth())
	}
}

func TestHandler_RecordEnvelope(t *testing.T) {
	h, _ := testHandler(t)
	tok, _ := register(t, h)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(HeaderClientToken, tok)
	h.ServeHTTP(rec, req)

	var body map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	for _, key := range []string{"code", "message", "request_id", "timestamp", "data"} {
		if _, ok := body[key]; !ok {
			t.Errorf("envelope missing %q", key)
		}
	}
	for _, key := range []string{"checksum", "hmac", "isValid"} {
		if _, ok := body[key]; ok {
			t.Errorf("record field %q must be nested under data", key)
		}
	}

	var record RecordResponse
	if err := json.Unmarshal(body["data"], &record); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if record.Data != memory.DefaultSeedPayload {
		t.Errorf("data.data = %q, want %q", record.Data, memory.DefaultSeedPayload)
	}
}

func TestHandler_ClientFromContext(t *testing.T) {
	h, protocol := testHandler(t)
	id, err := protocol.HandleRegister(context.Background())
	if err != nil {
		t.Fatalf("HandleRegister() error = %v", err)
	}

	req := httptest.NewRequest("GET", "/", nil)
	req = req.WithContext(WithClient(req.Context(), id))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 for identity in context", rec.Code)
	}
}

func TestHandler_Health(t *testing.T) {
	h, _ := testHandler(t)

	for _, path := range []string{"/health", "/ready"} {
		t.Run(path, func(t *testing.T) {
			rec, resp := do(t, h, "GET", path, "", "")
			if rec.Code != http.StatusOK {
				t.Errorf("status = %d, want 200", rec.Code)
			}
			if resp.Code != "OK" {
				t.Errorf("code = %q, want OK", resp.Code)
			}
		})
	}
}

func TestHandler_ReadyWhileDraining(t *testing.T) {
	_, protocol := testHandler(t)

	ready := true
	h := New(protocol, nil, WithReadiness(func() bool { return ready }))

	rec, _ := do(t, h, "GET", "/ready", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	ready = false
	rec, resp := do(t, h, "GET", "/ready", "", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
	if resp.Code != domain.CodeUnavailable {
		t.Errorf("code = %q, want %q", resp.Code, domain.CodeUnavailable)
	}

	// Liveness is unaffected.
	if rec, _ := do(t, h, "GET", "/health", "", ""); rec.Code != http.StatusOK {
		t.Errorf("/health status = %d, want 200", rec.Code)
	}
}

func TestHandler_Protobuf(t *testing.T) {
	h, _ := testHandler(t)
	tok, secret := register(t, h)

	t.Run("response negotiation", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(HeaderClientToken, tok)
		req.Header.Set("Accept", ContentTypeProtobuf)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if ct := rec.Header().Get("Content-Type"); ct != ContentTypeProtobuf {
			t.Fatalf("Content-Type = %q", ct)
		}
		var s structpb.Struct
		if err := proto.Unmarshal(rec.Body.Bytes(), &s); err != nil {
			t.Fatalf("proto.Unmarshal() error = %v", err)
		}
		if got := s.GetFields()["code"].GetStringValue(); got != "OK" {
			t.Errorf("code = %q, want OK", got)
		}
		data := s.GetFields()["data"].GetStructValue().GetFields()
		if got := data["data"].GetStringValue(); got != "Hello World" {
			t.Errorf("data = %q", got)
		}
	})

	t.Run("protobuf request body", func(t *testing.T) {
		sealed := integrity.Seal("from protobuf", secret)
		s, err := structpb.NewStruct(map[string]any{
			"data":     sealed.Payload,
			"checksum": sealed.Checksum,
			"hmac":     sealed.Tag,
		})
		if err != nil {
			t.Fatalf("structpb.NewStruct() error = %v", err)
		}
		body, err := proto.Marshal(s)
		if err != nil {
			t.Fatalf("proto.Marshal() error = %v", err)
		}

		req := httptest.NewRequest("POST", "/", bytes.NewReader(body))
		req.Header.Set(HeaderClientToken, tok)
		req.Header.Set("Content-Type", ContentTypeProtobuf)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
		}
	})
}

func TestStatusForCode(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{domain.CodeUnauthorized, http.StatusForbidden},
		{domain.CodeIntegrityFailed, http.StatusBadRequest},
		{domain.CodeBadRequest, http.StatusBadRequest},
		{domain.CodeHistoryEmpty, http.StatusNotFound},
		{domain.CodePayloadTooLarge, http.StatusRequestEntityTooLarge},
		{domain.CodeRateLimited, http.StatusTooManyRequests},
		{domain.CodeUnavailable, http.StatusServiceUnavailable},
		{domain.CodeInternalServer, http.StatusInternalServerError},
		{"", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := StatusForCode(tt.code); got != tt.want {
			t.Errorf("StatusForCode(%q) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestWriteError_HidesInternalErrors(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()

	WriteError(rec, req, io.ErrUnexpectedEOF)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), io.ErrUnexpectedEOF.Error()) {
		t.Error("internal error text leaked into response")
	}
}
