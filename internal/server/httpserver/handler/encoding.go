package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/yndnr/sealslot-go/internal/core/domain"
)

// Content types understood by the handlers.
const (
	ContentTypeJSON     = "application/json"
	ContentTypeProtobuf = "application/x-protobuf"
)

// wantsProtobuf reports whether the client asked for a protobuf response.
func wantsProtobuf(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, ContentTypeProtobuf) ||
		strings.Contains(accept, "application/protobuf")
}

// isProtobuf checks if the request body is protobuf.
func isProtobuf(r *http.Request) bool {
	contentType := r.Header.Get("Content-Type")
	return strings.HasPrefix(contentType, ContentTypeProtobuf) ||
		strings.HasPrefix(contentType, "application/protobuf")
}

// toStruct converts a JSON-encodable value into a google.protobuf.Struct
// with the same field names as its JSON form.
func toStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return structpb.NewStruct(m)
}

// encodeResponse writes resp with the given status, as protobuf when the
// client asked for it and JSON otherwise.
func encodeResponse(w http.ResponseWriter, r *http.Request, status int, resp *Response) error {
	if wantsProtobuf(r) {
		s, err := toStruct(resp)
		if err != nil {
			return fmt.Errorf("convert response: %w", err)
		}
		data, err := proto.Marshal(s)
		if err != nil {
			return fmt.Errorf("marshal protobuf: %w", err)
		}
		w.Header().Set("Content-Type", ContentTypeProtobuf)
		w.WriteHeader(status)
		_, err = w.Write(data)
		return err
	}

	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(resp)
}

// decodeWriteRequest parses a write body. JSON is the default; a
// google.protobuf.Struct is accepted when Content-Type says protobuf.
func decodeWriteRequest(r *http.Request) (WriteRecordRequest, error) {
	var req WriteRecordRequest

	if isProtobuf(r) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return req, bodyError(err)
		}
		var s structpb.Struct
		if err := proto.Unmarshal(body, &s); err != nil {
			return req, domain.ErrBadRequest.WithDetails("invalid protobuf body").WithCause(err)
		}
		fields := s.GetFields()
		req.Data = fields["data"].GetStringValue()
		req.Checksum = fields["checksum"].GetStringValue()
		req.HMAC = fields["hmac"].GetStringValue()
		return req, nil
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, bodyError(err)
	}
	return req, nil
}

func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return domain.ErrPayloadTooLarge.WithCause(err)
	}
	return domain.ErrBadRequest.WithDetails("invalid request body").WithCause(err)
}
