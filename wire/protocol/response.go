package protocol

import (
	"encoding/json"

	"github.com/lynxkv/lynx-go/wire/common"
)

// --------------------------------------------------------------------------
// Response Envelopes
// --------------------------------------------------------------------------

// Response is the one-shot reply envelope. Payload is decoded into T after
// normalization (see Normalize).
type Response[T any] struct {
	Status  bool    `json:"status"`
	Payload T       `json:"payload"`
	Error   *string `json:"error"`
}

// StreamMessage is the subscription envelope. One is emitted per
// newline-delimited frame of the stream.
type StreamMessage[T any] struct {
	Message *string `json:"message"`
	Status  bool    `json:"status"`
	Payload T       `json:"payload"`
	Error   *string `json:"error"`
}

// --------------------------------------------------------------------------
// Typed Decoding
// --------------------------------------------------------------------------

// ParseResponse decodes a one-shot response frame into a typed envelope.
// The payload is normalized before the final typed decode, so payloads the
// server double-encoded as JSON-in-a-string still decode into structured
// types. Empty input yields an ErrKNoResponse error - the transport treats a
// clean close without data as a valid empty outcome, the caller typically
// does not.
func ParseResponse[T any](data []byte) (*Response[T], error) {
	if len(data) == 0 {
		return nil, common.NewError(common.ErrKNoResponse, "no data received")
	}

	var env Response[json.RawMessage]
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, common.NewError(common.ErrKValueParsing, "failed to parse response envelope: %v", err)
	}

	payload, err := decodePayload[T](env.Payload)
	if err != nil {
		return nil, err
	}

	return &Response[T]{
		Status:  env.Status,
		Payload: payload,
		Error:   env.Error,
	}, nil
}

// ParseStreamMessage decodes one subscription frame into a typed envelope.
func ParseStreamMessage[T any](data []byte) (*StreamMessage[T], error) {
	if len(data) == 0 {
		return nil, common.NewError(common.ErrKNoResponse, "no data received")
	}

	var env StreamMessage[json.RawMessage]
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, common.NewError(common.ErrKValueParsing, "failed to parse stream message: %v", err)
	}

	payload, err := decodePayload[T](env.Payload)
	if err != nil {
		return nil, err
	}

	return &StreamMessage[T]{
		Message: env.Message,
		Status:  env.Status,
		Payload: payload,
		Error:   env.Error,
	}, nil
}

// decodePayload normalizes a raw payload and decodes it into T.
// A null or absent payload yields the zero value of T.
func decodePayload[T any](raw json.RawMessage) (T, error) {
	var payload T

	if len(raw) == 0 || string(raw) == "null" {
		return payload, nil
	}

	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return payload, common.NewError(common.ErrKValueParsing, "failed to parse payload: %v", err)
	}

	normalized, err := json.Marshal(Normalize(value))
	if err != nil {
		return payload, common.NewError(common.ErrKValueParsing, "failed to re-encode normalized payload: %v", err)
	}

	if err := json.Unmarshal(normalized, &payload); err != nil {
		return payload, common.NewError(common.ErrKValueParsing, "failed to decode payload as target type: %v", err)
	}
	return payload, nil
}
