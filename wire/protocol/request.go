package protocol

import (
	"bytes"
	"encoding/json"

	"github.com/lynxkv/lynx-go/wire/common"
)

// Delimiter is the frame delimiter of the wire protocol. Every request and
// every response or stream chunk is exactly one JSON document followed by a
// single Delimiter byte. JSON values never contain a raw newline - the
// encoder escapes them inside string fields.
const Delimiter byte = '\n'

// subscribeToken marks a request as a subscription. The transport inspects
// the encoded bytes for it to select the streaming read protocol.
var subscribeToken = []byte("subscribe")

// --------------------------------------------------------------------------
// Request Union
// --------------------------------------------------------------------------

// Request is the closed set of request shapes the server understands.
// Exactly one variant is active per request: RawRequest for administrative
// commands, StoreRequest for keyspace store operations and SubscribeRequest
// for stream subscriptions.
type Request interface {
	// Encode serializes the request to a single JSON document terminated
	// by one Delimiter byte.
	Encode() ([]byte, error)
}

// Credentials are attached to every request payload. They are never cached
// by this layer.
type Credentials struct {
	Username string
	Password string
}

// pair returns the wire form of the credentials: an ordered
// [username, password] sequence.
func (c Credentials) pair() []string {
	return []string{c.Username, c.Password}
}

// --------------------------------------------------------------------------
// Raw Requests
// --------------------------------------------------------------------------

// RawRequest wraps an ordered command token sequence plus credentials.
// It is used for administrative and imperative operations (create-store,
// grant-to, ...).
type RawRequest struct {
	Raw         []string `json:"raw"`
	Credentials []string `json:"credentials"`
}

// NewRawRequest creates a RawRequest from command tokens and credentials.
func NewRawRequest(command []string, creds Credentials) *RawRequest {
	return &RawRequest{
		Raw:         command,
		Credentials: creds.pair(),
	}
}

func (r *RawRequest) Encode() ([]byte, error) {
	return encode(r)
}

// --------------------------------------------------------------------------
// Store Requests
// --------------------------------------------------------------------------

// StoreRequest is the flat record describing a single store operation.
// Unset fields keep their type-appropriate zero value on the wire (empty
// string, empty sequence or map, false, 0); Schema and Key serialize as null
// when absent.
type StoreRequest struct {
	Schema           *string           `json:"schema"`
	Username         string            `json:"username"`
	Password         string            `json:"password"`
	Keyspace         string            `json:"keyspace"`
	Store            string            `json:"store"`
	Persistent       bool              `json:"persistent"`
	Distributed      bool              `json:"distributed"`
	LimitOutput      map[string]int    `json:"limit_output"`
	Key              *string           `json:"key"`
	Value            string            `json:"value"`
	Command          string            `json:"command"`
	Expire           uint64            `json:"expire"`
	BulkValues       []string          `json:"bulk_values"`
	BulkKeys         []string          `json:"bulk_keys"`
	BulkKeysValues   map[string]string `json:"bulk_keys_values"`
	SearchCriteria   string            `json:"search_criteria"`
	WithPointers     bool              `json:"with_pointers"`
	KeyIncluded      bool              `json:"key_included"`
	Volumes          []string          `json:"volumes"`
	LatestVolume     bool              `json:"latest_volume"`
	PointersMetadata bool              `json:"pointers_metadata"`
}

// NewStoreRequest creates a StoreRequest addressing one keyspace of one
// store. Collections are initialized empty so they serialize as [] and {}
// rather than null.
func NewStoreRequest(creds Credentials, store, keyspace, command string) *StoreRequest {
	return &StoreRequest{
		Username:       creds.Username,
		Password:       creds.Password,
		Keyspace:       keyspace,
		Store:          store,
		Command:        command,
		LimitOutput:    map[string]int{},
		BulkValues:     []string{},
		BulkKeys:       []string{},
		BulkKeysValues: map[string]string{},
		Volumes:        []string{},
	}
}

func (r *StoreRequest) Encode() ([]byte, error) {
	return encode(r)
}

// --------------------------------------------------------------------------
// Subscription Requests
// --------------------------------------------------------------------------

// SubscribeRequest opens a long-lived stream of change messages for a
// keyspace, optionally narrowed to a single key. The literal presence of the
// "subscribe" field is what the transport detects to select streaming mode.
// Subscriptions connect to the secondary listener on port+1 relative to the
// primary service port.
type SubscribeRequest struct {
	Subscribe bool    `json:"subscribe"`
	Store     string  `json:"store"`
	Keyspace  string  `json:"keyspace"`
	Key       *string `json:"key,omitempty"`
	Username  string  `json:"username"`
	Password  string  `json:"password"`
}

// NewSubscribeRequest creates a SubscribeRequest. key may be nil to
// subscribe to the whole keyspace.
func NewSubscribeRequest(creds Credentials, store, keyspace string, key *string) *SubscribeRequest {
	return &SubscribeRequest{
		Subscribe: true,
		Store:     store,
		Keyspace:  keyspace,
		Key:       key,
		Username:  creds.Username,
		Password:  creds.Password,
	}
}

func (r *SubscribeRequest) Encode() ([]byte, error) {
	return encode(r)
}

// --------------------------------------------------------------------------
// Helpers
// --------------------------------------------------------------------------

// encode serializes a request shape and appends the frame delimiter.
func encode(v interface{}) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, common.NewError(common.ErrKEncoding, "failed to encode request: %v", err)
	}
	return append(data, Delimiter), nil
}

// IsSubscription reports whether encoded request bytes self-identify as a
// subscription. This is a structural property of the payload, not a separate
// flag.
func IsSubscription(encoded []byte) bool {
	return bytes.Contains(encoded, subscribeToken)
}
