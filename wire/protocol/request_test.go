package protocol

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

// TestRawRequestEncode tests that raw commands serialize into the expected
// envelope with the credentials pair attached
func TestRawRequestEncode(t *testing.T) {
	req := NewRawRequest(
		[]string{"create-store", "store", "main"},
		Credentials{Username: "admin", Password: "secret"},
	)

	data, err := req.Encode()
	if err != nil {
		t.Fatalf("Failed to encode raw request: %v", err)
	}

	// exactly one trailing delimiter
	if !bytes.HasSuffix(data, []byte{Delimiter}) {
		t.Errorf("Encoded request does not end with delimiter: %q", data)
	}
	if bytes.Count(data, []byte{Delimiter}) != 1 {
		t.Errorf("Encoded request contains more than one delimiter: %q", data)
	}

	var decoded struct {
		Raw         []string `json:"raw"`
		Credentials []string `json:"credentials"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to decode raw request: %v", err)
	}

	if len(decoded.Raw) != 3 || decoded.Raw[0] != "create-store" {
		t.Errorf("Unexpected raw tokens: %v", decoded.Raw)
	}
	if len(decoded.Credentials) != 2 || decoded.Credentials[0] != "admin" || decoded.Credentials[1] != "secret" {
		t.Errorf("Unexpected credentials: %v", decoded.Credentials)
	}
}

// TestStoreRequestEncode tests that a store request serializes with
// snake_case field names and without null collections
func TestStoreRequestEncode(t *testing.T) {
	req := NewStoreRequest(Credentials{Username: "u", Password: "p"}, "main", "users", "get_len")

	data, err := req.Encode()
	if err != nil {
		t.Fatalf("Failed to encode store request: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to decode store request: %v", err)
	}

	// snake_case field names
	for _, field := range []string{
		"username", "password", "keyspace", "store", "command",
		"limit_output", "bulk_values", "bulk_keys", "bulk_keys_values",
		"search_criteria", "with_pointers", "key_included", "volumes",
		"latest_volume", "pointers_metadata",
	} {
		if _, ok := decoded[field]; !ok {
			t.Errorf("Missing field %q in encoded request", field)
		}
	}

	// collections serialize as empty, not null
	if decoded["bulk_values"] == nil {
		t.Errorf("bulk_values serialized as null")
	}
	if decoded["limit_output"] == nil {
		t.Errorf("limit_output serialized as null")
	}

	// unset key stays null
	if decoded["key"] != nil {
		t.Errorf("key should be null when unset, got %v", decoded["key"])
	}
}

// TestSubscribeRequestEncode tests the subscription envelope and the
// omission of the key field when unset
func TestSubscribeRequestEncode(t *testing.T) {
	t.Run("KeyspaceLevel", func(t *testing.T) {
		req := NewSubscribeRequest(Credentials{Username: "u", Password: "p"}, "main", "users", nil)
		data, err := req.Encode()
		if err != nil {
			t.Fatalf("Failed to encode subscribe request: %v", err)
		}

		if !IsSubscription(data) {
			t.Errorf("Subscribe request not detected as subscription")
		}
		if strings.Contains(string(data), `"key"`) {
			t.Errorf("Key field should be omitted when unset: %s", data)
		}
	})

	t.Run("KeyLevel", func(t *testing.T) {
		key := "12345"
		req := NewSubscribeRequest(Credentials{Username: "u", Password: "p"}, "main", "users", &key)
		data, err := req.Encode()
		if err != nil {
			t.Fatalf("Failed to encode subscribe request: %v", err)
		}

		var decoded map[string]interface{}
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("Failed to decode subscribe request: %v", err)
		}
		if decoded["key"] != key {
			t.Errorf("Expected key %q, got %v", key, decoded["key"])
		}
		if decoded["subscribe"] != true {
			t.Errorf("Expected subscribe=true, got %v", decoded["subscribe"])
		}
	})
}

// TestIsSubscription tests mode detection on encoded requests
func TestIsSubscription(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
		want    bool
	}{
		{"SubscribeEnvelope", `{"subscribe":true,"store":"s"}` + "\n", true},
		{"StoreCommand", `{"command":"get_value","store":"s"}` + "\n", false},
		{"RawCommand", `{"raw":["create-store"],"credentials":["u","p"]}` + "\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSubscription([]byte(tt.encoded)); got != tt.want {
				t.Errorf("IsSubscription(%q) = %v, want %v", tt.encoded, got, tt.want)
			}
		})
	}
}
