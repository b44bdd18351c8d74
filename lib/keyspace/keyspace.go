package keyspace

import (
	"encoding/json"
	"strconv"

	"github.com/lni/dragonboat/v4/logger"
	"github.com/lynxkv/lynx-go/lib/engine"
	"github.com/lynxkv/lynx-go/lib/keys"
	"github.com/lynxkv/lynx-go/wire/common"
	"github.com/lynxkv/lynx-go/wire/protocol"
)

var Logger = logger.GetLogger("keyspace")

// Keyspace is a named partition of records within a store. All operations
// build a single command object and defer to the wire core for the
// exchange; the raw response frame is returned for typed decoding with
// protocol.ParseResponse.
type Keyspace struct {
	engine      *engine.Engine
	name        string
	persistent  bool
	distributed bool
}

// NewInMemory returns a handle to an in-memory keyspace.
func NewInMemory(e *engine.Engine, name string, distributed bool) *Keyspace {
	return &Keyspace{engine: e, name: name, persistent: false, distributed: distributed}
}

// NewPersistent returns a handle to a persistent keyspace.
func NewPersistent(e *engine.Engine, name string, distributed bool) *Keyspace {
	return &Keyspace{engine: e, name: name, persistent: true, distributed: distributed}
}

// Name returns the keyspace name.
func (k *Keyspace) Name() string { return k.name }

// Persistent reports whether the keyspace is persistent.
func (k *Keyspace) Persistent() bool { return k.persistent }

// Distributed reports whether the keyspace is distributed.
func (k *Keyspace) Distributed() bool { return k.distributed }

// --------------------------------------------------------------------------
// Keyspace lifecycle (raw commands)
// --------------------------------------------------------------------------

// Create creates the keyspace in the store. cache is the cache size in
// entries (0 for the server default); compression only applies to
// persistent keyspaces.
func (k *Keyspace) Create(cache int, compression bool) ([]byte, error) {
	store, err := k.engine.RequireStore()
	if err != nil {
		return nil, err
	}

	tokens := []string{
		"create-keyspace",
		"store", store,
		"keyspace", k.name,
		"persistent", yn(k.persistent),
		"distributed", yn(k.distributed),
		"cache", strconv.Itoa(cache),
		"compression", yn(compression),
	}
	return k.engine.Exec(protocol.NewRawRequest(tokens, k.engine.Credentials()))
}

// Remove removes the keyspace from the store.
func (k *Keyspace) Remove() ([]byte, error) {
	store, err := k.engine.RequireStore()
	if err != nil {
		return nil, err
	}

	tokens := []string{
		"remove-keyspace",
		"store", store,
		"keyspace", k.name,
		"persistent", yn(k.persistent),
	}
	return k.engine.Exec(protocol.NewRawRequest(tokens, k.engine.Credentials()))
}

// --------------------------------------------------------------------------
// Single-record operations
// --------------------------------------------------------------------------

// InsertValue inserts a value. customKey may be empty to let the server
// assign a key; expire is in seconds, 0 for no expiry. The value is
// serialized to JSON before it is sent.
func (k *Keyspace) InsertValue(value interface{}, customKey string, expire uint64) ([]byte, error) {
	req, err := k.storeRequest("insert_value")
	if err != nil {
		return nil, err
	}
	if req.Value, err = EncodeValue(value); err != nil {
		return nil, err
	}
	if customKey != "" {
		hashed := keys.HashKey(customKey)
		req.Key = &hashed
	}
	req.Expire = expire
	return k.engine.Exec(req)
}

// InsertValueWithSchema inserts a value declaring the schema it conforms
// to, so the server validates it against the enforced schema of that name
// (see EnforceSchema). Otherwise identical to InsertValue.
func (k *Keyspace) InsertValueWithSchema(value interface{}, schema, customKey string, expire uint64) ([]byte, error) {
	req, err := k.storeRequest("insert_value")
	if err != nil {
		return nil, err
	}
	if req.Value, err = EncodeValue(value); err != nil {
		return nil, err
	}
	req.Schema = &schema
	if customKey != "" {
		hashed := keys.HashKey(customKey)
		req.Key = &hashed
	}
	req.Expire = expire
	return k.engine.Exec(req)
}

// UpdateValue replaces the value stored under a key. Exactly one of key and
// customKey must be given.
func (k *Keyspace) UpdateValue(value interface{}, key, customKey string) ([]byte, error) {
	req, err := k.storeRequest("update_value")
	if err != nil {
		return nil, err
	}
	if req.Key, err = resolveKey(key, customKey); err != nil {
		return nil, err
	}
	if req.Value, err = EncodeValue(value); err != nil {
		return nil, err
	}
	return k.engine.Exec(req)
}

// GetOptions modify how GetValue renders a record.
type GetOptions struct {
	// WithPointers resolves pointer fields into their pointed-to values.
	WithPointers bool
	// KeyIncluded includes the record's key in the returned value.
	KeyIncluded bool
	// PointersMetadata returns pointer targets instead of their values.
	// Mutually exclusive with WithPointers.
	PointersMetadata bool
}

// GetValue retrieves a record by key or custom key (exactly one must be
// given).
func (k *Keyspace) GetValue(key, customKey string, opts GetOptions) ([]byte, error) {
	if opts.WithPointers && opts.PointersMetadata {
		return nil, common.NewError(common.ErrKPointersConflict,
			"you selected both pointer values and pointer metadata, choose one")
	}

	req, err := k.storeRequest("get_value")
	if err != nil {
		return nil, err
	}
	if req.Key, err = resolveKey(key, customKey); err != nil {
		return nil, err
	}
	req.WithPointers = opts.WithPointers
	req.KeyIncluded = opts.KeyIncluded
	req.PointersMetadata = opts.PointersMetadata
	return k.engine.Exec(req)
}

// DeleteKey deletes a record by key or custom key (exactly one must be
// given).
func (k *Keyspace) DeleteKey(key, customKey string) ([]byte, error) {
	req, err := k.storeRequest("delete_key")
	if err != nil {
		return nil, err
	}
	if req.Key, err = resolveKey(key, customKey); err != nil {
		return nil, err
	}
	return k.engine.Exec(req)
}

// --------------------------------------------------------------------------
// Bulk and query operations
// --------------------------------------------------------------------------

// KeysOptions narrow a key listing. Volumes and LatestVolume address the
// storage volumes of persistent keyspaces; in-memory keyspaces ignore them.
type KeysOptions struct {
	// Limit caps the number of returned keys, 0 for all.
	Limit int
	// Volumes restricts the listing to the named volumes.
	Volumes []string
	// LatestVolume restricts the listing to the most recent volume.
	LatestVolume bool
}

// GetKeys lists keys of the keyspace.
func (k *Keyspace) GetKeys(opts KeysOptions) ([]byte, error) {
	req, err := k.storeRequest("get_keys")
	if err != nil {
		return nil, err
	}
	if opts.Limit > 0 {
		req.LimitOutput["limit"] = opts.Limit
	}
	if len(opts.Volumes) > 0 {
		req.Volumes = opts.Volumes
	}
	req.LatestVolume = opts.LatestVolume
	return k.engine.Exec(req)
}

// GetBulk retrieves multiple records. Server-assigned keys and custom keys
// may be mixed; at least one key must be given.
func (k *Keyspace) GetBulk(serverKeys, customKeys []string, opts GetOptions) ([]byte, error) {
	if opts.WithPointers && opts.PointersMetadata {
		return nil, common.NewError(common.ErrKPointersConflict,
			"you selected both pointer values and pointer metadata, choose one")
	}

	merged, err := keys.MergeKeys(serverKeys, customKeys)
	if err != nil {
		return nil, err
	}

	req, err := k.storeRequest("get_bulk")
	if err != nil {
		return nil, err
	}
	req.BulkKeys = merged
	req.WithPointers = opts.WithPointers
	req.KeyIncluded = opts.KeyIncluded
	req.PointersMetadata = opts.PointersMetadata
	return k.engine.Exec(req)
}

// DeleteBulk deletes multiple records addressed by server or custom keys.
func (k *Keyspace) DeleteBulk(serverKeys, customKeys []string) ([]byte, error) {
	merged, err := keys.MergeKeys(serverKeys, customKeys)
	if err != nil {
		return nil, err
	}

	req, err := k.storeRequest("delete_bulk")
	if err != nil {
		return nil, err
	}
	req.BulkKeys = merged
	return k.engine.Exec(req)
}

// InsertBulk inserts multiple values in one exchange. Each value is
// serialized to JSON individually.
func (k *Keyspace) InsertBulk(values []interface{}) ([]byte, error) {
	if len(values) == 0 {
		return nil, common.NewError(common.ErrKNoValidInput, "no values provided")
	}

	req, err := k.storeRequest("insert_value")
	if err != nil {
		return nil, err
	}
	req.BulkValues = make([]string, 0, len(values))
	for _, v := range values {
		encoded, err := EncodeValue(v)
		if err != nil {
			return nil, err
		}
		req.BulkValues = append(req.BulkValues, encoded)
	}
	return k.engine.Exec(req)
}

// UpdateBulk replaces multiple records in one exchange. Keys in keyValues
// are server-assigned, keys in customKeyValues are custom and are hashed.
// Values must already be JSON-encoded (see EncodeValue).
func (k *Keyspace) UpdateBulk(keyValues, customKeyValues map[string]string) ([]byte, error) {
	merged, err := keys.MergeKeyValues(keyValues, customKeyValues)
	if err != nil {
		return nil, err
	}

	req, err := k.storeRequest("update_value")
	if err != nil {
		return nil, err
	}
	req.BulkKeysValues = merged
	return k.engine.Exec(req)
}

// Length returns the number of records in the keyspace.
func (k *Keyspace) Length() ([]byte, error) {
	req, err := k.storeRequest("get_len")
	if err != nil {
		return nil, err
	}
	return k.engine.Exec(req)
}

// LookupValues searches records matching the given criteria.
func (k *Keyspace) LookupValues(criteria string, limit int) ([]byte, error) {
	if criteria == "" {
		return nil, common.NewError(common.ErrKNoValidInput, "no search criteria provided")
	}

	req, err := k.storeRequest("lookup_values")
	if err != nil {
		return nil, err
	}
	req.SearchCriteria = criteria
	if limit > 0 {
		req.LimitOutput["limit"] = limit
	}
	return k.engine.Exec(req)
}

// LookupKeys searches for keys whose records match the given criteria,
// returning the keys instead of the values. An optional schema name
// restricts the search to records stored under that schema.
func (k *Keyspace) LookupKeys(criteria string, limit int, schema string) ([]byte, error) {
	if criteria == "" {
		return nil, common.NewError(common.ErrKNoValidInput, "no search criteria provided")
	}

	req, err := k.storeRequest("lookup_keys")
	if err != nil {
		return nil, err
	}
	req.SearchCriteria = criteria
	if limit > 0 {
		req.LimitOutput["limit"] = limit
	}
	if schema != "" {
		req.Schema = &schema
	}
	return k.engine.Exec(req)
}

// --------------------------------------------------------------------------
// Schemas
// --------------------------------------------------------------------------

// EnforceSchema registers a schema on this keyspace. fields maps field
// names to their type names; values inserted under the schema (see
// InsertValueWithSchema) are validated against it by the server.
func (k *Keyspace) EnforceSchema(schemaName string, fields map[string]string) ([]byte, error) {
	if schemaName == "" {
		return nil, common.NewError(common.ErrKNoValidInput, "no schema name provided")
	}
	content, err := json.Marshal(fields)
	if err != nil {
		return nil, common.NewError(common.ErrKValueParsing, "failed to encode schema: %v", err)
	}

	store, err := k.engine.RequireStore()
	if err != nil {
		return nil, err
	}
	tokens := []string{
		"enforce-schema",
		"store", store,
		"keyspace", k.name,
		"persistent", yn(k.persistent),
		"schema_name", schemaName,
		"schema_content", string(content),
	}
	return k.engine.Exec(protocol.NewRawRequest(tokens, k.engine.Credentials()))
}

// RemoveEnforcedSchema drops a registered schema from this keyspace.
func (k *Keyspace) RemoveEnforcedSchema(schemaName string) ([]byte, error) {
	if schemaName == "" {
		return nil, common.NewError(common.ErrKNoValidInput, "no schema name provided")
	}

	store, err := k.engine.RequireStore()
	if err != nil {
		return nil, err
	}
	tokens := []string{
		"remove-enforced-schema",
		"store", store,
		"keyspace", k.name,
		"persistent", yn(k.persistent),
		"schema_name", schemaName,
	}
	return k.engine.Exec(protocol.NewRawRequest(tokens, k.engine.Credentials()))
}

// ListSchemas returns every schema registered on this keyspace.
func (k *Keyspace) ListSchemas() ([]byte, error) {
	req, err := k.storeRequest("list_all_schemas_in_keyspace")
	if err != nil {
		return nil, err
	}
	return k.engine.Exec(req)
}

// ListDependingKeys returns the keys of all records stored under the
// schema the given key's record declares. Exactly one of key and
// customKey must be given.
func (k *Keyspace) ListDependingKeys(key, customKey string) ([]byte, error) {
	req, err := k.storeRequest("list_all_depending_keys")
	if err != nil {
		return nil, err
	}
	if req.Key, err = resolveKey(key, customKey); err != nil {
		return nil, err
	}
	return k.engine.Exec(req)
}

// --------------------------------------------------------------------------
// Helpers
// --------------------------------------------------------------------------

// EncodeValue serializes a value to the JSON string the server stores.
func EncodeValue(value interface{}) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", common.NewError(common.ErrKValueParsing, "failed to encode value: %v", err)
	}
	return string(data), nil
}

// storeRequest builds the base store-operation record for this keyspace.
func (k *Keyspace) storeRequest(command string) (*protocol.StoreRequest, error) {
	store, err := k.engine.RequireStore()
	if err != nil {
		return nil, err
	}

	req := protocol.NewStoreRequest(k.engine.Credentials(), store, k.name, command)
	req.Persistent = k.persistent
	req.Distributed = k.distributed
	return req, nil
}

// resolveKey validates the key/customKey pair and returns the effective
// storage key: custom keys are hashed into the server key space.
func resolveKey(key, customKey string) (*string, error) {
	if key != "" && customKey != "" {
		return nil, common.NewError(common.ErrKBothKeys, "you selected both key and custom key, choose one")
	}
	if key == "" && customKey == "" {
		return nil, common.NewError(common.ErrKNoValidInput, "no key provided")
	}
	if customKey != "" {
		key = keys.HashKey(customKey)
	}
	return &key, nil
}

// yn renders a boolean the way raw commands expect it.
func yn(b bool) string {
	if b {
		return "y"
	}
	return "n"
}
