package keys

import (
	"fmt"
	"strconv"

	"github.com/OneOfOne/xxhash"
	"github.com/lynxkv/lynx-go/wire/common"
)

// hashSeed is fixed so hashes are stable across process runs and platforms.
// Custom keys and server-assigned keys share one key space, so equal custom
// keys must collide deterministically.
const hashSeed uint32 = 0

// HashKey maps any display-able value to its storage key: the xxHash32
// digest of its string representation, rendered as a decimal string.
// Pure function, no failure modes.
func HashKey(key interface{}) string {
	s := fmt.Sprint(key)
	return strconv.FormatUint(uint64(xxhash.Checksum32S([]byte(s), hashSeed)), 10)
}

// MergeKeys combines server-assigned keys with hashed custom keys into one
// addressing list for bulk operations. At least one key must result or
// ErrKNoValidInput is returned.
func MergeKeys(serverKeys, customKeys []string) ([]string, error) {
	if len(serverKeys) == 0 && len(customKeys) == 0 {
		return nil, common.NewError(common.ErrKNoValidInput, "no keys provided")
	}

	merged := make([]string, 0, len(serverKeys)+len(customKeys))
	merged = append(merged, serverKeys...)
	for _, k := range customKeys {
		merged = append(merged, HashKey(k))
	}
	return merged, nil
}

// MergeKeyValues combines server-keyed values with custom-keyed values,
// hashing the custom keys, for bulk update operations.
func MergeKeyValues(keyValues, customKeyValues map[string]string) (map[string]string, error) {
	if len(keyValues) == 0 && len(customKeyValues) == 0 {
		return nil, common.NewError(common.ErrKNoValidInput, "no key-value pairs provided")
	}

	merged := make(map[string]string, len(keyValues)+len(customKeyValues))
	for k, v := range keyValues {
		merged[k] = v
	}
	for k, v := range customKeyValues {
		merged[HashKey(k)] = v
	}
	return merged, nil
}
