package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey builds a stage-namespaced cache key of the form
// prefix:hash(parts...). Parts are JSON-encoded before hashing so struct
// key options contribute every field.
func hashKey(prefix string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	// Full SHA-256, 64 hex chars. Layout and artifact keys chain on these
	// hashes, so truncation would compound collision risk across stages.
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes the full SHA-256 hex digest of data. The pipeline uses it
// to fingerprint stage inputs (entry lists, serialized layouts).
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
