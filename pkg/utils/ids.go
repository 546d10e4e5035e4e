// pkg/utils/ids.go
package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// GenerateEntityID generates a prefixed unique ID, e.g. "pattern-1a2b3c4d5e6f".
// IDs are never reused; uniqueness comes from 6 random bytes plus a
// nanosecond-timestamp fallback when the random source is unavailable.
func GenerateEntityID(prefix string) string {
	bytes := make([]byte, 6)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp-based ID
		return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
	}
	return fmt.Sprintf("%s-%s", prefix, hex.EncodeToString(bytes))
}

// ValidateEntityID checks that an ID carries the expected prefix and a
// non-empty suffix.
func ValidateEntityID(id, prefix string) bool {
	want := prefix + "-"
	if len(id) <= len(want) {
		return false
	}
	return id[:len(want)] == want
}

// GenerateRandomID returns n random bytes hex-encoded; used for request IDs
func GenerateRandomID(n int) string {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(bytes)
}
