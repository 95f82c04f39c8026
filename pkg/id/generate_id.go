package id

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"
)

// NewID32 returns exactly 32 hex characters (no separators/prefixes).
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// NewApplicationNumber returns a human-readable application number of the
// form LA-YYYYMMDD-XXXXXXXXXX. The suffix comes from crypto/rand so
// concurrent creations cannot collide.
func NewApplicationNumber(now time.Time) string {
	b := make([]byte, 5)
	_, _ = rand.Read(b)
	return "LA-" + now.UTC().Format("20060102") + "-" + strings.ToUpper(hex.EncodeToString(b))
}
