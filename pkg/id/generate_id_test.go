package id

import (
	"encoding/hex"
	"regexp"
	"testing"
	"time"
)

var reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)

func TestNewID32_FormatAndDecode(t *testing.T) {
	got := NewID32()

	// length
	if len(got) != 32 {
		t.Fatalf("length = %d, want 32 (got=%q)", len(got), got)
	}
	// lowercase hex only (no separators/prefixes)
	if !reHex32.MatchString(got) {
		t.Fatalf("not 32-char lowercase hex: %q", got)
	}
	// decodes to exactly 16 bytes
	b, err := hex.DecodeString(got)
	if err != nil {
		t.Fatalf("hex.DecodeString error: %v", err)
	}
	if len(b) != 16 {
		t.Fatalf("decoded bytes = %d, want 16", len(b))
	}
}

func TestNewID32_Uniqueness(t *testing.T) {
	const n = 200
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		id := NewID32()
		if _, ok := seen[id]; ok {
			t.Fatalf("duplicate id after %d iterations: %q", i, id)
		}
		seen[id] = struct{}{}
	}
}

func TestNewID32_NoUppercaseOrHyphen(t *testing.T) {
	id := NewID32()
	for _, r := range id {
		if r >= 'A' && r <= 'Z' {
			t.Fatalf("found uppercase letter in id: %q", id)
		}
		if r == '-' {
			t.Fatalf("found hyphen in id: %q", id)
		}
	}
}

var reAppNumber = regexp.MustCompile(`^LA-\d{8}-[A-F0-9]{10}$`)

func TestNewApplicationNumber_Format(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	got := NewApplicationNumber(now)
	if !reAppNumber.MatchString(got) {
		t.Fatalf("unexpected application number format: %q", got)
	}
	if want := "LA-20260829-"; got[:len(want)] != want {
		t.Fatalf("date prefix = %q, want %q", got[:len(want)], want)
	}
}

func TestNewApplicationNumber_Uniqueness(t *testing.T) {
	const n = 200
	now := time.Now()
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		num := NewApplicationNumber(now)
		if _, ok := seen[num]; ok {
			t.Fatalf("duplicate application number after %d iterations: %q", i, num)
		}
		seen[num] = struct{}{}
	}
}
