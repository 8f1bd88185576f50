package types

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestHexToHash(t *testing.T) {
	s := strings.Repeat("ab", HashSize)
	h, err := HexToHash(s)
	if err != nil {
		t.Fatalf("HexToHash: %v", err)
	}
	if h.String() != s {
		t.Errorf("String() = %s, want %s", h.String(), s)
	}

	if _, err := HexToHash("abcd"); err == nil {
		t.Error("short hash should fail")
	}
	if _, err := HexToHash(strings.Repeat("zz", HashSize)); err == nil {
		t.Error("non-hex hash should fail")
	}
}

func TestHash_JSON(t *testing.T) {
	h := Hash{0x01, 0x02}
	data, err := json.Marshal(h)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got Hash
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got != h {
		t.Errorf("got %x, want %x", got, h)
	}

	if err := json.Unmarshal([]byte(`""`), &got); err != nil || !got.IsZero() {
		t.Errorf("empty string should decode to zero hash, got %x err %v", got, err)
	}
}

func TestHexToKeyHash(t *testing.T) {
	s := strings.Repeat("0f", KeyHashSize)
	k, err := HexToKeyHash(s)
	if err != nil {
		t.Fatalf("HexToKeyHash: %v", err)
	}
	if k.String() != s {
		t.Errorf("String() = %s, want %s", k.String(), s)
	}
	if _, err := HexToKeyHash(strings.Repeat("0f", HashSize)); err == nil {
		t.Error("32-byte input should fail")
	}
}
