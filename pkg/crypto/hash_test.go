package crypto

import (
	"encoding/hex"
	"testing"
)

func TestHash(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{
			name:  "empty input",
			input: []byte{},
			want:  "0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8",
		},
		{
			name:  "hello",
			input: []byte("hello"),
			want:  "324dcf027dd4a30a932c441f365a25e86b173defa4b8e58948253471b81b72cf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Hash(tt.input)
			if got.String() != tt.want {
				t.Errorf("Hash(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestKeyHash(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{
			name:  "empty input",
			input: []byte{},
			want:  "836cc68931c2e4e3e838602eca1902591d216837bafddfe6f0c8cb07",
		},
		{
			name:  "hello",
			input: []byte("hello"),
			want:  "a4963e4ea2aa9b4120672abfc4c4299ba365368fa5a3910d5c559fc5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := KeyHash(tt.input)
			if hex.EncodeToString(got[:]) != tt.want {
				t.Errorf("KeyHash(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestHash_DifferentInputs(t *testing.T) {
	if Hash([]byte("input A")) == Hash([]byte("input B")) {
		t.Error("different inputs produced the same hash")
	}
}
