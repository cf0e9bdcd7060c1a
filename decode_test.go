package serial

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeChunk(t *testing.T) {
	tests := []struct {
		name     string
		in       []byte
		want     string
		replaced bool
	}{
		{"ASCII", []byte("123\r\n"), "123\r\n", false},
		{"Multibyte", []byte("25°C"), "25°C", false},
		{"Empty", []byte{}, "", false},
		{"InvalidBytes", []byte{0xff, 'A', 0xfe}, "\uFFFDA\uFFFD", true},
		// a rune split across reads is replaced, not reassembled
		{"TruncatedRune", []byte{'4', 0xc2}, "4\uFFFD", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, replaced := decodeChunk(tt.in)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.replaced, replaced)
		})
	}
}
