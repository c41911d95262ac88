package idcodec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodec_RoundTrip(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	tests := []uint64{0, 1, 62, 12345678, math.MaxUint64}
	for _, id := range tests {
		encoded := c.Encode(id)
		require.NotEmpty(t, encoded)

		decoded, err := c.Decode(encoded)
		require.NoError(t, err)
		require.Equal(t, id, decoded)
	}
}

func TestCodec_DecodeMalformed(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	tests := []struct {
		name    string
		encoded string
	}{
		{name: "empty", encoded: ""},
		{name: "punctuation", encoded: "!!not-an-id!!"},
		{name: "whitespace", encoded: " "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Decode(tt.encoded)
			require.Error(t, err)
		})
	}
}

func TestCodec_EncodeIsStable(t *testing.T) {
	a, err := New()
	require.NoError(t, err)
	b, err := New()
	require.NoError(t, err)

	// ids encoded by one process must decode in another
	require.Equal(t, a.Encode(987654321), b.Encode(987654321))
}
