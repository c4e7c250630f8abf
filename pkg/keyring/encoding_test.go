package keyring

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePassword_Malformed(t *testing.T) {
	// Malformed sequences from Markus Kuhn's UTF-8 decoder stress test.
	for _, b := range [][]byte{{0x80}, {0xbf}, {0xed, 0xa0, 0xa0}} {
		_, err := decodePassword(b)
		require.Error(t, err)

		var ke *Error
		require.True(t, errors.As(err, &ke))
		assert.Equal(t, KindBadEncoding, ke.Kind)
		assert.Equal(t, b, ke.Data)
	}
}

func TestDecodePassword_CopiesData(t *testing.T) {
	b := []byte{0xff, 0xfe}
	_, err := decodePassword(b)
	var ke *Error
	require.True(t, errors.As(err, &ke))
	b[0] = 0
	assert.Equal(t, byte(0xff), ke.Data[0])
}

func TestDecodePassword_Valid(t *testing.T) {
	got, err := decodePassword([]byte("пароль"))
	require.NoError(t, err)
	assert.Equal(t, "пароль", got)
}

func TestUTF16LE_RoundTrip(t *testing.T) {
	for _, s := range []string{"", "secret", "密码123", "emoji 🔑", "nul\x00inside"} {
		b := encodeUTF16LE(s)
		assert.Len(t, b, 2*utf16Len(s))

		got, err := decodeUTF16LE(b)
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestUTF16LE_Layout(t *testing.T) {
	assert.Equal(t, []byte{'p', 0, 'w', 0}, encodeUTF16LE("pw"))
}

func TestDecodeUTF16LE_Malformed(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
	}{
		{name: "odd_length", in: []byte{'a', 0, 'b'}},
		{name: "lone_high_surrogate", in: []byte{0x3d, 0xd8}},
		{name: "high_then_letter", in: []byte{0x3d, 0xd8, 'a', 0}},
		{name: "lone_low_surrogate", in: []byte{0x11, 0xdd}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeUTF16LE(tt.in)
			assert.ErrorIs(t, err, ErrBadEncoding)
		})
	}
}

func TestUTF16Len(t *testing.T) {
	assert.Equal(t, 0, utf16Len(""))
	assert.Equal(t, 3, utf16Len("abc"))
	assert.Equal(t, 2, utf16Len("🔑"))
}
