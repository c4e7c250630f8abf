package keyring

import (
	"encoding/binary"
	"unicode/utf16"
	"unicode/utf8"
)

// decodePassword checks that bytes read from a store are UTF-8 text. Stores
// accept arbitrary bytes, so items written by other programs may not be.
func decodePassword(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", errBadEncoding(append([]byte(nil), b...))
	}
	return string(b), nil
}

// encodeUTF16LE renders s the way Windows stores credential blobs.
func encodeUTF16LE(s string) []byte {
	units := utf16.Encode([]rune(s))
	out := make([]byte, 2*len(units))
	for i, u := range units {
		binary.LittleEndian.PutUint16(out[2*i:], u)
	}
	return out
}

// decodeUTF16LE rejects odd-length blobs and unpaired surrogates instead of
// substituting U+FFFD.
func decodeUTF16LE(b []byte) (string, error) {
	if len(b)%2 != 0 {
		return "", errBadEncoding(append([]byte(nil), b...))
	}
	units := make([]uint16, len(b)/2)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(b[2*i:])
	}
	for i := 0; i < len(units); i++ {
		u := units[i]
		switch {
		case u >= 0xD800 && u < 0xDC00:
			if i+1 >= len(units) || units[i+1] < 0xDC00 || units[i+1] >= 0xE000 {
				return "", errBadEncoding(append([]byte(nil), b...))
			}
			i++
		case u >= 0xDC00 && u < 0xE000:
			return "", errBadEncoding(append([]byte(nil), b...))
		}
	}
	return string(utf16.Decode(units)), nil
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}
