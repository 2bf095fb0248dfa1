// Package gameid generates sortable identifiers for games. IDs are UUIDv7
// values encoded as 26-character Crockford base32 strings, so IDs created
// later sort later both as bytes and as strings.
package gameid

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"
)

const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// New creates a new game ID.
func New() string {
	var uuid [16]byte

	// 48-bit millisecond timestamp in the first 6 bytes.
	now := time.Now().UnixMilli()
	for i := 0; i < 6; i++ {
		uuid[i] = byte(now >> (40 - 8*i))
	}

	if _, err := rand.Read(uuid[6:]); err != nil {
		panic("gameid: failed to read random bytes: " + err.Error())
	}

	// Version 7, variant 10.
	uuid[6] = (uuid[6] & 0x0f) | 0x70
	uuid[8] = (uuid[8] & 0x3f) | 0x80

	return encodeBase32(uuid)
}

// encodeBase32 encodes 128 bits as 26 base32 characters, 5 bits each,
// reading bits most-significant first.
func encodeBase32(data [16]byte) string {
	var b strings.Builder
	b.Grow(26)
	for i := 0; i < 26; i++ {
		bitOffset := i * 5
		byteIndex := bitOffset / 8
		bitIndex := bitOffset % 8

		var value byte
		if bitIndex <= 3 {
			value = (data[byteIndex] >> (3 - bitIndex)) & 0x1f
		} else {
			value = (data[byteIndex] << (bitIndex - 3)) & 0x1f
			if byteIndex+1 < len(data) {
				value |= data[byteIndex+1] >> (11 - bitIndex)
			}
		}
		b.WriteByte(alphabet[value])
	}
	return b.String()
}

// Validate checks that an ID is 26 valid base32 characters.
func Validate(id string) error {
	if len(id) != 26 {
		return fmt.Errorf("gameid: must be 26 characters, got %d", len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("gameid: first character must be 0-7, got %c", id[0])
	}
	for i := 0; i < len(id); i++ {
		if !strings.ContainsRune(alphabet, rune(id[i])) {
			return fmt.Errorf("gameid: invalid character %c at position %d", id[i], i)
		}
	}
	return nil
}
