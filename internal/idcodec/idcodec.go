// Package idcodec translates internal 64-bit identifiers to the short
// URL-safe strings used in links and payload keys.
package idcodec

import (
	"fmt"

	"github.com/sqids/sqids-go"
)

// minLength keeps encoded ids from getting too short to look like opaque tokens.
const minLength = 8

// Codec encodes and decodes identifiers. The zero value is not usable; use New.
type Codec struct {
	s *sqids.Sqids
}

// New returns a Codec with the default alphabet.
func New() (*Codec, error) {
	s, err := sqids.New(sqids.Options{MinLength: minLength})
	if err != nil {
		return nil, fmt.Errorf("init id codec: %w", err)
	}
	return &Codec{s: s}, nil
}

// Encode returns the URL-safe form of id.
func (c *Codec) Encode(id uint64) string {
	// Encode only fails on a custom alphabet, which we do not use.
	s, err := c.s.Encode([]uint64{id})
	if err != nil {
		panic(fmt.Sprintf("idcodec: encode %d: %v", id, err))
	}
	return s
}

// Decode parses an encoded id. Malformed input returns an error; callers
// decide whether that means "skip" or "not found".
func (c *Codec) Decode(encoded string) (uint64, error) {
	ids := c.s.Decode(encoded)
	if len(ids) != 1 {
		return 0, fmt.Errorf("malformed id %q", encoded)
	}
	// Round-trip check: Decode accepts some strings Encode never produces.
	if c.Encode(ids[0]) != encoded {
		return 0, fmt.Errorf("malformed id %q", encoded)
	}
	return ids[0], nil
}
