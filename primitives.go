// Copyright 2024 The arsc Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package arsc

import (
	"encoding/binary"

	"golang.org/x/text/encoding/unicode"
)

// cursor is a bounds-checked, little-endian reader over an in-memory
// buffer. The whole arsc file (mmap'd or read fully into memory) is
// addressable by offset, so a cursor is just a moving position into
// that buffer rather than a wrapper around an io.Reader -- the same
// shape pe.File uses for its ReadUint8/16/32 family, generalized into
// a stateful cursor because the tree builder below reads many fields
// in sequence and occasionally rewinds.
type cursor struct {
	data []byte
	pos  uint32
}

func newCursor(data []byte) *cursor {
	return &cursor{data: data}
}

func (c *cursor) len() uint32 { return uint32(len(c.data)) }

func (c *cursor) tell() uint32 { return c.pos }

// seek repositions the cursor. It does not itself error on an
// out-of-range position; the next read will.
func (c *cursor) seek(pos uint32) { c.pos = pos }

func (c *cursor) skip(n uint32) { c.pos += n }

func (c *cursor) u8() (uint8, error) {
	if c.pos+1 > c.len() {
		return 0, ErrOutOfBounds
	}
	v := c.data[c.pos]
	c.pos++
	return v, nil
}

func (c *cursor) u16() (uint16, error) {
	if c.pos+2 > c.len() {
		return 0, ErrOutOfBounds
	}
	v := binary.LittleEndian.Uint16(c.data[c.pos:])
	c.pos += 2
	return v, nil
}

func (c *cursor) u32() (uint32, error) {
	if c.pos+4 > c.len() {
		return 0, ErrOutOfBounds
	}
	v := binary.LittleEndian.Uint32(c.data[c.pos:])
	c.pos += 4
	return v, nil
}

func (c *cursor) i32() (int32, error) {
	v, err := c.u32()
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

// bytes returns a slice view of the next n bytes and advances past
// them. The returned slice aliases the cursor's backing array.
func (c *cursor) bytes(n uint32) ([]byte, error) {
	if c.pos+n > c.len() || c.pos+n < c.pos {
		return nil, ErrOutOfBounds
	}
	v := c.data[c.pos : c.pos+n]
	c.pos += n
	return v, nil
}

// utf16Fixed reads a fixed-width UTF-16LE field of exactly units code
// units (2*units bytes), stopping value decoding at the first null
// code unit but always advancing the cursor by the full field width
// regardless of where the null landed.
func (c *cursor) utf16Fixed(units int) (string, error) {
	raw, err := c.bytes(uint32(units) * 2)
	if err != nil {
		return "", err
	}
	end := len(raw)
	for i := 0; i+1 < len(raw); i += 2 {
		if raw[i] == 0 && raw[i+1] == 0 {
			end = i
			break
		}
	}
	return decodeUTF16(raw[:end])
}

var utf16Decoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
var utf16Encoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// decodeUTF16 decodes raw little-endian UTF-16 bytes (no terminating
// null) into a Go string, the same decoder construction pe.helper.go's
// DecodeUTF16String uses.
func decodeUTF16(raw []byte) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}
	out, err := utf16Decoder.NewDecoder().Bytes(raw)
	if err != nil {
		return "", ErrInvalidUTF16
	}
	return string(out), nil
}

// encodeUTF16 encodes s as little-endian UTF-16 bytes with no
// terminating null; callers append the null/padding themselves.
func encodeUTF16(s string) ([]byte, error) {
	out, err := utf16Encoder.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, ErrInvalidUTF16
	}
	return out, nil
}

// utf16Units returns the number of UTF-16 code units s encodes to,
// by encoding it and halving the encoded length.
func utf16Units(s string) int {
	raw, err := encodeUTF16(s)
	if err != nil {
		return 0
	}
	return len(raw) / 2
}

// --- little-endian primitive writers, appended to a growing buffer ---

func appendU8(buf []byte, v uint8) []byte {
	return append(buf, v)
}

func appendU16(buf []byte, v uint16) []byte {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	return append(buf, tmp[:]...)
}

func appendU32(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}

func appendI32(buf []byte, v int32) []byte {
	return appendU32(buf, uint32(v))
}

// appendUTF16Fixed writes s as UTF-16LE code units into a field that
// is exactly width bytes wide, null-terminating and zero-padding (or
// truncating) as needed. Mirrors the read side's utf16Fixed.
func appendUTF16Fixed(buf []byte, s string, width int) []byte {
	raw, err := encodeUTF16(s)
	if err != nil {
		raw = nil
	}
	// Leave room for the terminating null code unit.
	max := width - 2
	if max < 0 {
		max = 0
	}
	max -= max % 2
	if len(raw) > max {
		raw = raw[:max]
	}
	out := make([]byte, width)
	copy(out, raw)
	return append(buf, out...)
}

// padding returns the number of zero bytes needed to round size up to
// the next 4-byte boundary.
func padding(size int) int {
	return (4 - size%4) % 4
}

func appendPadding(buf []byte, size int) []byte {
	n := padding(size)
	for i := 0; i < n; i++ {
		buf = append(buf, 0)
	}
	return buf
}
