// Copyright 2024 The arsc Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package arsc

import "unicode/utf8"

// stringPoolUTF8Flag is the only flags bit this codec interprets; any
// other bit is preserved verbatim but otherwise ignored, per spec.
const stringPoolUTF8Flag uint32 = 0x00000100

// styleSpanEnd is the on-wire sentinel terminating each style's span
// list, and the pair of sentinels trailing the whole style block. It
// never appears in the in-memory model.
const styleSpanEnd uint32 = 0xFFFFFFFF

// StringPool is the Android resource string pool: an ordered,
// permanently-addressable list of strings plus an ordered list of
// styles (style i, if present, annotates string i). Strings preserve
// insertion order for the lifetime of the pool -- any external index
// into it stays valid.
type StringPool struct {
	// Flags carries the raw flags word; only stringPoolUTF8Flag
	// (0x100) is interpreted, selecting between the two string
	// encodings. Every other bit round-trips unexamined.
	Flags uint32 `json:"flags"`

	// Strings holds every decoded string value, in on-wire order.
	Strings []string `json:"strings,omitempty"`

	// Styles holds style-span lists; Styles[i] applies to Strings[i]
	// when present. It is legal (and common) to have fewer styles
	// than strings, or none at all.
	Styles []Style `json:"styles,omitempty"`
}

// UseUTF8 reports whether strings in this pool are encoded as
// modified UTF-8 rather than UTF-16LE.
func (p *StringPool) UseUTF8() bool {
	return p.Flags&stringPoolUTF8Flag != 0
}

// Style is the non-empty list of spans attached to one string.
type Style struct {
	Spans []StyleSpan `json:"spans,omitempty"`
}

// StyleSpan is one (name, start, end) run within a styled string.
// NameIndex indexes the global string pool for the span's tag name; Start and
// End are character offsets into the owning string.
type StyleSpan struct {
	NameIndex uint32 `json:"name_index"`
	Start     uint32 `json:"start"`
	End       uint32 `json:"end"`
}

// readStringPool parses a string pool chunk whose header has already
// been confirmed to be ChunkStringPool by the caller (the outer Table
// pool and each package's type/key pools all call in after validating
// their own chunk boundary). base is the offset of the chunk's first
// header byte, needed because every internal offset -- string data,
// style data -- is relative to fields inside this same chunk.
// skipStyles, when true, skips decoding style spans entirely: styles
// stay nil and readStyle is never called.
func readStringPool(c *cursor, base uint32, header ChunkHeader, skipStyles bool) (StringPool, error) {
	stringCount, err := c.u32()
	if err != nil {
		return StringPool{}, err
	}
	styleCount, err := c.u32()
	if err != nil {
		return StringPool{}, err
	}
	flags, err := c.u32()
	if err != nil {
		return StringPool{}, err
	}
	stringDataOffset, err := c.u32()
	if err != nil {
		return StringPool{}, err
	}
	styleDataOffset, err := c.u32()
	if err != nil {
		return StringPool{}, err
	}

	stringOffsets := make([]uint32, stringCount)
	for i := range stringOffsets {
		v, err := c.u32()
		if err != nil {
			return StringPool{}, err
		}
		stringOffsets[i] = v
	}
	styleOffsets := make([]uint32, styleCount)
	for i := range styleOffsets {
		v, err := c.u32()
		if err != nil {
			return StringPool{}, err
		}
		styleOffsets[i] = v
	}

	useUTF8 := flags&stringPoolUTF8Flag != 0
	var strings []string
	if stringCount > 0 {
		strings = make([]string, stringCount)
		for i, off := range stringOffsets {
			c.seek(base + stringDataOffset + off)
			var s string
			var err error
			if useUTF8 {
				s, err = readUTF8StringItem(c)
			} else {
				s, err = readUTF16StringItem(c)
			}
			if err != nil {
				return StringPool{}, err
			}
			strings[i] = s
		}
	}

	var styles []Style
	if styleCount > 0 && !skipStyles {
		styles = make([]Style, styleCount)
		for i, off := range styleOffsets {
			c.seek(base + styleDataOffset + off)
			st, err := readStyle(c)
			if err != nil {
				return StringPool{}, err
			}
			styles[i] = st
		}
	}

	// Leave the cursor at the end of the declared chunk, so callers can
	// read the next sibling chunk directly: string and style payloads
	// are read out of sequential order via their offset tables, so the
	// cursor position after them does not mark the chunk's end.
	c.seek(base + uint32(header.TotalSize))

	return StringPool{Flags: flags, Strings: strings, Styles: styles}, nil
}

func readStyle(c *cursor) (Style, error) {
	var spans []StyleSpan
	for {
		name, err := c.u32()
		if err != nil {
			return Style{}, err
		}
		if name == styleSpanEnd {
			break
		}
		start, err := c.u32()
		if err != nil {
			return Style{}, err
		}
		end, err := c.u32()
		if err != nil {
			return Style{}, err
		}
		spans = append(spans, StyleSpan{NameIndex: name, Start: start, End: end})
	}
	return Style{Spans: spans}, nil
}

// --- UTF-8 mode ---

func readUTF8StringItem(c *cursor) (string, error) {
	if _, err := readUTF8Length(c); err != nil { // character count, unused on read
		return "", err
	}
	byteCount, err := readUTF8Length(c)
	if err != nil {
		return "", err
	}
	raw, err := c.bytes(uint32(byteCount))
	if err != nil {
		return "", err
	}
	if _, err := c.u8(); err != nil { // null terminator
		return "", err
	}
	if !utf8.Valid(raw) {
		return "", ErrInvalidUTF8
	}
	return string(raw), nil
}

// readUTF8Length decodes one of the two UTF-8-mode length preambles
// (character count or byte count): one byte when <= 0x7F, two bytes
// when larger, high bit of the first byte set and the remaining 15
// bits, high byte first, carrying the length.
func readUTF8Length(c *cursor) (int, error) {
	b0, err := c.u8()
	if err != nil {
		return 0, err
	}
	if b0&0x80 == 0 {
		return int(b0), nil
	}
	b1, err := c.u8()
	if err != nil {
		return 0, err
	}
	return (int(b0&0x7F) << 8) | int(b1), nil
}

func utf8LengthSize(n int) int {
	if n <= 0x7F {
		return 1
	}
	return 2
}

func appendUTF8Length(buf []byte, n int) []byte {
	if n <= 0x7F {
		return appendU8(buf, uint8(n))
	}
	buf = appendU8(buf, uint8(0x80|(n>>8)))
	buf = appendU8(buf, uint8(n&0xFF))
	return buf
}

func utf8StringItemSize(s string) int {
	charCount := len([]rune(s))
	byteCount := len(s)
	return utf8LengthSize(charCount) + utf8LengthSize(byteCount) + byteCount + 1
}

func appendUTF8StringItem(buf []byte, s string) []byte {
	charCount := len([]rune(s))
	buf = appendUTF8Length(buf, charCount)
	buf = appendUTF8Length(buf, len(s))
	buf = append(buf, s...)
	buf = appendU8(buf, 0)
	return buf
}

// --- UTF-16 mode ---

func readUTF16StringItem(c *cursor) (string, error) {
	charCount, err := readUTF16Length(c)
	if err != nil {
		return "", err
	}
	raw, err := c.bytes(uint32(charCount) * 2)
	if err != nil {
		return "", err
	}
	if _, err := c.u16(); err != nil { // null terminator
		return "", err
	}
	return decodeUTF16(raw)
}

// readUTF16Length decodes the UTF-16-mode length preamble: one 16-bit
// word (in code units) when <= 0x7FFF, two words when larger. Per the
// spec's resolution of the upstream ambiguity here: the low word
// (with its high bit set) comes first, then the high word, both
// little-endian, together forming a 31-bit length.
func readUTF16Length(c *cursor) (int, error) {
	w0, err := c.u16()
	if err != nil {
		return 0, err
	}
	if w0&0x8000 == 0 {
		return int(w0), nil
	}
	w1, err := c.u16()
	if err != nil {
		return 0, err
	}
	return int(w0&0x7FFF) | (int(w1) << 15), nil
}

func utf16LengthSize(n int) int {
	if n <= 0x7FFF {
		return 2
	}
	return 4
}

func appendUTF16Length(buf []byte, n int) []byte {
	if n <= 0x7FFF {
		return appendU16(buf, uint16(n))
	}
	low := uint16(0x8000 | (n & 0x7FFF))
	high := uint16(n >> 15)
	buf = appendU16(buf, low)
	buf = appendU16(buf, high)
	return buf
}

func utf16StringItemSize(s string) int {
	charCount := utf16Units(s)
	return utf16LengthSize(charCount) + charCount*2 + 2
}

func appendUTF16StringItem(buf []byte, s string) []byte {
	raw, err := encodeUTF16(s)
	if err != nil {
		raw = nil
	}
	charCount := len(raw) / 2
	buf = appendUTF16Length(buf, charCount)
	buf = append(buf, raw...)
	buf = appendU16(buf, 0)
	return buf
}

// --- size planning ---

func (p *StringPool) stringItemSize(s string) int {
	if p.UseUTF8() {
		return utf8StringItemSize(s)
	}
	return utf16StringItemSize(s)
}

// Size returns the exact number of bytes this string pool occupies on
// the wire, including its own chunk header.
func (p *StringPool) Size() int {
	size := chunkHeaderSize + 5*4 + len(p.Strings)*4 + len(p.Styles)*4
	stringDataSize := 0
	for _, s := range p.Strings {
		stringDataSize += p.stringItemSize(s)
	}
	size += stringDataSize + padding(stringDataSize)
	if len(p.Styles) > 0 {
		for _, st := range p.Styles {
			size += st.size()
		}
		size += 8 // two trailing 0xFFFFFFFF sentinels
	}
	return size
}

func (s *Style) size() int {
	return len(s.Spans)*12 + 4 // each span is 3 u32s, plus its own end sentinel
}

// WriteTo appends this string pool's wire bytes, including its chunk
// header, to buf and returns the extended slice.
func (p *StringPool) WriteTo(buf []byte) []byte {
	size := p.Size()
	buf = appendChunkHeader(buf, ChunkStringPool, stringPoolHeaderSize, uint64(size))

	stringDataSize := 0
	for _, s := range p.Strings {
		stringDataSize += p.stringItemSize(s)
	}
	paddedStringDataSize := stringDataSize + padding(stringDataSize)

	// Both offsets are measured from the chunk's own base (its first
	// header byte), per the ResStringPool_header convention: the fixed
	// header (28 bytes, including the 8-byte common chunk header) is
	// followed by the string and style offset tables, then the data
	// regions those offsets point into.
	offsetTableBytes := uint32(len(p.Strings)*4 + len(p.Styles)*4)
	stringDataOffset := uint32(stringPoolHeaderSize) + offsetTableBytes
	styleDataOffset := uint32(0)
	if len(p.Styles) > 0 {
		styleDataOffset = stringDataOffset + uint32(paddedStringDataSize)
	}

	buf = appendU32(buf, uint32(len(p.Strings)))
	buf = appendU32(buf, uint32(len(p.Styles)))
	buf = appendU32(buf, p.Flags)
	buf = appendU32(buf, stringDataOffset)
	buf = appendU32(buf, styleDataOffset)

	offset := uint32(0)
	for _, s := range p.Strings {
		buf = appendU32(buf, offset)
		offset += uint32(p.stringItemSize(s))
	}
	offset = 0
	for _, st := range p.Styles {
		buf = appendU32(buf, offset)
		offset += uint32(st.size())
	}

	for _, s := range p.Strings {
		if p.UseUTF8() {
			buf = appendUTF8StringItem(buf, s)
		} else {
			buf = appendUTF16StringItem(buf, s)
		}
	}
	buf = appendPadding(buf, stringDataSize)

	for _, st := range p.Styles {
		buf = st.writeTo(buf)
	}
	if len(p.Styles) > 0 {
		buf = appendU32(buf, styleSpanEnd)
		buf = appendU32(buf, styleSpanEnd)
	}

	return buf
}

func (s *Style) writeTo(buf []byte) []byte {
	for _, span := range s.Spans {
		buf = appendU32(buf, span.NameIndex)
		buf = appendU32(buf, span.Start)
		buf = appendU32(buf, span.End)
	}
	buf = appendU32(buf, styleSpanEnd)
	return buf
}
