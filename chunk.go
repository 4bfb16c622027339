// Copyright 2024 The arsc Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package arsc

// ChunkType identifies the kind of a chunk from its 8-byte header.
// The set is closed; a value outside it is a format error, never a
// new chunk boundary invented by the parser.
type ChunkType uint16

// Chunk type constants, matching the arsc wire format.
const (
	ChunkNull          ChunkType = 0x0000
	ChunkStringPool    ChunkType = 0x0001
	ChunkTable         ChunkType = 0x0002
	ChunkTablePackage  ChunkType = 0x0200
	ChunkTableType     ChunkType = 0x0201
	ChunkTableTypeSpec ChunkType = 0x0202
	ChunkTableLibrary  ChunkType = 0x0203
)

// String renders the chunk type name for logging and JSON debugging.
func (t ChunkType) String() string {
	switch t {
	case ChunkNull:
		return "Null"
	case ChunkStringPool:
		return "StringPool"
	case ChunkTable:
		return "Table"
	case ChunkTablePackage:
		return "TablePackage"
	case ChunkTableType:
		return "TableType"
	case ChunkTableTypeSpec:
		return "TableTypeSpec"
	case ChunkTableLibrary:
		return "TableLibrary"
	default:
		return "Unknown"
	}
}

func (t ChunkType) known() bool {
	switch t {
	case ChunkNull, ChunkStringPool, ChunkTable, ChunkTablePackage,
		ChunkTableType, ChunkTableTypeSpec, ChunkTableLibrary:
		return true
	default:
		return false
	}
}

// Fixed header sizes for chunk kinds whose header region (the bytes
// preceding the variable body) never depends on the data it carries.
// TableType/Config is the one exception -- its header region includes
// the variable-length config_id blob, so its header size is computed
// per instance instead of looked up here (see Config.headerSize).
const (
	chunkHeaderSize         = 8 // type + header_size + total_size
	tableHeaderSize         = 0x000C
	stringPoolHeaderSize    = 0x001C
	tablePackageHeaderSize  = 0x0120
	tableTypeSpecHeaderSize = 0x0010
	// defaultConfigHeaderSize is the header size of a Config carrying
	// a 64-byte ResTable_config: chunkHeaderSize(8) + the five
	// preamble fields(12) + 64. The codec does not apply it when
	// writing; every Config, parsed or freshly constructed, gets its
	// header size from its actual config_id length (Config.headerSize).
	defaultConfigHeaderSize = 0x0054
	defaultConfigIDSize     = defaultConfigHeaderSize - chunkHeaderSize - 12
)

// ChunkHeader is the common 8-byte prefix of every chunk: a type tag,
// the length of the header region (including the chunk-specific
// preamble that follows the 8 common bytes), and the total chunk
// length. header_size is stored as read, and total_size is widened
// from the wire's u32 to a u64 in the model. Only the TableType reader
// (readConfig) uses header_size, to find where its offset table
// begins; the Table, StringPool, TablePackage and TableTypeSpec
// readers read their body directly after their known fields, so header
// bytes beyond those fields are not skipped.
type ChunkHeader struct {
	Type       ChunkType
	HeaderSize uint16
	TotalSize  uint64
}

func readChunkHeader(c *cursor) (ChunkHeader, error) {
	typeBits, err := c.u16()
	if err != nil {
		return ChunkHeader{}, err
	}
	headerSize, err := c.u16()
	if err != nil {
		return ChunkHeader{}, err
	}
	totalSize, err := c.u32()
	if err != nil {
		return ChunkHeader{}, err
	}
	t := ChunkType(typeBits)
	if !t.known() {
		return ChunkHeader{}, ErrUnknownChunkType
	}
	return ChunkHeader{Type: t, HeaderSize: headerSize, TotalSize: uint64(totalSize)}, nil
}

// expectChunkHeader reads a chunk header and asserts it matches want, returning
// ErrUnexpectedChunkType otherwise.
func expectChunkHeader(c *cursor, want ChunkType) (ChunkHeader, error) {
	h, err := readChunkHeader(c)
	if err != nil {
		return ChunkHeader{}, err
	}
	if h.Type != want {
		return ChunkHeader{}, ErrUnexpectedChunkType
	}
	return h, nil
}

func appendChunkHeader(buf []byte, t ChunkType, headerSize uint16, totalSize uint64) []byte {
	buf = appendU16(buf, uint16(t))
	buf = appendU16(buf, headerSize)
	buf = appendU32(buf, uint32(totalSize))
	return buf
}
