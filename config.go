// Copyright 2024 The arsc Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package arsc

import "sort"

// entryBagFlag marks a ResourceEntry as a Bag rather than a single
// Value.
const entryBagFlag uint16 = 0x0001

// missingOffset is the on-wire sentinel for a spec index with no
// corresponding entry in a Config's offset table.
const missingOffset uint32 = 0xFFFFFFFF

// entryHeaderSizePlain and entryHeaderSizeBag are the values this
// codec writes into an entry's informational size field. They
// describe the struct shape (plain vs. bag header), not the number of
// bytes the parser actually consumes -- that is driven by the bag bit
// in flags, not by this field.
const (
	entryHeaderSizePlain uint16 = 8
	entryHeaderSizeBag   uint16 = 16
)

// Config is one qualifier-scoped slice of a Type's resources: the
// opaque config_id descriptor (locale, density, screen size, ...) and
// the sparse spec-index -> ResourceEntry map that applies under it.
type Config struct {
	TypeID     uint8  `json:"type_id"`
	Res0       uint8  `json:"res0"`
	Res1       uint16 `json:"res1"`
	EntryCount uint32 `json:"entry_count"`

	// ConfigID is the raw self-describing qualifier blob exactly as it
	// appears on the wire, including its own leading size word.
	ConfigID []byte `json:"config_id"`

	// Entries maps spec index to the entry present at that index.
	// Indices with no entry are simply absent from the map.
	Entries map[uint32]*ResourceEntry `json:"entries,omitempty"`
}

// ResourceEntry is one resource's value under one Config: either a
// single Value or a Bag of (index, Value) pairs.
type ResourceEntry struct {
	Flags     uint16 `json:"flags"`
	NameIndex uint32 `json:"name_index"`
	SpecID    uint32 `json:"spec_id"`

	IsBag bool  `json:"is_bag"`
	Value Value `json:"value,omitempty"`
	Bag   Bag   `json:"bag,omitempty"`
}

// Value is a typed resource value: when Type's low two bits are 0x03
// (TYPE_STRING), DataIndex addresses the owning table's global string
// pool.
type Value struct {
	Size      uint16 `json:"size"`
	Zero      uint8  `json:"zero"`
	Type      uint8  `json:"type"`
	DataIndex uint32 `json:"data_index"`
}

// Bag is a map-typed resource value: a parent style reference plus an
// ordered list of (index, Value) pairs.
type Bag struct {
	Parent uint32     `json:"parent"`
	Values []BagValue `json:"values,omitempty"`
}

// BagValue is one entry of a Bag.
type BagValue struct {
	Index uint32 `json:"index"`
	Value Value  `json:"value"`
}

func readValue(c *cursor) (Value, error) {
	size, err := c.u16()
	if err != nil {
		return Value{}, err
	}
	zero, err := c.u8()
	if err != nil {
		return Value{}, err
	}
	typ, err := c.u8()
	if err != nil {
		return Value{}, err
	}
	data, err := c.u32()
	if err != nil {
		return Value{}, err
	}
	return Value{Size: size, Zero: zero, Type: typ, DataIndex: data}, nil
}

func (v Value) writeTo(buf []byte) []byte {
	buf = appendU16(buf, v.Size)
	buf = appendU8(buf, v.Zero)
	buf = appendU8(buf, v.Type)
	buf = appendU32(buf, v.DataIndex)
	return buf
}

func readResourceEntry(c *cursor, specID uint32) (*ResourceEntry, error) {
	if _, err := c.u16(); err != nil { // size, discarded
		return nil, err
	}
	flags, err := c.u16()
	if err != nil {
		return nil, err
	}
	nameIndex, err := c.u32()
	if err != nil {
		return nil, err
	}
	e := &ResourceEntry{Flags: flags, NameIndex: nameIndex, SpecID: specID}
	if flags&entryBagFlag != 0 {
		parent, err := c.u32()
		if err != nil {
			return nil, err
		}
		count, err := c.u32()
		if err != nil {
			return nil, err
		}
		values := make([]BagValue, count)
		for i := range values {
			idx, err := c.u32()
			if err != nil {
				return nil, err
			}
			v, err := readValue(c)
			if err != nil {
				return nil, err
			}
			values[i] = BagValue{Index: idx, Value: v}
		}
		e.IsBag = true
		e.Bag = Bag{Parent: parent, Values: values}
	} else {
		v, err := readValue(c)
		if err != nil {
			return nil, err
		}
		e.Value = v
	}
	return e, nil
}

// size returns the number of bytes this entry occupies in a Config's
// entry data region, not counting the offset-table slot that points
// to it.
func (e *ResourceEntry) size() int {
	if e.IsBag {
		return 8 + 8 + len(e.Bag.Values)*12
	}
	return 8 + 8
}

func (e *ResourceEntry) writeTo(buf []byte) []byte {
	if e.IsBag {
		buf = appendU16(buf, entryHeaderSizeBag)
		buf = appendU16(buf, e.Flags)
		buf = appendU32(buf, e.NameIndex)
		buf = appendU32(buf, e.Bag.Parent)
		buf = appendU32(buf, uint32(len(e.Bag.Values)))
		for _, bv := range e.Bag.Values {
			buf = appendU32(buf, bv.Index)
			buf = bv.Value.writeTo(buf)
		}
		return buf
	}
	buf = appendU16(buf, entryHeaderSizePlain)
	buf = appendU16(buf, e.Flags)
	buf = appendU32(buf, e.NameIndex)
	buf = e.Value.writeTo(buf)
	return buf
}

// readConfig parses a TableType chunk whose header has already been
// confirmed. base is the chunk's own first byte, matching the
// "offsets relative to chunk start" convention used throughout.
func readConfig(c *cursor, base uint32, header ChunkHeader) (*Config, error) {
	typeID, err := c.u8()
	if err != nil {
		return nil, err
	}
	res0, err := c.u8()
	if err != nil {
		return nil, err
	}
	res1, err := c.u16()
	if err != nil {
		return nil, err
	}
	entryCount, err := c.u32()
	if err != nil {
		return nil, err
	}
	entryStart, err := c.u32()
	if err != nil {
		return nil, err
	}

	// config_id is self-describing: its own first word is its total
	// size including that word, so we read the size, rewind, and then
	// read exactly that many bytes.
	blobStart := c.tell()
	blobSize, err := c.u32()
	if err != nil {
		return nil, err
	}
	c.seek(blobStart)
	configID, err := c.bytes(blobSize)
	if err != nil {
		return nil, err
	}

	c.seek(base + uint32(header.HeaderSize))
	offsets := make([]int32, entryCount)
	for i := range offsets {
		v, err := c.i32()
		if err != nil {
			return nil, err
		}
		offsets[i] = v
	}

	entries := make(map[uint32]*ResourceEntry, entryCount)
	dataBase := base + entryStart
	for specID, off := range offsets {
		if uint32(off) == missingOffset {
			continue
		}
		c.seek(dataBase + uint32(off))
		e, err := readResourceEntry(c, uint32(specID))
		if err != nil {
			return nil, err
		}
		entries[uint32(specID)] = e
	}

	c.seek(base + uint32(header.TotalSize))

	return &Config{
		TypeID:     typeID,
		Res0:       res0,
		Res1:       res1,
		EntryCount: entryCount,
		ConfigID:   configID,
		Entries:    entries,
	}, nil
}

// headerSize returns the size of this config's chunk header region:
// the common 8-byte chunk header, the 12-byte preamble, and the
// config_id blob padded to a 4-byte boundary.
func (cfg *Config) headerSize() int {
	configIDSize := len(cfg.ConfigID)
	return chunkHeaderSize + 12 + configIDSize + padding(configIDSize)
}

func (cfg *Config) entryStart() int {
	return cfg.headerSize() + 4*int(cfg.EntryCount)
}

// Size returns the exact number of bytes this Config occupies,
// including its chunk header.
func (cfg *Config) Size() int {
	size := cfg.entryStart()
	for _, e := range cfg.Entries {
		size += e.size()
	}
	return size
}

// WriteTo appends this Config's wire bytes to buf.
func (cfg *Config) WriteTo(buf []byte) []byte {
	headerSize := cfg.headerSize()
	entryStart := cfg.entryStart()
	total := cfg.Size()

	buf = appendChunkHeader(buf, ChunkTableType, uint16(headerSize), uint64(total))
	buf = appendU8(buf, cfg.TypeID)
	buf = appendU8(buf, cfg.Res0)
	buf = appendU16(buf, cfg.Res1)
	buf = appendU32(buf, cfg.EntryCount)
	buf = appendU32(buf, uint32(entryStart))

	configIDSize := len(cfg.ConfigID)
	buf = append(buf, cfg.ConfigID...)
	buf = appendPadding(buf, configIDSize)

	specIDs := sortedSpecIndices(cfg.Entries)
	runningOffset := uint32(0)
	sizes := make(map[uint32]int, len(specIDs))
	for _, id := range specIDs {
		sizes[id] = cfg.Entries[id].size()
	}
	nextOffset := make(map[uint32]uint32, len(specIDs))
	for _, id := range specIDs {
		nextOffset[id] = runningOffset
		runningOffset += uint32(sizes[id])
	}

	for i := uint32(0); i < cfg.EntryCount; i++ {
		if off, ok := nextOffset[i]; ok {
			buf = appendU32(buf, off)
		} else {
			buf = appendU32(buf, missingOffset)
		}
	}

	for _, id := range specIDs {
		buf = cfg.Entries[id].writeTo(buf)
	}

	return buf
}

func sortedSpecIndices(m map[uint32]*ResourceEntry) []uint32 {
	ids := make([]uint32, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
