// Copyright 2024 The arsc Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package arsc

import (
	"reflect"
	"testing"
)

func defaultConfigID() []byte {
	blob := appendU32(nil, uint32(defaultConfigIDSize))
	for len(blob) < defaultConfigIDSize {
		blob = appendU8(blob, 0)
	}
	return blob
}

func roundTripConfig(t *testing.T, cfg *Config) *Config {
	t.Helper()
	buf := cfg.WriteTo(nil)
	if len(buf) != cfg.Size() {
		t.Fatalf("WriteTo produced %d bytes, Size() = %d", len(buf), cfg.Size())
	}
	c := newCursor(buf)
	base := c.tell()
	header, err := expectChunkHeader(c, ChunkTableType)
	if err != nil {
		t.Fatalf("expectChunkHeader() error = %v", err)
	}
	got, err := readConfig(c, base, header)
	if err != nil {
		t.Fatalf("readConfig() error = %v", err)
	}
	return got
}

// TestConfigSparseOffsetTable covers testable property 6 and scenario
// (c): a Config with entry_count=3 and a single resource at spec
// index 1 produces the offset table [0xFFFFFFFF, 0x00000000,
// 0xFFFFFFFF].
func TestConfigSparseOffsetTable(t *testing.T) {
	cfg := &Config{
		TypeID:     1,
		EntryCount: 3,
		ConfigID:   defaultConfigID(),
		Entries: map[uint32]*ResourceEntry{
			1: {NameIndex: 7, SpecID: 1, Value: Value{Type: 0x03, DataIndex: 42}},
		},
	}
	buf := cfg.WriteTo(nil)
	offsetTableStart := cfg.headerSize()
	off0 := readU32At(buf, offsetTableStart)
	off1 := readU32At(buf, offsetTableStart+4)
	off2 := readU32At(buf, offsetTableStart+8)
	if off0 != missingOffset || off2 != missingOffset {
		t.Fatalf("offsets[0], offsets[2] = %#x, %#x, want 0xFFFFFFFF both", off0, off2)
	}
	if off1 != 0 {
		t.Fatalf("offsets[1] = %#x, want 0", off1)
	}

	got := roundTripConfig(t, cfg)
	if !reflect.DeepEqual(got.Entries, cfg.Entries) {
		t.Fatalf("round trip entries = %+v, want %+v", got.Entries, cfg.Entries)
	}
}

func readU32At(buf []byte, off int) uint32 {
	c := newCursor(buf)
	c.seek(uint32(off))
	v, err := c.u32()
	if err != nil {
		panic(err)
	}
	return v
}

// TestBagEntrySize covers scenario (d): a bag entry with parent=0 and
// two (index, Value) pairs occupies 8 (preamble) + 4 (parent) + 4
// (count) + 2*(4+8) = 40 bytes, and its header size field is 16.
func TestBagEntrySize(t *testing.T) {
	e := &ResourceEntry{
		Flags:     entryBagFlag,
		NameIndex: 3,
		IsBag:     true,
		Bag: Bag{
			Parent: 0,
			Values: []BagValue{
				{Index: 0, Value: Value{Type: 0x10, DataIndex: 1}},
				{Index: 1, Value: Value{Type: 0x10, DataIndex: 2}},
			},
		},
	}
	if got := e.size(); got != 40 {
		t.Fatalf("size() = %d, want 40", got)
	}
	buf := e.writeTo(nil)
	if len(buf) != 40 {
		t.Fatalf("len(writeTo) = %d, want 40", len(buf))
	}
	if got := readUint16LE(buf, 0); got != entryHeaderSizeBag {
		t.Fatalf("header size field = %d, want %d", got, entryHeaderSizeBag)
	}
}

func readUint16LE(buf []byte, off int) uint16 {
	c := newCursor(buf)
	c.seek(uint32(off))
	v, err := c.u16()
	if err != nil {
		panic(err)
	}
	return v
}

func TestConfigFullRoundTrip(t *testing.T) {
	cfg := &Config{
		TypeID:     1,
		EntryCount: 2,
		ConfigID:   defaultConfigID(),
		Entries: map[uint32]*ResourceEntry{
			0: {NameIndex: 1, Value: Value{Type: 0x03, DataIndex: 0}},
			1: {
				Flags:     entryBagFlag,
				NameIndex: 2,
				IsBag:     true,
				Bag: Bag{
					Parent: 0,
					Values: []BagValue{
						{Index: 0, Value: Value{Type: 0x10, DataIndex: 5}},
					},
				},
			},
		},
	}
	cfg.Entries[0].SpecID = 0
	cfg.Entries[1].SpecID = 1

	got := roundTripConfig(t, cfg)
	if !reflect.DeepEqual(got.Entries, cfg.Entries) {
		t.Fatalf("round trip entries = %+v, want %+v", got.Entries, cfg.Entries)
	}
}
