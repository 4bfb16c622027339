// Copyright 2024 The arsc Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package arsc

// noNameIndex is the sentinel Spec.NameIndex carries until the
// tree-builder's fix-up phase back-fills it from a Config entry. A
// Spec that never appears in any Config (legal: a type can declare
// more specs than any config actually populates) keeps this sentinel
// forever.
const noNameIndex uint32 = 0xFFFFFFFF

// Type is one resource type within a Package: an optional Specs block
// naming every resource id the type declares, and an ordered list of
// Configs, each holding the subset of those resources that apply
// under one qualifier combination.
type Type struct {
	// ID is the 1-based type id; ID-1 indexes the owning Package's
	// TypeNames pool for this type's name.
	ID uint8 `json:"id"`

	Specs   *Specs    `json:"specs,omitempty"`
	Configs []*Config `json:"configs,omitempty"`
}

// Specs is the type-wide declaration of every resource id a Type
// carries, independent of any particular qualifier Config.
type Specs struct {
	TypeID uint8  `json:"type_id"`
	Res0   uint8  `json:"res0"`
	Res1   uint16 `json:"res1"`
	Specs  []Spec `json:"specs,omitempty"`
}

// Spec is one resource id declared by a Specs block. NameIndex is not
// present on the wire; it is filled in during parsing from whichever
// Config entry references this spec index (see the tree builder's
// name-index back-propagation step).
type Spec struct {
	Flags     uint32 `json:"flags"`
	ID        uint32 `json:"id"`
	NameIndex uint32 `json:"name_index"`
}

// Size returns the total bytes this Type's Specs block (if any) and
// all its Configs occupy.
func (t *Type) Size() int {
	size := 0
	if t.Specs != nil {
		size += t.Specs.Size()
	}
	for _, cfg := range t.Configs {
		size += cfg.Size()
	}
	return size
}

// WriteTo appends this Type's Specs block (if any) followed by each
// of its Configs, in order, to buf.
func (t *Type) WriteTo(buf []byte) []byte {
	if t.Specs != nil {
		buf = t.Specs.WriteTo(buf)
	}
	for _, cfg := range t.Configs {
		buf = cfg.WriteTo(buf)
	}
	return buf
}

func readSpecs(c *cursor, base uint32, header ChunkHeader) (*Specs, error) {
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
	if entryCount == 0 {
		return nil, ErrEmptySpecList
	}
	specs := make([]Spec, entryCount)
	for i := range specs {
		flags, err := c.u32()
		if err != nil {
			return nil, err
		}
		specs[i] = Spec{Flags: flags, ID: uint32(i), NameIndex: noNameIndex}
	}
	c.seek(base + uint32(header.TotalSize))
	return &Specs{TypeID: typeID, Res0: res0, Res1: res1, Specs: specs}, nil
}

// Size returns the exact number of bytes this Specs block occupies,
// including its chunk header.
func (s *Specs) Size() int {
	return tableTypeSpecHeaderSize + len(s.Specs)*4
}

// WriteTo appends this Specs block's wire bytes to buf.
func (s *Specs) WriteTo(buf []byte) []byte {
	size := s.Size()
	buf = appendChunkHeader(buf, ChunkTableTypeSpec, tableTypeSpecHeaderSize, uint64(size))
	buf = appendU8(buf, s.TypeID)
	buf = appendU8(buf, s.Res0)
	buf = appendU16(buf, s.Res1)
	buf = appendU32(buf, uint32(len(s.Specs)))
	for _, spec := range s.Specs {
		buf = appendU32(buf, spec.Flags)
	}
	return buf
}
