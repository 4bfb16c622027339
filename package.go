// Copyright 2024 The arsc Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package arsc

// packageNameUnits is the package name field's fixed width in UTF-16
// code units: 127 characters plus a null terminator.
const packageNameUnits = 128

// Package is one resource package within a ResourceTable: an id, a
// fixed-width name, its own type-name and key-name string pools, and
// the ordered Types it declares.
type Package struct {
	ID   uint32 `json:"id"`
	Name string `json:"name"`

	// LastPublicType and LastPublicKey are preserved verbatim from the
	// source file; this codec does not interpret them.
	LastPublicType uint32 `json:"last_public_type"`
	LastPublicKey  uint32 `json:"last_public_key"`

	TypeNames StringPool `json:"type_names"`
	KeyNames  StringPool `json:"key_names"`

	// Types is indexed by (type id - 1); its length is fixed at parse
	// time to TypeNames' string count, one slot per declared type
	// name, some of which may never gain a Specs or any Config.
	Types []*Type `json:"types,omitempty"`
}

func readPackage(c *cursor, skipStyles bool) (*Package, error) {
	base := c.tell()
	header, err := expectChunkHeader(c, ChunkTablePackage)
	if err != nil {
		return nil, err
	}

	id, err := c.u32()
	if err != nil {
		return nil, err
	}
	name, err := c.utf16Fixed(packageNameUnits)
	if err != nil {
		return nil, err
	}

	if _, err := c.u32(); err != nil { // type_string_offset, regenerated on write
		return nil, err
	}
	lastPublicType, err := c.u32()
	if err != nil {
		return nil, err
	}
	if _, err := c.u32(); err != nil { // key_string_offset, regenerated on write
		return nil, err
	}
	lastPublicKey, err := c.u32()
	if err != nil {
		return nil, err
	}
	if _, err := c.u32(); err != nil { // type_id_offset, regenerated on write
		return nil, err
	}

	typeNamesBase := c.tell()
	typeNamesHeader, err := expectChunkHeader(c, ChunkStringPool)
	if err != nil {
		return nil, ErrMissingStringPool
	}
	typeNames, err := readStringPool(c, typeNamesBase, typeNamesHeader, skipStyles)
	if err != nil {
		return nil, err
	}

	keyNamesBase := c.tell()
	keyNamesHeader, err := expectChunkHeader(c, ChunkStringPool)
	if err != nil {
		return nil, ErrMissingStringPool
	}
	keyNames, err := readStringPool(c, keyNamesBase, keyNamesHeader, skipStyles)
	if err != nil {
		return nil, err
	}

	types := make([]*Type, len(typeNames.Strings))
	for i := range types {
		types[i] = &Type{ID: uint8(i + 1)}
	}

	end := base + uint32(header.TotalSize)
	for c.tell() < end {
		chunkBase := c.tell()
		h, err := readChunkHeader(c)
		if err != nil {
			return nil, err
		}
		switch h.Type {
		case ChunkTableTypeSpec:
			specs, err := readSpecs(c, chunkBase, h)
			if err != nil {
				return nil, err
			}
			idx := int(specs.TypeID) - 1
			if idx < 0 || idx >= len(types) {
				return nil, ErrOutOfBounds
			}
			if types[idx].Specs != nil {
				return nil, ErrUnexpectedChunkType
			}
			types[idx].Specs = specs
		case ChunkTableType:
			cfg, err := readConfig(c, chunkBase, h)
			if err != nil {
				return nil, err
			}
			idx := int(cfg.TypeID) - 1
			if idx < 0 || idx >= len(types) {
				return nil, ErrOutOfBounds
			}
			types[idx].Configs = append(types[idx].Configs, cfg)
		default:
			return nil, ErrUnexpectedChunkType
		}
	}

	if err := backfillSpecNames(types); err != nil {
		return nil, err
	}

	return &Package{
		ID:             id,
		Name:           name,
		LastPublicType: lastPublicType,
		LastPublicKey:  lastPublicKey,
		TypeNames:      typeNames,
		KeyNames:       keyNames,
		Types:          types,
	}, nil
}

// backfillSpecNames implements the tree builder's name-index
// back-propagation step: Specs chunks carry no names on the wire, so
// each Spec's NameIndex is set from whichever Config entry in the
// same Type references that spec index.
func backfillSpecNames(types []*Type) error {
	for _, t := range types {
		if t.Specs == nil {
			continue
		}
		for _, cfg := range t.Configs {
			for specID, entry := range cfg.Entries {
				if int(specID) >= len(t.Specs.Specs) {
					return ErrDanglingSpecRef
				}
				t.Specs.Specs[specID].NameIndex = entry.NameIndex
			}
		}
	}
	return nil
}

// Size returns the exact number of bytes this Package occupies,
// including its chunk header.
func (p *Package) Size() int {
	size := tablePackageHeaderSize
	size += p.TypeNames.Size()
	size += p.KeyNames.Size()
	for _, t := range p.Types {
		size += t.Size()
	}
	return size
}

// WriteTo appends this Package's wire bytes to buf.
func (p *Package) WriteTo(buf []byte) []byte {
	size := p.Size()
	buf = appendChunkHeader(buf, ChunkTablePackage, tablePackageHeaderSize, uint64(size))
	buf = appendU32(buf, p.ID)
	buf = appendUTF16Fixed(buf, p.Name, packageNameUnits*2)

	typeStringOffset := uint32(tablePackageHeaderSize)
	keyStringOffset := typeStringOffset + uint32(p.TypeNames.Size())

	buf = appendU32(buf, typeStringOffset)
	buf = appendU32(buf, p.LastPublicType)
	buf = appendU32(buf, keyStringOffset)
	buf = appendU32(buf, p.LastPublicKey)
	buf = appendU32(buf, 0) // type_id_offset, regenerated as 0

	buf = p.TypeNames.WriteTo(buf)
	buf = p.KeyNames.WriteTo(buf)

	for _, t := range p.Types {
		buf = t.WriteTo(buf)
	}

	return buf
}
