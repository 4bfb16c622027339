// Copyright 2024 The arsc Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package arsc

// ResourceTable is the root of the in-memory model: one global string
// pool shared by every package's string-typed values, plus an ordered
// list of Packages.
type ResourceTable struct {
	Strings  StringPool `json:"strings"`
	Packages []*Package `json:"packages,omitempty"`
}

// Parse decodes a complete .arsc byte buffer into a ResourceTable.
// The buffer must be addressable as a whole (a file read fully into
// memory, or an mmap view); Parse does not stream.
func Parse(data []byte) (*ResourceTable, error) {
	return parseTable(data, false)
}

// parseTable is Parse's implementation, plus a skipStyles switch that
// (*File).Parse uses to honor Options.SkipStyles: when set, no style
// block anywhere in the table -- the global pool or any package's
// TypeNames/KeyNames pools -- is decoded into spans at all, rather
// than being decoded and then discarded.
func parseTable(data []byte, skipStyles bool) (*ResourceTable, error) {
	if len(data) < chunkHeaderSize {
		return nil, ErrTooSmall
	}
	c := newCursor(data)
	if _, err := expectChunkHeader(c, ChunkTable); err != nil {
		return nil, ErrMissingTableChunk
	}
	packageCount, err := c.u32()
	if err != nil {
		return nil, err
	}

	poolBase := c.tell()
	poolHeader, err := expectChunkHeader(c, ChunkStringPool)
	if err != nil {
		return nil, ErrMissingStringPool
	}
	strings, err := readStringPool(c, poolBase, poolHeader, skipStyles)
	if err != nil {
		return nil, err
	}

	packages := make([]*Package, packageCount)
	for i := range packages {
		pkg, err := readPackage(c, skipStyles)
		if err != nil {
			return nil, err
		}
		packages[i] = pkg
	}

	return &ResourceTable{Strings: strings, Packages: packages}, nil
}

// Size returns the exact number of bytes Serialize would write for
// this table.
func (t *ResourceTable) Size() int {
	size := tableHeaderSize + t.Strings.Size()
	for _, pkg := range t.Packages {
		size += pkg.Size()
	}
	return size
}

// Serialize encodes t back to its wire form and returns the bytes.
func (t *ResourceTable) Serialize() ([]byte, error) {
	if t == nil {
		return nil, ErrNilResourceTable
	}
	size := t.Size()
	buf := make([]byte, 0, size)
	buf = appendChunkHeader(buf, ChunkTable, tableHeaderSize, uint64(size))
	buf = appendU32(buf, uint32(len(t.Packages)))
	buf = t.Strings.WriteTo(buf)
	for _, pkg := range t.Packages {
		buf = pkg.WriteTo(buf)
	}
	return buf, nil
}
