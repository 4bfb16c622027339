// Copyright 2024 The arsc Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package arsc

import (
	"reflect"
	"testing"
)

// TestEmptyTableRoundTrip covers scenario (a): outer Table header
// {type=0x0002, header_size=0x000C}, package_count=0, empty global
// string pool. Total size is tableHeaderSize(0x0C) plus an empty
// StringPool's Size() (chunkHeaderSize(8) + 20 = 0x1C), i.e. 0x28.
func TestEmptyTableRoundTrip(t *testing.T) {
	table := &ResourceTable{}
	if got := table.Size(); got != 0x28 {
		t.Fatalf("Size() = %#x, want 0x28", got)
	}

	buf, err := table.Serialize()
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	if len(buf) != 0x28 {
		t.Fatalf("len(Serialize()) = %#x, want 0x28", len(buf))
	}

	got, err := Parse(buf)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(got.Packages) != 0 {
		t.Fatalf("len(Packages) = %d, want 0", len(got.Packages))
	}
	if len(got.Strings.Strings) != 0 || len(got.Strings.Styles) != 0 {
		t.Fatalf("Strings = %+v, want empty", got.Strings)
	}
}

func TestParseTooSmall(t *testing.T) {
	if _, err := Parse([]byte{0x01, 0x02}); err != ErrTooSmall {
		t.Fatalf("Parse() error = %v, want ErrTooSmall", err)
	}
}

func TestParseWrongOuterChunk(t *testing.T) {
	buf := appendChunkHeader(nil, ChunkStringPool, stringPoolHeaderSize, 0x1C)
	if _, err := Parse(buf); err != ErrMissingTableChunk {
		t.Fatalf("Parse() error = %v, want ErrMissingTableChunk", err)
	}
}

func buildSamplePackage() *Package {
	specs := &Specs{
		TypeID: 1,
		Specs: []Spec{
			{Flags: 0, ID: 0, NameIndex: noNameIndex},
			{Flags: 0, ID: 1, NameIndex: noNameIndex},
		},
	}
	cfg := &Config{
		TypeID:     1,
		EntryCount: 2,
		ConfigID:   defaultConfigID(),
		Entries: map[uint32]*ResourceEntry{
			0: {NameIndex: 0, SpecID: 0, Value: Value{Type: 0x03, DataIndex: 0}},
			1: {NameIndex: 1, SpecID: 1, Value: Value{Type: 0x03, DataIndex: 1}},
		},
	}
	return &Package{
		ID:        0x7F,
		Name:      "com.example.app",
		TypeNames: StringPool{Flags: stringPoolUTF8Flag, Strings: []string{"string"}},
		KeyNames:  StringPool{Flags: stringPoolUTF8Flag, Strings: []string{"app_name", "title"}},
		Types: []*Type{
			{ID: 1, Specs: specs, Configs: []*Config{cfg}},
		},
	}
}

func TestFullTableRoundTrip(t *testing.T) {
	pkg := buildSamplePackage()
	table := &ResourceTable{
		Strings:  StringPool{Flags: stringPoolUTF8Flag, Strings: []string{"hello", "world"}},
		Packages: []*Package{pkg},
	}

	buf, err := table.Serialize()
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	if len(buf) != table.Size() {
		t.Fatalf("len(Serialize()) = %d, Size() = %d", len(buf), table.Size())
	}

	got, err := Parse(buf)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if err := backfillSpecNames(pkg.Types); err != nil {
		t.Fatalf("backfillSpecNames() error = %v", err)
	}
	if !reflect.DeepEqual(got.Strings, table.Strings) {
		t.Fatalf("global strings = %+v, want %+v", got.Strings, table.Strings)
	}
	if len(got.Packages) != 1 {
		t.Fatalf("len(Packages) = %d, want 1", len(got.Packages))
	}
	gotPkg := got.Packages[0]
	if gotPkg.ID != pkg.ID || gotPkg.Name != pkg.Name {
		t.Fatalf("package = %+v, want id=%d name=%q", gotPkg, pkg.ID, pkg.Name)
	}
	if !reflect.DeepEqual(gotPkg.TypeNames, pkg.TypeNames) {
		t.Fatalf("TypeNames = %+v, want %+v", gotPkg.TypeNames, pkg.TypeNames)
	}
	if !reflect.DeepEqual(gotPkg.KeyNames, pkg.KeyNames) {
		t.Fatalf("KeyNames = %+v, want %+v", gotPkg.KeyNames, pkg.KeyNames)
	}
	if len(gotPkg.Types) != 1 {
		t.Fatalf("len(Types) = %d, want 1", len(gotPkg.Types))
	}
	if !reflect.DeepEqual(gotPkg.Types[0].Specs, pkg.Types[0].Specs) {
		t.Fatalf("Specs = %+v, want %+v", gotPkg.Types[0].Specs, pkg.Types[0].Specs)
	}
	if len(gotPkg.Types[0].Configs) != 1 {
		t.Fatalf("len(Configs) = %d, want 1", len(gotPkg.Types[0].Configs))
	}
	if !reflect.DeepEqual(gotPkg.Types[0].Configs[0].Entries, pkg.Types[0].Configs[0].Entries) {
		t.Fatalf("Entries = %+v, want %+v",
			gotPkg.Types[0].Configs[0].Entries, pkg.Types[0].Configs[0].Entries)
	}
}

// TestSpecNameBackfill covers testable property 7 for a Type with a
// single Config: after parsing, every Spec referenced by a Config
// entry carries that entry's name_index.
func TestSpecNameBackfill(t *testing.T) {
	pkg := buildSamplePackage()
	table := &ResourceTable{Packages: []*Package{pkg}}
	buf, err := table.Serialize()
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	got, err := Parse(buf)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	specs := got.Packages[0].Types[0].Specs
	if specs.Specs[0].NameIndex != 0 {
		t.Errorf("Specs[0].NameIndex = %d, want 0", specs.Specs[0].NameIndex)
	}
	if specs.Specs[1].NameIndex != 1 {
		t.Errorf("Specs[1].NameIndex = %d, want 1", specs.Specs[1].NameIndex)
	}
}
