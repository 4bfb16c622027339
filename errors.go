// Copyright 2024 The arsc Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package arsc

import "errors"

// Errors returned by the parser and serializer. Each one corresponds
// to a failure mode of the codec. The parser reads from an in-memory
// buffer, so a short read is reported as ErrOutOfBounds.
var (
	// ErrTooSmall is returned when the input is smaller than the
	// smallest possible chunk header.
	ErrTooSmall = errors.New("arsc: input smaller than a chunk header")

	// ErrUnexpectedChunkType is returned when a chunk header's type
	// field does not match what the caller was expecting at that
	// position in the stream.
	ErrUnexpectedChunkType = errors.New("arsc: unexpected chunk type")

	// ErrUnknownChunkType is returned when a chunk header's type field
	// is outside the closed set of known chunk types.
	ErrUnknownChunkType = errors.New("arsc: unknown chunk type")

	// ErrMissingStringPool is returned when a required string pool
	// chunk (the table's global pool, or a package's type/key name
	// pool) is missing or is not the next chunk encountered.
	ErrMissingStringPool = errors.New("arsc: missing required string pool")

	// ErrMissingTableChunk is returned when the outermost chunk is not
	// a Table chunk.
	ErrMissingTableChunk = errors.New("arsc: missing outer table chunk")

	// ErrEmptySpecList is returned when a Specs chunk declares zero
	// entries; a Specs chunk, when present, always names at least one
	// resource id for its type.
	ErrEmptySpecList = errors.New("arsc: spec list must not be empty")

	// ErrInvalidUTF8 is returned when a UTF-8 mode string pool entry
	// contains bytes that do not decode as UTF-8.
	ErrInvalidUTF8 = errors.New("arsc: invalid UTF-8 in string pool entry")

	// ErrInvalidUTF16 is returned when a UTF-16 mode string pool entry,
	// or a fixed-width UTF-16 field, contains an invalid code unit
	// sequence.
	ErrInvalidUTF16 = errors.New("arsc: invalid UTF-16 in string pool entry")

	// ErrOutOfBounds is returned when a read would run past the end of
	// the buffer, or when a Specs or Config chunk names a type id that
	// has no slot in its package. Seeks are not checked, and reads are
	// not checked against the enclosing chunk's declared size.
	ErrOutOfBounds = errors.New("arsc: read outside buffer bounds")

	// ErrDanglingSpecRef is returned when a Config entry is assigned
	// to a spec index that has no corresponding Spec in the Specs list
	// for its Type — an invariant violation rather than a malformed
	// wire format, caught during the parser's fix-up phase.
	ErrDanglingSpecRef = errors.New("arsc: config entry references unknown spec index")

	// ErrNilResourceTable is returned by serialization entry points
	// when given a nil *ResourceTable.
	ErrNilResourceTable = errors.New("arsc: nil resource table")
)
