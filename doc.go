// Copyright 2024 The arsc Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package arsc is a bidirectional codec for the Android compiled
// resource table container, the `.arsc` binary format emitted by the
// Android asset packaging toolchain (aapt/aapt2).
//
// It parses a byte stream into an in-memory ResourceTable of packages,
// types, configurations and strings, and serializes that model back
// to bytes. The primary design goal is byte-exact round-trip:
// re-serializing a parsed file reproduces the original bytes, modulo
// the documented exceptions (global string pools containing the
// Unicode replacement character U+FFFD, which indicate the source
// file was already corrupt).
//
// The package does not validate that resource identifiers, type IDs
// or configuration qualifiers are semantically legal Android values,
// does not interpret resource values beyond the string-reference
// case, does not support mutating a parsed table, and does not decode
// binary XML, DEX or other sibling container formats.
package arsc
