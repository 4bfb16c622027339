// Copyright 2024 The arsc Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package arsc

import (
	"os"

	mmap "github.com/edsrzf/mmap-go"
	"github.com/go-kratos/kratos/v2/log"
)

// File is an open .arsc file: either memory-mapped from disk or
// backed by a caller-supplied buffer, parsed into a ResourceTable.
type File struct {
	Table *ResourceTable

	data mmap.MMap
	raw  []byte
	f    *os.File

	opts   *Options
	logger *log.Helper
}

// Options controls parsing behavior.
type Options struct {
	// SkipStyles, when true, skips decoding style-span lists entirely
	// -- for the global string pool and for every package's TypeNames
	// and KeyNames pools -- rather than decoding and then discarding
	// them. A table parsed with SkipStyles set cannot round-trip
	// losslessly.
	SkipStyles bool

	// A custom logger. When nil, a stderr logger at error level is used.
	Logger log.Logger
}

func newOptions(opts *Options) *Options {
	if opts != nil {
		return opts
	}
	return &Options{}
}

func newLogger(opts *Options) *log.Helper {
	if opts.Logger != nil {
		return log.NewHelper(opts.Logger)
	}
	logger := log.NewStdLogger(os.Stderr)
	return log.NewHelper(log.NewFilter(logger, log.FilterLevel(log.LevelError)))
}

// New opens the named file, memory-maps it, and parses it.
func New(name string, opts *Options) (*File, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}

	file := &File{
		opts: newOptions(opts),
		f:    f,
		data: data,
	}
	file.logger = newLogger(file.opts)

	if err := file.Parse(); err != nil {
		file.Close()
		return nil, err
	}
	return file, nil
}

// NewBytes parses data, which the caller continues to own.
func NewBytes(data []byte, opts *Options) (*File, error) {
	file := &File{
		opts: newOptions(opts),
		raw:  data,
	}
	file.logger = newLogger(file.opts)

	if err := file.Parse(); err != nil {
		return nil, err
	}
	return file, nil
}

// bytes returns the backing buffer regardless of how the File was
// opened.
func (file *File) bytes() []byte {
	if file.data != nil {
		return []byte(file.data)
	}
	return file.raw
}

// Parse (re-)parses the File's backing buffer into Table.
func (file *File) Parse() error {
	table, err := parseTable(file.bytes(), file.opts.SkipStyles)
	if err != nil {
		file.logger.Errorf("arsc: parse failed: %v", err)
		return err
	}
	file.Table = table
	return nil
}

// Serialize re-encodes the File's Table back to its wire form.
func (file *File) Serialize() ([]byte, error) {
	return file.Table.Serialize()
}

// Close releases any memory mapping and closes the underlying file
// descriptor, if one was opened by New.
func (file *File) Close() error {
	if file.data != nil {
		if err := file.data.Unmap(); err != nil {
			return err
		}
	}
	if file.f != nil {
		return file.f.Close()
	}
	return nil
}
