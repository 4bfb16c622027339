// Copyright 2024 The arsc Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package arsc

import "testing"

func TestCursorPrimitives(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0xFF, 0xFF, 0xFF, 0xFF}
	c := newCursor(data)

	if v, err := c.u8(); err != nil || v != 0x01 {
		t.Fatalf("u8() = %#x, %v, want 0x01, nil", v, err)
	}
	if v, err := c.u8(); err != nil || v != 0x02 {
		t.Fatalf("u8() = %#x, %v, want 0x02, nil", v, err)
	}
	if v, err := c.u16(); err != nil || v != 0x0403 {
		t.Fatalf("u16() = %#x, %v, want 0x0403, nil", v, err)
	}
	if v, err := c.i32(); err != nil || v != -1 {
		t.Fatalf("i32() = %d, %v, want -1, nil", v, err)
	}
	if _, err := c.u8(); err != ErrOutOfBounds {
		t.Fatalf("u8() past end = %v, want ErrOutOfBounds", err)
	}
}

func TestCursorSeekSkip(t *testing.T) {
	data := []byte{0, 1, 2, 3, 4, 5}
	c := newCursor(data)
	c.skip(2)
	if v, err := c.u8(); err != nil || v != 2 {
		t.Fatalf("after skip(2), u8() = %v, %v, want 2, nil", v, err)
	}
	c.seek(0)
	if v, err := c.u8(); err != nil || v != 0 {
		t.Fatalf("after seek(0), u8() = %v, %v, want 0, nil", v, err)
	}
}

func TestUTF16FixedRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		value string
		units int
	}{
		{"short ASCII", "com.example.app", 128},
		{"empty", "", 8},
		{"exact width minus null", "abcdefg", 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := appendUTF16Fixed(nil, tt.value, tt.units*2)
			if len(buf) != tt.units*2 {
				t.Fatalf("encoded width = %d, want %d", len(buf), tt.units*2)
			}
			c := newCursor(buf)
			got, err := c.utf16Fixed(tt.units)
			if err != nil {
				t.Fatalf("utf16Fixed() error = %v", err)
			}
			if got != tt.value {
				t.Fatalf("utf16Fixed() = %q, want %q", got, tt.value)
			}
		})
	}
}

func TestPackageNamePadding(t *testing.T) {
	// Scenario (e): "com.example.app" (15 ASCII chars) written as 15
	// UTF-16 code units (30 bytes) followed by 256-30=226 zero bytes.
	name := "com.example.app"
	buf := appendUTF16Fixed(nil, name, 256)
	if len(buf) != 256 {
		t.Fatalf("len(buf) = %d, want 256", len(buf))
	}
	for i := 30; i < 256; i++ {
		if buf[i] != 0 {
			t.Fatalf("buf[%d] = %#x, want 0 (padding region)", i, buf[i])
		}
	}
}

func TestPadding(t *testing.T) {
	tests := []struct {
		size int
		want int
	}{
		{0, 0}, {1, 3}, {2, 2}, {3, 1}, {4, 0}, {5, 3},
	}
	for _, tt := range tests {
		if got := padding(tt.size); got != tt.want {
			t.Errorf("padding(%d) = %d, want %d", tt.size, got, tt.want)
		}
	}
}
