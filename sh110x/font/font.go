// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package font holds the fixed width glyph table used by the sh110x text
// driver.
//
// Each glyph is Height bytes. The text grid of the sh110x driver is rotated
// relative to the controller pages: one byte covers a full 8 pixel page band
// and successive bytes walk along the segments, so byte i is pixel row i of
// the character and bit 7-x is pixel column x.
//
// The bitmaps are rasterised once from basicfont.Face7x13, dropping its two
// top rows which are blank for every printable ASCII character except a few
// accents.
package font

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	// Height is the number of bytes (pixel rows) in a glyph.
	Height = 11
	// Width is the number of meaningful bits in a glyph byte.
	Width = 8

	// First is the code of the first glyph in the table.
	First = ' '
	// Last is the code of the last glyph in the table.
	Last = '~'

	// skipRows is the number of Face7x13 rows dropped from the top.
	skipRows = 2
)

// Glyph is the bitmap of one character, one byte per pixel row.
type Glyph [Height]byte

// table is indexed by c - First.
var table = build()

// Len returns the number of glyphs in the table.
func Len() int {
	return len(table)
}

// Printable reports whether c has a glyph in the table.
func Printable(c byte) bool {
	return c >= First && c <= Last
}

// Lookup returns the glyph for c.
//
// c must satisfy Printable. Other values panic with an index out of range.
func Lookup(c byte) Glyph {
	return table[int(c)-First]
}

// build rasterises every printable ASCII character of basicfont.Face7x13.
func build() []Glyph {
	f := basicfont.Face7x13
	h := f.Ascent + f.Descent
	img := image.NewAlpha(image.Rect(0, 0, f.Advance, h))
	d := font.Drawer{
		Dst:  img,
		Src:  image.Opaque,
		Face: f,
	}
	out := make([]Glyph, 0, Last-First+1)
	for c := First; c <= Last; c++ {
		for i := range img.Pix {
			img.Pix[i] = 0
		}
		d.Dot = fixed.P(0, f.Ascent)
		d.DrawString(string(rune(c)))
		var g Glyph
		for row := 0; row < Height; row++ {
			y := row + skipRows
			if y >= h {
				break
			}
			for x := 0; x < f.Advance && x < Width; x++ {
				if img.AlphaAt(x, y).A != 0 {
					g[row] |= 0x80 >> uint(x)
				}
			}
		}
		out = append(out, g)
	}
	return out
}
