// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package screen2d implements a 2D display.Drawer that outputs to terminal
// (stdout) using ANSI color codes.
//
// Useful to preview what an emulated panel shows.
package screen2d

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/display"
)

// Opts represents the options available for this display.
type Opts struct {
	X, Y int
	// Scale averages blocks of Scale x Scale pixels into one terminal cell.
	// 0 means 1.
	Scale   int
	Palette *ansi256.Palette
	// W is the output. Defaults to a colorable stdout.
	W io.Writer

	_ struct{}
}

// Dev is a terminal display emulator.
type Dev struct {
	w       io.Writer
	rect    image.Rectangle
	scale   int
	palette ansi256.Palette

	img *image.RGBA
	buf bytes.Buffer
	// rows is the number of terminal rows of the last refresh.
	rows int
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.W
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	scale := opts.Scale
	if scale < 1 {
		scale = 1
	}
	rect := image.Rect(0, 0, opts.X, opts.Y)
	d := &Dev{
		w:       w,
		rect:    rect,
		scale:   scale,
		palette: *p,
		img:     image.NewRGBA(rect),
	}
	draw.Draw(d.img, rect, image.Black, image.Point{}, draw.Src)
	return d
}

func (d *Dev) String() string {
	return fmt.Sprintf("Screen2D{%s}", d.rect.Max)
}

// Halt implements conn.Resource.
//
// It resets the terminal colors.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\033[0m\n"))
	return err
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Draw implements display.Drawer. The whole screen is redrawn in place.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	draw.Draw(d.img, r.Intersect(d.rect), src, sp, draw.Src)
	return d.refresh()
}

func (d *Dev) refresh() error {
	d.buf.Reset()
	if d.rows != 0 {
		// Move back to the top of the previous frame.
		fmt.Fprintf(&d.buf, "\033[%dA", d.rows)
	}
	d.rows = 0
	for y := d.rect.Min.Y; y < d.rect.Max.Y; y += d.scale {
		_, _ = d.buf.WriteString("\r\033[0m")
		for x := d.rect.Min.X; x < d.rect.Max.X; x += d.scale {
			_, _ = io.WriteString(&d.buf, d.palette.Block(d.average(x, y)))
		}
		_, _ = d.buf.WriteString("\033[0m\n")
		d.rows++
	}
	_, err := d.buf.WriteTo(d.w)
	return err
}

// average returns the mean color of the scale x scale block at (x, y).
func (d *Dev) average(x, y int) color.NRGBA {
	var r, g, b, n uint32
	for dy := 0; dy < d.scale && y+dy < d.rect.Max.Y; dy++ {
		for dx := 0; dx < d.scale && x+dx < d.rect.Max.X; dx++ {
			c := d.img.RGBAAt(x+dx, y+dy)
			r += uint32(c.R)
			g += uint32(c.G)
			b += uint32(c.B)
			n++
		}
	}
	return color.NRGBA{byte(r / n), byte(g / n), byte(b / n), 255}
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
