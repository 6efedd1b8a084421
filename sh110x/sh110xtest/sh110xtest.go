// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package sh110xtest is a software model of a SH1107 controller attached to
// an I²C bus.
//
// Emulator decodes the control byte framing, executes the commands the
// controller understands and keeps the display RAM, so tests and previews can
// look at what a real panel would show.
package sh110xtest

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/GermanBionicSystems/textoled/sh110x/font"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// Geometry of the controller RAM.
const (
	Pages   = 16
	Columns = 128
	Height  = Pages * 8
)

// Layout of the text grid used by the sh110x driver.
const (
	textBase  = 32
	textPitch = font.Height + 1
	// TextLines is the number of text lines that fit the driver's band.
	TextLines = (64 + 1) / textPitch
)

const (
	ctrlContinuation = 0x80
	ctrlData         = 0x40
	statusOff        = 0x40
	statusID         = 0x07
)

// ErrNoAck is returned for transactions addressed to another device.
var ErrNoAck = errors.New("sh110xtest: no acknowledge")

// State is a snapshot of the controller registers.
type State struct {
	// Page and Column are the RAM write pointers.
	Page, Column int

	On                 bool
	Inverted           bool
	EntireOn           bool
	VerticalAddressing bool
	SegmentRemap       bool
	ScanReversed       bool

	Contrast     byte
	Multiplex    byte
	ClockDiv     byte
	Precharge    byte
	VCOMDeselect byte
	StartLine    byte
	Offset       byte
	DCDC         byte
}

// PowerOnState is the register content after reset.
var PowerOnState = State{
	Contrast:     0x80,
	Multiplex:    0x7F,
	ClockDiv:     0x50,
	Precharge:    0x22,
	VCOMDeselect: 0x35,
	DCDC:         0x81,
}

// Emulator implements i2c.Bus with a single SH1107 at Addr.
type Emulator struct {
	Addr uint16

	mu    sync.Mutex
	state State
	ram   [Pages][Columns]byte
	// pending is the command waiting for its parameter byte, 0 if none.
	pending byte

	tx       int
	commands []byte
	data     int
	unknown  []byte

	failAt   int
	failFrom int
	failErr  error
}

// New returns an Emulator at addr in its power on state.
func New(addr uint16) *Emulator {
	return &Emulator{Addr: addr, state: PowerOnState}
}

func (e *Emulator) String() string {
	return fmt.Sprintf("sh110xtest.Emulator{0x%02X}", e.Addr)
}

// SetSpeed implements i2c.Bus.
func (e *Emulator) SetSpeed(f physic.Frequency) error {
	return nil
}

// Tx implements i2c.Bus.
//
// A read returns the status byte. Writes are decoded as a sequence of
// control byte prefixed chunks.
func (e *Emulator) Tx(addr uint16, w, r []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if addr != e.Addr {
		return ErrNoAck
	}
	e.tx++
	if e.failErr != nil && (e.tx == e.failAt || (e.failFrom > 0 && e.tx >= e.failFrom)) {
		return e.failErr
	}
	for len(w) > 0 {
		ctrl := w[0]
		w = w[1:]
		var chunk []byte
		if ctrl&ctrlContinuation != 0 {
			if len(w) == 0 {
				break
			}
			chunk, w = w[:1], w[1:]
		} else {
			chunk, w = w, nil
		}
		for _, b := range chunk {
			if ctrl&ctrlData != 0 {
				e.writeData(b)
			} else {
				e.command(b)
			}
		}
	}
	if len(r) > 0 {
		status := byte(statusID)
		if !e.state.On {
			status |= statusOff
		}
		r[0] = status
		for i := 1; i < len(r); i++ {
			r[i] = 0
		}
	}
	return nil
}

// FailAt makes the n-th transaction (counting from 1 since creation) fail
// with err. The failure fires once and the failing frame is not executed.
func (e *Emulator) FailAt(n int, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.failAt, e.failFrom, e.failErr = n, 0, err
}

// FailFrom makes every transaction from the n-th one fail with err.
func (e *Emulator) FailFrom(n int, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.failAt, e.failFrom, e.failErr = 0, n, err
}

// ClearFailure stops injecting failures.
func (e *Emulator) ClearFailure() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.failAt, e.failFrom, e.failErr = 0, 0, nil
}

// State returns a snapshot of the registers.
func (e *Emulator) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Transactions returns the number of transactions addressed to the device.
func (e *Emulator) Transactions() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tx
}

// Commands returns every command and parameter byte received, in order.
func (e *Emulator) Commands() []byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]byte(nil), e.commands...)
}

// DataWrites returns the number of display data bytes received.
func (e *Emulator) DataWrites() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.data
}

// Unknown returns the command bytes the controller would not understand.
func (e *Emulator) Unknown() []byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]byte(nil), e.unknown...)
}

// ResetLog clears the transaction and command counters, keeping RAM and
// registers.
func (e *Emulator) ResetLog() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tx, e.data = 0, 0
	e.commands, e.unknown = nil, nil
}

// Page returns a copy of the RAM of page p.
func (e *Emulator) Page(p int) []byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]byte(nil), e.ram[p][:]...)
}

// Frame renders the panel as it would be visible: lit pixels are white.
//
// Pixel (x, y) is bit y%8 of column x in page y/8.
func (e *Emulator) Frame() *image.Gray {
	e.mu.Lock()
	defer e.mu.Unlock()
	img := image.NewGray(image.Rect(0, 0, Columns, Height))
	if !e.state.On {
		return img
	}
	for y := 0; y < Height; y++ {
		for x := 0; x < Columns; x++ {
			lit := e.state.EntireOn || e.ram[y/8][x]&(1<<uint(y%8)) != 0
			if e.state.Inverted {
				lit = !lit
			}
			if lit {
				img.SetGray(x, y, color.Gray{Y: 0xFF})
			}
		}
	}
	return img
}

// Cell returns the RAM content of a text cell as laid out by the sh110x
// driver.
func (e *Emulator) Cell(line, column int) font.Glyph {
	e.mu.Lock()
	defer e.mu.Unlock()
	var g font.Glyph
	page := Pages - column - 1
	start := line*textPitch + textBase
	for i := range g {
		g[i] = e.ram[page][(start+i)%Columns]
	}
	return g
}

// Text decodes a text line back to characters. Cells that do not match a
// glyph are returned as '?'.
func (e *Emulator) Text(line int) string {
	out := make([]byte, Pages)
	for col := range out {
		out[col] = decode(e.Cell(line, col))
	}
	return string(out)
}

var glyphs = func() map[font.Glyph]byte {
	m := map[font.Glyph]byte{}
	// Walk backward so the first character wins on duplicate bitmaps.
	for c := byte(font.Last); c >= font.First; c-- {
		m[font.Lookup(c)] = c
	}
	return m
}()

func decode(g font.Glyph) byte {
	if c, ok := glyphs[g]; ok {
		return c
	}
	return '?'
}

func (e *Emulator) writeData(b byte) {
	e.data++
	e.ram[e.state.Page][e.state.Column] = b
	if e.state.VerticalAddressing {
		e.state.Page = (e.state.Page + 1) % Pages
		return
	}
	e.state.Column = (e.state.Column + 1) % Columns
}

func (e *Emulator) command(b byte) {
	e.commands = append(e.commands, b)
	if p := e.pending; p != 0 {
		e.pending = 0
		e.parameter(p, b)
		return
	}
	switch {
	case b <= 0x0F:
		e.state.Column = e.state.Column&0x70 | int(b&0x0F)
	case b >= 0x10 && b <= 0x17:
		e.state.Column = int(b&0x07)<<4 | e.state.Column&0x0F
	case b == 0x20:
		e.state.VerticalAddressing = false
	case b == 0x21:
		e.state.VerticalAddressing = true
	case b == 0x81, b == 0xA8, b == 0xAD, b == 0xD3, b == 0xD5, b == 0xD9, b == 0xDB, b == 0xDC:
		e.pending = b
	case b == 0xA0, b == 0xA1:
		e.state.SegmentRemap = b == 0xA1
	case b == 0xA4, b == 0xA5:
		e.state.EntireOn = b == 0xA5
	case b == 0xA6, b == 0xA7:
		e.state.Inverted = b == 0xA7
	case b == 0xAE, b == 0xAF:
		e.state.On = b == 0xAF
	case b >= 0xB0 && b <= 0xBF:
		e.state.Page = int(b & 0x0F)
	case b >= 0xC0 && b <= 0xCF:
		e.state.ScanReversed = b&0x08 != 0
	case b == 0xE0, b == 0xE3, b == 0xEE:
		// Read-modify-write, NOP and end.
	default:
		e.unknown = append(e.unknown, b)
	}
}

func (e *Emulator) parameter(cmd, v byte) {
	switch cmd {
	case 0x81:
		e.state.Contrast = v
	case 0xA8:
		e.state.Multiplex = v & 0x7F
	case 0xAD:
		e.state.DCDC = v
	case 0xD3:
		e.state.Offset = v & 0x7F
	case 0xD5:
		e.state.ClockDiv = v
	case 0xD9:
		e.state.Precharge = v
	case 0xDB:
		e.state.VCOMDeselect = v
	case 0xDC:
		e.state.StartLine = v & 0x7F
	}
}

var _ i2c.Bus = &Emulator{}
