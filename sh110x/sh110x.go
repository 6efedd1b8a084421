// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sh110x

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/GermanBionicSystems/textoled/sh110x/font"
	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/i2c"
)

const (
	_DISPLAYALLON_RESUME = 0xA4
	_DISPLAYOFF          = 0xAE
	_DISPLAYON           = 0xAF
	_COMSCANINC          = 0xC0
	_INVERTDISPLAY       = 0xA7
	_MEMORYMODE          = 0x20
	_NORMALDISPLAY       = 0xA6
	_PAGESTARTADDRESS    = 0xB0
	_SETCONTRAST         = 0x81
	_SETDISPLAYCLOCKDIV  = 0xD5
	_SETHIGHCOLUMN       = 0x10
	_SETLOWCOLUMN        = 0x00
	_SETMULTIPLEX        = 0xA8
	_SETPRECHARGE        = 0xD9
	_SETVCOMDETECT       = 0xDB
)

// Power on reset values written by the initialization sequence.
const (
	defaultContrast  = 0x2F
	defaultMultiplex = 0x7F
	defaultClock     = 0x5<<4 | 0x1
	defaultPrecharge = 0x22
	defaultVCOM      = 0x35
)

// Geometry of the text grid.
//
// Text lines run along the segments and characters advance across the pages,
// so the number of characters per line is the number of pages.
const (
	// MaxColumns is the number of segments covered by text lines.
	MaxColumns = 64
	// MaxPages is the number of 8 pixel pages, and characters per line.
	MaxPages = 16
	// FontHeight is the number of segments used by a glyph.
	FontHeight = font.Height
	// MaxLines is the number of text lines.
	MaxLines = (MaxColumns + 1) / (FontHeight + 1)
	// BaseOffset is the segment where line 0 starts.
	BaseOffset = 32
	// RAMColumns is the number of addressable columns in a page.
	RAMColumns = 128
)

// DefaultOpts is the recommended default options.
var DefaultOpts = Opts{
	Addr:        0x3C,
	PowerSettle: 100 * time.Millisecond,
}

// Opts defines the options for the device.
type Opts struct {
	// The I2C address of the display.
	Addr uint16
	// Config holds the optional hardware description. nil skips it.
	Config *Config
	// PowerSettle is the wait before the first command is sent. Zero means
	// DefaultOpts.PowerSettle, a negative value skips the wait.
	PowerSettle time.Duration
	// Logger receives warnings about degraded writes. Defaults to
	// logrus.StandardLogger().
	Logger logrus.FieldLogger
}

// Config is the hardware description applied after initialization.
//
// Each field is applied only when explicitly set.
type Config struct {
	// Contrast overrides the contrast register.
	Contrast *byte
	// Inverted selects inverted video.
	Inverted bool
}

// Dev is an open handle to the display controller.
//
// The controller is write-only, so Dev shadows the cursor. All methods are
// safe for concurrent use; each call holds the device for its whole burst of
// bus transactions.
type Dev struct {
	mu     sync.Mutex
	c      conn.Conn
	logger logrus.FieldLogger

	line   int
	column int
	// lineFull is set when a glyph was written in the last cell of the
	// line. The next printable character wraps first.
	lineFull bool
	halted   bool
}

// New returns a Dev that communicates over I²C to a SH110x display
// controller and runs the initialization sequence.
func New(bus i2c.Bus, opts *Opts) (*Dev, error) {
	o := resolveOpts(opts)
	return newDev(&i2c.Dev{Bus: bus, Addr: o.Addr}, o)
}

// NewConn is like New but uses an already addressed connection.
func NewConn(c conn.Conn, opts *Opts) (*Dev, error) {
	return newDev(c, resolveOpts(opts))
}

func resolveOpts(opts *Opts) Opts {
	if opts == nil {
		return DefaultOpts
	}
	o := *opts
	if o.Addr == 0 {
		o.Addr = DefaultOpts.Addr
	}
	if o.PowerSettle == 0 {
		o.PowerSettle = DefaultOpts.PowerSettle
	}
	return o
}

func newDev(c conn.Conn, opts Opts) (*Dev, error) {
	d := &Dev{c: c, logger: opts.Logger}
	if d.logger == nil {
		d.logger = logrus.StandardLogger()
	}
	d.logger.WithField("conn", c.String()).Info("initializing display")
	if err := d.initialize(opts.PowerSettle); err != nil {
		return nil, err
	}
	if err := d.setCursor(0, 0); err != nil {
		return nil, &InitError{Step: "home", Err: err}
	}
	if err := d.configure(opts.Config); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("%s.Dev{%s, %dx%d}", packageName, d.c, MaxPages, MaxLines)
}

// Position returns the logical cursor.
func (d *Dev) Position() (line, column int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.line, d.column
}

// Write renders p as text.
//
// A buffer holding a single space clears the screen. Any other byte is
// printed; '\n' moves to the next line and bytes without a glyph are
// dropped. Bus failures while printing degrade the displayed content but are
// not reported, so the returned count is always len(p).
func (d *Dev) Write(p []byte) (int, error) {
	return d.WriteAt(p, 0)
}

// WriteAt is the offset indexed form of Write: every byte of p from off
// onwards is printed. The clear shortcut looks at the whole buffer.
func (d *Dev) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 || off > int64(len(p)) {
		return 0, fmt.Errorf("%s: invalid offset %d for %d bytes", packageName, off, len(p))
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.halted {
		return 0, ErrHalted
	}
	if len(p) == 1 && p[0] == ' ' {
		if err := d.fillScreen(0x00); err != nil {
			return 0, err
		}
		return len(p), nil
	}
	for _, c := range p[off:] {
		d.printChar(c)
	}
	return len(p), nil
}

// WriteString renders text. See Write.
func (d *Dev) WriteString(text string) (int, error) {
	return d.Write([]byte(text))
}

// Fill writes v to every column of every page and moves the cursor home.
func (d *Dev) Fill(v byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fillScreen(v)
}

// Clear blanks the display and moves the cursor home.
func (d *Dev) Clear() error {
	return d.Fill(0x00)
}

// Home moves the cursor to the top left.
func (d *Dev) Home() error {
	return d.MoveTo(0, 0)
}

// MoveTo moves the cursor to line row, character col.
func (d *Dev) MoveTo(row, col int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.setCursor(row, col)
}

// Move moves the cursor by one cell. It does not wrap.
func (d *Dev) Move(dir display.CursorDirection) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	line, column := d.line, d.column
	switch dir {
	case display.Forward:
		column++
	case display.Backward:
		column--
	case display.Down:
		line++
	case display.Up:
		line--
	default:
		return fmt.Errorf("%s: %w", packageName, display.ErrInvalidCommand)
	}
	return d.setCursor(line, column)
}

// Rows returns the number of text lines.
func (d *Dev) Rows() int {
	return MaxLines
}

// Cols returns the number of characters per line.
func (d *Dev) Cols() int {
	return MaxPages
}

// MinRow returns the first line.
func (d *Dev) MinRow() int {
	return 0
}

// MinCol returns the first character column.
func (d *Dev) MinCol() int {
	return 0
}

// AutoScroll is not supported; the cursor wraps to the top line instead.
func (d *Dev) AutoScroll(enabled bool) error {
	if enabled {
		return ErrNotImplemented
	}
	return nil
}

// Cursor only accepts display.CursorOff, the controller has no hardware
// cursor.
func (d *Dev) Cursor(modes ...display.CursorMode) error {
	for _, m := range modes {
		if m != display.CursorOff {
			return ErrNotImplemented
		}
	}
	return nil
}

// Display turns the panel on or off. Display RAM is retained.
func (d *Dev) Display(on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if on {
		return d.sendCommand(_DISPLAYON)
	}
	return d.sendCommand(_DISPLAYOFF)
}

// Invert the display (black on white vs white on black).
func (d *Dev) Invert(blackOnWhite bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if blackOnWhite {
		return d.sendCommand(_INVERTDISPLAY)
	}
	return d.sendCommand(_NORMALDISPLAY)
}

// Contrast changes the contrast register, 0 to 255.
func (d *Dev) Contrast(contrast display.Contrast) error {
	if contrast < 0 || contrast > 0xFF {
		return fmt.Errorf("%s: invalid contrast %d", packageName, contrast)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sendCommand(_SETCONTRAST, byte(contrast))
}

// Halt detaches the display: it is cleared and turned off, and the
// connection is closed if it implements io.Closer. The Dev cannot be used
// afterward.
func (d *Dev) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.halted {
		return nil
	}
	err := d.setCursor(0, 0)
	if err == nil {
		err = d.fillScreen(0x00)
	}
	if err == nil {
		err = d.sendCommand(_DISPLAYOFF)
	}
	d.halted = true
	if cl, ok := d.c.(io.Closer); ok {
		if cerr := cl.Close(); err == nil {
			err = wrap(cerr)
		}
	}
	return err
}

var _ display.TextDisplay = &Dev{}
var _ display.DisplayContrast = &Dev{}
var _ conn.Resource = &Dev{}
var _ io.WriterAt = &Dev{}
