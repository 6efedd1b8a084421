// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sh110x

import (
	"github.com/GermanBionicSystems/textoled/sh110x/font"
	"github.com/sirupsen/logrus"
)

// address returns the controller page and start column of a text cell.
//
// Pages are numbered in the opposite direction of the characters on a line.
func address(line, column int) (page, col byte) {
	return byte(MaxPages - column - 1), byte(line*(FontHeight+1) + BaseOffset)
}

// setCursor records the new cursor and points the controller at it.
//
// Out of range positions are rejected before anything is recorded or sent.
// A bus failure leaves the recorded cursor ahead of the hardware until the
// next successful call.
func (d *Dev) setCursor(line, column int) error {
	if column < 0 || column >= MaxPages || line < 0 || line >= MaxLines {
		err := &BoundsError{Line: line, Column: column}
		d.logger.WithError(err).Warn("cursor out of bounds")
		return err
	}
	d.line = line
	d.column = column
	d.lineFull = false

	page, col := address(line, column)
	// The column must be set before the page.
	return d.sendCommand(
		_SETHIGHCOLUMN|col>>4,
		_SETLOWCOLUMN|col&0x0F,
		_PAGESTARTADDRESS|page,
	)
}

// printChar renders one byte at the cursor.
//
// Errors are logged and swallowed: a corrupted display is acceptable, a
// stuck writer is not.
func (d *Dev) printChar(c byte) {
	if c != '\n' && !font.Printable(c) {
		d.logger.WithField("byte", c).Debug("dropping unprintable byte")
		return
	}
	if d.lineFull || c == '\n' {
		// No scrolling, the last line wraps to the top.
		if err := d.setCursor((d.line+1)%MaxLines, 0); err != nil {
			d.logger.WithError(err).Warn("line wrap failed")
		}
	}
	if c == '\n' {
		return
	}
	g := font.Lookup(c)
	if err := d.sendData(g[:]...); err != nil {
		d.logger.WithFields(logrus.Fields{"char": string(rune(c))}).WithError(err).Warn("glyph write failed")
		return
	}
	if d.column+1 >= MaxPages {
		d.lineFull = true
		return
	}
	if err := d.setCursor(d.line, d.column+1); err != nil {
		d.logger.WithError(err).Warn("cursor advance failed")
	}
}

// fillScreen writes v to all RAMColumns of every page then moves the cursor
// home. The first bus failure aborts the fill.
func (d *Dev) fillScreen(v byte) error {
	for page := 0; page < MaxPages; page++ {
		if err := d.setCursor(0, page); err != nil {
			return err
		}
		for col := 0; col < RAMColumns; col++ {
			if err := d.sendByte(false, v); err != nil {
				return err
			}
		}
	}
	return d.setCursor(0, 0)
}
