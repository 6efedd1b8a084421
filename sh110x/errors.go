// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sh110x

import (
	"errors"
	"fmt"
	"strings"

	"periph.io/x/conn/v3/display"
)

const packageName = "sh110x"

var (
	// ErrHalted is returned by operations on a detached display.
	ErrHalted = errors.New("sh110x: display is halted")
	// ErrNotImplemented is returned for TextDisplay features the controller
	// cannot provide in text mode.
	ErrNotImplemented = fmt.Errorf("%s: %w", packageName, display.ErrNotImplemented)
)

// BusError is a transmission failure of a single two-byte frame.
type BusError struct {
	// Command is true if the frame was in command mode.
	Command bool
	Value   byte
	Err     error
}

func (e *BusError) Error() string {
	kind := "data"
	if e.Command {
		kind = "command"
	}
	return fmt.Sprintf("%s: %s write 0x%02X failed: %v", packageName, kind, e.Value, e.Err)
}

func (e *BusError) Unwrap() error {
	return e.Err
}

// BoundsError is returned when a cursor position is outside the text grid.
type BoundsError struct {
	Line, Column int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%s: cursor (%d,%d) out of bounds [0,%d)x[0,%d)", packageName, e.Line, e.Column, MaxLines, MaxPages)
}

// InitError is returned when the controller bring-up sequence fails.
type InitError struct {
	// Step names the initialization step that failed.
	Step string
	Err  error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("%s: init %s: %v", packageName, e.Step, strings.TrimPrefix(e.Err.Error(), packageName+": "))
}

func (e *InitError) Unwrap() error {
	return e.Err
}

func wrap(err error) error {
	if err == nil || strings.HasPrefix(err.Error(), packageName) {
		return err
	}
	return fmt.Errorf("%s: %w", packageName, err)
}
