// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sh110x

const (
	i2cCmd  = 0x00 // I²C transaction holds a command byte
	i2cData = 0x40 // I²C transaction holds a data byte
)

// sendByte sends v as a single two-byte frame.
//
// The controller has no notion of a partially received frame, so failures
// are returned as is and never retried.
func (d *Dev) sendByte(isCommand bool, v byte) error {
	if d.halted {
		return ErrHalted
	}
	prefix := byte(i2cData)
	if isCommand {
		prefix = i2cCmd
	}
	if err := d.c.Tx([]byte{prefix, v}, nil); err != nil {
		return &BusError{Command: isCommand, Value: v, Err: err}
	}
	return nil
}

// sendCommand sends each byte as its own command frame, stopping at the
// first failure.
func (d *Dev) sendCommand(cmds ...byte) error {
	for _, c := range cmds {
		if err := d.sendByte(true, c); err != nil {
			return err
		}
	}
	return nil
}

// sendData sends each byte as its own data frame, stopping at the first
// failure. Each frame advances the controller column pointer.
func (d *Dev) sendData(data ...byte) error {
	for _, b := range data {
		if err := d.sendByte(false, b); err != nil {
			return err
		}
	}
	return nil
}
