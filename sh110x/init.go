// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sh110x

import "time"

// initStep is one named burst of the initialization sequence.
type initStep struct {
	name string
	run  func(d *Dev) error
}

func commands(cmds ...byte) func(d *Dev) error {
	return func(d *Dev) error {
		return d.sendCommand(cmds...)
	}
}

// initSequence brings the controller from power on to a blank, lit,
// page addressed screen. The order is significant.
var initSequence = []initStep{
	{"display off", commands(_DISPLAYOFF)},
	{"page addressing mode", commands(_MEMORYMODE)},
	{"contrast", commands(_SETCONTRAST, defaultContrast)},
	{"scan direction", commands(_COMSCANINC)},
	{"multiplex ratio", commands(_SETMULTIPLEX, defaultMultiplex)},
	{"clock frequency", commands(_SETDISPLAYCLOCKDIV, defaultClock)},
	{"precharge period", commands(_SETPRECHARGE, defaultPrecharge)},
	{"vcom deselect", commands(_SETVCOMDETECT, defaultVCOM)},
	{"cursor", func(d *Dev) error { return d.setCursor(0, 0) }},
	// Follow RAM content, non inverted.
	{"display mode", commands(_DISPLAYALLON_RESUME, _NORMALDISPLAY)},
	{"power on", commands(_DISPLAYON)},
	{"clear", func(d *Dev) error { return d.fillScreen(0x00) }},
}

// initialize runs initSequence after waiting settle for the supply to
// stabilize. The first failing step aborts the sequence.
func (d *Dev) initialize(settle time.Duration) error {
	time.Sleep(settle)
	for _, s := range initSequence {
		if err := s.run(d); err != nil {
			return &InitError{Step: s.name, Err: err}
		}
	}
	return nil
}

// configure applies the optional hardware description.
func (d *Dev) configure(cfg *Config) error {
	if cfg == nil {
		return nil
	}
	if cfg.Contrast != nil {
		if err := d.sendCommand(_SETCONTRAST, *cfg.Contrast); err != nil {
			return &InitError{Step: "contrast override", Err: err}
		}
	}
	if cfg.Inverted {
		if err := d.sendCommand(_INVERTDISPLAY); err != nil {
			return &InitError{Step: "inverted", Err: err}
		}
	}
	return nil
}
