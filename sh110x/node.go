// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sh110x

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Device tree property names read by ConfigFromNode.
const (
	propBrightness = "brightness"
	propInverted   = "inverted"
)

// ConfigFromNode reads the hardware description from a device tree node
// directory, e.g. /proc/device-tree/soc/i2c@7e804000/oled@3c.
//
// "brightness" is a u8 property overriding the contrast. "inverted" is a
// boolean property; its presence selects inverted video. A missing directory
// returns nil, nil so attaching falls back to the defaults.
func ConfigFromNode(dir string) (*Config, error) {
	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, wrap(err)
	}
	cfg := &Config{}
	b, err := os.ReadFile(filepath.Join(dir, propBrightness))
	switch {
	case err == nil:
		if len(b) == 0 {
			return nil, fmt.Errorf("%s: empty %q property in %s", packageName, propBrightness, dir)
		}
		v := b[0]
		cfg.Contrast = &v
	case !errors.Is(err, fs.ErrNotExist):
		return nil, wrap(err)
	}
	if _, err := os.Stat(filepath.Join(dir, propInverted)); err == nil {
		cfg.Inverted = true
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, wrap(err)
	}
	return cfg, nil
}
