// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// sh110x writes text to a SH1107 OLED used as a text terminal.
//
// Text comes from the arguments, or stdin when there are none. With -emulate
// no hardware is touched and the result can be previewed in the terminal or
// saved as a PNG.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"strings"

	"github.com/GermanBionicSystems/textoled/screen2d"
	"github.com/GermanBionicSystems/textoled/sh110x"
	"github.com/GermanBionicSystems/textoled/sh110x/sh110xtest"
	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

func mainImpl() error {
	busName := flag.String("bus", "", "I²C bus to use")
	addr := flag.Uint("addr", uint(sh110x.DefaultOpts.Addr), "I²C address of the display")
	contrast := flag.Int("contrast", -1, "contrast override, 0-255; -1 keeps the default")
	inverted := flag.Bool("inverted", false, "inverted video")
	node := flag.String("of-node", "", "device tree node directory holding brightness/inverted properties")
	emulate := flag.Bool("emulate", false, "use a software controller instead of hardware")
	preview := flag.Bool("preview", false, "render the emulated panel in the terminal")
	scale := flag.Int("scale", 2, "preview down-sampling")
	pngPath := flag.String("png", "", "save the emulated panel as a PNG file")
	clearFirst := flag.Bool("clear", false, "clear the screen before writing")
	keep := flag.Bool("keep", false, "leave the text on screen on exit")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	if *addr == 0 || *addr > 0x7F {
		return fmt.Errorf("invalid address %#x", *addr)
	}
	if (*preview || *pngPath != "") && !*emulate {
		return errors.New("-preview and -png require -emulate")
	}
	cfg, err := config(*node, *contrast, *inverted)
	if err != nil {
		return err
	}

	var bus i2c.Bus
	var emu *sh110xtest.Emulator
	if *emulate {
		emu = sh110xtest.New(uint16(*addr))
		bus = emu
	} else {
		if _, err := host.Init(); err != nil {
			return err
		}
		b, err := i2creg.Open(*busName)
		if err != nil {
			return err
		}
		defer b.Close()
		bus = b
	}

	dev, err := sh110x.New(bus, &sh110x.Opts{
		Addr:        uint16(*addr),
		Config:      cfg,
		PowerSettle: sh110x.DefaultOpts.PowerSettle,
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	logger.Debug("attached", "dev", dev.String())

	if *clearFirst {
		if err := dev.Clear(); err != nil {
			return err
		}
	}
	if err := write(dev, flag.Args()); err != nil {
		return err
	}

	if emu != nil {
		frame := emu.Frame()
		if *preview {
			s := screen2d.New(&screen2d.Opts{X: frame.Rect.Dx(), Y: frame.Rect.Dy(), Scale: *scale})
			if err := s.Draw(s.Bounds(), frame, image.Point{}); err != nil {
				return err
			}
			if err := s.Halt(); err != nil {
				return err
			}
		}
		if *pngPath != "" {
			if err := savePNG(*pngPath, frame, 4); err != nil {
				return err
			}
		}
	}
	if *keep {
		return nil
	}
	return dev.Halt()
}

// config merges the device tree node with the flags; flags win.
func config(node string, contrast int, inverted bool) (*sh110x.Config, error) {
	var cfg *sh110x.Config
	if node != "" {
		c, err := sh110x.ConfigFromNode(node)
		if err != nil {
			return nil, err
		}
		cfg = c
	}
	if contrast > 0xFF {
		return nil, fmt.Errorf("invalid contrast %d", contrast)
	}
	if contrast < 0 && !inverted {
		return cfg, nil
	}
	if cfg == nil {
		cfg = &sh110x.Config{}
	}
	if contrast >= 0 {
		v := byte(contrast)
		cfg.Contrast = &v
	}
	if inverted {
		cfg.Inverted = true
	}
	return cfg, nil
}

// write sends args joined by spaces, or stdin line by line.
func write(w io.Writer, args []string) error {
	if len(args) != 0 {
		_, err := io.WriteString(w, strings.Join(args, " "))
		return err
	}
	r := bufio.NewReader(os.Stdin)
	for {
		line, err := r.ReadString('\n')
		if len(line) != 0 {
			if _, werr := io.WriteString(w, line); werr != nil {
				return werr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func main() {
	if err := mainImpl(); err != nil {
		log.Fatalf("sh110x: %v", err)
	}
}
