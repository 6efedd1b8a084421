// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	cfg, err := config("", -1, false)
	if cfg != nil || err != nil {
		t.Fatalf("got %+v, %v; want nil", cfg, err)
	}
	cfg, err = config("", 0, false)
	if err != nil || cfg == nil || cfg.Contrast == nil || *cfg.Contrast != 0 || cfg.Inverted {
		t.Fatalf("got %+v, %v", cfg, err)
	}
	cfg, err = config("", -1, true)
	if err != nil || cfg == nil || cfg.Contrast != nil || !cfg.Inverted {
		t.Fatalf("got %+v, %v", cfg, err)
	}
	if _, err := config("", 256, false); err == nil {
		t.Fatal("contrast 256 accepted")
	}
}

func TestConfigNodeAndFlags(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "brightness"), []byte{0x10}, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config(dir, -1, false)
	if err != nil || cfg == nil || cfg.Contrast == nil || *cfg.Contrast != 0x10 {
		t.Fatalf("got %+v, %v", cfg, err)
	}
	cfg, err = config(dir, 0x20, true)
	if err != nil || *cfg.Contrast != 0x20 || !cfg.Inverted {
		t.Fatalf("flags did not override the node: %+v, %v", cfg, err)
	}
}

func TestWriteArgs(t *testing.T) {
	var b bytes.Buffer
	if err := write(&b, []string{"hello", "world"}); err != nil {
		t.Fatal(err)
	}
	if b.String() != "hello world" {
		t.Fatalf("got %q", b.String())
	}
}

func TestSavePNG(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 3))
	img.SetGray(2, 1, color.Gray{Y: 0xFF})
	path := filepath.Join(t.TempDir(), "out.png")
	if err := savePNG(path, img, 2); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	out, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if got := out.Bounds(); got != image.Rect(0, 0, 8, 6) {
		t.Fatalf("Bounds() = %v", got)
	}
	lit := color.GrayModel.Convert(out.At(5, 3)).(color.Gray)
	dark := color.GrayModel.Convert(out.At(1, 1)).(color.Gray)
	if lit.Y < 0x80 || dark.Y > 0x80 {
		t.Fatalf("lit=%v dark=%v", lit, dark)
	}
}
