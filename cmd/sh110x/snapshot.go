// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

// savePNG writes img enlarged scale times, lit pixels in white on black.
func savePNG(path string, img image.Image, scale int) error {
	b := img.Bounds()
	dc := gg.NewContext(b.Dx()*scale, b.Dy()*scale)
	dc.SetRGB(0, 0, 0)
	dc.Clear()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			if g.Y == 0 {
				continue
			}
			dc.DrawRectangle(float64((x-b.Min.X)*scale), float64((y-b.Min.Y)*scale), float64(scale), float64(scale))
		}
	}
	dc.SetRGB(1, 1, 1)
	dc.Fill()
	return dc.SavePNG(path)
}
