// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package sh110x drives a SH1107 class OLED controller over I²C as a text
// terminal.
//
// Every byte is sent as its own two-byte I²C frame: a control byte selecting
// command (0x00) or display data (0x40) followed by the value. The controller
// is write-only, so the driver shadows the cursor in software and re-addresses
// the controller after every character.
//
// The text grid is rotated relative to the controller RAM. A line of text is
// a band of FontHeight+1 segments starting at BaseOffset, and the characters
// of a line advance across the pages in decreasing page order. Printing past
// the last character wraps to the next line, and the last line wraps to the
// first; there is no scrolling.
//
// Dev implements display.TextDisplay. Writing a single space clears the
// screen.
//
// # Datasheets
//
// SH1107
//
// https://www.displayfuture.com/Display/datasheet/controller/SH1107.pdf
package sh110x
