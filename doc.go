// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package textoled is a container for the SH110x text OLED driver and its
// tooling.
//
// See sh110x for the driver, sh110x/sh110xtest for a software controller and
// screen2d for a terminal preview. cmd/sh110x is a command line front end.
package textoled
