// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package segdisplay is a container for segment LED display controller
// drivers and the bus protocols they speak.
//
// The fd628 package holds the controller driver. The threewire and twowire
// packages implement the bit-banged buses over periph GPIO pins, ledscreen
// emulates a display on the console and preview renders logical digits to
// an image.
package segdisplay
