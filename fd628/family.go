// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package fd628

// Digit count commands.
const (
	cmd4Digits byte = 0x00
	cmd5Digits byte = 0x01
	cmd6Digits byte = 0x02
	cmd7Digits byte = 0x03
)

// geometry is the RAM layout of a controller.
type geometry struct {
	size  int  // bytes per grid
	count int  // grids
	cmd   byte // digit count command
	noCmd bool // the controller has no digit count command
}

// family is the controller specific part of the driver.
type family interface {
	bus() Bus
	geometry(t Type) geometry
	// remap rewrites the first n slots into the controller's RAM layout.
	remap(w *[bufSlots]uint16, n int)
}

// byteRemapper is implemented by families with one byte per grid. raw is
// the little endian view of w.
type byteRemapper interface {
	remapBytes(raw []byte, w *[bufSlots]uint16, n int)
}

// familyFor returns the implementation for c, or false when c has no known
// layout.
func familyFor(c Controller) (family, bool) {
	switch c {
	case FD628:
		return fd628Family{}, true
	case FD620:
		return fd620Family{}, true
	case TM1618:
		return tm1618Family{}, true
	case HBS658:
		return hbs658Family{}, true
	}
	return fallbackFamily{}, false
}

// fd628Family maps:
//
//	S1 S2 S3 S4 S5 S6 S7 S8 S9 S10 xx S12 S13 S14 xx xx
//	b0 b1 b2 b3 b4 b5 b6 b7 b0 b1  b2 b3  b4  b5  b6 b7
type fd628Family struct{}

func (fd628Family) bus() Bus { return ThreeWire }

func (fd628Family) geometry(Type) geometry {
	return geometry{size: 2, count: 7, cmd: cmd7Digits}
}

func (fd628Family) remap(w *[bufSlots]uint16, n int) {
	for i := 0; i < n; i++ {
		w[i] |= (w[i] & 0xFC00) << 1
	}
}

// fd620Family maps:
//
//	S1 S2 S3 S4 S5 S6 S7 xx xx xx xx xx xx S8 xx xx
//	b0 b1 b2 b3 b4 b5 b6 b7 b0 b1 b2 b3 b4 b5 b6 b7
type fd620Family struct{}

func (fd620Family) bus() Bus { return ThreeWire }

func (fd620Family) geometry(t Type) geometry {
	g := geometry{size: 2, count: 5, cmd: cmd5Digits}
	if t == TypeFD620Ref {
		g.cmd = cmd4Digits
	}
	return g
}

func (fd620Family) remap(w *[bufSlots]uint16, n int) {
	for i := 0; i < n; i++ {
		if w[i]&0x80 != 0 {
			w[i] |= 0x2000
		}
	}
}

// tm1618Family maps:
//
//	S1 S2 S3 S4 S5 xx xx xx xx xx xx S12 S13 S14 xx xx
//	b0 b1 b2 b3 b4 b5 b6 b7 b0 b1 b2 b3  b4  b5  b6 b7
type tm1618Family struct{}

func (tm1618Family) bus() Bus { return ThreeWire }

func (tm1618Family) geometry(t Type) geometry {
	g := geometry{size: 2, count: 7, cmd: cmd5Digits}
	switch t {
	case Type4D7SCol:
		g.cmd = cmd7Digits
	case TypeFD620Ref:
		g.cmd = cmd4Digits
	}
	return g
}

func (tm1618Family) remap(w *[bufSlots]uint16, n int) {
	for i := 0; i < n; i++ {
		w[i] |= (w[i] & 0xE0) << 6
	}
}

// hbs658Family maps one byte per grid:
//
//	S1 S2 S3 S4 S5 S6 S7 xx
//	b0 b1 b2 b3 b4 b5 b6 b7
type hbs658Family struct{}

func (hbs658Family) bus() Bus { return TwoWire }

func (hbs658Family) geometry(Type) geometry {
	return geometry{size: 1, count: 5, noCmd: true}
}

func (hbs658Family) remap(*[bufSlots]uint16, int) {}

// remapBytes packs the low byte of each slot. Byte 0 already is the low
// byte of slot 0 and is left as is.
func (hbs658Family) remapBytes(raw []byte, w *[bufSlots]uint16, n int) {
	for i := 1; i < n; i++ {
		raw[i] = byte(w[i])
	}
}

// fallbackFamily serves controllers without a known layout: FD628 geometry,
// no remapping.
type fallbackFamily struct{ fd628Family }

func (fallbackFamily) remap(*[bufSlots]uint16, int) {}

var _ byteRemapper = hbs658Family{}
