// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package fd628

import (
	"encoding/binary"
	"fmt"
)

// Write implements io.Writer.
//
// p holds 16 bit little endian elements, as WriteDigits takes them. It
// returns the number of bytes sent to the controller.
func (d *Dev) Write(p []byte) (int, error) {
	var in [bufSlots]uint16
	for i := 0; i < len(in) && 2*i+1 < len(p); i++ {
		in[i] = binary.LittleEndian.Uint16(p[2*i:])
	}
	return d.write(&in, len(p))
}

// WriteDigits sends a frame. Element 0 carries the indicators (ColonBit
// and the icon mask), the following elements the segments of each digit.
// Elements past the grid count are ignored.
//
// It returns the number of bytes sent to the controller.
func (d *Dev) WriteDigits(digits []uint16) (int, error) {
	var in [bufSlots]uint16
	copy(in[:], digits)
	return d.write(&in, 2*len(digits))
}

// Clear blanks every grid. Indicators set with SetIcon stay lit.
func (d *Dev) Clear() error {
	_, err := d.WriteDigits(make([]uint16, d.gridCount))
	return err
}

// write encodes in, a private copy of the caller's elements, and sends it.
func (d *Dev) write(in *[bufSlots]uint16, length int) (int, error) {
	d.wbuf = [bufSlots]uint16{}
	n := length / 2
	if n > d.gridCount {
		n = d.gridCount
	}

	colon := uint16(d.table.Dots[dotColon])
	if in[0]&ColonBit != 0 {
		in[0] &^= ColonBit
		in[0] |= colon
	}
	in[0] |= d.iconMask

	digits := &d.table.Digits
	if d.display.Type == TypeFD620Ref {
		for i := 1; i < n; i++ {
			d.wbuf[digits[i]] = in[i]
		}
		if in[0]&colon != 0 {
			// The colon is wired to digit 0's decimal point.
			d.wbuf[digits[0]] |= 0x80
		}
	} else {
		for i := 0; i < n; i++ {
			d.wbuf[digits[i]] = in[i]
		}
	}

	if d.display.Flags&FlagTransposed != 0 {
		var m [8]byte
		for i := range m {
			m[i] = byte(d.wbuf[i]) << 1
		}
		t := Transpose8(m)
		d.wbuf = [bufSlots]uint16{}
		for i := 0; i < d.gridCount && i+1 < len(t); i++ {
			d.wbuf[i] = uint16(t[i+1])
		}
		n = d.gridCount
	}

	d.fam.remap(&d.wbuf, n)
	var raw [2 * bufSlots]byte
	for i, w := range d.wbuf {
		binary.LittleEndian.PutUint16(raw[2*i:], w)
	}
	if r, ok := d.fam.(byteRemapper); ok {
		r.remapBytes(raw[:], &d.wbuf, n)
	}
	return d.WriteRAM(0, raw[:n*d.gridSize])
}

// WriteRAM sends data to the controller RAM starting at addr.
//
// It returns ErrCapacity without touching the bus when data does not fit.
func (d *Dev) WriteRAM(addr byte, data []byte) (int, error) {
	if len(data)+int(addr) > d.ramSize {
		return 0, ErrCapacity
	}
	if err := d.p.WriteByte(cmdAddrInc); err != nil {
		return 0, fmt.Errorf("fd628: %w", err)
	}
	if err := d.p.WriteCmdData([]byte{cmdAddr | addr}, data); err != nil {
		return 0, fmt.Errorf("fd628: %w", err)
	}
	return len(data), nil
}
