// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package threewire implements the strobe, clock and data serial bus used by
// LED display controllers such as the FD628 and TM1618.
//
// The bus is bit-banged over three GPIO lines. A transaction starts with the
// strobe going low and ends with it going high. Bits are sent LSB first and
// latched by the controller on the rising edge of the clock.
package threewire

import (
	"errors"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// Dev is a 3-wire bus master.
type Dev struct {
	clk  gpio.PinIO
	dat  gpio.PinIO
	stb  gpio.PinIO
	half time.Duration

	sleep func(time.Duration)
}

// New returns a bus clocked at f over clk, dat and stb and leaves the lines
// idle (high).
func New(clk, dat, stb gpio.PinIO, f physic.Frequency) (*Dev, error) {
	if clk == nil || dat == nil || stb == nil {
		return nil, errors.New("threewire: clk, dat and stb pins are required")
	}
	if f <= 0 {
		return nil, errors.New("threewire: invalid clock frequency")
	}
	d := &Dev{clk: clk, dat: dat, stb: stb, half: f.Period() / 2, sleep: time.Sleep}
	for _, p := range []gpio.PinIO{stb, clk, dat} {
		if err := p.Out(gpio.High); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// WriteByte sends c in its own transaction.
func (d *Dev) WriteByte(c byte) error {
	return d.WriteCmdData([]byte{c}, nil)
}

// WriteCmdData sends cmd then data in a single transaction. It stops at the
// first pin failure; the strobe is raised in every case.
func (d *Dev) WriteCmdData(cmd, data []byte) error {
	if err := d.begin(); err != nil {
		return d.end(err)
	}
	for _, b := range [][]byte{cmd, data} {
		for _, c := range b {
			if err := d.shiftOut(c); err != nil {
				return d.end(err)
			}
		}
	}
	return d.end(nil)
}

// ReadData clocks len(p) bytes in from the controller.
func (d *Dev) ReadData(p []byte) error {
	if err := d.dat.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return err
	}
	err := d.begin()
	for i := 0; i < len(p) && err == nil; i++ {
		p[i], err = d.shiftIn()
	}
	err = d.end(err)
	if err2 := d.dat.Out(gpio.High); err == nil {
		err = err2
	}
	return err
}

// String implements conn.Resource.
func (d *Dev) String() string {
	return "threewire{" + d.clk.Name() + ", " + d.dat.Name() + ", " + d.stb.Name() + "}"
}

// Halt implements conn.Resource.
//
// It leaves the lines idle.
func (d *Dev) Halt() error {
	if err := d.end(nil); err != nil {
		return err
	}
	return d.dat.Out(gpio.High)
}

func (d *Dev) begin() error {
	if err := d.stb.Out(gpio.Low); err != nil {
		return err
	}
	d.sleep(d.half)
	return nil
}

// end closes the transaction and returns err, or the first failure raising
// the lines when err is nil.
func (d *Dev) end(err error) error {
	if e := d.clk.Out(gpio.High); err == nil {
		err = e
	}
	if e := d.stb.Out(gpio.High); err == nil {
		err = e
	}
	d.sleep(d.half)
	return err
}

func (d *Dev) shiftOut(c byte) error {
	for i := 0; i < 8; i++ {
		if err := d.clk.Out(gpio.Low); err != nil {
			return err
		}
		if err := d.dat.Out(c&1 != 0); err != nil {
			return err
		}
		d.sleep(d.half)
		if err := d.clk.Out(gpio.High); err != nil {
			return err
		}
		d.sleep(d.half)
		c >>= 1
	}
	return nil
}

func (d *Dev) shiftIn() (byte, error) {
	var c byte
	for i := 0; i < 8; i++ {
		if err := d.clk.Out(gpio.Low); err != nil {
			return 0, err
		}
		d.sleep(d.half)
		if err := d.clk.Out(gpio.High); err != nil {
			return 0, err
		}
		if d.dat.Read() == gpio.High {
			c |= 1 << i
		}
		d.sleep(d.half)
	}
	return c, nil
}
