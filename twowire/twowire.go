// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package twowire implements the clock and data serial bus used by LED
// display controllers such as the HBS658 and TM1637.
//
// It looks like I²C without addressing: a transaction is framed by start and
// stop conditions, bytes go LSB first and each one is acknowledged by the
// receiver pulling data low on the ninth clock.
package twowire

import (
	"errors"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// ErrNack is returned when the controller does not acknowledge a byte.
var ErrNack = errors.New("twowire: no acknowledge")

// Dev is a 2-wire bus master.
type Dev struct {
	clk  gpio.PinIO
	dat  gpio.PinIO
	half time.Duration

	sleep func(time.Duration)
}

// New returns a bus clocked at f over clk and dat and leaves the lines idle
// (high).
func New(clk, dat gpio.PinIO, f physic.Frequency) (*Dev, error) {
	if clk == nil || dat == nil {
		return nil, errors.New("twowire: clk and dat pins are required")
	}
	if f <= 0 {
		return nil, errors.New("twowire: invalid clock frequency")
	}
	d := &Dev{clk: clk, dat: dat, half: f.Period() / 2, sleep: time.Sleep}
	if err := clk.Out(gpio.High); err != nil {
		return nil, err
	}
	if err := dat.Out(gpio.High); err != nil {
		return nil, err
	}
	return d, nil
}

// WriteByte sends c in its own transaction.
func (d *Dev) WriteByte(c byte) error {
	return d.WriteCmdData([]byte{c}, nil)
}

// WriteCmdData sends cmd then data in a single transaction. It stops at the
// first byte not acknowledged or the first pin failure, then releases the
// bus.
func (d *Dev) WriteCmdData(cmd, data []byte) error {
	if err := d.start(); err != nil {
		return d.stop(err)
	}
	for _, b := range [][]byte{cmd, data} {
		for _, c := range b {
			if err := d.shiftOut(c); err != nil {
				return d.stop(err)
			}
		}
	}
	return d.stop(nil)
}

// ReadData reads len(p) bytes, acknowledging each of them.
func (d *Dev) ReadData(p []byte) error {
	err := d.start()
	for i := 0; i < len(p) && err == nil; i++ {
		p[i], err = d.shiftIn()
	}
	return d.stop(err)
}

// String implements conn.Resource.
func (d *Dev) String() string {
	return "twowire{" + d.clk.Name() + ", " + d.dat.Name() + "}"
}

// Halt implements conn.Resource.
//
// It leaves the lines idle.
func (d *Dev) Halt() error {
	return d.stop(nil)
}

// out drives steps in order and waits half a clock period after each step
// with pause set.
func (d *Dev) out(steps ...step) error {
	for _, s := range steps {
		if err := s.p.Out(s.l); err != nil {
			return err
		}
		if s.pause {
			d.sleep(d.half)
		}
	}
	return nil
}

type step struct {
	p     gpio.PinIO
	l     gpio.Level
	pause bool
}

func (d *Dev) start() error {
	return d.out(
		step{d.dat, gpio.High, false},
		step{d.clk, gpio.High, true},
		step{d.dat, gpio.Low, true},
		step{d.clk, gpio.Low, true},
	)
}

// stop releases the bus and returns err, or the first pin failure when err
// is nil.
func (d *Dev) stop(err error) error {
	e := d.out(
		step{d.clk, gpio.Low, false},
		step{d.dat, gpio.Low, true},
		step{d.clk, gpio.High, true},
		step{d.dat, gpio.High, true},
	)
	if err == nil {
		err = e
	}
	return err
}

// shiftOut sends c and checks the acknowledge bit.
func (d *Dev) shiftOut(c byte) error {
	for i := 0; i < 8; i++ {
		if err := d.out(
			step{d.clk, gpio.Low, false},
			step{d.dat, c&1 != 0, true},
			step{d.clk, gpio.High, true},
		); err != nil {
			return err
		}
		c >>= 1
	}
	if err := d.clk.Out(gpio.Low); err != nil {
		return err
	}
	if err := d.dat.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return err
	}
	d.sleep(d.half)
	if err := d.clk.Out(gpio.High); err != nil {
		return err
	}
	d.sleep(d.half)
	ack := d.dat.Read()
	if err := d.out(step{d.clk, gpio.Low, false}, step{d.dat, gpio.Low, false}); err != nil {
		return err
	}
	if ack != gpio.Low {
		return ErrNack
	}
	return nil
}

// shiftIn reads a byte and acknowledges it.
func (d *Dev) shiftIn() (byte, error) {
	if err := d.dat.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return 0, err
	}
	var c byte
	for i := 0; i < 8; i++ {
		if err := d.out(step{d.clk, gpio.Low, true}, step{d.clk, gpio.High, false}); err != nil {
			return 0, err
		}
		if d.dat.Read() == gpio.High {
			c |= 1 << i
		}
		d.sleep(d.half)
	}
	err := d.out(
		step{d.clk, gpio.Low, false},
		step{d.dat, gpio.Low, true},
		step{d.clk, gpio.High, true},
		step{d.clk, gpio.Low, false},
	)
	return c, err
}
