// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ledscreen implements a fake LED display controller that shows its
// RAM on the terminal (stdout) using ANSI color codes.
//
// It speaks the same command set as the FD628 family, so a driver can be
// pointed at it instead of a bus while the real front panel is not wired.
// Each RAM bit is drawn as one block, grids are separated by a space.
package ledscreen

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
)

const ramSize = 16

// Opts represents the options available for this display.
type Opts struct {
	// Grids is the number of grids shown. Defaults to 7.
	Grids int
	// GridSize is the number of bytes per grid, 1 or 2. Defaults to 2.
	GridSize int
	// On is the color of a lit segment at full brightness. Defaults to red.
	On      color.NRGBA
	Palette *ansi256.Palette
	// W receives the rendering. Defaults to stdout.
	W io.Writer

	_ struct{}
}

// Dev is a LED controller emulator that outputs to the console.
type Dev struct {
	w        io.Writer
	palette  ansi256.Palette
	on       color.NRGBA
	grids    int
	gridSize int

	ram        [ramSize]byte
	addr       byte
	fixed      bool
	lit        bool
	brightness byte
	keys       []byte

	buf bytes.Buffer
}

var off = color.NRGBA{0x20, 0x20, 0x20, 255}

// New returns a Dev that displays at the console.
func New(opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts{}
	}
	d := &Dev{
		w:        opts.W,
		on:       opts.On,
		grids:    opts.Grids,
		gridSize: opts.GridSize,
	}
	if d.grids == 0 {
		d.grids = 7
	}
	if d.gridSize == 0 {
		d.gridSize = 2
	}
	if d.grids < 0 || d.gridSize < 0 || d.gridSize > 2 || d.grids*d.gridSize > ramSize {
		return nil, errors.New("ledscreen: invalid grid geometry")
	}
	if d.on == (color.NRGBA{}) {
		d.on = color.NRGBA{255, 0, 0, 255}
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	d.palette = *p
	if d.w == nil {
		d.w = colorable.NewColorableStdout()
	}
	return d, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("LEDScreen{%dx%d}", d.grids, d.gridSize)
}

// Halt implements conn.Resource.
//
// It resets the terminal colors so it is not corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

// SetKeys sets the key scan data returned by ReadData.
func (d *Dev) SetKeys(keys []byte) {
	d.keys = append(d.keys[:0], keys...)
}

// RAM returns a copy of the display RAM.
func (d *Dev) RAM() []byte {
	return append([]byte(nil), d.ram[:]...)
}

// Lit reports whether the display is on.
func (d *Dev) Lit() bool {
	return d.lit
}

// Brightness returns the level set by the last display control command.
func (d *Dev) Brightness() byte {
	return d.brightness
}

// WriteByte executes a single command.
func (d *Dev) WriteByte(c byte) error {
	if d.command(c) {
		_, err := d.refresh()
		return err
	}
	return nil
}

// WriteCmdData executes cmd then stores data starting at the current
// address.
func (d *Dev) WriteCmdData(cmd, data []byte) error {
	for _, c := range cmd {
		d.command(c)
	}
	for _, b := range data {
		d.ram[d.addr] = b
		if !d.fixed {
			d.addr = (d.addr + 1) % ramSize
		}
	}
	_, err := d.refresh()
	return err
}

// ReadData returns the keys set with SetKeys.
func (d *Dev) ReadData(p []byte) error {
	n := copy(p, d.keys)
	clear(p[n:])
	return nil
}

// command applies c and reports whether the display changed.
func (d *Dev) command(c byte) bool {
	switch c & 0xC0 {
	case 0x40:
		d.fixed = c&0x04 != 0
	case 0x80:
		d.lit = c&0x08 != 0
		d.brightness = c & 0x07
		return true
	case 0xC0:
		d.addr = c & 0x0F
	}
	return false
}

// level returns the lit color dimmed to the current brightness.
func (d *Dev) level() color.NRGBA {
	s := uint16(d.brightness) + 1
	return color.NRGBA{
		byte(uint16(d.on.R) * s / 8),
		byte(uint16(d.on.G) * s / 8),
		byte(uint16(d.on.B) * s / 8),
		255,
	}
}

func (d *Dev) refresh() (int, error) {
	// This code is designed to minimize the amount of memory allocated per call.
	d.buf.Reset()
	_, _ = d.buf.WriteString("\r\033[0m")
	lit := d.level()
	for g := 0; g < d.grids; g++ {
		for _, b := range d.ram[g*d.gridSize : (g+1)*d.gridSize] {
			for bit := 0; bit < 8; bit++ {
				c := off
				if d.lit && b&(1<<bit) != 0 {
					c = lit
				}
				_, _ = io.WriteString(&d.buf, d.palette.Block(c))
			}
		}
		_ = d.buf.WriteByte(' ')
	}
	_, _ = d.buf.WriteString("\033[0m")
	n := d.buf.Len()
	_, err := d.buf.WriteTo(d.w)
	return n, err
}

var _ fmt.Stringer = &Dev{}
