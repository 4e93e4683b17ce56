// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package fd628 drives the FD628 family of LED display controllers found on
// the front panel of TV boxes: FD628, FD620, TM1618 and HBS658.
//
// The driver translates logical digit values and indicator states into the
// RAM layout of the chip and keeps track of brightness and power.
//
// A Dev is not safe for concurrent use. Each physical display needs its own
// Dev.
package fd628

import (
	"errors"
	"fmt"
	"log"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"

	"github.com/GermanBionicSystems/segdisplay/threewire"
	"github.com/GermanBionicSystems/segdisplay/twowire"
)

const (
	cmdReadKeys  byte = 0x42 // Read key scan data.
	cmdAddrInc   byte = 0x40 // Write with address auto increment.
	cmdAddr      byte = 0xC0 // Set the RAM address, OR'ed with the address.
	cmdStatus    byte = 0x80 // Display control, OR'ed with the level and dispOn.

	dispOn  byte = 0x08
	dispOff byte = 0x00

	brightnessMask   = 0x07
	brightnessLevels = 8

	// bufSlots is the number of 16 bit slots in the write buffer.
	bufSlots = 8
)

// ColonBit is the bit of element 0 callers set to light the colon. It is
// moved to the panel's colon bit before the frame is sent.
const ColonBit uint16 = 0x10

// BusFrequency is the clock used on both bus protocols.
const BusFrequency = 100 * physic.KiloHertz

var (
	// ErrCapacity is returned when a write does not fit in the controller
	// RAM. Nothing is sent on the bus.
	ErrCapacity = errors.New("fd628: write exceeds display RAM")
	// ErrInvalidDisplay is returned by SetDisplayType for rejected displays.
	ErrInvalidDisplay = errors.New("fd628: display type not supported")
	// ErrTable is returned for wiring tables pointing outside the buffer.
	ErrTable = errors.New("fd628: invalid wiring table")
)

// Protocol is the byte level bus a controller is wired to.
type Protocol interface {
	// WriteByte sends a single command byte.
	WriteByte(c byte) error
	// WriteCmdData sends cmd then data in one transaction.
	WriteCmdData(cmd, data []byte) error
	// ReadData reads len(p) bytes.
	ReadData(p []byte) error
}

// Bus selects the bus protocol.
type Bus int

const (
	// ThreeWire is the strobe, clock and data protocol.
	ThreeWire Bus = iota
	// TwoWire is the clock and data protocol with start and stop conditions.
	TwoWire
)

func (b Bus) String() string {
	if b == TwoWire {
		return "2-wire"
	}
	return "3-wire"
}

// Transport opens the bus protocol a controller needs.
type Transport func(b Bus) (Protocol, error)

// Opts is the configuration of a display.
type Opts struct {
	Display Display
	// Brightness is the initial level, 0 to 7.
	Brightness uint8
	// Tables holds the wiring of each panel. Panels not listed use
	// DefaultTable.
	Tables map[Type]Table
}

// DefaultOpts is a FD628 with the most common panel.
var DefaultOpts = Opts{
	Display:    Display{Controller: FD628, Type: Type5D7SNormal},
	Brightness: 7,
}

// Dev is a handle to a display controller.
type Dev struct {
	t       Transport
	p       Protocol
	bus     Bus
	display Display
	tables  map[Type]Table
	table   Table
	fam     family
	icons   []iconMask

	brightness uint8
	power      bool
	iconMask   uint16

	gridSize  int
	gridCount int
	ramSize   int
	wbuf      [bufSlots]uint16
}

// New returns a Dev bit-banging its bus over the given pins. stb is only
// used by controllers on the 3-wire bus and may be nil for a HBS658.
func New(clk, dat, stb gpio.PinIO, opts *Opts) (*Dev, error) {
	return NewTransport(gpioTransport(clk, dat, stb), opts)
}

// NewTransport returns a Dev using t to open its bus, then initializes the
// display.
func NewTransport(t Transport, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	d := &Dev{
		t:          t,
		display:    opts.Display,
		brightness: opts.Brightness & brightnessMask,
		tables:     make(map[Type]Table, len(opts.Tables)),
	}
	for k, tbl := range opts.Tables {
		if err := tbl.validate(); err != nil {
			return nil, err
		}
		d.tables[k] = tbl
	}
	if err := d.Init(); err != nil {
		return nil, err
	}
	return d, nil
}

func gpioTransport(clk, dat, stb gpio.PinIO) Transport {
	return func(b Bus) (Protocol, error) {
		if b == TwoWire {
			p, err := twowire.New(clk, dat, BusFrequency)
			if err != nil {
				return nil, err
			}
			return p, nil
		}
		p, err := threewire.New(clk, dat, stb, BusFrequency)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
}

// Init configures the controller for the active display: bus, RAM geometry
// and digit count. It clears the frame and turns the display on at the
// stored brightness.
func (d *Dev) Init() error {
	f, ok := familyFor(d.display.Controller)
	if !ok {
		log.Printf("fd628: no layout for %s, using the FD628 one", d.display.Controller)
	}
	if b := f.bus(); d.p == nil || b != d.bus {
		p, err := d.t(b)
		if err != nil {
			return fmt.Errorf("fd628: %w", err)
		}
		d.p, d.bus = p, b
	}
	d.fam = f
	g := f.geometry(d.display.Type)
	if !g.noCmd {
		if err := d.p.WriteByte(g.cmd); err != nil {
			return fmt.Errorf("fd628: %w", err)
		}
	}
	d.gridSize, d.gridCount = g.size, g.count
	d.ramSize = g.size * g.count
	d.table = d.tableFor(d.display.Type)
	d.icons = resolveIcons(d.display.Type, &d.table)
	if err := d.SetBrightness(uint16(d.brightness)); err != nil {
		return err
	}
	d.wbuf = [bufSlots]uint16{}
	return nil
}

func (d *Dev) tableFor(t Type) Table {
	if tbl, ok := d.tables[t]; ok {
		return tbl
	}
	return DefaultTable
}

// BrightnessLevels returns the number of brightness levels.
func (d *Dev) BrightnessLevels() int {
	return brightnessLevels
}

// Brightness returns the stored brightness level.
func (d *Dev) Brightness() uint8 {
	return d.brightness
}

// SetBrightness stores the 3 low bits of level and turns the display on at
// that level.
func (d *Dev) SetBrightness(level uint16) error {
	d.brightness = uint8(level & brightnessMask)
	if err := d.p.WriteByte(cmdStatus | d.brightness | dispOn); err != nil {
		return fmt.Errorf("fd628: %w", err)
	}
	d.power = true
	return nil
}

// Power reports whether the display is on.
func (d *Dev) Power() bool {
	return d.power
}

// SetPower turns the display on at the stored brightness, or off.
func (d *Dev) SetPower(on bool) error {
	if on {
		return d.SetBrightness(uint16(d.brightness))
	}
	d.power = false
	if err := d.p.WriteByte(cmdStatus | dispOff); err != nil {
		return fmt.Errorf("fd628: %w", err)
	}
	return nil
}

// DisplayType returns the active display.
func (d *Dev) DisplayType() Display {
	return d.display
}

// SetDisplayType switches to display and reinitializes the controller.
//
// Only FD650 displays are accepted; anything else returns ErrInvalidDisplay
// and leaves the Dev untouched. When the controller cannot be reinitialized
// the previous display is kept.
func (d *Dev) SetDisplayType(display Display) error {
	if display.Type >= TypeMax || display.Controller >= ControllerMax || display.Controller != FD650 {
		return ErrInvalidDisplay
	}
	prev := *d
	d.display = display
	if err := d.Init(); err != nil {
		*d = prev
		return err
	}
	return nil
}

// Read reads the key scan data into p.
func (d *Dev) Read(p []byte) (int, error) {
	if err := d.p.WriteByte(cmdReadKeys); err != nil {
		return 0, fmt.Errorf("fd628: %w", err)
	}
	if err := d.p.ReadData(p); err != nil {
		return 0, fmt.Errorf("fd628: %w", err)
	}
	return len(p), nil
}

// Halt implements conn.Resource.
//
// It turns the display off.
func (d *Dev) Halt() error {
	return d.SetPower(false)
}

func (d *Dev) String() string {
	return fmt.Sprintf("fd628.Dev{%s}", d.display)
}

var _ conn.Resource = &Dev{}
var _ fmt.Stringer = &Dev{}
