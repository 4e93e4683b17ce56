// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package fd628

import "fmt"

// Controller identifies the display controller chip.
type Controller byte

// Controllers of the FD628 family and their siblings. Only FD628, FD620,
// TM1618 and HBS658 have a memory layout known to this package; the others
// are accepted values handled with the FD628 layout.
const (
	FD628 Controller = iota
	FD620
	TM1618
	FD650
	HBS658
	FD655
	FD6551
	ControllerMax
)

var controllerNames = [...]string{"FD628", "FD620", "TM1618", "FD650", "HBS658", "FD655", "FD6551"}

func (c Controller) String() string {
	if c < ControllerMax {
		return controllerNames[c]
	}
	return fmt.Sprintf("Controller(%d)", byte(c))
}

// Type identifies the front panel wired to the controller. It decides the
// icon vocabulary and a few placement quirks.
type Type byte

// Known front panels.
const (
	Type5D7SNormal Type = iota // T95U and most boxes.
	Type5D7ST95                // T95K.
	Type5D7SX92
	Type5D7SAbox
	TypeFD620Ref // FD620 reference board; the colon is digit 0's DP.
	Type4D7SCol  // 4 digits with a colon only.
	Type5D7SM9Pro
	TypeMax
)

var typeNames = [...]string{"5D7S-Normal", "5D7S-T95", "5D7S-X92", "5D7S-Abox", "FD620-Ref", "4D7S-Col", "5D7S-M9Pro"}

func (t Type) String() string {
	if t < TypeMax {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", byte(t))
}

// Flags modify how the encoded frame is laid out.
type Flags byte

const (
	// FlagTransposed marks panels whose segment and grid lines are swapped.
	FlagTransposed Flags = 1 << iota
)

// Display describes the controller and panel combination. It is a plain
// value: Dev.DisplayType returns a copy.
type Display struct {
	Controller Controller
	Type       Type
	Flags      Flags
}

func (d Display) String() string {
	return fmt.Sprintf("%s/%s", d.Controller, d.Type)
}

// Table is the board specific wiring of a panel.
type Table struct {
	// Dots holds the physical bit driven by each indicator slot of the
	// panel's icon group. Slot 4 is the colon.
	Dots [8]byte
	// Digits maps a logical element index to the RAM slot it is written to.
	Digits [8]byte
}

// dotColon is the indicator slot used by the colon on every panel.
const dotColon = 4

// DefaultTable is used for panels missing from Opts.Tables.
var DefaultTable = Table{
	Dots:   [8]byte{0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80},
	Digits: [8]byte{0, 1, 2, 3, 4, 5, 6, 7},
}

func (t *Table) validate() error {
	for i, s := range t.Digits {
		if int(s) >= bufSlots {
			return fmt.Errorf("%w: digit %d mapped to slot %d", ErrTable, i, s)
		}
	}
	return nil
}
