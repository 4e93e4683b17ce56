// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ledscreen

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/maruel/ansi256"
)

func TestNew(t *testing.T) {
	for _, opts := range []Opts{{Grids: 9}, {GridSize: 3}, {Grids: -1}} {
		if _, err := New(&opts); err == nil {
			t.Errorf("New(%+v) should fail", opts)
		}
	}
	d, err := New(&Opts{W: &bytes.Buffer{}})
	if err != nil {
		t.Fatal(err)
	}
	if s := d.String(); s != "LEDScreen{7x2}" {
		t.Errorf("String() = %q", s)
	}
}

func TestCommands(t *testing.T) {
	d, err := New(&Opts{W: &bytes.Buffer{}})
	if err != nil {
		t.Fatal(err)
	}
	if err := d.WriteByte(0x8d); err != nil {
		t.Fatal(err)
	}
	if !d.Lit() || d.Brightness() != 5 {
		t.Errorf("lit=%t brightness=%d", d.Lit(), d.Brightness())
	}
	if err := d.WriteByte(0x80); err != nil {
		t.Fatal(err)
	}
	if d.Lit() {
		t.Error("expected display off")
	}

	if err := d.WriteByte(0x40); err != nil {
		t.Fatal(err)
	}
	if err := d.WriteCmdData([]byte{0xc2}, []byte{0x11, 0x22, 0x33}); err != nil {
		t.Fatal(err)
	}
	if err := d.WriteByte(0x44); err != nil {
		t.Fatal(err)
	}
	if err := d.WriteCmdData([]byte{0xc8}, []byte{0x44, 0x55}); err != nil {
		t.Fatal(err)
	}
	want := make([]byte, ramSize)
	want[2], want[3], want[4], want[8] = 0x11, 0x22, 0x33, 0x55
	if diff := cmp.Diff(want, d.RAM()); diff != "" {
		t.Errorf("RAM (-want +got):\n%s", diff)
	}
}

func TestRender(t *testing.T) {
	var out bytes.Buffer
	on := color.NRGBA{0, 255, 0, 255}
	d, err := New(&Opts{Grids: 2, GridSize: 1, On: on, W: &out})
	if err != nil {
		t.Fatal(err)
	}
	if err := d.WriteByte(0x8f); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := d.WriteCmdData([]byte{0xc0}, []byte{0x81, 0x02}); err != nil {
		t.Fatal(err)
	}

	p := ansi256.Default
	lit, dark := p.Block(on), p.Block(off)
	var want strings.Builder
	want.WriteString("\r\033[0m")
	want.WriteString(lit + strings.Repeat(dark, 6) + lit + " ")
	want.WriteString(dark + lit + strings.Repeat(dark, 6) + " ")
	want.WriteString("\033[0m")
	if got := out.String(); got != want.String() {
		t.Errorf("render = %q, want %q", got, want.String())
	}

	// Turned off, nothing is lit.
	out.Reset()
	if err := d.WriteByte(0x80); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out.String(), lit) {
		t.Error("lit block rendered while the display is off")
	}
}

func TestDimming(t *testing.T) {
	d, err := New(&Opts{On: color.NRGBA{255, 128, 8, 255}, W: &bytes.Buffer{}})
	if err != nil {
		t.Fatal(err)
	}
	_ = d.WriteByte(0x8b)
	if got, want := d.level(), (color.NRGBA{127, 64, 4, 255}); got != want {
		t.Errorf("level() = %v, want %v", got, want)
	}
}

func TestReadData(t *testing.T) {
	d, err := New(&Opts{W: &bytes.Buffer{}})
	if err != nil {
		t.Fatal(err)
	}
	d.SetKeys([]byte{0x02})
	p := []byte{0xff, 0xff}
	if err := d.ReadData(p); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]byte{0x02, 0x00}, p); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
