// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package fd628

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSetIcon(t *testing.T) {
	tests := []struct {
		typ  Type
		name string
		want uint16
	}{
		{Type5D7SNormal, "alarm", 0x01},
		{Type5D7SNormal, "usb", 0x02},
		{Type5D7SNormal, "play", 0x04},
		{Type5D7SNormal, "pause", 0x08},
		{Type5D7SNormal, "colon", 0x10},
		{Type5D7SNormal, "eth", 0x20},
		{Type5D7SNormal, "wifi", 0x40},
		{Type5D7ST95, "alarm", 0x01},
		{TypeFD620Ref, "wifi", 0x40},
		{Type4D7SCol, "pause", 0x08},
		{Type5D7SNormal, "hdmi", 0},
		{Type5D7SX92, "apps", 0x01},
		{Type5D7SX92, "setup", 0x02},
		{Type5D7SX92, "usb", 0x04},
		{Type5D7SX92, "sd", 0x08},
		{Type5D7SX92, "colon", 0x10},
		{Type5D7SX92, "hdmi", 0x20},
		{Type5D7SX92, "cvbs", 0x40},
		{Type5D7SX92, "alarm", 0},
		{Type5D7SAbox, "power", 0x01},
		{Type5D7SAbox, "eth", 0x02},
		{Type5D7SAbox, "wifi", 0x0c},
		{Type5D7SAbox, "colon", 0x10},
		{Type5D7SAbox, "usb", 0},
		{Type5D7SM9Pro, "b-t", 0x01},
		{Type5D7SM9Pro, "eth", 0x02},
		{Type5D7SM9Pro, "wifi", 0x04},
		{Type5D7SM9Pro, "spdif", 0x08},
		{Type5D7SM9Pro, "colon", 0x10},
		{Type5D7SM9Pro, "hdmi", 0x20},
		{Type5D7SM9Pro, "cvbs", 0x40},
		{Type5D7SM9Pro, "play", 0},
		{Type5D7SNormal, "alarms", 0x01},
		{Type5D7SNormal, "usb\n", 0x02},
		{Type5D7SNormal, "alarm\n", 0x01},
		{Type5D7SX92, "sdcard", 0x08},
		{Type5D7SAbox, "wifi\n", 0x0c},
		{Type5D7SNormal, "us", 0},
		{Type5D7SNormal, " usb", 0},
		{Type5D7SNormal, "USB", 0},
		{Type5D7SNormal, "", 0},
	}
	for _, tt := range tests {
		d, _, _ := newDev(t, &Opts{Display: Display{Controller: FD628, Type: tt.typ}})
		d.SetIcon(tt.name, true)
		if got := d.IconMask(); got != tt.want {
			t.Errorf("%s: SetIcon(%q, true) mask = %#x, want %#x", tt.typ, tt.name, got, tt.want)
		}
		d.SetIcon(tt.name, false)
		if got := d.IconMask(); got != 0 {
			t.Errorf("%s: SetIcon(%q, false) mask = %#x, want 0", tt.typ, tt.name, got)
		}
	}
}

func TestSetIconComposition(t *testing.T) {
	a, _, _ := newDev(t, nil)
	a.SetIcon("usb", true)
	a.SetIcon("wifi", true)
	a.SetIcon("usb", false)

	b, _, _ := newDev(t, nil)
	b.SetIcon("wifi", true)

	if a.IconMask() != b.IconMask() {
		t.Errorf("mask %#x != %#x", a.IconMask(), b.IconMask())
	}

	c, _, _ := newDev(t, nil)
	c.SetIcon("wifi", true)
	c.SetIcon("usb", true)
	c.SetIcon("usb", false)
	if c.IconMask() != b.IconMask() {
		t.Errorf("mask %#x != %#x", c.IconMask(), b.IconMask())
	}
}

func TestSetIconCustomTable(t *testing.T) {
	tbl := DefaultTable
	tbl.Dots = [8]byte{0x40, 0x20, 0x01, 0x02, 0x80, 0, 0, 0}
	d, _, _ := newDev(t, &Opts{
		Display: Display{Controller: FD628, Type: Type5D7SAbox},
		Tables:  map[Type]Table{Type5D7SAbox: tbl},
	})
	d.SetIcon("wifi", true)
	d.SetIcon("power", true)
	if got := d.IconMask(); got != 0x43 {
		t.Errorf("mask = %#x, want 0x43", got)
	}
	d.SetIcon("wifi", false)
	if got := d.IconMask(); got != 0x40 {
		t.Errorf("mask = %#x, want 0x40", got)
	}
}

// Icons set before a panel switch stay in the mask and are still merged
// into writes, even if the new panel uses that bit for something else.
func TestSetIconCarryOver(t *testing.T) {
	d, rec, _ := newDev(t, nil)
	d.SetIcon("alarm", true)
	if err := d.SetDisplayType(Display{Controller: FD650, Type: Type5D7SX92}); err != nil {
		t.Fatal(err)
	}
	if got := d.IconMask(); got != 0x01 {
		t.Fatalf("mask = %#x after switch, want 0x01", got)
	}
	// alarm is not an X92 icon, so it cannot be cleared by name anymore.
	d.SetIcon("alarm", false)
	if got := d.IconMask(); got != 0x01 {
		t.Errorf("mask = %#x, want 0x01", got)
	}
	rec.Reset()
	if _, err := d.WriteDigits([]uint16{0, 0x3f}); err != nil {
		t.Fatal(err)
	}
	if got := rec.Ops[1].Data[0]; got != 0x01 {
		t.Errorf("element 0 = %#x, want the stale apps bit 0x01", got)
	}
	// The X92 apps icon drives the same bit.
	d.SetIcon("apps", false)
	if got := d.IconMask(); got != 0 {
		t.Errorf("mask = %#x, want 0", got)
	}
}

func TestParseIcon(t *testing.T) {
	for i := Icon(0); i < iconMax; i++ {
		got, ok := ParseIcon(i.String())
		if !ok || got != i {
			t.Errorf("ParseIcon(%q) = %d, %t", i, got, ok)
		}
	}
	if _, ok := ParseIcon("bluetooth"); ok {
		t.Error("ParseIcon(bluetooth) should fail")
	}
	if s := iconMax.String(); s != "Icon(15)" {
		t.Errorf("String() = %q", s)
	}
}

func TestPanelIcons(t *testing.T) {
	data := []struct {
		t    Type
		want []Icon
	}{
		{Type5D7SNormal, []Icon{IconAlarm, IconUSB, IconPlay, IconPause, IconEth, IconWiFi}},
		{Type5D7SX92, []Icon{IconApps, IconSetup, IconUSB, IconSD, IconHDMI, IconCVBS}},
		{Type5D7SAbox, []Icon{IconPower, IconEth, IconWiFi}},
		{Type5D7SM9Pro, []Icon{IconBT, IconEth, IconWiFi, IconSPDIF, IconHDMI, IconCVBS}},
		{Type4D7SCol, []Icon{IconAlarm, IconUSB, IconPlay, IconPause, IconEth, IconWiFi}},
	}
	for _, line := range data {
		if diff := cmp.Diff(line.want, PanelIcons(line.t)); diff != "" {
			t.Errorf("PanelIcons(%s) (-want +got):\n%s", line.t, diff)
		}
	}
}
