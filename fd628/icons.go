// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package fd628

import (
	"fmt"
	"sort"
	"strings"
)

// Icon is a status indicator on the front panel.
type Icon byte

// Icons known to at least one panel.
const (
	IconAlarm Icon = iota
	IconUSB
	IconPlay
	IconPause
	IconColon
	IconEth
	IconWiFi
	IconApps
	IconSetup
	IconSD
	IconHDMI
	IconCVBS
	IconPower
	IconBT
	IconSPDIF
	iconMax
)

var iconNames = [...]string{
	"alarm", "usb", "play", "pause", "colon", "eth", "wifi",
	"apps", "setup", "sd", "hdmi", "cvbs", "power", "b-t", "spdif",
}

func (i Icon) String() string {
	if i < iconMax {
		return iconNames[i]
	}
	return fmt.Sprintf("Icon(%d)", byte(i))
}

// ParseIcon returns the Icon named name.
func ParseIcon(name string) (Icon, bool) {
	for i, n := range iconNames {
		if n == name {
			return Icon(i), true
		}
	}
	return 0, false
}

// iconSlot lists the dot slots driven by an icon.
type iconSlot struct {
	icon  Icon
	slots []int
}

// Icons of each panel group, in the order names are matched.
var (
	defaultIcons = []iconSlot{
		{IconAlarm, []int{0}}, {IconUSB, []int{1}}, {IconPlay, []int{2}}, {IconPause, []int{3}},
		{IconColon, []int{dotColon}}, {IconEth, []int{5}}, {IconWiFi, []int{6}},
	}
	x92Icons = []iconSlot{
		{IconApps, []int{0}}, {IconSetup, []int{1}}, {IconUSB, []int{2}}, {IconSD, []int{3}},
		{IconColon, []int{dotColon}}, {IconHDMI, []int{5}}, {IconCVBS, []int{6}},
	}
	// The Abox wifi indicator has two bars lit together.
	aboxIcons = []iconSlot{
		{IconPower, []int{0}}, {IconEth, []int{1}}, {IconColon, []int{dotColon}}, {IconWiFi, []int{2, 3}},
	}
	m9ProIcons = []iconSlot{
		{IconBT, []int{0}}, {IconEth, []int{1}}, {IconWiFi, []int{2}}, {IconSPDIF, []int{3}},
		{IconColon, []int{dotColon}}, {IconHDMI, []int{5}}, {IconCVBS, []int{6}},
	}
)

func iconSlots(t Type) []iconSlot {
	switch t {
	case Type5D7SX92:
		return x92Icons
	case Type5D7SAbox:
		return aboxIcons
	case Type5D7SM9Pro:
		return m9ProIcons
	}
	return defaultIcons
}

// PanelIcons returns the indicators of panel t in slot order, without the
// colon.
func PanelIcons(t Type) []Icon {
	group := make([]iconSlot, 0, len(iconSlots(t)))
	for _, s := range iconSlots(t) {
		if s.icon != IconColon {
			group = append(group, s)
		}
	}
	sort.Slice(group, func(a, b int) bool {
		return group[a].slots[0] < group[b].slots[0]
	})
	icons := make([]Icon, len(group))
	for i, s := range group {
		icons[i] = s.icon
	}
	return icons
}

// iconMask is the resolved bits of a named icon.
type iconMask struct {
	name string
	mask uint16
}

// resolveIcons builds the name to mask lookup of panel t wired as tbl.
func resolveIcons(t Type, tbl *Table) []iconMask {
	group := iconSlots(t)
	m := make([]iconMask, len(group))
	for i, s := range group {
		m[i].name = s.icon.String()
		for _, slot := range s.slots {
			m[i].mask |= uint16(tbl.Dots[slot])
		}
	}
	return m
}

// SetIcon turns the named indicator on or off. The change shows on the next
// write.
//
// An indicator is selected when name starts with its name, so "usb\n" read
// from a sysfs attribute selects "usb". Names the active panel has no
// indicator for are ignored, so the same calls work across panels.
//
// The mask is kept when the panel changes through SetDisplayType: bits set
// for the previous panel stay set and may light a different indicator.
func (d *Dev) SetIcon(name string, on bool) {
	var mask uint16
	for _, i := range d.icons {
		if strings.HasPrefix(name, i.name) {
			mask = i.mask
			break
		}
	}
	if mask == 0 {
		return
	}
	if on {
		d.iconMask |= mask
	} else {
		d.iconMask &^= mask
	}
}

// IconMask returns the indicator bits merged into every write.
func (d *Dev) IconMask() uint16 {
	return d.iconMask
}
