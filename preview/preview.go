// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package preview draws a front panel frame as an image.
//
// It takes the same logical elements as fd628.Dev.WriteDigits: element 0
// carries the colon (fd628.ColonBit), the following elements the segments of
// each digit with bit 0 as segment a through bit 6 as segment g and bit 7 as
// the decimal point. Indicators are drawn as labels below the digits.
//
// The output can be saved with image/png to check a panel layout without the
// hardware.
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/GermanBionicSystems/segdisplay/fd628"
)

// Opts represents the options of a Panel.
type Opts struct {
	// Type selects the indicator labels shown below the digits.
	Type fd628.Type
	// Digits is the number of digits drawn. Defaults to 4.
	Digits int
	// Colon is the index of the digit the colon is drawn in front of.
	// Defaults to 2. Negative hides it.
	Colon int
	// Unit is the thickness of a segment in pixels. Defaults to 4.
	Unit float64
	// On, Off and Background default to red, dark gray and black.
	On         color.Color
	Off        color.Color
	Background color.Color
}

// DefaultOpts is a 4 digit clock panel.
var DefaultOpts = Opts{
	Type:   fd628.Type5D7SNormal,
	Digits: 4,
	Colon:  2,
	Unit:   4,
}

// Panel renders frames. It is not safe for concurrent use.
type Panel struct {
	opts  Opts
	icons []fd628.Icon
	face  font.Face
	w, h  int
}

// New returns a Panel drawing with opts.
func New(opts *Opts) (*Panel, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	p := &Panel{opts: *opts, icons: fd628.PanelIcons(opts.Type)}
	if p.opts.Digits == 0 {
		p.opts.Digits = 4
	}
	if p.opts.Colon == 0 {
		p.opts.Colon = 2
	}
	if p.opts.Unit == 0 {
		p.opts.Unit = 4
	}
	if p.opts.Digits < 0 || p.opts.Digits > 8 || p.opts.Unit < 0 {
		return nil, errors.New("preview: invalid geometry")
	}
	if p.opts.On == nil {
		p.opts.On = color.NRGBA{255, 0, 0, 255}
	}
	if p.opts.Off == nil {
		p.opts.Off = color.NRGBA{0x30, 0x30, 0x30, 255}
	}
	if p.opts.Background == nil {
		p.opts.Background = color.Black
	}
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("preview: %w", err)
	}
	s := p.opts.Unit
	p.face = truetype.NewFace(f, &truetype.Options{Size: 3 * s})
	p.w = int(2*s + float64(p.opts.Digits)*cellWidth*s)
	p.h = int(2*s + digitHeight*s)
	if len(p.icons) != 0 {
		p.h += int(iconRow * s)
	}
	return p, nil
}

func (p *Panel) String() string {
	return fmt.Sprintf("preview.Panel{%s, %d digits}", p.opts.Type, p.opts.Digits)
}

// Bounds returns the size of the rendered images.
func (p *Panel) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.w, p.h)
}

// Sizes in units.
const (
	cellWidth   = 9
	digitHeight = 11
	iconRow     = 5
)

// segments are the rectangles of segments a to g, in units from the top left
// corner of a digit.
var segments = [7][4]float64{
	{1, 0, 4, 1},
	{5, 1, 1, 4},
	{5, 6, 1, 4},
	{1, 10, 4, 1},
	{0, 6, 1, 4},
	{0, 1, 1, 4},
	{1, 5, 4, 1},
}

// Render draws frame with the indicators lit. Elements past the digit count
// are ignored, missing ones are blank.
func (p *Panel) Render(frame []uint16, lit ...fd628.Icon) image.Image {
	s := p.opts.Unit
	dc := gg.NewContext(p.w, p.h)
	dc.SetColor(p.opts.Background)
	dc.Clear()

	var in [9]uint16
	copy(in[:], frame)
	for i := 0; i < p.opts.Digits; i++ {
		x, y := s+float64(i)*cellWidth*s, s
		v := in[i+1]
		for j, r := range segments {
			dc.DrawRectangle(x+r[0]*s, y+r[1]*s, r[2]*s, r[3]*s)
			p.fill(dc, v&(1<<j) != 0)
		}
		dc.DrawCircle(x+6.5*s, y+10.5*s, s/2)
		p.fill(dc, v&0x80 != 0)
	}

	if c := p.opts.Colon; c >= 0 && c < p.opts.Digits {
		x := s + float64(c)*cellWidth*s - 1.25*s
		on := in[0]&fd628.ColonBit != 0
		dc.DrawCircle(x, s+3.5*s, s/2)
		p.fill(dc, on)
		dc.DrawCircle(x, s+7.5*s, s/2)
		p.fill(dc, on)
	}

	if len(p.icons) != 0 {
		dc.SetFontFace(p.face)
		step := float64(p.w) / float64(len(p.icons))
		y := s + (digitHeight+iconRow/2.)*s
		for i, icon := range p.icons {
			on := false
			for _, l := range lit {
				on = on || l == icon
			}
			p.color(dc, on)
			dc.DrawStringAnchored(icon.String(), step*(float64(i)+.5), y, .5, .5)
		}
	}
	return dc.Image()
}

func (p *Panel) color(dc *gg.Context, on bool) {
	if on {
		dc.SetColor(p.opts.On)
	} else {
		dc.SetColor(p.opts.Off)
	}
}

func (p *Panel) fill(dc *gg.Context, on bool) {
	p.color(dc, on)
	dc.Fill()
}

var _ fmt.Stringer = &Panel{}
