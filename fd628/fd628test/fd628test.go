// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package fd628test is meant to be used to test drivers over a fake display
// bus.
package fd628test

// Kind is the bus primitive an Op was recorded from.
type Kind int

// Bus primitives.
const (
	WriteByte Kind = iota
	WriteCmdData
	ReadData
)

func (k Kind) String() string {
	switch k {
	case WriteByte:
		return "WriteByte"
	case WriteCmdData:
		return "WriteCmdData"
	case ReadData:
		return "ReadData"
	}
	return "Kind(?)"
}

// Op is one recorded bus transaction.
type Op struct {
	Kind Kind
	// Cmd holds the command bytes; a single byte for WriteByte.
	Cmd []byte
	// Data holds the bytes written, or the bytes returned by ReadData.
	Data []byte
}

// Record implements the display bus protocol and records every
// transaction.
type Record struct {
	Ops []Op
	// Keys is returned by ReadData.
	Keys []byte
	// Err, when set, is returned by every call. Failed calls are not
	// recorded.
	Err error
}

// WriteByte records a single command byte.
func (r *Record) WriteByte(c byte) error {
	if r.Err != nil {
		return r.Err
	}
	r.Ops = append(r.Ops, Op{Kind: WriteByte, Cmd: []byte{c}})
	return nil
}

// WriteCmdData records a command and its data.
func (r *Record) WriteCmdData(cmd, data []byte) error {
	if r.Err != nil {
		return r.Err
	}
	r.Ops = append(r.Ops, Op{
		Kind: WriteCmdData,
		Cmd:  append([]byte(nil), cmd...),
		Data: append([]byte(nil), data...),
	})
	return nil
}

// ReadData copies Keys into p, zero filling what Keys does not cover.
func (r *Record) ReadData(p []byte) error {
	if r.Err != nil {
		return r.Err
	}
	n := copy(p, r.Keys)
	clear(p[n:])
	r.Ops = append(r.Ops, Op{Kind: ReadData, Data: append([]byte(nil), p...)})
	return nil
}

// Reset forgets the recorded transactions.
func (r *Record) Reset() {
	r.Ops = nil
}
