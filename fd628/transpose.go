// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package fd628

import "encoding/binary"

// Transpose8 transposes the 8x8 bit matrix b: bit j of byte k becomes bit k
// of byte j.
func Transpose8(b [8]byte) [8]byte {
	x := binary.LittleEndian.Uint64(b[:])
	x = x&0xAA55AA55AA55AA55 | (x&0x00AA00AA00AA00AA)<<7 | (x>>7)&0x00AA00AA00AA00AA
	x = x&0xCCCC3333CCCC3333 | (x&0x0000CCCC0000CCCC)<<14 | (x>>14)&0x0000CCCC0000CCCC
	x = x&0xF0F0F0F00F0F0F0F | (x&0x00000000F0F0F0F0)<<28 | (x>>28)&0x00000000F0F0F0F0
	var out [8]byte
	binary.LittleEndian.PutUint64(out[:], x)
	return out
}
