package bcd_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"tinygo.org/x/stm32rtc/bcd"
)

func TestEncode(t *testing.T) {
	c := qt.New(t)

	tests := []struct {
		in     uint8
		tens   uint8
		packed uint8
	}{
		{0, 0, 0x00},
		{9, 0, 0x09},
		{10, 1, 0x10},
		{59, 5, 0x59},
		{99, 9, 0x99},
	}
	for _, tt := range tests {
		tens, packed := bcd.Encode(tt.in)
		c.Assert(tens, qt.Equals, tt.tens, qt.Commentf("Encode(%d)", tt.in))
		c.Assert(packed, qt.Equals, tt.packed, qt.Commentf("Encode(%d)", tt.in))
	}
}

func TestDecodeSplitPair(t *testing.T) {
	c := qt.New(t)

	// A caller may pass a pre-split (tens, units) pair instead of a packed
	// byte; the nibbles recombine to the same value.
	c.Assert(bcd.Decode(5, 9), qt.Equals, uint8(59))
	c.Assert(bcd.Decode(0, 0x59), qt.Equals, uint8(59))
	c.Assert(bcd.Decode(0, 0x00), qt.Equals, uint8(0))
}

func TestRoundTrip(t *testing.T) {
	c := qt.New(t)

	for v := uint8(0); v <= 99; v++ {
		_, packed := bcd.Encode(v)
		c.Assert(bcd.Decode(0, packed), qt.Equals, v, qt.Commentf("value %d", v))
	}
}
