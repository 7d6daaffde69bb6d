// Package bcd packs byte values into the two-nibble binary-coded-decimal
// form used by RTC time and date registers: tens digit in the high nibble,
// units in the low nibble.
package bcd

// Encode converts value (0-99) to its BCD form, returning the tens digit and
// the packed byte. Inputs are not validated; values of 100 or more produce a
// tens nibble above 9, which is outside the hardware's defined range.
func Encode(value uint8) (tens, packed uint8) {
	for value >= 10 {
		tens++
		value -= 10
	}
	return tens, tens<<4 | value
}

// Decode is the inverse of Encode for valid BCD input. The nibbles are
// recombined before splitting so that callers may pass either a pre-split
// (tens, units) pair or (0, packed byte).
func Decode(high, low uint8) uint8 {
	packed := low | high<<4
	return (packed>>4)*10 + packed&0x0F
}
