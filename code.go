package huffman

import (
	"fmt"
	mathbits "math/bits"
	"strconv"
)

// MaxBitsPerCode is the longest Code that this package can represent.
const MaxBitsPerCode = 64

// Code represents a sequence of bits.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits.  The most significant
	// valid bit of Bits (bit Size-1) is the first bit, which matches the
	// order in which the bits are written to an MSB-first bitstream.
	Bits uint64
}

// MakeCode is a convenience function that constructs a Code.
func MakeCode(size byte, bits uint64) Code {
	return Code{Size: size, Bits: bits}
}

// MakeReversedCode constructs a Code from a sequence of bits that's in the
// other order, i.e. the least significant bit is the *first* bit in the
// sequence, instead of the last.
func MakeReversedCode(size byte, bits uint64) Code {
	return MakeCode(size, reverseBits(size, bits))
}

// Reversed returns the corresponding Code with the bits in reverse order.
func (hc Code) Reversed() Code {
	return MakeReversedCode(hc.Size, hc.Bits)
}

// Append returns a new Code consisting of this Code followed by one more bit.
func (hc Code) Append(bit bool) Code {
	hc.Bits <<= 1
	if bit {
		hc.Bits |= 1
	}
	hc.Size++
	return hc
}

// HasPrefix returns true iff the first prefix.Size bits of this Code are
// equal to prefix.
func (hc Code) HasPrefix(prefix Code) bool {
	if prefix.Size > hc.Size {
		return false
	}
	return hc.Bits>>(hc.Size-prefix.Size) == prefix.Bits
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	if hc.Size == 0 {
		return "\"\""
	}
	format := "%0" + strconv.FormatUint(uint64(hc.Size), 10) + "b"
	return strconv.Quote(fmt.Sprintf(format, hc.Bits))
}

var _ fmt.Stringer = Code{}

func reverseBits(size byte, bits uint64) uint64 {
	if size == 0 {
		return 0
	}
	return mathbits.Reverse64(bits) >> (64 - uint(size))
}
