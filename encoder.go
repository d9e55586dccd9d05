package huffman

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// Encoder implements an encoder for canonical Huffman codes.
type Encoder struct {
	codes   []Code
	minSize byte
	maxSize byte
}

// NewEncoder is a convenience function that allocates and initializes a new
// Encoder.  See Encoder.Init for details.
func NewEncoder(numSymbols int, frequencies []uint32) *Encoder {
	e := new(Encoder)
	e.Init(numSymbols, frequencies)
	return e
}

// NewByteEncoder returns an Encoder for the byte alphabet, built from the
// given FrequencyTable.
func NewByteEncoder(ft FrequencyTable) *Encoder {
	return NewEncoder(NumByteSymbols, ft.Frequencies())
}

// Init initializes this Encoder.  The first argument tells Init how many
// Symbols are in this code's alphabet, and the second argument lists the
// frequency (i.e. number of occurrences) for each Symbol in the code, one for
// each Symbol except that any Symbol not represented in the list is assumed to
// have a frequency of 0.
//
// If exactly one Symbol has a nonzero frequency, it is assigned the 1-bit
// code "0".  If no Symbol has a nonzero frequency, every code is empty.
//
func (e *Encoder) Init(numSymbols int, frequencies []uint32) {
	assert.Assertf(numSymbols <= int(MaxSymbol), "numSymbols %d > MaxSymbol %d", numSymbols, int(MaxSymbol))
	assert.Assertf(numSymbols >= len(frequencies), "numSymbols %d < len(frequencies) %d", numSymbols, len(frequencies))

	entries := make([]FrequencyEntry, 0, len(frequencies))
	for symbol := Symbol(0); symbol < Symbol(len(frequencies)); symbol++ {
		if freq := frequencies[symbol]; freq != 0 {
			entries = append(entries, FrequencyEntry{symbol, freq})
		}
	}

	// The tree only tells us the bit length for each symbol; the actual
	// bits come from the canonical assignment.
	tree := BuildTree(entries)
	sizes := tree.Sizes(numSymbols)

	c, err := canonicalize(sizes)
	assert.Assertf(err == nil, "BUG: Huffman tree produced an invalid set of bit lengths: %v", err)

	*e = Encoder{
		codes:   c.codes,
		minSize: c.minSize,
		maxSize: c.maxSize,
	}
}

// Encode encodes a Symbol into a Huffman-coded bit string.
func (e Encoder) Encode(symbol Symbol) Code {
	return e.codes[symbol]
}

// MinSize is the bit length of the shortest legal code.
func (e Encoder) MinSize() byte {
	return e.minSize
}

// MaxSize is the bit length of the longest legal code.
func (e Encoder) MaxSize() byte {
	return e.maxSize
}

// MaxSymbol is the last Symbol in the code's alphabet.
//
// (The first Symbol in the code's alphabet is always 0.)
//
func (e Encoder) MaxSymbol() Symbol {
	return Symbol(len(e.codes)) - 1
}

// SizeBySymbol returns an array containing the bit length for each Symbol in
// the alphabet.  This array can be transmitted to another party and used by
// Decoder to reconstruct this Huffman code on the receiving end.
//
func (e Encoder) SizeBySymbol() []byte {
	numSymbols := Symbol(len(e.codes))
	out := make([]byte, numSymbols)
	for symbol := Symbol(0); symbol < numSymbols; symbol++ {
		hc := e.codes[symbol]
		out[symbol] = hc.Size
	}
	return out
}

// Cost returns the number of bits needed to encode a message with the given
// per-Symbol frequencies.
func (e Encoder) Cost(frequencies []uint32) uint64 {
	var bits uint64
	for symbol, freq := range frequencies {
		bits += uint64(freq) * uint64(e.codes[symbol].Size)
	}
	return bits
}

// Dump writes a programmer-readable debugging dump of the Encoder's current
// state to the given writer.
func (e Encoder) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Encoder{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", e.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", e.maxSize)
	numSymbols := Symbol(len(e.codes))
	for symbol := Symbol(0); symbol < numSymbols; symbol++ {
		hc := e.codes[symbol]
		if hc.Size == 0 {
			fmt.Fprintf(&buf, "\tEncode(%d) = nil\n", symbol)
		} else {
			fmt.Fprintf(&buf, "\tEncode(%d) = %s\n", symbol, hc)
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// GoString returns a Go expression that would reconstruct a Decoder for this
// code.
func (e Encoder) GoString() string {
	return sizesGoString(e.SizeBySymbol())
}

// String returns a brief human-readable description of this Encoder.
func (e Encoder) String() string {
	return describe("encoder", len(e.codes), e.minSize, e.maxSize)
}

var (
	_ fmt.Stringer   = Encoder{}
	_ fmt.GoStringer = Encoder{}
)
