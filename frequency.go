package huffman

import (
	"bufio"
	"errors"
	"io"
	"math"
)

// FrequencyEntry pairs a Symbol with the number of times it occurs.
type FrequencyEntry struct {
	Symbol Symbol
	Count  uint32
}

// FrequencyTable holds the number of occurrences of each byte value.  Counts
// saturate at math.MaxUint32.
type FrequencyTable [NumByteSymbols]uint32

// CountBytes reads r to completion and returns the number of times each byte
// value occurs, along with the total number of bytes read.  Errors other than
// io.EOF are returned unchanged.
func CountBytes(r io.Reader) (FrequencyTable, uint64, error) {
	var ft FrequencyTable
	var total uint64

	br := bufio.NewReader(r)
	for {
		ch, err := br.ReadByte()
		if errors.Is(err, io.EOF) {
			return ft, total, nil
		}
		if err != nil {
			return ft, total, err
		}
		ft.inc(ch)
		total++
	}
}

// Add counts every byte in p.
func (ft *FrequencyTable) Add(p []byte) {
	for _, ch := range p {
		ft.inc(ch)
	}
}

func (ft *FrequencyTable) inc(ch byte) {
	if ft[ch] != math.MaxUint32 {
		ft[ch]++
	}
}

// Total returns the sum of all counts.
func (ft FrequencyTable) Total() uint64 {
	var total uint64
	for _, count := range ft {
		total += uint64(count)
	}
	return total
}

// Entries returns the symbols with a nonzero count, in ascending order.
func (ft FrequencyTable) Entries() []FrequencyEntry {
	out := make([]FrequencyEntry, 0, NumByteSymbols)
	for symbol, count := range ft {
		if count != 0 {
			out = append(out, FrequencyEntry{Symbol(symbol), count})
		}
	}
	return out
}

// Frequencies returns the full table as a slice, zeros included, suitable for
// passing to Encoder.Init.
func (ft FrequencyTable) Frequencies() []uint32 {
	out := make([]uint32, NumByteSymbols)
	copy(out, ft[:])
	return out
}
