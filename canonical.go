package huffman

import (
	"fmt"
	"sort"
)

// Canonicalize assigns the canonical Huffman code for the given bit lengths,
// one per Symbol, with 0 meaning the Symbol is absent.  The result depends
// only on the lengths, so an encoder and a decoder that agree on the lengths
// will always agree on the codes.
//
// Codes are assigned in order of (length, Symbol).  The running code value
// starts at 0, increments by 1 after each assignment, and gains one trailing
// 0 bit for each step from one length to the next, including lengths that no
// Symbol uses.
//
// The lengths must describe a complete prefix code.  The only incomplete code
// permitted is the degenerate one with a single Symbol of length 1.  If no
// Symbol has a nonzero length, every returned Code is empty.
//
func Canonicalize(sizes []byte) ([]Code, error) {
	c, err := canonicalize(sizes)
	if err != nil {
		return nil, err
	}
	return c.codes, nil
}

type canonicalCode struct {
	codes   []Code
	sorted  bySize
	minSize byte
	maxSize byte
}

func canonicalize(sizes []byte) (canonicalCode, error) {
	// Step 1: sort the symbols by (sizes[Symbol], Symbol) ascending.

	numSymbols := Symbol(len(sizes))
	sorted := make(bySize, 0, numSymbols)
	for symbol := Symbol(0); symbol < numSymbols; symbol++ {
		size := sizes[symbol]
		if size == 0 {
			continue
		}
		if size > MaxBitsPerCode {
			return canonicalCode{}, fmt.Errorf("%w: symbol %d has bit length %d, max %d", ErrMalformedCodeTable, symbol, size, MaxBitsPerCode)
		}
		sorted = append(sorted, symbolAndSize{symbol, size})
	}
	sorted.Sort()

	codes := make([]Code, numSymbols)
	if len(sorted) == 0 {
		return canonicalCode{codes: codes, sorted: sorted}, nil
	}

	// Step 2: assign the codes sequentially, one length at a time.
	//
	// exhausted becomes true once the running value has passed the last
	// pattern available at the current length.  Appending 0 bits keeps it
	// exhausted, so any later assignment means the lengths oversubscribe
	// the code space.

	minSize := sorted[0].size
	maxSize := sorted[len(sorted)-1].size
	lastSize := minSize
	nextCode := uint64(0)
	exhausted := false
	for _, item := range sorted {
		for lastSize < item.size {
			nextCode <<= 1
			lastSize++
		}
		if exhausted {
			return canonicalCode{}, fmt.Errorf("%w: no %d-bit code left for symbol %d", ErrMalformedCodeTable, item.size, item.symbol)
		}
		codes[item.symbol] = MakeCode(item.size, nextCode)
		if nextCode == lowMask(item.size) {
			exhausted = true
		} else {
			nextCode++
		}
	}

	// Step 3: permit degenerate code with 1 symbol, forbid all other
	// incomplete codes.

	if !exhausted && !(len(sorted) == 1 && maxSize == 1) {
		return canonicalCode{}, fmt.Errorf("%w: lengths leave part of the code space unused", ErrMalformedCodeTable)
	}

	return canonicalCode{
		codes:   codes,
		sorted:  sorted,
		minSize: minSize,
		maxSize: maxSize,
	}, nil
}

// lowMask returns the largest value representable in size bits.
func lowMask(size byte) uint64 {
	return ^uint64(0) >> (64 - uint(size))
}

// type symbolAndSize + type bySize {{{

type symbolAndSize struct {
	symbol Symbol
	size   byte
}

type bySize []symbolAndSize

func (list bySize) Len() int {
	return len(list)
}

func (list bySize) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list bySize) Less(i, j int) bool {
	a, b := list[i], list[j]
	ay, ai := a.symbol, a.size
	by, bi := b.symbol, b.size
	if ai != bi {
		return ai < bi
	}
	return ay < by
}

func (list bySize) Sort() {
	sort.Sort(list)
}

var _ sort.Interface = bySize(nil)

// }}}
