package huffman

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
)

// Decoder implements a decoder for canonical Huffman codes.
type Decoder struct {
	sizes   []byte
	symbols []Symbol
	first   []uint64
	count   []uint32
	offset  []uint32
	minSize byte
	maxSize byte
}

// BitReader is the subset of bitio.Reader that Decoder needs.
type BitReader interface {
	ReadBool() (bool, error)
}

// NewDecoder is a convenience function that allocates and initializes a new
// Decoder.  See Decoder.Init for details.
func NewDecoder(sizes []byte) (*Decoder, error) {
	d := new(Decoder)
	if err := d.Init(sizes); err != nil {
		return nil, err
	}
	return d, nil
}

// Init initializes this Decoder.  The argument consists of zero or more bit
// lengths, one for each symbol in the code, which is used to reconstruct the
// canonical Huffman code exactly as Canonicalize does.  Symbols with an
// assigned bit length of 0 are omitted from the code entirely.
//
// Not all inputs are valid for constructing a canonical Huffman code.  In
// particular, this method will reject lengths that oversubscribe the code
// space or leave part of it unused, returning an error that wraps
// ErrMalformedCodeTable.  Degenerate codes consisting of 0 valid symbols or 1
// valid symbol of length 1 are permitted, however, as there is no way to
// construct a non-degenerate Huffman code for such cases.
//
func (d *Decoder) Init(sizes []byte) error {
	c, err := canonicalize(sizes)
	if err != nil {
		return err
	}

	sizesCopy := make([]byte, len(sizes))
	copy(sizesCopy, sizes)

	// permit degenerate code with 0 symbols
	if len(c.sorted) == 0 {
		*d = Decoder{sizes: sizesCopy}
		return nil
	}

	numLengths := uint(c.maxSize) + 1
	symbols := make([]Symbol, len(c.sorted))
	count := make([]uint32, numLengths)
	offset := make([]uint32, numLengths)
	first := make([]uint64, numLengths)

	for index, item := range c.sorted {
		symbols[index] = item.symbol
		if count[item.size] == 0 {
			offset[item.size] = uint32(index)
		}
		count[item.size]++
	}

	// first[size] is the numerically smallest code of that size, whether
	// or not any symbol uses it.  Smaller values at that size extend some
	// shorter code; larger values beyond the count are prefixes of longer
	// codes.
	var code uint64
	for size := uint(1); size < numLengths; size++ {
		code = (code + uint64(count[size-1])) << 1
		first[size] = code
	}

	*d = Decoder{
		sizes:   sizesCopy,
		symbols: symbols,
		first:   first,
		count:   count,
		offset:  offset,
		minSize: c.minSize,
		maxSize: c.maxSize,
	}
	return nil
}

// Decode attempts to decode a Huffman code into a Symbol.
//
// If the Decode is completely successful, symbol >= 0 and minSize == maxSize.
//
// If the Decode fails due to insufficient bits, symbol == InvalidSymbol and at
// least (minSize - hc.Size) additional bits are required to decode this
// symbol.  No more than (maxSize - hc.Size) additional bits will be required.
//
// If the Decode fails due to unreasonable input, symbol == InvalidSymbol and
// minSize == maxSize == 0.
//
func (d Decoder) Decode(hc Code) (symbol Symbol, minSize byte, maxSize byte) {
	if d.maxSize == 0 || hc.Size > d.maxSize {
		return InvalidSymbol, 0, 0
	}

	if hc.Size >= d.minSize {
		first := d.first[hc.Size]
		if hc.Bits < first {
			return InvalidSymbol, 0, 0
		}
		if index := hc.Bits - first; index < uint64(d.count[hc.Size]) {
			return d.symbols[uint64(d.offset[hc.Size])+index], hc.Size, hc.Size
		}
	}

	// hc is not a code.  Find the shortest and longest codes it is a
	// proper prefix of, if any.
	for size := hc.Size + 1; size <= d.maxSize; size++ {
		n := d.count[size]
		if n == 0 {
			continue
		}
		shift := size - hc.Size
		lo := d.first[size] >> shift
		hi := (d.first[size] + uint64(n) - 1) >> shift
		if hc.Bits >= lo && hc.Bits <= hi {
			if minSize == 0 {
				minSize = size
			}
			maxSize = size
		}
	}
	return InvalidSymbol, minSize, maxSize
}

// ReadSymbol reads bits from br one at a time until they form a complete code,
// and returns the decoded Symbol and the number of bits consumed.  The offset
// argument is the bit position of the first bit to be read, and is used only
// for error reporting.
//
// If the bits read cannot be the start of any code, or if br runs out of bits
// partway through, ReadSymbol returns a CorruptBitstreamError.  Any other
// error from br is returned unchanged.
//
func (d Decoder) ReadSymbol(br BitReader, offset uint64) (Symbol, byte, error) {
	if d.maxSize == 0 {
		return InvalidSymbol, 0, CorruptBitstreamError{Offset: offset, Reason: "code table is empty"}
	}

	var hc Code
	for {
		bit, err := br.ReadBool()
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			reason := "bitstream ends before the last symbol"
			if hc.Size != 0 {
				reason = fmt.Sprintf("bitstream ends in the middle of a code after %s", hc)
			}
			return InvalidSymbol, hc.Size, CorruptBitstreamError{Offset: offset, Reason: reason}
		}
		if err != nil {
			return InvalidSymbol, hc.Size, err
		}

		hc = hc.Append(bit)
		symbol, minSize, _ := d.Decode(hc)
		if symbol >= 0 {
			return symbol, hc.Size, nil
		}
		if minSize == 0 {
			return InvalidSymbol, hc.Size, CorruptBitstreamError{Offset: offset, Reason: fmt.Sprintf("no code matches %s", hc)}
		}
	}
}

// MinSize is the bit length of the shortest legal code.
func (d Decoder) MinSize() byte {
	return d.minSize
}

// MaxSize is the bit length of the longest legal code.
func (d Decoder) MaxSize() byte {
	return d.maxSize
}

// MaxSymbol is the last Symbol in the code's alphabet.
//
// (The first Symbol in the code's alphabet is always 0.)
//
func (d Decoder) MaxSymbol() Symbol {
	return Symbol(len(d.sizes)) - 1
}

// NumCoded returns the number of Symbols with a nonzero bit length.
func (d Decoder) NumCoded() int {
	return len(d.symbols)
}

// SizeBySymbol returns a copy of the original bit length array used to
// initialize this Decoder.
func (d Decoder) SizeBySymbol() []byte {
	out := make([]byte, len(d.sizes))
	copy(out, d.sizes)
	return out
}

// Codes returns the canonical Code for each Symbol in the alphabet.  Symbols
// that are not part of the code get the empty Code.
func (d Decoder) Codes() []Code {
	out := make([]Code, len(d.sizes))
	for size := d.minSize; size != 0 && size <= d.maxSize; size++ {
		for index := uint32(0); index < d.count[size]; index++ {
			symbol := d.symbols[d.offset[size]+index]
			out[symbol] = MakeCode(size, d.first[size]+uint64(index))
		}
	}
	return out
}

// Dump writes a programmer-readable debugging dump of the Decoder's current
// state to the given writer.  Every code and every proper prefix of a code is
// listed, in order of (size, bits).
func (d Decoder) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Decoder{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", d.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", d.maxSize)

	seen := make(map[Code]struct{}, len(d.symbols)*int(d.maxSize+1))
	keys := make(byCode, 0, 2*len(d.symbols))
	for _, hc := range d.Codes() {
		if hc.Size == 0 {
			continue
		}
		for size := byte(0); size <= hc.Size; size++ {
			prefix := MakeCode(size, hc.Bits>>(hc.Size-size))
			if _, found := seen[prefix]; !found {
				seen[prefix] = struct{}{}
				keys = append(keys, prefix)
			}
		}
	}
	keys.Sort()
	for _, hc := range keys {
		symbol, minSize, maxSize := d.Decode(hc)
		fmt.Fprintf(&buf, "\tDecode(%s) = {%d, %d, %d}\n", hc, symbol, minSize, maxSize)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// DebugString returns the output of Dump as a string.
func (d Decoder) DebugString() string {
	var buf bytes.Buffer
	_, _ = d.Dump(&buf)
	return buf.String()
}

// GoString returns a Go expression that would reconstruct this Decoder.
func (d Decoder) GoString() string {
	return sizesGoString(d.sizes)
}

// String returns a brief human-readable description of this Decoder.
func (d Decoder) String() string {
	return describe("decoder", len(d.sizes), d.minSize, d.maxSize)
}

// MarshalJSON renders the bit length array as a list of JSON numbers.
func (d Decoder) MarshalJSON() ([]byte, error) {
	list := make([]uint16, len(d.sizes))
	for index, size := range d.sizes {
		list[index] = uint16(size)
	}
	return json.Marshal(list)
}

// UnmarshalJSON parses a list of JSON numbers as a bit length array and
// initializes this Decoder with it.
func (d *Decoder) UnmarshalJSON(raw []byte) error {
	var list []uint16
	if err := json.Unmarshal(raw, &list); err != nil {
		return err
	}
	sizes := make([]byte, len(list))
	for index, size := range list {
		if size > math.MaxUint8 {
			return fmt.Errorf("invalid bit length for symbol %d: got %d, max %d", index, size, math.MaxUint8)
		}
		sizes[index] = byte(size)
	}
	return d.Init(sizes)
}

var (
	_ fmt.Stringer     = Decoder{}
	_ fmt.GoStringer   = Decoder{}
	_ json.Marshaler   = Decoder{}
	_ json.Unmarshaler = (*Decoder)(nil)
)

// type byCode {{{

type byCode []Code

func (list byCode) Sort() {
	sort.Sort(list)
}

func (list byCode) Len() int {
	return len(list)
}

func (list byCode) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list byCode) Less(i, j int) bool {
	a, b := list[i], list[j]
	as, ab := a.Size, a.Bits
	bs, bb := b.Size, b.Bits
	if as != bs {
		return as < bs
	}
	return ab < bb
}

var _ sort.Interface = byCode(nil)

// }}}
