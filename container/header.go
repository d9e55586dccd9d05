package container

import (
	"errors"
	"fmt"
	"io"

	huffman "github.com/chronos-tachyon/canonhuff"
)

const (
	// NumSymbols is the size of the length table.
	NumSymbols = huffman.NumByteSymbols

	// CountSize is the width in bytes of the symbol count field.
	CountSize = 3

	// HeaderSize is the total size in bytes of the length table and the
	// symbol count field.
	HeaderSize = NumSymbols + CountSize

	// MaxCount is the largest number of input bytes a container can hold.
	MaxCount = 1<<(8*CountSize) - 1
)

// ErrShortHeader is returned (wrapped) when the input ends before a complete
// header has been read.
var ErrShortHeader = errors.New("container: truncated header")

// Header is the fixed-size prefix of a container.
type Header struct {
	// Sizes holds the code length for each byte value.
	Sizes [NumSymbols]byte

	// Count is the number of bytes in the original input.
	Count uint32
}

// MarshalBinary returns the wire form of the header.
func (h Header) MarshalBinary() ([]byte, error) {
	if h.Count > MaxCount {
		return nil, fmt.Errorf("%w: count %d", ErrInputTooLarge, h.Count)
	}
	raw := make([]byte, HeaderSize)
	copy(raw, h.Sizes[:])
	raw[NumSymbols+0] = byte(h.Count >> 16)
	raw[NumSymbols+1] = byte(h.Count >> 8)
	raw[NumSymbols+2] = byte(h.Count)
	return raw, nil
}

// UnmarshalBinary parses the wire form of the header.  It does not validate
// the length table; see Decoder.
func (h *Header) UnmarshalBinary(raw []byte) error {
	if len(raw) != HeaderSize {
		return fmt.Errorf("%w: got %d bytes, expected %d", ErrShortHeader, len(raw), HeaderSize)
	}
	copy(h.Sizes[:], raw[:NumSymbols])
	h.Count = uint32(raw[NumSymbols+0])<<16 | uint32(raw[NumSymbols+1])<<8 | uint32(raw[NumSymbols+2])
	return nil
}

// WriteTo writes the wire form of the header to w.
func (h Header) WriteTo(w io.Writer) (int64, error) {
	raw, err := h.MarshalBinary()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(raw)
	return int64(n), err
}

// ReadHeader reads a header from r.  If r ends early, the returned error
// wraps ErrShortHeader; other read errors are returned unchanged.
func ReadHeader(r io.Reader) (Header, error) {
	var h Header
	raw := make([]byte, HeaderSize)
	n, err := io.ReadFull(r, raw)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return h, fmt.Errorf("%w: got %d bytes, expected %d", ErrShortHeader, n, HeaderSize)
	}
	if err != nil {
		return h, err
	}
	err = h.UnmarshalBinary(raw)
	return h, err
}

// Decoder rebuilds the canonical code described by the length table.  The
// returned error wraps huffman.ErrMalformedCodeTable if the lengths do not
// form a valid code.
func (h Header) Decoder() (*huffman.Decoder, error) {
	return huffman.NewDecoder(h.Sizes[:])
}

// NumCoded returns the number of distinct byte values in the original input.
func (h Header) NumCoded() int {
	var n int
	for _, size := range h.Sizes {
		if size != 0 {
			n++
		}
	}
	return n
}
