package huffman

import (
	"errors"
	"fmt"
)

// ErrMalformedCodeTable is returned (wrapped) when a table of bit lengths
// does not describe a complete prefix code.
var ErrMalformedCodeTable = errors.New("malformed Huffman code table")

// ErrCorruptBitstream is returned (wrapped) when a bitstream contains a bit
// sequence that does not match any code, or ends before it should.
var ErrCorruptBitstream = errors.New("corrupt Huffman bitstream")

// CorruptBitstreamError reports the bit offset at which decoding failed.  The
// offset is that of the first bit of the code being decoded.
type CorruptBitstreamError struct {
	Offset uint64
	Reason string
}

// Error fulfills the error interface.
func (err CorruptBitstreamError) Error() string {
	return fmt.Sprintf("%v at bit offset %d: %s", ErrCorruptBitstream, err.Offset, err.Reason)
}

// Is returns true for ErrCorruptBitstream.
func (err CorruptBitstreamError) Is(target error) bool {
	return target == ErrCorruptBitstream
}

var _ error = CorruptBitstreamError{}
