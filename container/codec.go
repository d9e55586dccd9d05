package container

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/icza/bitio"

	huffman "github.com/chronos-tachyon/canonhuff"
)

// ErrInputTooLarge is returned (wrapped) when the input has more than
// MaxCount bytes.
var ErrInputTooLarge = errors.New("container: input too large")

// Stats describes one encoded or decoded container.
type Stats struct {
	// Symbols is the number of bytes in the original input.
	Symbols uint64

	// PayloadBits is the number of meaningful bits in the payload,
	// excluding padding.
	PayloadBits uint64

	// Size is the size in bytes of the container.
	Size int64
}

// Ratio returns Size divided by Symbols, or 0 for an empty input.
func (s Stats) Ratio() float64 {
	if s.Symbols == 0 {
		return 0
	}
	return float64(s.Size) / float64(s.Symbols)
}

func payloadSize(bits uint64) int64 {
	return int64((bits + 7) / 8)
}

// Encode reads src to completion and writes its compressed form to dst.
// Errors from src and dst are returned unchanged.
func Encode(dst io.Writer, src io.Reader) (Stats, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return Stats{}, err
	}
	return EncodeData(dst, data)
}

// EncodeData writes the compressed form of data to dst.
//
// data is scanned twice: once to count each byte value and once to emit the
// codes.  An empty input produces a header of all zeros and no payload.
//
func EncodeData(dst io.Writer, data []byte) (Stats, error) {
	if len(data) > MaxCount {
		return Stats{}, fmt.Errorf("%w: %d bytes, max %d", ErrInputTooLarge, len(data), MaxCount)
	}

	var ft huffman.FrequencyTable
	ft.Add(data)
	enc := huffman.NewByteEncoder(ft)

	var h Header
	copy(h.Sizes[:], enc.SizeBySymbol())
	h.Count = uint32(len(data))

	bits := enc.Cost(ft.Frequencies())
	stats := Stats{
		Symbols:     uint64(len(data)),
		PayloadBits: bits,
		Size:        HeaderSize + payloadSize(bits),
	}

	w := bitio.NewWriter(dst)
	if _, err := h.WriteTo(w); err != nil {
		return Stats{}, err
	}
	for _, ch := range data {
		hc := enc.Encode(huffman.Symbol(ch))
		if err := w.WriteBits(hc.Bits, hc.Size); err != nil {
			return Stats{}, err
		}
	}
	if err := w.Close(); err != nil {
		return Stats{}, err
	}
	return stats, nil
}

// EncodeBytes returns the compressed form of data.
func EncodeBytes(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := EncodeData(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads a container from src and writes the original bytes to dst.
//
// Errors wrap huffman.ErrMalformedCodeTable if the length table is invalid,
// huffman.ErrCorruptBitstream (as a huffman.CorruptBitstreamError carrying
// the bit offset) if the payload does not decode, or ErrShortHeader if src
// ends inside the header.  Errors from src and dst are returned unchanged.
// Bytes after the last code are ignored.
//
func Decode(dst io.Writer, src io.Reader) (Stats, error) {
	r := bitio.NewReader(src)
	h, err := ReadHeader(r)
	if err != nil {
		return Stats{}, err
	}

	d, err := h.Decoder()
	if err != nil {
		return Stats{}, err
	}

	bw := bufio.NewWriter(dst)
	var offset uint64
	for i := uint32(0); i < h.Count; i++ {
		symbol, n, err := d.ReadSymbol(r, offset)
		if err != nil {
			return Stats{}, err
		}
		if err := bw.WriteByte(byte(symbol)); err != nil {
			return Stats{}, err
		}
		offset += uint64(n)
	}
	if err := bw.Flush(); err != nil {
		return Stats{}, err
	}

	return Stats{
		Symbols:     uint64(h.Count),
		PayloadBits: offset,
		Size:        HeaderSize + payloadSize(offset),
	}, nil
}

// DecodeBytes returns the original bytes stored in the container raw.
func DecodeBytes(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := Decode(&buf, bytes.NewReader(raw)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Inspect reads only the header from src and returns it along with the
// Decoder it describes.
func Inspect(src io.Reader) (Header, *huffman.Decoder, error) {
	h, err := ReadHeader(src)
	if err != nil {
		return h, nil, err
	}
	d, err := h.Decoder()
	if err != nil {
		return h, nil, err
	}
	return h, d, nil
}
