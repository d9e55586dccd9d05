package container

import (
	"bytes"
	"errors"
	"io"
	"math/rand"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"

	huffman "github.com/chronos-tachyon/canonhuff"
)

func TestEncode_AAABBC(t *testing.T) {
	var buf bytes.Buffer
	stats, err := Encode(&buf, bytes.NewReader([]byte("AAABBC")))
	require.NoError(t, err)

	raw := buf.Bytes()
	require.Len(t, raw, HeaderSize+2)
	require.Equal(t, Stats{Symbols: 6, PayloadBits: 9, Size: HeaderSize + 2}, stats)

	expectSizes := make([]byte, NumSymbols)
	expectSizes['A'] = 1
	expectSizes['B'] = 2
	expectSizes['C'] = 2
	require.Equal(t, expectSizes, raw[:NumSymbols])
	require.Equal(t, []byte{0x00, 0x00, 0x06}, raw[NumSymbols:HeaderSize])

	// 0 0 0 10 10 11, padded with seven 0 bits.
	require.Equal(t, []byte{0x15, 0x80}, raw[HeaderSize:])

	out, err := DecodeBytes(raw)
	require.NoError(t, err)
	require.Equal(t, []byte("AAABBC"), out)
}

func TestEncode_Empty(t *testing.T) {
	raw, err := EncodeBytes(nil)
	require.NoError(t, err)
	require.Equal(t, make([]byte, HeaderSize), raw)

	var out bytes.Buffer
	stats, err := Decode(&out, bytes.NewReader(raw))
	require.NoError(t, err)
	require.Equal(t, 0, out.Len())
	require.Equal(t, Stats{Size: HeaderSize}, stats)
	require.Zero(t, stats.Ratio())
}

func TestEncode_SingleSymbol(t *testing.T) {
	data := bytes.Repeat([]byte{0x41}, 1000)
	raw, err := EncodeBytes(data)
	require.NoError(t, err)
	require.Len(t, raw, HeaderSize+125)
	require.Equal(t, byte(1), raw[0x41])
	require.Equal(t, []byte{0x00, 0x03, 0xe8}, raw[NumSymbols:HeaderSize])
	require.Equal(t, make([]byte, 125), raw[HeaderSize:])

	out, err := DecodeBytes(raw)
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	type testRow struct {
		name string
		data []byte
	}

	skewed := make([]byte, 20000)
	for i := range skewed {
		// Geometric-ish distribution gives long codes for rare bytes.
		b := 0
		for b < 255 && rng.Intn(3) != 0 {
			b++
		}
		skewed[i] = byte(b)
	}
	uniform := make([]byte, 10*1024)
	rng.Read(uniform)
	allBytes := make([]byte, 256)
	for i := range allBytes {
		allBytes[i] = byte(i)
	}

	testData := [...]testRow{
		{name: "one-byte", data: []byte{0x00}},
		{name: "two-symbols", data: []byte("ababababbbbbbba")},
		{name: "text", data: []byte("the quick brown fox jumps over the lazy dog, again and again and again")},
		{name: "all-bytes", data: allBytes},
		{name: "uniform", data: uniform},
		{name: "skewed", data: skewed},
	}

	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			var buf bytes.Buffer
			encStats, err := EncodeData(&buf, row.data)
			require.NoError(t, err)
			require.Equal(t, encStats.Size, int64(buf.Len()))

			first := append([]byte(nil), buf.Bytes()...)
			second, err := EncodeBytes(row.data)
			require.NoError(t, err)
			require.Equal(t, first, second, "encoding must be deterministic")

			var out bytes.Buffer
			decStats, err := Decode(&out, bytes.NewReader(first))
			require.NoError(t, err)
			require.Equal(t, row.data, out.Bytes())
			require.Equal(t, encStats, decStats)

			h, d, err := Inspect(bytes.NewReader(first))
			require.NoError(t, err)
			require.Equal(t, uint32(len(row.data)), h.Count)
			present := make(map[byte]bool)
			for _, ch := range row.data {
				present[ch] = true
			}
			require.Equal(t, len(present), h.NumCoded())
			require.Equal(t, len(present), d.NumCoded())
			for symbol, size := range h.Sizes {
				require.Equal(t, present[byte(symbol)], size != 0, "symbol %d", symbol)
			}
		})
	}
}

func TestDecode_Corrupt(t *testing.T) {
	t.Run("bad-code", func(t *testing.T) {
		raw, err := EncodeBytes([]byte("AAAA"))
		require.NoError(t, err)
		raw[HeaderSize] = 0x10 // "0001...": the fourth code is "1", which is not a code

		_, err = DecodeBytes(raw)
		var cbe huffman.CorruptBitstreamError
		require.ErrorAs(t, err, &cbe)
		require.ErrorIs(t, err, huffman.ErrCorruptBitstream)
		require.Equal(t, uint64(3), cbe.Offset)
	})

	t.Run("truncated-payload", func(t *testing.T) {
		raw, err := EncodeBytes(bytes.Repeat([]byte("AAABBC"), 4))
		require.NoError(t, err)
		require.Len(t, raw, HeaderSize+5) // 36 bits

		_, err = DecodeBytes(raw[:HeaderSize+2])
		var cbe huffman.CorruptBitstreamError
		require.ErrorAs(t, err, &cbe)
		require.Equal(t, uint64(16), cbe.Offset) // AAABBC AAABB
	})

	t.Run("missing-payload", func(t *testing.T) {
		raw, err := EncodeBytes([]byte("AAABBC"))
		require.NoError(t, err)

		_, err = DecodeBytes(raw[:HeaderSize])
		var cbe huffman.CorruptBitstreamError
		require.ErrorAs(t, err, &cbe)
		require.Equal(t, uint64(0), cbe.Offset)
	})

	t.Run("count-without-codes", func(t *testing.T) {
		raw := make([]byte, HeaderSize+1)
		raw[HeaderSize-1] = 1
		_, err := DecodeBytes(raw)
		require.ErrorIs(t, err, huffman.ErrCorruptBitstream)
	})

	t.Run("malformed-lengths", func(t *testing.T) {
		raw := make([]byte, HeaderSize+1)
		raw['A'], raw['B'], raw['C'] = 1, 1, 1
		raw[HeaderSize-1] = 3
		_, err := DecodeBytes(raw)
		require.ErrorIs(t, err, huffman.ErrMalformedCodeTable)
	})

	t.Run("short-header", func(t *testing.T) {
		_, err := DecodeBytes(make([]byte, HeaderSize-1))
		require.ErrorIs(t, err, ErrShortHeader)
	})
}

func TestEncode_TooLarge(t *testing.T) {
	_, err := EncodeBytes(make([]byte, MaxCount+1))
	require.ErrorIs(t, err, ErrInputTooLarge)
}

type failingWriter struct {
	err error
}

func (w failingWriter) Write(p []byte) (int, error) {
	return 0, w.err
}

func TestIOErrorsPropagate(t *testing.T) {
	boom := errors.New("boom")

	_, err := Encode(io.Discard, iotest.ErrReader(boom))
	require.ErrorIs(t, err, boom)

	_, err = Encode(failingWriter{boom}, bytes.NewReader([]byte("hello")))
	require.ErrorIs(t, err, boom)

	raw, err := EncodeBytes([]byte("hello"))
	require.NoError(t, err)
	_, err = Decode(failingWriter{boom}, bytes.NewReader(raw))
	require.ErrorIs(t, err, boom)

	_, err = Decode(io.Discard, io.MultiReader(bytes.NewReader(raw[:10]), iotest.ErrReader(boom)))
	require.ErrorIs(t, err, boom)
}

func TestHeader_Binary(t *testing.T) {
	var h Header
	h.Sizes['x'] = 7
	h.Count = 0x123456

	raw, err := h.MarshalBinary()
	require.NoError(t, err)
	require.Equal(t, []byte{0x12, 0x34, 0x56}, raw[NumSymbols:])

	var h2 Header
	require.NoError(t, h2.UnmarshalBinary(raw))
	require.Equal(t, h, h2)

	require.ErrorIs(t, h2.UnmarshalBinary(raw[:10]), ErrShortHeader)

	h.Count = MaxCount + 1
	_, err = h.MarshalBinary()
	require.ErrorIs(t, err, ErrInputTooLarge)
}
