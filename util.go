package huffman

import (
	"fmt"
	"math"
	mathbits "math/bits"
	"strconv"
	"strings"
)

func log2uint32(x uint32) uint32 {
	if x == 0 {
		x = 1
	}
	return uint32(32 - mathbits.LeadingZeros32(x))
}

// addSaturating32 returns a+b, clamped to math.MaxUint32.
func addSaturating32(a, b uint32) uint32 {
	sum := a + b
	if sum < a {
		sum = math.MaxUint32
	}
	return sum
}

// sizesGoString renders a bit length array as a call to NewDecoder.
func sizesGoString(sizes []byte) string {
	var buf strings.Builder
	buf.WriteString("NewDecoder([]byte{")
	for index, size := range sizes {
		if index > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.FormatUint(uint64(size), 10))
	}
	buf.WriteString("})")
	return buf.String()
}

func describe(kind string, numSymbols int, minSize byte, maxSize byte) string {
	if maxSize == 0 {
		return fmt.Sprintf("(Huffman %s with %d symbols, none coded)", kind, numSymbols)
	}
	return fmt.Sprintf("(Huffman %s with %d symbols, with coded lengths of %d .. %d bits)", kind, numSymbols, minSize, maxSize)
}
