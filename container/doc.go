// Package container implements the ".huf" file format, which stores a byte
// stream compressed with a canonical Huffman code.
//
// Layout (all multi-byte integers are big-endian):
//
//     offset  size      field
//     0       256       code length for each byte value 0..255 (0 = absent)
//     256     3         number of bytes in the original input
//     259     variable  canonical codes, packed MSB-first, zero-padded
//
// The code itself is never stored.  The decoder rebuilds it from the length
// table, which is possible because the code is canonical.
//
package container
