// Package huffman implements canonical Huffman codes.  A canonical code is
// fully determined by the bit length of each symbol's code, so only the
// lengths need to be transmitted for the receiver to rebuild the exact codes
// the sender used.
//
// The encoding pipeline is FrequencyTable → BuildTree → Tree.Sizes →
// Canonicalize, wrapped up by Encoder.  The decoding pipeline is bit lengths →
// Canonicalize → Decoder.  Package container builds a byte-oriented file
// format on top of both.
//
// References:
//
//     <https://www.rfc-editor.org/rfc/rfc1951.html>, Section 3.2.2
//
//     <https://en.wikipedia.org/wiki/Canonical_Huffman_code>
//
package huffman
