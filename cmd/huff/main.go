// Command huff compresses and decompresses files with a canonical Huffman
// code.
//
//	huff [-v] compress <input> [output]      (default output: <input>.huf)
//	huff [-v] decompress <input> [output]    (default output: <input>.dec)
//	huff compare <a> <b>
//	huff dump <input.huf>
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chronos-tachyon/canonhuff/pkg/logger"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: huff [-v] compress|decompress <input> [output]\n")
	fmt.Fprintf(os.Stderr, "       huff compare <a> <b>\n")
	fmt.Fprintf(os.Stderr, "       huff dump <input.huf>\n")
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	verbose := flag.Bool("v", false, "log code tables and other debugging output")
	flag.Usage = usage
	flag.Parse()

	logg := logger.New(os.Stderr, *verbose)
	if err := run(flag.Args(), logg); err != nil {
		if err == errUsage {
			usage()
		}
		logg.Errorf("%v", err)
		os.Exit(1)
	}
}
