package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	huffman "github.com/chronos-tachyon/canonhuff"
	"github.com/chronos-tachyon/canonhuff/container"
	"github.com/chronos-tachyon/canonhuff/pkg/logger"
)

var errUsage = errors.New("usage")

// errDiffer is returned by compare when the files are not identical.
var errDiffer = errors.New("files differ")

func run(args []string, logg logger.Logger) error {
	if len(args) < 2 {
		return errUsage
	}
	verb, args := args[0], args[1:]
	switch verb {
	case "compress", "c":
		in, out, err := paths(args, ".huf")
		if err != nil {
			return err
		}
		return compressFile(in, out, logg)

	case "decompress", "d":
		in, out, err := paths(args, ".dec")
		if err != nil {
			return err
		}
		return decompressFile(in, out, logg)

	case "compare":
		if len(args) != 2 {
			return errUsage
		}
		same, offset, err := compareFiles(args[0], args[1])
		if err != nil {
			return err
		}
		if !same {
			return fmt.Errorf("%w: %s and %s first differ at byte %d", errDiffer, args[0], args[1], offset)
		}
		logg.Infof("%s and %s are identical", args[0], args[1])
		return nil

	case "dump":
		if len(args) != 1 {
			return errUsage
		}
		return dumpFile(args[0], os.Stdout)
	}
	return errUsage
}

func paths(args []string, suffix string) (string, string, error) {
	switch len(args) {
	case 1:
		return args[0], args[0] + suffix, nil
	case 2:
		return args[0], args[1], nil
	}
	return "", "", errUsage
}

func compressFile(inPath, outPath string, logg logger.Logger) error {
	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	var stats container.Stats
	err = writeFile(outPath, func(w io.Writer) error {
		var err error
		stats, err = container.Encode(w, in)
		return err
	})
	if err != nil {
		return err
	}
	logg.Infof("%s: %d bytes -> %s: %d bytes (ratio %.3f)", inPath, stats.Symbols, outPath, stats.Size, stats.Ratio())

	out, err := os.Open(outPath)
	if err != nil {
		return err
	}
	defer out.Close()
	_, d, err := container.Inspect(out)
	if err != nil {
		return err
	}
	var list strings.Builder
	writeCodeList(&list, d)
	logg.Debugf("encoded code list for %s:\n%s", outPath, list.String())
	return nil
}

func decompressFile(inPath, outPath string, logg logger.Logger) error {
	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	_, d, err := container.Inspect(in)
	if err != nil {
		return err
	}
	logg.Debugf("decoded code list for %s:\n%s", inPath, d.DebugString())
	if _, err := in.Seek(0, io.SeekStart); err != nil {
		return err
	}

	var stats container.Stats
	err = writeFile(outPath, func(w io.Writer) error {
		var err error
		stats, err = container.Decode(w, in)
		return err
	})
	if err != nil {
		return err
	}
	logg.Infof("%s: total number of characters read = %d", outPath, stats.Symbols)
	return nil
}

// writeFile creates path, passes a buffered writer for it to fn, and flushes
// and closes it on every path.  A failed write removes the partial file.
func writeFile(path string, fn func(w io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	bw := bufio.NewWriter(f)
	if err = fn(bw); err != nil {
		return err
	}
	return bw.Flush()
}

// compareFiles reports whether the two files have identical contents, and if
// not, the offset of the first byte that differs.
func compareFiles(aPath, bPath string) (bool, int64, error) {
	a, err := os.Open(aPath)
	if err != nil {
		return false, 0, err
	}
	defer a.Close()
	b, err := os.Open(bPath)
	if err != nil {
		return false, 0, err
	}
	defer b.Close()

	ar, br := bufio.NewReader(a), bufio.NewReader(b)
	var offset int64
	for {
		ca, errA := ar.ReadByte()
		cb, errB := br.ReadByte()
		if errA != nil && errA != io.EOF {
			return false, offset, errA
		}
		if errB != nil && errB != io.EOF {
			return false, offset, errB
		}
		if errA == io.EOF || errB == io.EOF {
			return errA == errB, offset, nil
		}
		if ca != cb {
			return false, offset, nil
		}
		offset++
	}
}

func dumpFile(path string, w io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	h, d, err := container.Inspect(f)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "total symbols: %d\n", h.Count)
	fmt.Fprintf(w, "%s\n", d)
	writeCodeList(w, d)
	return nil
}

func writeCodeList(w io.Writer, d *huffman.Decoder) {
	for symbol, hc := range d.Codes() {
		if hc.Size != 0 {
			fmt.Fprintf(w, "symbol %3d %q maps to code %s\n", symbol, rune(symbol), hc)
		}
	}
}
