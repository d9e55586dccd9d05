package service

import (
	"bytes"
	"errors"
	"strconv"
	"strings"

	huffman "github.com/chronos-tachyon/canonhuff"
	"github.com/chronos-tachyon/canonhuff/container"
	"github.com/chronos-tachyon/canonhuff/pkg/logger"
)

// ErrInvalidContainer is matched (via errors.Is) by every error caused by a
// bad container rather than by the server.
var ErrInvalidContainer = errors.New("invalid container")

// CodecService compresses, decompresses and inspects containers held in memory.
type CodecService struct {
	logger logger.Logger
}

// NewCodecService returns a CodecService that logs to l.
func NewCodecService(l logger.Logger) *CodecService {
	return &CodecService{logger: l}
}

// Inspection summarizes a container header.
type Inspection struct {
	Count   uint32            `json:"count"`
	Symbols int               `json:"symbols"`
	MinSize byte              `json:"min_size"`
	MaxSize byte              `json:"max_size"`
	Codes   map[string]string `json:"codes"`
}

// Compress returns the container for data.
func (s *CodecService) Compress(data []byte) ([]byte, container.Stats, error) {
	var buf bytes.Buffer
	stats, err := container.EncodeData(&buf, data)
	if err != nil {
		s.logger.Errorf("compress %d bytes: %v", len(data), err)
		return nil, stats, err
	}
	s.logger.Infof("compressed %d bytes into %d (%d payload bits, ratio %.3f)", stats.Symbols, stats.Size, stats.PayloadBits, stats.Ratio())
	return buf.Bytes(), stats, nil
}

// Decompress returns the bytes stored in the container raw.
func (s *CodecService) Decompress(raw []byte) ([]byte, container.Stats, error) {
	var buf bytes.Buffer
	stats, err := container.Decode(&buf, bytes.NewReader(raw))
	if err != nil {
		s.logger.Errorf("decompress %d bytes: %v", len(raw), err)
		return nil, stats, classify(err)
	}
	s.logger.Infof("decompressed %d bytes into %d", len(raw), stats.Symbols)
	return buf.Bytes(), stats, nil
}

// Inspect summarizes the header of the container raw and its code table.
func (s *CodecService) Inspect(raw []byte) (*Inspection, error) {
	h, d, err := container.Inspect(bytes.NewReader(raw))
	if err != nil {
		s.logger.Errorf("inspect %d bytes: %v", len(raw), err)
		return nil, classify(err)
	}
	s.logger.Debugf("code table for %d-byte container:\n%s", len(raw), d.DebugString())

	codes := make(map[string]string, d.NumCoded())
	for symbol, hc := range d.Codes() {
		if hc.Size != 0 {
			codes[strconv.Itoa(symbol)] = strings.Trim(hc.String(), "\"")
		}
	}
	return &Inspection{
		Count:   h.Count,
		Symbols: d.NumCoded(),
		MinSize: d.MinSize(),
		MaxSize: d.MaxSize(),
		Codes:   codes,
	}, nil
}

type invalidContainerError struct {
	err error
}

func (e invalidContainerError) Error() string { return e.err.Error() }
func (e invalidContainerError) Unwrap() error { return e.err }
func (e invalidContainerError) Is(target error) bool {
	return target == ErrInvalidContainer
}

func classify(err error) error {
	if errors.Is(err, huffman.ErrMalformedCodeTable) ||
		errors.Is(err, huffman.ErrCorruptBitstream) ||
		errors.Is(err, container.ErrShortHeader) {
		return invalidContainerError{err}
	}
	return err
}
