package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/chronos-tachyon/canonhuff/container"
)

// DefaultMaxBodyBytes is 16 MiB plus one container header.
const DefaultMaxBodyBytes = container.HeaderSize + 16<<20

// Config holds the settings of the huffd server.
type Config struct {
	Addr         string
	MaxBodyBytes int64
	Debug        bool
	GinMode      string
}

// Load reads the configuration from the environment:
//
//	HUFF_ADDR      listen address (default ":8080")
//	HUFF_MAX_BODY  request body limit in bytes
//	HUFF_DEBUG     enable debug logging
//	GIN_MODE       gin mode (default "release")
func Load() (Config, error) {
	return load(os.LookupEnv)
}

func load(lookup func(string) (string, bool)) (Config, error) {
	cfg := Config{
		Addr:         ":8080",
		MaxBodyBytes: DefaultMaxBodyBytes,
		GinMode:      "release",
	}
	if v, ok := lookup("HUFF_ADDR"); ok && v != "" {
		cfg.Addr = v
	}
	if v, ok := lookup("HUFF_MAX_BODY"); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("invalid HUFF_MAX_BODY %q", v)
		}
		cfg.MaxBodyBytes = n
	}
	if v, ok := lookup("HUFF_DEBUG"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid HUFF_DEBUG %q: %w", v, err)
		}
		cfg.Debug = b
	}
	if v, ok := lookup("GIN_MODE"); ok && v != "" {
		cfg.GinMode = v
	}
	return cfg, nil
}
