package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	env := func(m map[string]string) func(string) (string, bool) {
		return func(key string) (string, bool) {
			v, ok := m[key]
			return v, ok
		}
	}

	require.Equal(t, int64(16*1024*1024+259), int64(DefaultMaxBodyBytes))

	cfg, err := load(env(nil))
	require.NoError(t, err)
	require.Equal(t, Config{Addr: ":8080", MaxBodyBytes: DefaultMaxBodyBytes, GinMode: "release"}, cfg)

	cfg, err = load(env(map[string]string{
		"HUFF_ADDR":     "127.0.0.1:9000",
		"HUFF_MAX_BODY": "1024",
		"HUFF_DEBUG":    "true",
		"GIN_MODE":      "debug",
	}))
	require.NoError(t, err)
	require.Equal(t, Config{Addr: "127.0.0.1:9000", MaxBodyBytes: 1024, Debug: true, GinMode: "debug"}, cfg)

	_, err = load(env(map[string]string{"HUFF_MAX_BODY": "lots"}))
	require.Error(t, err)

	_, err = load(env(map[string]string{"HUFF_DEBUG": "maybe"}))
	require.Error(t, err)
}
