package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromReaderMergesOverDefault(t *testing.T) {
	c, err := NewFromReader(strings.NewReader(`
baseURL: http://localhost:3000
debounce: 250ms
locale: de
sort: [company, name, name]
`))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000", c.BaseURL)
	assert.Equal(t, 250*time.Millisecond, c.Debounce)
	assert.Equal(t, "de", c.Language().String())
	assert.Equal(t, []string{"company", "name", "name"}, c.Sort)

	// untouched fields keep their defaults
	assert.Equal(t, Default.Timeout, c.Timeout)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "text", c.LogFormat)
	assert.Equal(t, "dark", c.GlamourStyle)
}

func TestNewFromReaderEmpty(t *testing.T) {
	c, err := NewFromReader(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default, *c)
	assert.Equal(t, 500*time.Millisecond, c.Debounce)
}

func TestNewFromReaderValidation(t *testing.T) {
	testcases := map[string]string{
		"bad url":     "baseURL: nope",
		"bad column":  "sort: [zipcode]",
		"bad level":   "logLevel: loud",
		"bad retries": "retries: -1",
		"bad locale":  "locale: not_a_locale!",
		"bad style":   "glamourStyle: neon",
	}
	for name, input := range testcases {
		t.Run(name, func(t *testing.T) {
			_, err := NewFromReader(strings.NewReader(input))
			assert.Error(t, err)
		})
	}
}

func TestNewFromReaderIgnoresLogCase(t *testing.T) {
	c, err := NewFromReader(strings.NewReader("logLevel: DEBUG\nlogFormat: JSON\n"))
	require.NoError(t, err)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, "json", c.LogFormat)

	_, err = NewFromReader(strings.NewReader("logFormat: xml\n"))
	assert.Error(t, err)
}

func TestNewFromReaderMalformed(t *testing.T) {
	_, err := NewFromReader(strings.NewReader("baseURL: [unterminated"))
	assert.Error(t, err)
}

func TestLoadMissingFileUsesDefault(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default, *c)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.yaml")
	require.NoError(t, os.WriteFile(path, []byte("retries: 2\n"), 0600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Retries)
}
