package uploader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Two RGB triplets (red, green) at address 0.
const sampleHex = ":06000000FF000000FF00FC\n:00000001FF\n"

func TestLoadHexPattern(t *testing.T) {
	data, err := LoadHexPattern(strings.NewReader(sampleHex))
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0, 0, 0, 0xFF, 0}, data)
}

func TestLoadHexPatternErrors(t *testing.T) {
	_, err := LoadHexPattern(strings.NewReader("not a hex file"))
	assert.Error(t, err)

	_, err = LoadHexPattern(strings.NewReader(":00000001FF\n"))
	assert.ErrorContains(t, err, "no data")
}

func TestConvertHexFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "pattern.hex")
	dst := filepath.Join(dir, "pattern.dat")
	require.NoError(t, os.WriteFile(src, []byte(sampleHex), 0o644))

	info, err := ConvertHexFile(src, dst)
	require.NoError(t, err)
	assert.Equal(t, 2, info.LEDCount)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0, 0, 0, 0xFF, 0}, data)
}
