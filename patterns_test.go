package uploader

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateProducesValidPatterns(t *testing.T) {
	for _, size := range []MatrixSize{Matrix8x8, Matrix16x16, Matrix32x32} {
		for _, name := range PatternNames() {
			data, err := Generate(name, size)
			require.NoError(t, err, "%v %vx%v", name, size.Width, size.Height)
			assert.Len(t, data, size.Width*size.Height*3)

			leds, err := ValidatePattern(data, 0)
			require.NoError(t, err)
			assert.Equal(t, size.Width*size.Height, leds)
		}
	}
}

func TestGenerateCheckerboard(t *testing.T) {
	data, err := Generate("checkerboard", Matrix8x8)
	require.NoError(t, err)

	// Top-left cell white, its right neighbour black.
	assert.Equal(t, []byte{255, 255, 255}, data[0:3])
	assert.Equal(t, []byte{0, 0, 0}, data[3:6])
}

func TestGenerateHeart(t *testing.T) {
	data, err := Generate("heart", Matrix8x8)
	require.NoError(t, err)

	// Top-left corner is off, the middle of the heart is red.
	assert.Equal(t, []byte{0, 0, 0}, data[0:3])
	mid := (3*8 + 4) * 3
	assert.Equal(t, []byte{255, 0, 0}, data[mid:mid+3])
}

func TestGenerateRejectsBadInput(t *testing.T) {
	_, err := Generate("plaid", Matrix8x8)
	assert.ErrorContains(t, err, "unknown pattern")

	for _, size := range []MatrixSize{{0, 0}, {7, 7}, {8, 16}, {64, 64}} {
		_, err := Generate("rainbow", size)
		assert.ErrorContains(t, err, "unsupported matrix size")
	}
}

func TestWriteSamples(t *testing.T) {
	dir := t.TempDir()

	files, err := WriteSamples(dir, Matrix8x8)
	require.NoError(t, err)
	require.Len(t, files, len(PatternNames()))

	for _, file := range files {
		data, err := os.ReadFile(file)
		require.NoError(t, err)
		_, err = ValidatePattern(data, 0)
		assert.NoError(t, err, file)
		assert.Len(t, data, 192)
	}
}
