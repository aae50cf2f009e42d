package uploader

import (
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
)

// MatrixSize is the geometry of a square LED matrix.
type MatrixSize struct {
	Width, Height int
}

// The matrix sizes the pattern generators support.
var (
	Matrix8x8   = MatrixSize{8, 8}
	Matrix16x16 = MatrixSize{16, 16}
	Matrix32x32 = MatrixSize{32, 32}
)

func (s MatrixSize) leds() int { return s.Width * s.Height }

type rgb [3]byte

var (
	black  = rgb{0, 0, 0}
	red    = rgb{255, 0, 0}
	green  = rgb{0, 255, 0}
	blue   = rgb{0, 0, 255}
	white  = rgb{255, 255, 255}
	yellow = rgb{255, 255, 0}
)

var rainbowColors = []rgb{
	{255, 0, 0},   // red
	{255, 127, 0}, // orange
	{255, 255, 0}, // yellow
	{0, 255, 0},   // green
	{0, 0, 255},   // blue
	{75, 0, 130},  // indigo
	{148, 0, 211}, // violet
}

// fill renders a pattern by evaluating color at every cell, row-major.
func fill(size MatrixSize, color func(row, col int) rgb) []byte {
	data := make([]byte, 0, size.leds()*bytesPerLED)
	for row := 0; row < size.Height; row++ {
		for col := 0; col < size.Width; col++ {
			c := color(row, col)
			data = append(data, c[0], c[1], c[2])
		}
	}
	return data
}

func alternatingPattern(size MatrixSize) []byte {
	return fill(size, func(row, col int) rgb {
		if col%2 == 0 {
			return red
		}
		return blue
	})
}

func checkerboardPattern(size MatrixSize) []byte {
	return fill(size, func(row, col int) rgb {
		if (row+col)%2 == 0 {
			return white
		}
		return black
	})
}

func rainbowPattern(size MatrixSize) []byte {
	return fill(size, func(row, col int) rgb {
		return rainbowColors[(row+col)%len(rainbowColors)]
	})
}

// pulsePattern fades a grayscale glow out from the matrix center.
func pulsePattern(size MatrixSize) []byte {
	center := float64(size.Width-1) / 2
	falloff := 0.6875 * float64(size.Width)
	return fill(size, func(row, col int) rgb {
		d := math.Hypot(float64(row)-center, float64(col)-center)
		v := int(255 * (1 - d/falloff))
		if v < 0 {
			v = 0
		}
		b := byte(v)
		return rgb{b, b, b}
	})
}

func spiralPattern(size MatrixSize) []byte {
	return fill(size, func(row, col int) rgb {
		i := row*size.Width + col
		return rgb{byte(i * 7), byte(i * 11), byte(i * 13)}
	})
}

func crossPattern(size MatrixSize) []byte {
	h1, h2 := size.Height/2-1, size.Height/2
	w1, w2 := size.Width/2-1, size.Width/2
	return fill(size, func(row, col int) rgb {
		if row == h1 || row == h2 || col == w1 || col == w2 {
			return green
		}
		return black
	})
}

func borderPattern(size MatrixSize) []byte {
	return fill(size, func(row, col int) rgb {
		if row == 0 || row == size.Height-1 || col == 0 || col == size.Width-1 {
			return blue
		}
		return black
	})
}

func diagonalPattern(size MatrixSize) []byte {
	return fill(size, func(row, col int) rgb {
		if row == col || row+col == size.Width-1 {
			return yellow
		}
		return black
	})
}

// 8x8 bitmap scaled up for the larger matrices.
var heartBitmap = [8][8]byte{
	{0, 0, 0, 0, 0, 0, 0, 0},
	{0, 1, 1, 0, 0, 1, 1, 0},
	{1, 1, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 1, 1, 1, 1},
	{0, 1, 1, 1, 1, 1, 1, 0},
	{0, 0, 1, 1, 1, 1, 0, 0},
	{0, 0, 0, 1, 1, 0, 0, 0},
}

func heartPattern(size MatrixSize) []byte {
	scale := size.Width / 8
	return fill(size, func(row, col int) rgb {
		if heartBitmap[row/scale][col/scale] != 0 {
			return red
		}
		return black
	})
}

var patternGenerators = map[string]func(MatrixSize) []byte{
	"alternating":  alternatingPattern,
	"checkerboard": checkerboardPattern,
	"rainbow":      rainbowPattern,
	"pulse":        pulsePattern,
	"spiral":       spiralPattern,
	"heart":        heartPattern,
	"cross":        crossPattern,
	"border":       borderPattern,
	"diagonal":     diagonalPattern,
}

// PatternNames lists the built-in pattern generators, sorted.
func PatternNames() []string {
	names := make([]string, 0, len(patternGenerators))
	for name := range patternGenerators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Generate renders a built-in test pattern for the given matrix size. The
// result always passes ValidatePattern.
func Generate(name string, size MatrixSize) ([]byte, error) {
	gen, ok := patternGenerators[name]
	if !ok {
		return nil, errors.Errorf("unknown pattern %q, have %v", name, PatternNames())
	}
	if size.Width != size.Height || size.Width%8 != 0 || size.Width == 0 || size.Width > 32 {
		return nil, errors.Errorf("unsupported matrix size %vx%v", size.Width, size.Height)
	}
	return gen(size), nil
}

// WriteSamples writes one .dat file per built-in pattern into dir and
// returns the created file names.
func WriteSamples(dir string, size MatrixSize) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create sample dir")
	}
	var files []string
	for _, name := range PatternNames() {
		data, err := Generate(name, size)
		if err != nil {
			return nil, err
		}
		file := filepath.Join(dir, name+".dat")
		if err := os.WriteFile(file, data, 0o644); err != nil {
			return nil, errors.Wrapf(err, "failed to write %v", file)
		}
		pkgLog.Debugf("created %v: %v bytes", file, len(data))
		files = append(files, file)
	}
	return files, nil
}
