package uploader

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
)

// DefaultMaxPatternBytes is the largest pattern accepted by default.
// 10 KB covers a full 32x32 RGB matrix with headroom.
const DefaultMaxPatternBytes = 10 * 1024

// bytesPerLED is the size of one R,G,B triplet.
const bytesPerLED = 3

// PatternInfo describes a validated pattern.
type PatternInfo struct {
	// Bytes is the payload size.
	Bytes int
	// LEDCount is Bytes / 3.
	LEDCount int
	// Width and Height are set for the recognised square matrix sizes
	// (8x8, 16x16, 32x32) and zero otherwise.
	Width, Height int
}

// Square LED counts the surrounding tooling knows how to render.
var matrixWidths = map[int]int{
	64:   8,
	256:  16,
	1024: 32,
}

func (i PatternInfo) String() string {
	if i.Width > 0 {
		return fmt.Sprintf("%vx%v matrix, %v bytes", i.Width, i.Height, i.Bytes)
	}
	return fmt.Sprintf("%v LEDs, %v bytes", i.LEDCount, i.Bytes)
}

// ValidatePattern decides whether data is acceptable LED pattern data,
// before any serial cost is paid. It checks, in order, that the payload is
// non-empty, that its length is a multiple of 3 and that it does not exceed
// maxBytes. Passing maxBytes <= 0 selects DefaultMaxPatternBytes.
//
// On success it returns the number of LEDs the pattern drives. Failures are
// *ValidationError values.
func ValidatePattern(data []byte, maxBytes int) (int, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxPatternBytes
	}
	if len(data) == 0 {
		return 0, &ValidationError{Kind: KindEmptyPayload}
	}
	if rem := len(data) % bytesPerLED; rem != 0 {
		return 0, &ValidationError{Kind: KindNotMultipleOfThree, Size: len(data), Remainder: rem}
	}
	if len(data) > maxBytes {
		return 0, &ValidationError{Kind: KindTooLarge, Size: len(data), Max: maxBytes}
	}
	return len(data) / bytesPerLED, nil
}

// PatternInfoFor reports the geometry of a validated payload.
func PatternInfoFor(data []byte) PatternInfo {
	info := PatternInfo{Bytes: len(data), LEDCount: len(data) / bytesPerLED}
	if w, ok := matrixWidths[info.LEDCount]; ok {
		info.Width, info.Height = w, w
	}
	return info
}

// ValidatePatternFile reads a .dat pattern file and validates its contents.
// The file holds exactly the raw payload bytes; the wire framing is never
// stored on disk.
func ValidatePatternFile(path string, maxBytes int) (PatternInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PatternInfo{}, errors.Wrap(err, "failed to read pattern file")
	}
	if _, err := ValidatePattern(data, maxBytes); err != nil {
		return PatternInfo{}, err
	}
	return PatternInfoFor(data), nil
}
