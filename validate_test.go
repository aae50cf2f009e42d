package uploader

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePattern(t *testing.T) {
	tests := []struct {
		name      string
		data      []byte
		maxBytes  int
		wantLEDs  int
		wantKind  ErrorKind
		remainder int
	}{
		{
			name:     "empty payload",
			data:     nil,
			wantKind: KindEmptyPayload,
		},
		{
			name:     "single triplet",
			data:     []byte{255, 0, 0},
			wantLEDs: 1,
		},
		{
			name:     "8x8 matrix",
			data:     make([]byte, 192),
			wantLEDs: 64,
		},
		{
			name:     "16x16 matrix",
			data:     make([]byte, 768),
			wantLEDs: 256,
		},
		{
			name:      "one trailing byte",
			data:      make([]byte, 193),
			wantKind:  KindNotMultipleOfThree,
			remainder: 1,
		},
		{
			name:      "two trailing bytes",
			data:      make([]byte, 2),
			wantKind:  KindNotMultipleOfThree,
			remainder: 2,
		},
		{
			name:     "over default limit",
			data:     make([]byte, 10242),
			wantKind: KindTooLarge,
		},
		{
			name:     "exactly at limit",
			data:     make([]byte, 10239),
			wantLEDs: 3413,
		},
		{
			name:     "over custom limit",
			data:     make([]byte, 12),
			maxBytes: 9,
			wantKind: KindTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			leds, err := ValidatePattern(tt.data, tt.maxBytes)
			if tt.wantKind == KindNone {
				require.NoError(t, err)
				assert.Equal(t, tt.wantLEDs, leds)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, KindOf(err))
			if tt.wantKind == KindNotMultipleOfThree {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.remainder, verr.Remainder)
				assert.Equal(t, len(tt.data), verr.Size)
			}
		})
	}
}

func TestValidatePatternNonMultiplesAlwaysRejected(t *testing.T) {
	for size := 1; size < 100; size++ {
		if size%3 == 0 {
			continue
		}
		_, err := ValidatePattern(make([]byte, size), 0)
		require.Equal(t, KindNotMultipleOfThree, KindOf(err), "size %v", size)
	}
}

func TestPatternInfoFor(t *testing.T) {
	tests := []struct {
		bytes      int
		wantWidth  int
		wantString string
	}{
		{192, 8, "8x8 matrix, 192 bytes"},
		{768, 16, "16x16 matrix, 768 bytes"},
		{3072, 32, "32x32 matrix, 3072 bytes"},
		{63, 0, "21 LEDs, 63 bytes"},
		{3, 0, "1 LEDs, 3 bytes"},
	}
	for _, tt := range tests {
		info := PatternInfoFor(make([]byte, tt.bytes))
		assert.Equal(t, tt.wantWidth, info.Width)
		assert.Equal(t, tt.wantWidth, info.Height)
		assert.Equal(t, tt.bytes/3, info.LEDCount)
		assert.Equal(t, tt.wantString, info.String())
	}
}

func TestValidatePatternFile(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "valid.dat")
	require.NoError(t, os.WriteFile(valid, bytes.Repeat([]byte{255, 0, 0}, 64), 0o644))
	info, err := ValidatePatternFile(valid, 0)
	require.NoError(t, err)
	assert.Equal(t, 64, info.LEDCount)
	assert.Equal(t, 8, info.Width)

	empty := filepath.Join(dir, "empty.dat")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err = ValidatePatternFile(empty, 0)
	assert.Equal(t, KindEmptyPayload, KindOf(err))

	truncated := filepath.Join(dir, "truncated.dat")
	require.NoError(t, os.WriteFile(truncated, make([]byte, 193), 0o644))
	_, err = ValidatePatternFile(truncated, 0)
	assert.Equal(t, KindNotMultipleOfThree, KindOf(err))

	_, err = ValidatePatternFile(filepath.Join(dir, "missing.dat"), 0)
	assert.Error(t, err)
}
