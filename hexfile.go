package uploader

import (
	"io"
	"os"

	"github.com/marcinbor85/gohex"
	"github.com/pkg/errors"
)

// LoadHexPattern reads an Intel HEX image, as exported by some pattern
// editors, and flattens its data segments into raw pattern bytes in address
// order. The result is not validated; callers pass it through
// ValidatePattern before uploading.
func LoadHexPattern(r io.Reader) ([]byte, error) {
	mem := gohex.NewMemory()
	if err := mem.ParseIntelHex(r); err != nil {
		return nil, errors.Wrap(err, "failed to parse hex file")
	}
	var data []byte
	for _, segment := range mem.GetDataSegments() {
		data = append(data, segment.Data...)
	}
	if len(data) == 0 {
		return nil, errors.New("hex file contains no data")
	}
	return data, nil
}

// ConvertHexFile converts an Intel HEX pattern file to a raw .dat file and
// returns the validated pattern geometry.
func ConvertHexFile(src, dst string) (PatternInfo, error) {
	file, err := os.Open(src)
	if err != nil {
		return PatternInfo{}, errors.Wrap(err, "failed to open hex file")
	}
	defer file.Close()

	data, err := LoadHexPattern(file)
	if err != nil {
		return PatternInfo{}, err
	}
	if _, err := ValidatePattern(data, 0); err != nil {
		return PatternInfo{}, err
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return PatternInfo{}, errors.Wrap(err, "failed to write pattern file")
	}
	return PatternInfoFor(data), nil
}
