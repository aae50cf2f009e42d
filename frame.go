package uploader

import (
	"bytes"
	"encoding/binary"
	"strings"

	"github.com/pkg/errors"
)

// Wire format, all integers little-endian:
//
//	offset 0  4 bytes  magic "LEDP"
//	offset 4  4 bytes  payload length
//	offset 8  N bytes  raw RGB triplets
//	offset 8+N 1 byte  additive checksum of the payload
var frameMagic = [4]byte{'L', 'E', 'D', 'P'}

// frameOverhead is the number of framing bytes around the payload.
const frameOverhead = 9

// successMarker is the acknowledgement token the firmware sends after it has
// accepted a frame.
const successMarker = "OKAY"

// Checksum returns the sum of all payload bytes modulo 256. The firmware
// implements exactly this additive check; it is an integrity hint, not a
// security boundary, and must not be swapped for a CRC.
func Checksum(payload []byte) byte {
	var sum byte
	for _, b := range payload {
		sum += b
	}
	return sum
}

// EncodeFrame serialises a payload into the wire format the firmware
// expects. The result is len(payload)+9 bytes and is fully determined by the
// payload.
func EncodeFrame(payload []byte) []byte {
	frame := make([]byte, 0, len(payload)+frameOverhead)
	frame = append(frame, frameMagic[:]...)
	frame = binary.LittleEndian.AppendUint32(frame, uint32(len(payload)))
	frame = append(frame, payload...)
	frame = append(frame, Checksum(payload))
	return frame
}

// DecodeFrame is the inverse of EncodeFrame. It verifies the magic, the
// length field and the checksum, and returns the payload bytes.
func DecodeFrame(frame []byte) ([]byte, error) {
	if len(frame) < frameOverhead {
		return nil, errors.Errorf("frame too short: %v bytes", len(frame))
	}
	if !bytes.Equal(frame[:4], frameMagic[:]) {
		return nil, errors.Errorf("bad frame magic %q", frame[:4])
	}
	length := binary.LittleEndian.Uint32(frame[4:8])
	if int(length) != len(frame)-frameOverhead {
		return nil, errors.Errorf("frame length field %v does not match %v payload bytes", length, len(frame)-frameOverhead)
	}
	payload := frame[8 : 8+length]
	if got, want := frame[len(frame)-1], Checksum(payload); got != want {
		return nil, errors.Errorf("frame checksum mismatch: got %02X, want %02X", got, want)
	}
	return payload, nil
}

// DecodeResponse classifies the firmware's acknowledgement line. A line
// containing the success marker means the device accepted the frame; any
// other line is a *ResponseError carrying the raw text.
func DecodeResponse(line string) error {
	if strings.Contains(line, successMarker) {
		return nil
	}
	return &ResponseError{Text: line}
}
