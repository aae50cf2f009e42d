// Package uploader pushes raw LED pattern data to a microcontroller's
// resident firmware over a serial link, for immediate display without
// reflashing the device.
//
// A pattern is an ordered sequence of R,G,B triplets, one per LED, stored on
// disk as a plain .dat file. For transfer the payload is wrapped in a small
// frame: a fixed "LEDP" magic, a little-endian length, the payload and an
// additive checksum. The firmware acknowledges an accepted frame with a
// short text line containing "OKAY".
//
// The package contains three layers: ValidatePattern / ValidatePatternFile
// decide whether bytes are acceptable pattern data, EncodeFrame builds the
// wire packet, and Upload sequences validate, encode, write and
// read-acknowledgement over a Transport. An upload either succeeds or fails
// with one of the error kinds in ErrorKind; there are no automatic retries.
//
// Also included is a command line tool, found in the cmd/pixeluploader
// directory, that serves as both an example on how to use the library and a
// fully functional host program for pushing patterns to devices.
package uploader

import (
	"os"
	"time"

	"github.com/pkg/errors"
)

// DefaultTimeout is the acknowledgement wait applied when the caller does
// not configure one.
const DefaultTimeout = 2 * time.Second

// Upload validates payload, frames it and sends it over t, then waits up to
// timeout for the firmware's acknowledgement line. The transport is closed
// on every exit path, including timeout and transport errors.
//
// The attempt is synchronous and makes zero retries; classify failures with
// KindOf. A timeout is never reported as success: the upload succeeded only
// if the device explicitly acknowledged it.
func Upload(t Transport, payload []byte, timeout time.Duration) error {
	return upload(t, payload, timeout, DefaultMaxPatternBytes)
}

func upload(t Transport, payload []byte, timeout time.Duration, maxBytes int) (err error) {
	defer func() {
		if cerr := t.Close(); cerr != nil && err == nil {
			err = &TransportError{Op: "close", Err: cerr}
		}
	}()

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	leds, err := ValidatePattern(payload, maxBytes)
	if err != nil {
		return err
	}

	frame := EncodeFrame(payload)
	pkgLog.Debugf("sending %v byte frame (%v LEDs, checksum %02X)", len(frame), leds, frame[len(frame)-1])
	if err := t.Write(frame); err != nil {
		return err
	}

	line, err := t.ReadLine(timeout)
	if err != nil {
		return err
	}
	pkgLog.Debugf("device replied %q", line)
	return DecodeResponse(line)
}

// An Uploader binds upload behaviour to an explicit configuration, so the
// surrounding application carries no process-wide state.
type Uploader struct {
	cfg Config
}

// New creates an Uploader from cfg. Zero fields fall back to the defaults
// from DefaultConfig.
func New(cfg Config) *Uploader {
	def := DefaultConfig()
	if cfg.Baud == 0 {
		cfg.Baud = def.Baud
	}
	if cfg.TimeoutMs == 0 {
		cfg.TimeoutMs = def.TimeoutMs
	}
	if cfg.MaxPatternBytes == 0 {
		cfg.MaxPatternBytes = def.MaxPatternBytes
	}
	return &Uploader{cfg: cfg}
}

// Upload sends payload over an already-open transport using the configured
// timeout and size limit.
func (u *Uploader) Upload(t Transport, payload []byte) error {
	return upload(t, payload, u.cfg.Timeout(), u.cfg.MaxPatternBytes)
}

// UploadFile reads a .dat pattern file and pushes it to the configured
// serial port. When ResetAfterUpload is set, the device is rebooted into run
// mode after a successful push.
func (u *Uploader) UploadFile(path string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "failed to read pattern file")
	}

	t, err := OpenSerial(u.cfg.Port, u.cfg.Baud)
	if err != nil {
		return err
	}
	if err := u.Upload(t, payload); err != nil {
		return err
	}
	pkgLog.Infof("uploaded %v to %v", PatternInfoFor(payload), u.cfg.Port)

	if u.cfg.ResetAfterUpload {
		pkgLog.Debugf("resetting device on %v", u.cfg.Port)
		if err := ResetDevice(u.cfg.Port); err != nil {
			return err
		}
	}
	return nil
}
