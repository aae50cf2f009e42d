package uploader

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/tarm/serial"
)

// Transport is the bidirectional byte stream used to reach the device.
// At most one upload may be in flight on a given Transport at a time;
// serialising concurrent uploads is the caller's responsibility.
//
// Closing a Transport while a ReadLine is pending unblocks the read, which
// then reports ErrCancelled.
type Transport interface {
	Write(p []byte) error
	// ReadLine reads one text line, waiting at most timeout for it to
	// complete. A non-empty partial line present when the timeout expires
	// is returned as-is, since some firmware builds omit the trailing
	// newline on their acknowledgement.
	ReadLine(timeout time.Duration) (string, error)
	Close() error
}

// readPollInterval is the port-level read timeout; ReadLine polls at this
// granularity until its own deadline expires.
const readPollInterval = 50 * time.Millisecond

type serialTransport struct {
	port *serial.Port

	mu     sync.Mutex
	closed bool
}

// OpenSerial opens a serial port as an upload Transport.
func OpenSerial(name string, baud int) (Transport, error) {
	cfg := &serial.Config{
		Name:        name,
		Baud:        baud,
		ReadTimeout: readPollInterval,
	}
	port, err := serial.OpenPort(cfg)
	if err != nil {
		return nil, &TransportError{Op: "open", Err: err}
	}
	// On Linux with USB serial ports, received data needs a moment to make
	// its way up the driver stack before a flush takes effect.
	// See https://stackoverflow.com/questions/13013387/clearing-the-serial-ports-buffer
	time.Sleep(100 * time.Millisecond)
	port.Flush()
	return &serialTransport{port: port}, nil
}

func (t *serialTransport) Write(p []byte) error {
	if _, err := t.port.Write(p); err != nil {
		if t.isClosed() {
			return ErrCancelled
		}
		return &TransportError{Op: "write", Err: err}
	}
	return nil
}

func (t *serialTransport) ReadLine(timeout time.Duration) (string, error) {
	deadline := time.Now().Add(timeout)
	line := make([]byte, 0, 64)
	buf := make([]byte, 64)
	for {
		n, err := t.port.Read(buf)
		if n > 0 {
			line = append(line, buf[:n]...)
			if i := bytes.IndexByte(line, '\n'); i >= 0 {
				return strings.TrimRight(string(line[:i]), "\r"), nil
			}
		}
		// The port read timeout surfaces as io.EOF; treat it as one poll
		// tick and keep waiting until the deadline.
		if err != nil && err != io.EOF {
			if t.isClosed() {
				return "", ErrCancelled
			}
			return "", &TransportError{Op: "read", Err: err}
		}
		if time.Now().After(deadline) {
			if len(line) > 0 {
				return strings.TrimSpace(string(line)), nil
			}
			return "", ErrTimeout
		}
	}
}

func (t *serialTransport) Close() error {
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()
	return t.port.Close()
}

func (t *serialTransport) isClosed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}
