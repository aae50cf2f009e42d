package uploader

import (
	"time"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// PortInfo describes a detected serial port.
type PortInfo struct {
	Name         string
	IsUSB        bool
	VID, PID     string
	SerialNumber string
	Product      string
}

// ListPorts enumerates the serial ports present on the system, with USB
// metadata where available.
func ListPorts() ([]PortInfo, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, &TransportError{Op: "enumerate", Err: err}
	}
	infos := make([]PortInfo, 0, len(ports))
	for _, p := range ports {
		infos = append(infos, PortInfo{
			Name:         p.Name,
			IsUSB:        p.IsUSB,
			VID:          p.VID,
			PID:          p.PID,
			SerialNumber: p.SerialNumber,
			Product:      p.Product,
		})
	}
	return infos, nil
}

// ResetDevice pulses the DTR/RTS control lines to reboot the device into
// run mode, the same sequence development boards wire to their reset pin.
// Used after a pattern push so the firmware restarts with the new data
// visible.
func ResetDevice(name string) error {
	port, err := serial.Open(name, &serial.Mode{BaudRate: 115200})
	if err != nil {
		return &TransportError{Op: "open", Err: err}
	}
	defer port.Close()

	if err := port.SetDTR(false); err != nil {
		return &TransportError{Op: "set DTR", Err: err}
	}
	// Hold reset low, then release.
	if err := port.SetRTS(true); err != nil {
		return &TransportError{Op: "set RTS", Err: err}
	}
	time.Sleep(100 * time.Millisecond)
	if err := port.SetRTS(false); err != nil {
		return &TransportError{Op: "set RTS", Err: err}
	}
	time.Sleep(50 * time.Millisecond)
	return nil
}
