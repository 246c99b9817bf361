package device

import (
	"context"
	"fmt"

	"go.bug.st/serial"
)

// SerialDialer opens the link to the terminal equipment over a serial port
// using go.bug.st/serial.
type SerialDialer struct {
	// PortName is the serial device path (e.g. "/dev/ttyUSB0").
	PortName string
	// BaudRate is the line speed. Zero selects 115200.
	BaudRate int
}

// Dial opens the serial port. The returned Transport is the open port.
func (d SerialDialer) Dial(ctx context.Context) (Transport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	baud := d.BaudRate
	if baud == 0 {
		baud = 115200
	}

	port, err := serial.Open(d.PortName, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("open serial port %q: %w", d.PortName, err)
	}
	return port, nil
}
