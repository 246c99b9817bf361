package device

import (
	"context"
	"io"
)

//go:generate go tool mockgen -source=transport.go -destination=mock_transport.go -package=device

// Transport represents an established, bidirectional byte stream to the
// terminal equipment (DTE) driving this device.
//
// A Transport is assumed to be already connected and ready for use. Command
// lines are read from it and rendered replies are written back. Typical
// implementations include serial ports, RFCOMM sockets to a Bluetooth
// headset host, or in-memory fakes used for testing.
type Transport interface {
	io.ReadWriteCloser
}

// Dialer opens a Transport to the terminal equipment.
//
// Dialer abstracts how the connection is created (for example, via a serial
// port, a TCP listener, or a test double) and is intended to be used during
// Device construction only. Once a Transport is obtained, the Dialer is no
// longer needed.
type Dialer interface {
	// Dial is responsible for creating and returning a connected Transport.
	// It may perform blocking operations and should respect cancellation and
	// deadlines provided by the context. Dial returns an error if the
	// transport cannot be established.
	Dial(ctx context.Context) (Transport, error)
}
