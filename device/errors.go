package device

import "errors"

var (
	// ErrNoDialer is returned when a Device is constructed without a Dialer.
	//
	// This indicates a configuration error. A Dialer is required in order to
	// establish a connection to the terminal equipment.
	ErrNoDialer = errors.New("no dialer configured")

	// ErrAlreadyClosed is returned when an operation is attempted on a
	// Device that has been closed.
	ErrAlreadyClosed = errors.New("device already closed")

	// ErrAlreadyServing is returned when Serve is called while another
	// Serve call is still running on the same Device.
	ErrAlreadyServing = errors.New("device already serving")
)
