// Package device binds an AT command parser to a byte stream, forming the
// DCE side of a V.250 link: it reads command lines from the terminal
// equipment, runs them through the parser, and writes back the rendered
// replies.
package device

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"i4.energy/across/athost/at"
	"i4.energy/across/athost/parser"
)

// Device serves AT command lines arriving on one Transport.
//
// The underlying parser keeps unsynchronized state (the command registries
// and the repeat-line memory), so the Device serializes all access to it
// with one mutex. That makes it safe to drive a single Device from the
// Serve loop and other callers (such as an HTTP front end) at the same time.
type Device struct {
	transport Transport
	parser    *parser.Parser
	logger    *slog.Logger
	echo      bool

	mu      sync.Mutex
	closed  bool
	serving bool
}

// New dials the transport and returns a Device ready to Serve.
// Command handlers should be registered before Serve is started.
func New(ctx context.Context, config Config) (*Device, error) {
	if config.dialer == nil {
		return nil, ErrNoDialer
	}

	transport, err := config.dialer.Dial(ctx)
	if err != nil {
		return nil, err
	}

	logger := config.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Device{
		transport: transport,
		parser:    parser.New(),
		logger:    logger,
		echo:      config.echo,
	}, nil
}

// RegisterBasic registers a handler for the basic command letter cmd.
func (d *Device) RegisterBasic(cmd byte, handler parser.CommandHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.parser.RegisterBasic(cmd, handler)
}

// RegisterExtended registers a handler for the extended command name,
// including its leading '+'.
func (d *Device) RegisterExtended(name string, handler parser.CommandHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.parser.RegisterExtended(name, handler)
}

// Exec runs one already-framed command line (no terminator) through the
// parser and returns the rendered reply. Exec does not touch the transport.
func (d *Device) Exec(line string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.parser.Process(line).String()
}

// Serve reads command lines from the transport until ctx is cancelled or
// the transport fails. Each line is processed and the rendered reply,
// followed by CRLF, is written back. With echo enabled the raw line is
// echoed before the reply, the way a V.250 DCE in E1 mode behaves.
//
// Serve returns io.EOF when the transport is closed by the far end, the
// context error on cancellation, and a wrapped transport error otherwise.
func (d *Device) Serve(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrAlreadyClosed
	}
	if d.serving {
		d.mu.Unlock()
		return ErrAlreadyServing
	}
	d.serving = true
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.serving = false
		d.mu.Unlock()
	}()

	scanner := bufio.NewScanner(d.transport)
	scanner.Split(at.Splitter)

	// Channels for lines and errors from the scanner goroutine
	lines := make(chan string, 10)
	scanErrs := make(chan error, 1)

	go func() {
		defer close(lines)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			select {
			case scanErrs <- err:
			case <-ctx.Done():
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-scanErrs:
			return fmt.Errorf("read command line: %w", err)

		case line, ok := <-lines:
			if !ok {
				// Far end closed the stream.
				return io.EOF
			}
			if err := d.handleLine(line); err != nil {
				return err
			}
		}
	}
}

func (d *Device) handleLine(line string) error {
	if d.echo {
		if _, err := d.transport.Write([]byte(line + at.CRLF)); err != nil {
			return fmt.Errorf("echo command line: %w", err)
		}
	}

	reply := d.Exec(line)
	d.logger.Debug("Processed command line", "line", line, "reply", reply)

	if reply == "" {
		// Unsolicited result with no body: nothing goes on the wire.
		return nil
	}

	if _, err := d.transport.Write([]byte(reply + at.CRLF)); err != nil {
		return fmt.Errorf("write reply: %w", err)
	}
	return nil
}

// Close shuts down the device and closes the transport. After Close the
// device cannot be reused.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrAlreadyClosed
	}
	d.closed = true

	if d.transport != nil {
		return d.transport.Close()
	}
	return nil
}
