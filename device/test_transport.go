package device

import (
	"io"
	"sync"
)

// TestTransport is a test helper that simulates a blocking transport using
// channels. This is needed because the Serve loop's scanner goroutine
// continuously reads from the transport, and reads must block until data is
// available (like a real serial port would). Writes are captured so tests
// can assert on the replies the device sends.
type TestTransport struct {
	mu        sync.Mutex
	readChan  chan []byte
	writeChan chan string
	closed    bool
}

// NewTestTransport creates a new test transport for testing.
// Exported for use in tests.
func NewTestTransport() *TestTransport {
	return &TestTransport{
		readChan:  make(chan []byte, 10),
		writeChan: make(chan string, 10),
	}
}

func (t *TestTransport) Read(p []byte) (n int, err error) {
	data, ok := <-t.readChan
	if !ok {
		return 0, io.EOF
	}
	return copy(p, data), nil
}

func (t *TestTransport) Write(p []byte) (n int, err error) {
	select {
	case t.writeChan <- string(p):
	default:
		// Nobody is watching the writes; drop them.
	}
	return len(p), nil
}

// Feed queues data for delivery to the next Read call.
func (t *TestTransport) Feed(data string) {
	t.readChan <- []byte(data)
}

// Replies returns a channel carrying everything the device wrote.
func (t *TestTransport) Replies() <-chan string {
	return t.writeChan
}

// Close ends the stream; pending and future reads return io.EOF.
// Close is idempotent.
func (t *TestTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.closed {
		t.closed = true
		close(t.readChan)
	}
	return nil
}
