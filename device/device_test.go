package device_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"i4.energy/across/athost/device"
	"i4.energy/across/athost/parser"
)

// idHandler answers an extended action command with a fixed line.
type idHandler struct {
	parser.BaseHandler
	text string
}

func (h idHandler) HandleAction() *parser.Result {
	return parser.NewResult(parser.CodeOK, h.text)
}

func waitReply(t *testing.T, tt *device.TestTransport) string {
	t.Helper()
	select {
	case reply := <-tt.Replies():
		return reply
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for reply")
		return ""
	}
}

func waitServeErr(t *testing.T, errs <-chan error) error {
	t.Helper()
	select {
	case err := <-errs:
		return err
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for Serve to return")
		return nil
	}
}

func TestDeviceNew(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockTransport := device.NewMockTransport(ctrl)
		mockDialer := device.NewMockDialer(ctrl)
		mockDialer.EXPECT().Dial(gomock.Any()).Return(mockTransport, nil)

		config, err := device.NewConfigBuilder().
			WithDialer(mockDialer).
			Build()
		if err != nil {
			t.Errorf("unexpected error from Build(): %v", err)
		}

		d, err := device.New(context.Background(), config)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if d == nil {
			t.Fatal("New() should return valid device on success")
		}

		// Clean up
		mockTransport.EXPECT().Close().Return(nil)
		if err := d.Close(); err != nil {
			t.Errorf("unexpected error from Close(): %v", err)
		}
	})

	t.Run("Dialer error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDialer := device.NewMockDialer(ctrl)
		mockDialer.EXPECT().Dial(gomock.Any()).Return(nil, errors.New("connection failed"))

		config, err := device.NewConfigBuilder().
			WithDialer(mockDialer).
			Build()
		if err != nil {
			t.Errorf("unexpected error from Build(): %v", err)
		}

		d, err := device.New(context.Background(), config)
		if err == nil {
			t.Error("expected error from dialer failure")
		}
		if d != nil {
			t.Error("New() should return nil device when dialer fails")
		}
	})

	t.Run("ErrNoDialer with zero config", func(t *testing.T) {
		_, err := device.New(context.Background(), device.Config{})
		if !errors.Is(err, device.ErrNoDialer) {
			t.Errorf("expected ErrNoDialer, got: %v", err)
		}
	})
}

func newServingDevice(t *testing.T, echo bool) (*device.Device, *device.TestTransport, <-chan error) {
	t.Helper()

	ctrl := gomock.NewController(t)
	transport := device.NewTestTransport()

	mockDialer := device.NewMockDialer(ctrl)
	mockDialer.EXPECT().Dial(gomock.Any()).Return(transport, nil)

	config, err := device.NewConfigBuilder().
		WithDialer(mockDialer).
		WithEcho(echo).
		Build()
	if err != nil {
		t.Fatalf("unexpected error from Build(): %v", err)
	}

	d, err := device.New(context.Background(), config)
	if err != nil {
		t.Fatalf("unexpected error from New(): %v", err)
	}

	errs := make(chan error, 1)
	go func() {
		errs <- d.Serve(context.Background())
	}()

	return d, transport, errs
}

func TestDeviceServe(t *testing.T) {
	d, transport, errs := newServingDevice(t, false)
	d.RegisterExtended("+GMI", idHandler{text: "i4 energy"})

	transport.Feed("AT+GMI\r\n")
	if reply := waitReply(t, transport); reply != "i4 energy\r\n\r\nOK\r\n" {
		t.Errorf("unexpected reply: %q", reply)
	}

	transport.Feed("AT+XYZ\r\n")
	if reply := waitReply(t, transport); reply != "ERROR\r\n" {
		t.Errorf("unexpected reply: %q", reply)
	}

	// Repeat shorthand replays the previous line over the same session.
	transport.Feed("A/\r\n")
	if reply := waitReply(t, transport); reply != "ERROR\r\n" {
		t.Errorf("unexpected repeat reply: %q", reply)
	}

	// An empty line produces no reply at all; the next command's reply is
	// the next thing on the wire.
	transport.Feed("\r\nAT+GMI\r\n")
	if reply := waitReply(t, transport); reply != "i4 energy\r\n\r\nOK\r\n" {
		t.Errorf("unexpected reply after empty line: %q", reply)
	}

	// Far end hangs up: Serve reports EOF.
	transport.Close()
	if err := waitServeErr(t, errs); !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF from Serve, got: %v", err)
	}
}

func TestDeviceServeEcho(t *testing.T) {
	d, transport, errs := newServingDevice(t, true)
	d.RegisterBasic('A', idHandler{}) // default HandleBasic answers ERROR

	transport.Feed("ATA\r\n")
	if echoed := waitReply(t, transport); echoed != "ATA\r\n" {
		t.Errorf("expected echo first, got: %q", echoed)
	}
	if reply := waitReply(t, transport); reply != "ERROR\r\n" {
		t.Errorf("unexpected reply: %q", reply)
	}

	transport.Close()
	if err := waitServeErr(t, errs); !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF from Serve, got: %v", err)
	}
}

func TestDeviceServeTwice(t *testing.T) {
	d, transport, errs := newServingDevice(t, false)

	// Give the first Serve a moment to take ownership.
	time.Sleep(50 * time.Millisecond)

	if err := d.Serve(context.Background()); !errors.Is(err, device.ErrAlreadyServing) {
		t.Errorf("expected ErrAlreadyServing, got: %v", err)
	}

	transport.Close()
	if err := waitServeErr(t, errs); !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF from Serve, got: %v", err)
	}
}

func TestDeviceExec(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTransport := device.NewMockTransport(ctrl)
	mockDialer := device.NewMockDialer(ctrl)
	mockDialer.EXPECT().Dial(gomock.Any()).Return(mockTransport, nil)

	config, err := device.NewConfigBuilder().WithDialer(mockDialer).Build()
	if err != nil {
		t.Fatalf("unexpected error from Build(): %v", err)
	}

	d, err := device.New(context.Background(), config)
	if err != nil {
		t.Fatalf("unexpected error from New(): %v", err)
	}

	d.RegisterExtended("+GMM", idHandler{text: "athost"})

	if got := d.Exec("AT+GMM"); got != "athost\r\n\r\nOK" {
		t.Errorf("Exec rendered %q", got)
	}
	if got := d.Exec("nonsense"); got != "ERROR" {
		t.Errorf("Exec rendered %q", got)
	}
	if got := d.Exec("   "); got != "" {
		t.Errorf("Exec rendered %q", got)
	}

	mockTransport.EXPECT().Close().Return(nil)
	if err := d.Close(); err != nil {
		t.Errorf("unexpected error from Close(): %v", err)
	}

	// Second close reports ErrAlreadyClosed.
	if err := d.Close(); !errors.Is(err, device.ErrAlreadyClosed) {
		t.Errorf("expected ErrAlreadyClosed, got: %v", err)
	}
}
