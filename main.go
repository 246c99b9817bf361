package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"i4.energy/across/athost/device"
	"i4.energy/across/athost/handlers"
)

func main() {
	flag.String("serial-port", "/dev/ttyUSB0", "Serial port facing the terminal equipment")
	flag.Int("baud-rate", 115200, "Baud rate for serial communication")
	flag.String("bind-address", "0.0.0.0:8080", "Bind address for the HTTP server")
	flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Bool("echo", false, "Echo received command lines back to the terminal")
	flag.Parse()

	config, err := LoadConfig(WithDefaults(), WithEnv(), WithFlags(flag.CommandLine))
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logLevel := slog.LevelInfo
	switch config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	deviceConfig, err := device.NewConfigBuilder().
		WithDialer(device.SerialDialer{
			PortName: config.SerialPort,
			BaudRate: config.BaudRate,
		}).
		WithEcho(config.Echo).
		WithLogger(logger.With("component", "device")).
		Build()
	if err != nil {
		logger.Error("Failed to create device config", "error", err)
		os.Exit(1)
	}

	d, err := device.New(context.Background(), deviceConfig)
	if err != nil {
		logger.Error("Failed to open device transport", "error", err)
		os.Exit(1)
	}

	registerCommands(d)

	logger.Info("Starting AT command responder", "serial_port", config.SerialPort)

	serveCtx, stopServe := context.WithCancel(context.Background())
	defer stopServe()

	go func() {
		if err := d.Serve(serveCtx); err != nil &&
			!errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
			logger.Error("Serial serve loop failed", "error", err)
			os.Exit(1)
		}
	}()

	httpServer := &http.Server{
		Addr: config.BindAddress,
		Handler: &Server{
			Logger: logger.With("component", "server"),
			Device: d,
		},
	}

	// Channel to listen for interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info("Starting HTTP server", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	sig := <-sigChan
	logger.Info("Received shutdown signal", "signal", sig)

	logger.Info("Closing device")
	stopServe()
	if err := d.Close(); err != nil {
		logger.Error("Failed to close device", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Info("Closing HTTP server")
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("Failed to gracefully shutdown server", "error", err)
		os.Exit(1)
	}
}

// registerCommands wires the built-in command set: identification,
// handsfree volume gauges, and the basic call-control letters.
func registerCommands(d *device.Device) {
	d.RegisterBasic('A', handlers.Accept{})
	d.RegisterBasic('D', handlers.Accept{})
	d.RegisterBasic('H', handlers.Accept{})

	d.RegisterExtended("+GMI", handlers.Info{Text: "i4 energy"})
	d.RegisterExtended("+GMM", handlers.Info{Text: "athost"})
	d.RegisterExtended("+GMR", handlers.Info{Text: "1.0.0"})

	d.RegisterExtended("+VGM", handlers.NewGauge("+VGM", 0, 15, 7))
	d.RegisterExtended("+VGS", handlers.NewGauge("+VGS", 0, 15, 7))
}
