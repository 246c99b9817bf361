package device

import (
	"io"
	"log/slog"
)

// Config holds the settings for a Device. Build one with NewConfigBuilder.
type Config struct {
	dialer Dialer
	logger *slog.Logger
	echo   bool
}

// ConfigBuilder assembles a Config step by step.
type ConfigBuilder struct {
	config Config
}

// NewConfigBuilder returns an empty builder.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{}
}

// WithDialer sets the Dialer used to reach the terminal equipment.
// A Dialer is required.
func (b *ConfigBuilder) WithDialer(dialer Dialer) *ConfigBuilder {
	b.config.dialer = dialer
	return b
}

// WithLogger sets the logger used by the serve loop. Without one the
// device stays silent.
func (b *ConfigBuilder) WithLogger(logger *slog.Logger) *ConfigBuilder {
	b.config.logger = logger
	return b
}

// WithEcho controls command line echo (the V.250 E1 behavior): when
// enabled, each received line is written back before its reply.
func (b *ConfigBuilder) WithEcho(echo bool) *ConfigBuilder {
	b.config.echo = echo
	return b
}

// Build validates the configuration and applies defaults.
func (b *ConfigBuilder) Build() (Config, error) {
	config := b.config
	if config.dialer == nil {
		return Config{}, ErrNoDialer
	}
	if config.logger == nil {
		config.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return config, nil
}
