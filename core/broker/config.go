package broker

import "time"

// DefaultMessageTTL is how long a message stays stored before expiring.
const DefaultMessageTTL = 30 * time.Second

// Config holds registry configuration with environment variable support.
type Config struct {
	// MessageTTL is the delay after which a stored message expires.
	MessageTTL time.Duration `env:"BROKER_MESSAGE_TTL" envDefault:"30s"`
}

// NewFromConfig creates a Registry from configuration.
// Additional options can override config values.
func NewFromConfig(cfg Config, opts ...Option) *Registry {
	configOpts := make([]Option, 0, len(opts)+1)
	if cfg.MessageTTL > 0 {
		configOpts = append(configOpts, WithMessageTTL(cfg.MessageTTL))
	}
	configOpts = append(configOpts, opts...)

	return New(configOpts...)
}
