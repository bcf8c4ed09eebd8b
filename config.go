package main

import (
	"github.com/dmitrymomot/topichat/core/broker"
	"github.com/dmitrymomot/topichat/core/server"
)

// Config is the application configuration, loaded from the environment.
type Config struct {
	AppName     string `env:"APP_NAME" envDefault:"topichat"`
	Environment string `env:"APP_ENV" envDefault:"development"`

	// MaxFrameBytes caps inbound WebSocket frames. Zero disables the cap.
	MaxFrameBytes int64 `env:"CHAT_MAX_FRAME_BYTES" envDefault:"65536"`

	Broker broker.Config
	Server server.Config
}
