package chat

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dmitrymomot/topichat/core/broker"
	"github.com/dmitrymomot/topichat/core/logger"
)

type handlerConfig struct {
	upgrader  *websocket.Upgrader
	logger    *slog.Logger
	readLimit int64
}

// Option configures the WebSocket chat handler.
type Option func(*handlerConfig)

// WithLogger sets the logger for connection and session events.
func WithLogger(log *slog.Logger) Option {
	return func(c *handlerConfig) {
		if log != nil {
			c.logger = log
		}
	}
}

// WithReadBuffer sets the connection read buffer size in bytes.
func WithReadBuffer(size int) Option {
	return func(c *handlerConfig) {
		c.upgrader.ReadBufferSize = size
	}
}

// WithWriteBuffer sets the connection write buffer size in bytes.
func WithWriteBuffer(size int) Option {
	return func(c *handlerConfig) {
		c.upgrader.WriteBufferSize = size
	}
}

// WithHandshakeTimeout limits how long the WebSocket upgrade may take.
func WithHandshakeTimeout(timeout time.Duration) Option {
	return func(c *handlerConfig) {
		c.upgrader.HandshakeTimeout = timeout
	}
}

// WithOriginCheck replaces the default allow-any origin policy.
func WithOriginCheck(fn func(r *http.Request) bool) Option {
	return func(c *handlerConfig) {
		c.upgrader.CheckOrigin = fn
	}
}

// WithReadLimit caps the size of inbound frames in bytes. Zero means no cap.
func WithReadLimit(limit int64) Option {
	return func(c *handlerConfig) {
		c.readLimit = limit
	}
}

// Handler returns an http.HandlerFunc that upgrades the request to a
// WebSocket connection and runs a chat session against the registry until
// the client disconnects.
func Handler(registry *broker.Registry, opts ...Option) http.HandlerFunc {
	cfg := &handlerConfig{
		upgrader: &websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := cfg.upgrader.Upgrade(w, r, nil)
		if err != nil {
			cfg.logger.Warn("websocket upgrade failed",
				logger.Component("chat.handler"),
				logger.ClientIP(r.RemoteAddr),
				logger.Error(err),
			)
			return
		}
		defer func() { _ = conn.Close() }()

		if cfg.readLimit > 0 {
			conn.SetReadLimit(cfg.readLimit)
		}

		cfg.logger.Info("connection accepted",
			logger.Component("chat.handler"),
			logger.ClientIP(r.RemoteAddr),
		)

		s := &session{
			registry: registry,
			logger:   cfg.logger,
			conn:     conn,
			sender:   &wsSender{conn: conn},
			remote:   r.RemoteAddr,
		}
		s.run()
	}
}
