// Package logger provides structured logging built on the standard slog
// package: a factory with environment presets and nil-safe attribute
// helpers for common logging patterns.
//
// Create loggers with the factory and configuration options:
//
//	log := logger.New(logger.WithDevelopment("topichat"))
//
//	log := logger.New(
//		logger.WithProduction("topichat"),
//		logger.WithOutput(os.Stderr),
//	)
//
// Attribute helpers keep call sites terse:
//
//	log.Warn("failed to deliver frame",
//		logger.Component("broker"),
//		logger.Error(err),
//	)
package logger
