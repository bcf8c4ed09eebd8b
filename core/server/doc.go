// Package server provides an HTTP server with graceful shutdown,
// environment-driven configuration, and production-ready default timeouts.
// It wraps the standard http.Server and accepts any http.Handler, including
// handlers that hijack the connection for WebSocket upgrades.
//
// Run a server with default configuration:
//
//	if err := server.Run(ctx, ":8080", handler); err != nil {
//		log.Fatal(err)
//	}
//
// Or load configuration from the environment and coordinate the lifecycle
// with an errgroup:
//
//	var cfg server.Config
//	config.MustLoad(&cfg)
//
//	srv, err := server.NewFromConfig(cfg, server.WithLogger(log))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	eg, ctx := errgroup.WithContext(ctx)
//	eg.Go(srv.Run(ctx, handler))
package server
