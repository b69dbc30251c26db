// Package server provides the HTTP listener used by launchpad: a thin wrapper around
// http.Server with graceful shutdown, configurable options and production-ready defaults.
//
// # Key Features
//
//   - Graceful shutdown with configurable timeout
//   - Programmable shutdown trigger via WithShutdownSignal
//   - Shutdown hooks for releasing resources opened during startup
//   - Separate Bind step, so bind errors surface before serving
//   - TLS/HTTPS support with secure defaults
//   - errgroup-compatible Run adapter
//
// # Basic Usage
//
//	srv := server.New(":8080",
//		server.WithShutdownTimeout(60*time.Second),
//		server.WithLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil))),
//	)
//
//	eg, ctx := errgroup.WithContext(ctx)
//	eg.Go(srv.Run(ctx, handler))
//	if err := eg.Wait(); err != nil {
//		log.Fatal(err)
//	}
//
// # Shutdown Signal and Hooks
//
// A closed channel registered with WithShutdownSignal stops the accept loop gracefully.
// Hooks registered with WithShutdownHook run after the listener closed, in reverse order:
//
//	srv := server.New(":8080",
//		server.WithShutdownSignal(stop),
//		server.WithShutdownHook(func(ctx context.Context) error {
//			pool.Close()
//			return nil
//		}),
//	)
//
// # Configuration
//
// Config maps SERVER_* environment variables and can be converted with NewFromConfig
// or Config.Options:
//
//	var cfg server.Config
//	config.MustLoad(&cfg)
//	srv, err := server.NewFromConfig(cfg)
package server
