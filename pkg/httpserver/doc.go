// Package httpserver runs the HTTP API with graceful shutdown and exposes
// liveness and readiness handlers.
//
//	srv := httpserver.NewFromConfig(cfg,
//		httpserver.WithLogger(log),
//		httpserver.WithCloser("postgres", func(context.Context) error { pool.Close(); return nil }),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//		return err
//	}
//
// Run returns once ctx is cancelled or SIGINT/SIGTERM arrives, after the
// listener has drained and every closer has run.
package httpserver
