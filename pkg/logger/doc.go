// Package logger builds *slog.Logger instances for the service.
//
// New selects a JSON or text handler and wraps it in a ContextHandler that
// appends request-scoped attributes on every record. Register the
// extractors exported by the request middlewares:
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Environment, cfg.Service),
//		logger.WithContextExtractors(
//			logger.RequestIDExtractor(),
//			tenant.LoggerExtractor(),
//			access.LoggerExtractor(),
//		),
//	)
//
// Config carries the same settings as env variables (SERVICE_NAME, APP_ENV,
// LOG_LEVEL, LOG_FORMAT) for use with the config package.
package logger
