// Package logger builds slog loggers and provides attribute helpers for
// consistent structured logging.
//
// # Construction
//
//	log := logger.New(
//		logger.WithProduction("myapp"),
//		logger.WithAttr(slog.String("region", "eu-west-1")),
//	)
//
// WithDevelopment switches to text output at debug level. NewFromConfig builds
// a logger from LOG_LEVEL and LOG_FORMAT, which is what most configuration
// types call from their InitLogger method.
//
// # Attributes
//
// Helpers return an empty slog.Attr for nil or empty input, so optional values
// can be passed without checks:
//
//	log.Info("step finished",
//		logger.RunID(runID),
//		logger.Step(3, "postgres"),
//		logger.Elapsed(start),
//		logger.Error(err),
//	)
package logger
