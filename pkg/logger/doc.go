// Package logger builds slog loggers with environment presets and automatic
// injection of request-scoped attributes from context.
//
// The factory wires a handler decorator that runs registered context
// extractors on every log call, so request ID and tenant ID show up on log
// records without being passed explicitly:
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "saascore"),
//		logger.WithContextExtractors(
//			requestid.LoggerExtractor(),
//			tenant.LoggerExtractor(),
//		),
//	)
package logger
