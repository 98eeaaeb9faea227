// Package logger builds the service's structured loggers on top of log/slog.
//
// [New] returns a JSON (or text) logger on stdout whose level and format come
// from [Config]. Context extractors add request-scoped attributes, such as the
// request ID, to every record logged with a context:
//
//	log := logger.New(cfg.Log, middlewares.RequestIDExtractor())
//	log.InfoContext(ctx, "dependency state changed", slog.Bool("up", false))
//	// {"level":"INFO","msg":"dependency state changed","up":false,"request_id":"..."}
//
// When SENTRY_DSN is set, records are also forwarded to Sentry: errors become
// issues and warnings are kept as searchable logs. Without a DSN, or when the
// SDK fails to initialize, logging continues to stdout only. Register [Flush]
// as a shutdown hook so buffered events are delivered before exit.
//
// [NewNope] returns a logger that discards everything; packages use it as
// their default when no logger is injected.
package logger
