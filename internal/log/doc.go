// Package log provides slog loggers that redact sensitive values.
//
// The SecureHandler wraps any slog.Handler and masks attribute values whose
// key names credentials (passwords, tokens, secrets, connection strings) or
// whose value looks like a credential (bearer tokens, JWTs, private keys).
// Item data and user names pass through unchanged.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
//	logger.Debug("report generated", "type", "CSV", "included", 2)
package log
