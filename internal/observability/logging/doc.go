// Package logging provides structured logging utilities with context propagation.
//
// Key features:
//   - JSON output for the API server, charmbracelet/log console output for the CLI
//   - Request ID propagation
//   - Logger carried through context.Context
//   - LOG_LEVEL driven levels (debug, info, warn, error)
//
// Example usage:
//
//	logger := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(cfg.LogLevel))
//	ctx = logging.WithLogger(ctx, logging.WithRequestID(ctx, logger))
//	logging.FromContext(ctx).Info("lookup started", slog.String("pdb_id", id))
package logging
