// Package logger provides structured logging for the meeting API.
//
// It builds on log/slog with a JSON handler and carries request-scoped
// loggers through context.Context so that trace ids and user ids recorded
// by the HTTP middleware show up in every log line a request produces.
package logger
