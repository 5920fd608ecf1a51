package middleware

import (
	"log/slog"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spotly/meeting-api/internal/api/shared"
	"github.com/spotly/meeting-api/internal/platform/logger"
)

// NewTraceMiddleware assigns every request a trace id, echoes it in the
// X-Trace-ID response header and stores a request logger carrying it in the
// context. A well-formed X-Trace-ID sent by the caller is reused.
//
// Apply it early in the chain so later handlers see the trace id.
func NewTraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get(shared.TraceIDHeader)
			if !shared.ValidTraceID(traceID) {
				traceID = shared.NewTraceID()
			}

			attrs := []any{slog.String("trace_id", traceID)}
			if reqID := chimiddleware.GetReqID(r.Context()); reqID != "" {
				attrs = append(attrs, slog.String("request_id", reqID))
			}
			log := base.With(attrs...)

			ctx := shared.WithTraceID(r.Context(), traceID)
			ctx = logger.WithLogger(ctx, log)
			w.Header().Set(shared.TraceIDHeader, traceID)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
