package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// traceIDHeader names the request correlation header. The middleware
// echoes it on every response so callers can quote the id when reporting
// a failure.
const traceIDHeader = "X-Trace-ID"

// withTraceID attaches a request-scoped child logger tagged with the
// caller's trace id, minting a fresh UUID when the header is absent.
// Downstream code picks the logger up through logger.FromRequest.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceIDHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		log := h.logger.GetChildLogger()
		log.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r.WithContext(log.WithContext(r.Context())))
	})
}
