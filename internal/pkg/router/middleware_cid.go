package router

import (
	"net/http"
	"strings"

	"github.com/shandysiswandi/twofa/internal/pkg/instrument"
	"github.com/shandysiswandi/twofa/internal/pkg/uid"
)

const (
	// HeaderCorrelationID carries the id that ties logs, spans and events
	// of one request together. It is echoed on every response.
	HeaderCorrelationID = "X-Correlation-ID"
	// HeaderRequestID is accepted when the caller's proxy only sets this one.
	HeaderRequestID = "X-Request-ID"

	maxCorrelationIDLen = 128
)

// cleanCorrelationID returns v if it is safe to echo back and log.
func cleanCorrelationID(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if v == "" || len(v) > maxCorrelationIDLen {
		return "", false
	}
	// printable ASCII only, nothing that could split a header or a log line
	if strings.IndexFunc(v, func(c rune) bool { return c < 0x21 || c > 0x7e }) >= 0 {
		return "", false
	}
	return v, true
}

func middlewareCorrelationID(gen uid.StringID) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cid, ok := cleanCorrelationID(r.Header.Get(HeaderCorrelationID))
			if !ok {
				cid, ok = cleanCorrelationID(r.Header.Get(HeaderRequestID))
			}
			if !ok && gen != nil {
				cid, ok = gen.Generate(), true
			}

			if ok {
				w.Header().Set(HeaderCorrelationID, cid)
				r = r.WithContext(instrument.SetCorrelationID(r.Context(), cid))
			}

			next.ServeHTTP(w, r)
		})
	}
}
