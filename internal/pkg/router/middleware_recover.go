package router

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/shandysiswandi/twofa/internal/pkg/stacktrace"
)

// middlewareRecoverer turns a handler panic into a 500 envelope. Aborted
// handlers keep their meaning and are re-panicked for net/http.
func middlewareRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if err, ok := rvr.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rvr)
			}

			slog.ErrorContext(r.Context(), "panic while serving request",
				"panic", rvr,
				"method", r.Method,
				"route", matchedRoutePath(r),
				"stack", stacktrace.InternalFrames(2),
			)
			writeJSON(w, errorResponse{Message: "Internal server error"}, http.StatusInternalServerError)
		}()

		next.ServeHTTP(w, r)
	})
}
