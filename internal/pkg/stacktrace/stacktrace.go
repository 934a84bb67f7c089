// Package stacktrace trims goroutine stacks down to this module's frames so
// panic logs stay readable.
package stacktrace

import (
	"runtime"
	"strconv"
	"strings"
)

const maxFrames = 32

// InternalFrames returns "internal/<pkg>/<file>.go:<line>" for every caller
// frame that lives under an internal/ directory, innermost first. skip has
// the same meaning as in runtime.Callers, counted from the caller.
func InternalFrames(skip int) []string {
	pcs := make([]uintptr, maxFrames)
	n := runtime.Callers(skip+2, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	var out []string
	for {
		f, more := frames.Next()
		if _, rel, ok := strings.Cut(f.File, "/internal/"); ok {
			out = append(out, "internal/"+rel+":"+strconv.Itoa(f.Line))
		}
		if !more {
			break
		}
	}

	return out
}
