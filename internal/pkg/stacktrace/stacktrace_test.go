package stacktrace

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func caller() []string {
	return InternalFrames(0)
}

func TestInternalFrames(t *testing.T) {
	frames := caller()
	require.NotEmpty(t, frames)

	assert.True(t, strings.HasPrefix(frames[0], "internal/pkg/stacktrace/stacktrace_test.go:"), frames[0])
	for _, f := range frames {
		assert.True(t, strings.HasPrefix(f, "internal/"), f)
	}
}
