package obs

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerRedactsSensitiveAttrs(t *testing.T) {
	var buf bytes.Buffer
	restore := SetOutputForTests(&buf)
	defer restore()

	Logger().Info("credential login",
		"username", "admin",
		"password", "hunter2",
		"session_token", "abc123")

	out := buf.String()
	require.NotEmpty(t, out)
	assert.Contains(t, out, `"username":"admin"`)
	assert.Contains(t, out, "[REDACTED]")
	assert.NotContains(t, out, "hunter2")
	assert.NotContains(t, out, "abc123")
}

func TestLoggerEmitsJSONWithRFC3339NanoTime(t *testing.T) {
	var buf bytes.Buffer
	restore := SetOutputForTests(&buf)
	defer restore()

	Logger().Info("suite started", "key", "value")

	out := buf.String()
	assert.Contains(t, out, `"msg":"suite started"`)
	assert.Contains(t, out, `"key":"value"`)
	assert.Regexp(t, `"time":"\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}`, out)
}
