package locales

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage(t *testing.T) {
	l, err := New()
	require.NoError(t, err)

	assert.Equal(t, "Insufficient quantity", l.Message("", "insufficient_quantity", "fallback", nil))
	assert.Equal(t, "Недостаточное количество", l.Message("ru-RU,ru;q=0.9", "insufficient_quantity", "fallback", nil))
	assert.Equal(t, "Insufficient quantity", l.Message("de", "insufficient_quantity", "fallback", nil))
	assert.Equal(t, "fallback", l.Message("en", "no_such_message", "fallback", nil))

	msg := l.Message("en", "validation_failed", "fallback", map[string]interface{}{"Detail": "login: is required"})
	assert.Contains(t, msg, "login: is required")

	var disabled *Localizer
	assert.Equal(t, "fallback", disabled.Message("en", "ok", "fallback", nil))
}
