package idgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeneratedIdentifiers(t *testing.T) {
	assert.NotEqual(t, GenerateID(), GenerateID())

	doc := DocumentNo("SHP")
	assert.True(t, strings.HasPrefix(doc, "SHP-"))
	assert.Equal(t, strings.ToUpper(doc), doc)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code := InviteCode()
		assert.GreaterOrEqual(t, len(code), 5)
		assert.False(t, seen[code])
		seen[code] = true
	}

	assert.Error(t, Init(-1))
}
