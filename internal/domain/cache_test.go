package domain_test

import (
	"testing"

	"github.com/abdidvp/usedirective/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestLintCache_IsClean(t *testing.T) {
	c := domain.NewLintCache("/repo", "cfg1")
	c.Files["src/A.tsx"] = "h1"

	assert.True(t, c.IsClean("src/A.tsx", "h1"))
	assert.False(t, c.IsClean("src/A.tsx", "h2"))
	assert.False(t, c.IsClean("src/B.tsx", "h1"))
}

func TestLintCache_IsValid(t *testing.T) {
	c := domain.NewLintCache("/repo", "cfg1")
	assert.True(t, c.IsValid("cfg1"))
	assert.False(t, c.IsValid("cfg2"))

	var missing *domain.LintCache
	assert.False(t, missing.IsValid("cfg1"))
	assert.False(t, missing.IsClean("a", "b"))
}

func TestFingerprint(t *testing.T) {
	assert.Equal(t, domain.Fingerprint([]byte("a")), domain.Fingerprint([]byte("a")))
	assert.NotEqual(t, domain.Fingerprint([]byte("a")), domain.Fingerprint([]byte("b")))
	assert.Len(t, domain.Fingerprint(nil), 64)
}
