package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// LintCache records files that were clean under a given configuration, keyed
// by path relative to the project root.
type LintCache struct {
	ProjectPath string            `json:"project_path"`
	ConfigHash  string            `json:"config_hash"`
	Files       map[string]string `json:"files"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// NewLintCache returns an empty cache for the given project and config.
func NewLintCache(projectPath, configHash string) *LintCache {
	return &LintCache{
		ProjectPath: projectPath,
		ConfigHash:  configHash,
		Files:       make(map[string]string),
	}
}

// IsClean reports whether relPath was clean with the same content hash.
func (c *LintCache) IsClean(relPath, contentHash string) bool {
	if c == nil {
		return false
	}
	h, ok := c.Files[relPath]
	return ok && h == contentHash
}

// IsValid reports whether the cache was built with configHash.
func (c *LintCache) IsValid(configHash string) bool {
	return c != nil && c.ConfigHash == configHash
}

// Fingerprint returns the hex SHA-256 of data, used for file contents and
// configuration alike.
func Fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
