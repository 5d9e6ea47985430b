package application_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/abdidvp/usedirective/internal/adapters/outbound/cache"
	"github.com/abdidvp/usedirective/internal/adapters/outbound/config"
	"github.com/abdidvp/usedirective/internal/adapters/outbound/parser"
	"github.com/abdidvp/usedirective/internal/adapters/outbound/scanner"
	"github.com/abdidvp/usedirective/internal/application"
	"github.com/abdidvp/usedirective/internal/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// writeProject creates files (relative path -> content) under a temp dir.
func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

func readFile(t *testing.T, dir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

const useClientConfig = `require_directive:
  directive: use client
`

// fakeGit reports a fixed set of changed files.
type fakeGit struct {
	changed []string
}

func (g fakeGit) IsGitRepo(string) bool                 { return true }
func (g fakeGit) CommitHash(string) (string, error)     { return "abc123", nil }
func (g fakeGit) ChangedFiles(string) ([]string, error) { return g.changed, nil }

var _ domain.GitInfo = fakeGit{}

func newLintService(git domain.GitInfo) *application.LintService {
	return application.NewLintService(scanner.New(), parser.New(), config.New(), cache.New(), git, nil)
}

func newFixService() *application.FixService {
	return application.NewFixService(scanner.New(), parser.New(), config.New(), cache.New(), nil, nil)
}
