package scanner_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/abdidvp/usedirective/internal/adapters/outbound/scanner"
	"github.com/abdidvp/usedirective/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
}

func fixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "app/page.tsx", "export default function Page() {}")
	writeFile(t, dir, "app/util.ts", "export const x = 1;")
	writeFile(t, dir, "bin/cli.js", "#!/usr/bin/env node\n")
	writeFile(t, dir, "README.md", "# readme")
	writeFile(t, dir, "node_modules/pkg/Inner.tsx", "export {}")
	writeFile(t, dir, ".git/hooks/pre-commit.js", "")
	return dir
}

func TestFileScanner_Scan(t *testing.T) {
	dir := fixture(t)
	result, err := scanner.New().Scan(dir, domain.ScanOptions{})
	require.NoError(t, err)

	abs, _ := filepath.Abs(dir)
	assert.Equal(t, abs, result.RootPath)
	assert.Equal(t, []string{
		filepath.Join("app", "page.tsx"),
		filepath.Join("app", "util.ts"),
		filepath.Join("bin", "cli.js"),
	}, result.Files)
}

func TestFileScanner_ExcludesNodeModulesAndGit(t *testing.T) {
	result, err := scanner.New().Scan(fixture(t), domain.ScanOptions{})
	require.NoError(t, err)

	for _, f := range result.Files {
		assert.NotContains(t, f, "node_modules")
		assert.NotContains(t, f, ".git")
	}
}

func TestFileScanner_IncludeNodeModules(t *testing.T) {
	result, err := scanner.New().Scan(fixture(t), domain.ScanOptions{IncludeNodeModules: true})
	require.NoError(t, err)

	assert.Contains(t, result.Files, filepath.Join("node_modules", "pkg", "Inner.tsx"))
	for _, f := range result.Files {
		assert.NotContains(t, f, ".git")
	}
}

func TestFileScanner_SingleFile(t *testing.T) {
	dir := fixture(t)
	result, err := scanner.New().Scan(filepath.Join(dir, "app", "page.tsx"), domain.ScanOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"page.tsx"}, result.Files)
	assert.Equal(t, "app", filepath.Base(result.RootPath))
}

func TestFileScanner_MissingPath(t *testing.T) {
	_, err := scanner.New().Scan("/nonexistent/path", domain.ScanOptions{})
	assert.Error(t, err)
}
