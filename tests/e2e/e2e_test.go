package e2e_test

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdidvp/usedirective/internal/domain"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build binary before running tests
	dir, err := os.MkdirTemp("", "usedirective-e2e")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	binaryPath = filepath.Join(dir, "usedirective")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/usedirective")
	if out, err := cmd.CombinedOutput(); err != nil {
		panic("build failed: " + string(out))
	}

	os.Exit(m.Run())
}

func fixturePath() string {
	abs, _ := filepath.Abs("../../testdata/nextjs-app")
	return abs
}

// copyFixture copies the fixture project into a temp dir so fixes can write.
func copyFixture(t *testing.T) string {
	t.Helper()
	dst := t.TempDir()
	src := fixturePath()
	err := filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(src, path)
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0644)
	})
	require.NoError(t, err)
	return dst
}

func run(t *testing.T, args ...string) (string, int) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	out, err := cmd.Output()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
	}
	return string(out), exitCode
}

// --- Check Tests ---

func TestE2E_Check(t *testing.T) {
	out, code := run(t, "check", fixturePath())
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "components/Button.tsx")
	assert.Contains(t, out, "components/Card.tsx")
	assert.Contains(t, out, "components/Modal.jsx")
	assert.NotContains(t, out, "pages/legacy.tsx")
	assert.NotContains(t, out, "ui-kit")
	assert.Contains(t, out, "3 problems")
}

func TestE2E_CheckJSON(t *testing.T) {
	out, code := run(t, "check", fixturePath(), "--json")
	assert.Equal(t, 1, code)

	var report domain.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report), "output should be valid JSON")
	assert.Equal(t, 6, report.Checked)
	assert.Equal(t, 3, report.ViolationCount())
	assert.Equal(t, 3, report.FixableCount())

	kinds := map[string]domain.ViolationKind{}
	for _, f := range report.Files {
		for _, v := range f.Violations {
			kinds[filepath.ToSlash(f.Path)] = v.Kind
		}
	}
	assert.Equal(t, domain.KindAddDirective, kinds["components/Button.tsx"])
	assert.Equal(t, domain.KindExpectedBlank, kinds["components/Card.tsx"])
	assert.Equal(t, domain.KindExpectedBlank, kinds["components/Modal.jsx"])
}

func TestE2E_CheckExactPolicy(t *testing.T) {
	dir := copyFixture(t)
	action := filepath.Join(dir, "components", "Action.tsx")
	require.NoError(t, os.WriteFile(action, []byte("\"use server\";\n\nexport async function act() {}\n"), 0644))

	// Any use-directive satisfies the default policy.
	_, code := run(t, "check", action)
	assert.Equal(t, 0, code)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".usedirective.yaml"),
		[]byte("require_directive:\n  directive: use client\n  require_exact: true\n"), 0644))

	out, code := run(t, "check", action, "--json")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, `"kind": "addDirective"`)
}

// --- Fix Tests ---

func TestE2E_FixThenCheck(t *testing.T) {
	dir := copyFixture(t)

	_, code := run(t, "fix", dir)
	require.Equal(t, 0, code)

	data, err := os.ReadFile(filepath.Join(dir, "components", "Button.tsx"))
	require.NoError(t, err)
	assert.Equal(t, "\"use client\";\n\nexport function Button() {\n  return null;\n}\n", string(data))

	data, err = os.ReadFile(filepath.Join(dir, "components", "Card.tsx"))
	require.NoError(t, err)
	assert.Equal(t, "\"use client\";\n\nexport function Card() {\n  return null;\n}\n", string(data))

	out, code := run(t, "check", dir)
	assert.Equal(t, 0, code, out)
	assert.Contains(t, out, "No issues found.")
}

func TestE2E_FixDryRun(t *testing.T) {
	dir := copyFixture(t)
	before, err := os.ReadFile(filepath.Join(dir, "components", "Button.tsx"))
	require.NoError(t, err)

	out, code := run(t, "fix", dir, "--dry-run")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Would fix 3 files")

	after, err := os.ReadFile(filepath.Join(dir, "components", "Button.tsx"))
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestE2E_FixNever(t *testing.T) {
	dir := copyFixture(t)

	_, code := run(t, "fix", dir, "--mode", "never")
	require.Equal(t, 0, code)

	data, err := os.ReadFile(filepath.Join(dir, "components", "Card.tsx"))
	require.NoError(t, err)
	assert.Equal(t, "\"use client\";\nexport function Card() {\n  return null;\n}\n", string(data))
}

// --- Init / Version ---

func TestE2E_InitThenCheck(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "App.tsx"), []byte("export default 1;\n"), 0644))

	_, code := run(t, "init", dir, "--directive", "use server")
	require.Equal(t, 0, code)

	_, code = run(t, "fix", dir)
	require.Equal(t, 0, code)

	data, err := os.ReadFile(filepath.Join(dir, "App.tsx"))
	require.NoError(t, err)
	assert.Equal(t, "\"use server\";\n\nexport default 1;\n", string(data))
}

func TestE2E_Version(t *testing.T) {
	out, code := run(t, "version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "usedirective")
}
