package application_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdidvp/usedirective/internal/application"
	"github.com/abdidvp/usedirective/internal/domain"
)

func TestFixProject_InsertsDirectiveAndBlankLine(t *testing.T) {
	dir := writeProject(t, map[string]string{
		".usedirective.yaml": useClientConfig,
		"A.tsx":              "export const A = () => null;",
	})

	report, err := newFixService().FixProject(context.Background(), dir, application.FixOptions{})
	require.NoError(t, err)

	assert.Equal(t, "\"use client\";\n\nexport const A = () => null;", readFile(t, dir, "A.tsx"))
	require.Len(t, report.Files, 1)
	fix := report.Files[0]
	assert.True(t, fix.Written)
	assert.True(t, fix.Converged)
	assert.Equal(t, 2, fix.Passes)
	assert.Equal(t, 2, fix.Applied)
	assert.Empty(t, fix.Remaining)
	assert.Equal(t, 1, report.ChangedCount())
}

func TestFixProject_CollapsesBlankLines(t *testing.T) {
	dir := writeProject(t, map[string]string{
		".usedirective.yaml": useClientConfig,
		"B.tsx":              "\"use client\";\n\n\n\nexport const B = 1;",
	})

	_, err := newFixService().FixProject(context.Background(), dir, application.FixOptions{})
	require.NoError(t, err)
	assert.Equal(t, "\"use client\";\n\nexport const B = 1;", readFile(t, dir, "B.tsx"))
}

func TestFixProject_ModeNever(t *testing.T) {
	dir := writeProject(t, map[string]string{
		".usedirective.yaml": useClientConfig + "blank_line_after_directive:\n  mode: never\n",
		"B.tsx":              "\"use client\";\n\nfoo();",
	})

	_, err := newFixService().FixProject(context.Background(), dir, application.FixOptions{})
	require.NoError(t, err)
	assert.Equal(t, "\"use client\";\nfoo();", readFile(t, dir, "B.tsx"))
}

func TestFixProject_InsertsAfterShebang(t *testing.T) {
	dir := writeProject(t, map[string]string{
		".usedirective.yaml": `require_directive:
  directive: use client
  extensions: [js]
`,
		"cli.js": "#!/usr/bin/env node\nconsole.log(1);\n",
	})

	_, err := newFixService().FixProject(context.Background(), dir, application.FixOptions{})
	require.NoError(t, err)
	assert.Equal(t, "#!/usr/bin/env node\n\"use client\";\n\nconsole.log(1);\n", readFile(t, dir, "cli.js"))
}

func TestFixProject_DryRunLeavesFiles(t *testing.T) {
	const src = "export const A = 1;"
	dir := writeProject(t, map[string]string{
		".usedirective.yaml": useClientConfig,
		"A.tsx":              src,
	})

	report, err := newFixService().FixProject(context.Background(), dir, application.FixOptions{DryRun: true})
	require.NoError(t, err)

	assert.True(t, report.DryRun)
	require.Len(t, report.Files, 1)
	assert.False(t, report.Files[0].Written)
	assert.Equal(t, 2, report.Files[0].Applied)
	assert.Equal(t, src, readFile(t, dir, "A.tsx"))
}

func TestFixProject_CleanFileUntouched(t *testing.T) {
	dir := writeProject(t, map[string]string{
		".usedirective.yaml": useClientConfig,
		"C.tsx":              "\"use client\";\n\nexport const C = 1;",
	})

	report, err := newFixService().FixProject(context.Background(), dir, application.FixOptions{})
	require.NoError(t, err)
	assert.Zero(t, report.ChangedCount())
	assert.False(t, report.Files[0].Written)
	assert.True(t, report.Files[0].Converged)
}

func TestFixProject_FixedProjectLintsClean(t *testing.T) {
	dir := writeProject(t, map[string]string{
		".usedirective.yaml": useClientConfig,
		"A.tsx":              "// header\nexport const A = 1;\n",
		"B.tsx":              "\n\n\"use client\";\nexport const B = 1;\n",
		"C.tsx":              "'use client'\n\n\n\n// note\nexport const C = 1;\n",
	})

	_, err := newFixService().FixProject(context.Background(), dir, application.FixOptions{})
	require.NoError(t, err)

	report, err := newLintService(nil).LintProject(context.Background(), dir, application.LintOptions{})
	require.NoError(t, err)
	assert.Zero(t, report.ViolationCount())
	assert.Zero(t, report.ErrorCount())
}

func TestFixSource_Idempotent(t *testing.T) {
	cfg := domain.ProjectConfig{RequireDirective: domain.RequireDirectiveConfig{Directive: "use client"}}
	svc := newFixService()

	first, err := svc.FixSource("A.tsx", []byte("export const A = 1;"), cfg)
	require.NoError(t, err)
	assert.Equal(t, "\"use client\";\n\nexport const A = 1;", first.Text)

	second, err := svc.FixSource("A.tsx", []byte(first.Text), cfg)
	require.NoError(t, err)
	assert.Equal(t, first.Text, second.Text)
	assert.Zero(t, second.Applied)
	assert.True(t, second.Converged)
}

func TestFixSource_MissingDirective(t *testing.T) {
	_, err := newFixService().FixSource("A.tsx", []byte("x;"), domain.DefaultConfig())
	assert.ErrorIs(t, err, domain.ErrMissingDirective)
}

func TestFixSource_ParseError(t *testing.T) {
	cfg := domain.ProjectConfig{RequireDirective: domain.RequireDirectiveConfig{Directive: "use client"}}
	_, err := newFixService().FixSource("A.tsx", []byte("export const = = ;"), cfg)
	assert.Error(t, err)
}

func TestFixProject_IgnoreIsRelativeToConfigDir(t *testing.T) {
	const old = "export const Old = 1;"
	dir := writeProject(t, map[string]string{
		".usedirective.yaml": legacyIgnoreConfig,
		"src/legacy/Old.tsx": old,
		"src/New.tsx":        "export const New = 1;",
	})
	svc := newFixService()

	_, err := svc.FixProject(context.Background(), filepath.Join(dir, "src", "legacy", "Old.tsx"), application.FixOptions{})
	require.NoError(t, err)
	assert.Equal(t, old, readFile(t, dir, "src/legacy/Old.tsx"))

	_, err = svc.FixProject(context.Background(), filepath.Join(dir, "src"), application.FixOptions{})
	require.NoError(t, err)
	assert.Equal(t, old, readFile(t, dir, "src/legacy/Old.tsx"))
	assert.Equal(t, "\"use client\";\n\nexport const New = 1;", readFile(t, dir, "src/New.tsx"))
}

func TestFixSource_ShebangWithoutNewline(t *testing.T) {
	cfg := domain.ProjectConfig{RequireDirective: domain.RequireDirectiveConfig{
		Directive:  "use client",
		Extensions: []string{"js"},
	}}
	svc := newFixService()

	res, err := svc.FixSource("cli.js", []byte("#!/usr/bin/env node"), cfg)
	require.NoError(t, err)
	assert.Equal(t, "#!/usr/bin/env node\n\"use client\";\n\n", res.Text)
	assert.True(t, res.Converged)
	assert.Empty(t, res.Remaining)

	cfg.BlankLine.Mode = "never"
	res, err = svc.FixSource("cli.js", []byte("#!/usr/bin/env node"), cfg)
	require.NoError(t, err)
	assert.Equal(t, "#!/usr/bin/env node\n\"use client\";\n", res.Text)
	assert.True(t, res.Converged)
}

func TestFixSource_KeepsCRLF(t *testing.T) {
	cfg := domain.ProjectConfig{RequireDirective: domain.RequireDirectiveConfig{Directive: "use client"}}

	res, err := newFixService().FixSource("A.tsx", []byte("import x from \"x\";\r\nx();\r\n"), cfg)
	require.NoError(t, err)
	assert.Equal(t, "\"use client\";\r\n\r\nimport x from \"x\";\r\nx();\r\n", res.Text)
	assert.True(t, res.Converged)
}
