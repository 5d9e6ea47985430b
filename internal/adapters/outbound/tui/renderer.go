package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/camelcase"

	"github.com/abdidvp/usedirective/internal/domain"
)

// ── warm palette ──
var (
	accent    = lipgloss.Color("#D97706") // amber
	fg        = lipgloss.Color("#E8E6E3") // warm light gray
	dim       = lipgloss.Color("#6B7280") // muted gray
	faint     = lipgloss.Color("#3F3F46") // very dim
	success   = lipgloss.Color("#22C55E") // green
	danger    = lipgloss.Color("#EF4444") // red
	warning   = lipgloss.Color("#F59E0B") // amber-yellow
	info      = lipgloss.Color("#8B949E") // soft blue-gray
	skipColor = lipgloss.Color("#4B5563") // dark gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	kindColors = map[domain.ViolationKind]lipgloss.Color{
		domain.KindAddDirective:    danger,
		domain.KindExpectedBlank:   warning,
		domain.KindUnexpectedBlank: warning,
	}

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	skipStyle     = lipgloss.NewStyle().Foreground(skipColor)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	infoTagStyle  = lipgloss.NewStyle().Foreground(info)
	fileStyle     = lipgloss.NewStyle().Bold(true).Foreground(fg)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	hintStyle     = lipgloss.NewStyle().Foreground(dim).Italic(true)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderReport formats a lint report for terminal output. Only files with
// findings or errors are listed.
func RenderReport(report *domain.Report) string {
	var b strings.Builder

	title := headerStyle.Render("usedirective")
	subtitle := dimStyle.Render(shortenPath(report.RootPath))
	summary := summaryLine(report)
	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + summary))
	b.WriteString("\n\n")

	listed := 0
	for _, f := range report.Files {
		if !f.HasViolations() && f.Error == "" {
			continue
		}
		renderFile(&b, f)
		listed++
	}

	if listed == 0 {
		b.WriteString("  " + passStyle.Render("No issues found.") + "\n")
	} else {
		b.WriteString("  " + separatorLine + "\n\n")
		renderTotals(&b, report)
		if report.FixableCount() > 0 {
			b.WriteString("\n  " + hintStyle.Render("Run usedirective fix to apply the fixable findings.") + "\n")
		}
	}

	b.WriteString("\n")
	return b.String()
}

func summaryLine(report *domain.Report) string {
	n := report.ViolationCount()
	style := lipgloss.NewStyle().Bold(true).Foreground(success)
	if n > 0 {
		style = style.Foreground(danger)
	}
	return style.Render(fmt.Sprintf("%d %s", n, plural(n, "problem", "problems"))) +
		"  " + dimStyle.Render(fmt.Sprintf("in %d %s", report.Checked, plural(report.Checked, "file", "files")))
}

func renderFile(b *strings.Builder, f domain.FileResult) {
	fmt.Fprintf(b, "  %s\n", fileStyle.Render(filepath.ToSlash(f.Path)))

	if f.Error != "" {
		fmt.Fprintf(b, "    %s %s\n", errorTagStyle.Render("error"), dimStyle.Render(f.Error))
	}

	for _, v := range f.Violations {
		pos := faintStyle.Render(padRight(fmt.Sprintf("%d:%d", v.Line, v.Column), 7))
		fix := ""
		if v.Fixable() {
			fix = "  " + infoTagStyle.Render("fixable")
		}
		fmt.Fprintf(b, "    %s %s %s%s\n", pos, kindTag(v.Kind), dimStyle.Render(v.Message), fix)
		fmt.Fprintf(b, "    %s %s\n", strings.Repeat(" ", 7), faintStyle.Render(v.Rule))
	}
	b.WriteString("\n")
}

func renderTotals(b *strings.Builder, report *domain.Report) {
	b.WriteString("  " + titleStyle.Render("Summary") + "  ")
	if n := report.ViolationCount(); n > 0 {
		b.WriteString(failStyle.Render(fmt.Sprintf("%d %s", n, plural(n, "problem", "problems"))) + "  ")
	}
	if n := report.FixableCount(); n > 0 {
		b.WriteString(infoTagStyle.Render(fmt.Sprintf("%d fixable", n)) + "  ")
	}
	if n := report.ErrorCount(); n > 0 {
		b.WriteString(warnStyle.Render(fmt.Sprintf("%d unreadable", n)))
	}
	b.WriteString("\n")
}

// RenderFixReport formats a fix report for terminal output.
func RenderFixReport(report *domain.FixReport) string {
	var b strings.Builder

	verb := "Fixed"
	if report.DryRun {
		verb = "Would fix"
	}

	changed := report.ChangedCount()
	b.WriteString("\n  " + titleStyle.Render(fmt.Sprintf("%s %d %s", verb, changed, plural(changed, "file", "files"))))
	b.WriteString("  " + dimStyle.Render(shortenPath(report.RootPath)) + "\n")
	b.WriteString("  " + separatorLine + "\n\n")

	for _, f := range report.Files {
		switch {
		case f.Error != "":
			fmt.Fprintf(&b, "    %s %s  %s\n", failStyle.Render("✗"), filepath.ToSlash(f.Path), dimStyle.Render(f.Error))
		case f.Applied > 0:
			fmt.Fprintf(&b, "    %s %s  %s\n", passStyle.Render("✓"), filepath.ToSlash(f.Path),
				dimStyle.Render(fmt.Sprintf("%d %s in %d %s", f.Applied, plural(f.Applied, "edit", "edits"), f.Passes, plural(f.Passes, "pass", "passes"))))
		default:
			continue
		}
		if !f.Converged {
			fmt.Fprintf(&b, "      %s\n", warnStyle.Render("did not settle; re-run fix"))
		}
		for _, v := range f.Remaining {
			fmt.Fprintf(&b, "      %s %s\n", kindTag(v.Kind), dimStyle.Render(v.Message))
		}
	}

	if changed == 0 {
		b.WriteString("    " + skipStyle.Render("Nothing to fix.") + "\n")
	}

	b.WriteString("\n")
	return b.String()
}

// KindLabel turns a camelCase message id into lower-case words.
func KindLabel(kind domain.ViolationKind) string {
	words := camelcase.Split(string(kind))
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, " ")
}

func kindTag(kind domain.ViolationKind) string {
	color, ok := kindColors[kind]
	if !ok {
		color = info
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render(padRight(KindLabel(kind), 16))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func shortenPath(path string) string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	if len(parts) > 3 {
		return strings.Join(parts[len(parts)-3:], "/")
	}
	return path
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// RenderHistory formats recorded check runs for terminal output.
func RenderHistory(entries []domain.RunEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No run history found. Record runs with check --record.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Run History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for i, e := range entries {
		hash := e.CommitHash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		if hash == "" {
			hash = "·······"
		}

		color := success
		if e.Violations > 0 {
			color = danger
		}
		count := lipgloss.NewStyle().
			Foreground(color).
			Render(padRight(fmt.Sprintf("%d %s", e.Violations, plural(e.Violations, "problem", "problems")), 12))

		line := fmt.Sprintf("  %s  %s  %s  %s",
			dimStyle.Render(e.Timestamp.Format("2006-01-02")),
			faintStyle.Render(hash),
			count,
			dimStyle.Render(fmt.Sprintf("%d files", e.Files)),
		)

		if i > 0 {
			diff := e.Violations - entries[i-1].Violations
			if diff < 0 {
				line += "  " + passStyle.Render(fmt.Sprintf("↓%d", -diff))
			} else if diff > 0 {
				line += "  " + failStyle.Render(fmt.Sprintf("↑%d", diff))
			}
			if prev := entries[i-1].ConfigHash; prev != "" && e.ConfigHash != "" && prev != e.ConfigHash {
				line += "  " + dimStyle.Render("config changed")
			}
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}
