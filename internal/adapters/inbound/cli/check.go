package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/usedirective/internal/adapters/outbound/history"
	"github.com/abdidvp/usedirective/internal/adapters/outbound/tui"
	"github.com/abdidvp/usedirective/internal/application"
	"github.com/abdidvp/usedirective/internal/domain"
)

// errProblems makes check exit non-zero after the report is printed.
func errProblems(violations, unreadable int) error {
	return fmt.Errorf("found %d problems, %d unreadable files", violations, unreadable)
}

func newCheckCmd(root *rootOptions) *cobra.Command {
	var (
		jsonOutput bool
		useCache   bool
		changed    bool
		record     bool
		workers    int
		overrides  domain.ConfigOverrides
	)

	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Report missing directives and blank-line spacing",
		Long:  "Check every JavaScript and TypeScript file under path (default: current directory) and exit non-zero when problems are found.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			svc := newLintService(root.logger)
			report, err := svc.LintProject(cmd.Context(), path, application.LintOptions{
				RunOptions: application.RunOptions{
					Overrides: overrides,
					Changed:   changed,
					Workers:   workers,
				},
				UseCache: useCache,
			})
			if err != nil {
				return fmt.Errorf("check failed: %w", err)
			}

			if record {
				if err := history.New().Save(report.RootPath, domain.NewRunEntry(report)); err != nil {
					return fmt.Errorf("recording run: %w", err)
				}
			}

			if jsonOutput {
				if err := renderJSON(cmd, report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report))
			}

			if report.ViolationCount() > 0 || report.ErrorCount() > 0 {
				return errProblems(report.ViolationCount(), report.ErrorCount())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&useCache, "cache", false, "Skip files that were clean on the last run")
	cmd.Flags().BoolVar(&changed, "changed", false, "Only check files git reports as changed")
	cmd.Flags().BoolVar(&record, "record", false, "Append this run's totals to the project history")
	cmd.Flags().IntVar(&workers, "workers", 0, "Files processed in parallel (default: number of CPUs)")
	addOverrideFlags(cmd, &overrides)

	return cmd
}

func addOverrideFlags(cmd *cobra.Command, o *domain.ConfigOverrides) {
	cmd.Flags().StringVar(&o.Directive, "directive", "", "Directive to require, overriding .usedirective.yaml")
	cmd.Flags().StringVar(&o.Mode, "mode", "", "Blank-line mode after the prologue: always or never")
}

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
