package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/usedirective/internal/adapters/outbound/tui"
	"github.com/abdidvp/usedirective/internal/application"
	"github.com/abdidvp/usedirective/internal/domain"
)

func newFixCmd(root *rootOptions) *cobra.Command {
	var (
		dryRun     bool
		jsonOutput bool
		changed    bool
		overrides  domain.ConfigOverrides
	)

	cmd := &cobra.Command{
		Use:   "fix [path]",
		Short: "Insert missing directives and normalize the blank line",
		Long:  "Apply every fixable problem under path, re-checking each file until it is clean.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			svc := newFixService(root.logger)
			report, err := svc.FixProject(cmd.Context(), path, application.FixOptions{
				RunOptions: application.RunOptions{Overrides: overrides, Changed: changed},
				DryRun:     dryRun,
			})
			if err != nil {
				return fmt.Errorf("fix failed: %w", err)
			}

			if jsonOutput {
				if err := renderJSON(cmd, report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderFixReport(report))
			}

			var failed, unsettled int
			for _, f := range report.Files {
				switch {
				case f.Error != "":
					failed++
				case !f.Converged:
					unsettled++
				}
			}
			if failed > 0 || unsettled > 0 {
				return fmt.Errorf("%d files could not be fixed, %d did not settle", failed, unsettled)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would change without writing files")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&changed, "changed", false, "Only fix files git reports as changed")
	addOverrideFlags(cmd, &overrides)

	return cmd
}
