package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abdidvp/usedirective/internal/adapters/outbound/config"
	"github.com/abdidvp/usedirective/internal/domain"
)

func newInitCmd() *cobra.Command {
	var (
		directive string
		mode      string
		force     bool
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a .usedirective.yaml configuration file",
		Long:  "Create a .usedirective.yaml requiring the given directive, with the optional settings listed as comments.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			dest := filepath.Join(absPath, config.FileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
				}
			}

			if directive == "" {
				return fmt.Errorf("--directive: %w", domain.ErrMissingDirective)
			}

			content := generateConfig(directive, mode)

			// The template must load back cleanly.
			if _, err := config.Parse([]byte(content)); err != nil {
				return err
			}

			if err := os.WriteFile(dest, []byte(content), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.FileName)
			return nil
		},
	}

	cmd.Flags().StringVar(&directive, "directive", "use client", "Directive every file must start with")
	cmd.Flags().StringVar(&mode, "mode", "always", "Blank line after the prologue: always or never")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .usedirective.yaml")

	return cmd
}

func generateConfig(directive, mode string) string {
	return fmt.Sprintf(`# usedirective configuration

require_directive:
  directive: %q
  # ignore:
  #   - "**/pages/**"
  # ignored_directives: ["use strict"]
  # require_exact: false
  # require_one_of: ["use client", "use server"]
  # extensions: [jsx, tsx]
  # include_node_modules: false

blank_line_after_directive:
  mode: %s
`, directive, mode)
}
