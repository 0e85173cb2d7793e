package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/groomroom/groomroom/internal/adapters/outbound/config"
	"github.com/groomroom/groomroom/internal/domain"
)

func newInitCmd() *cobra.Command {
	var (
		mode  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a .groomroom.yaml configuration file",
		Long:  "Create a commented .groomroom.yaml with the default mode, vocabulary examples and enrichment settings.",
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

			m, err := domain.ParseMode(mode)
			if err != nil {
				return err
			}

			if err := os.WriteFile(dest, []byte(config.Starter(m)), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.FileName)
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "actionable", "Default output mode (actionable, insight, summary)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .groomroom.yaml")

	return cmd
}
