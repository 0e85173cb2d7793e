package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/groomroom/groomroom/internal/application"
)

func newRoastCmd(g *globalFlags) *cobra.Command {
	var (
		in         ticketInput
		dir        string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "roast [ticket text]",
		Short: "Roast a ticket's gaps (for retros)",
		Long:  "EpicRoast: a light-hearted critique of everything the ticket leaves out.",
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			loader := g.loader()
			cfg, err := loader.Load(absDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			ticket, err := in.load(cmd.Context(), cmd, args, absDir, cfg)
			if err != nil {
				return err
			}

			svc := application.NewRoastService(loader, enricher(cfg))
			roast, err := svc.Roast(cmd.Context(), absDir, ticket)
			if err != nil {
				return fmt.Errorf("roast failed: %w", err)
			}

			if jsonOutput {
				return renderJSON(cmd, roast)
			}
			fmt.Fprint(cmd.OutOrStdout(), roast.Markdown())
			return nil
		},
	}

	in.register(cmd, true)
	cmd.Flags().StringVar(&dir, "dir", ".", "Directory holding .groomroom.yaml")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the roast as JSON")

	return cmd
}
