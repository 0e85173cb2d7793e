package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/groomroom/groomroom/internal/adapters/outbound/history"
	"github.com/groomroom/groomroom/internal/adapters/outbound/tui"
	"github.com/groomroom/groomroom/internal/application"
	"github.com/groomroom/groomroom/internal/domain/report"
)

func newAnalyzeCmd(g *globalFlags) *cobra.Command {
	var (
		in          ticketInput
		dir         string
		mode        string
		jsonOutput  bool
		markdown    bool
		showHistory bool
		noHistory   bool
	)

	cmd := &cobra.Command{
		Use:   "analyze [ticket text]",
		Short: "Check a ticket against its Definition of Ready",
		Long:  "Analyse one ticket and report readiness status, DoR coverage, gaps, criteria rewrites, test scenarios and recommendations per role.",
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			hist := history.New()
			if showHistory {
				entries, err := hist.Load(absDir)
				if err != nil {
					return fmt.Errorf("loading history: %w", err)
				}
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
				return nil
			}

			m, err := parseModeFlag(mode)
			if err != nil {
				return err
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

			svc := application.NewGroomService(loader, enricher(cfg))
			r, err := svc.Analyze(cmd.Context(), application.Request{Dir: absDir, Ticket: ticket, Mode: m})
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}

			if !noHistory {
				_ = hist.Save(absDir, history.EntryFor(r, time.Now())) // best-effort
			}

			switch {
			case jsonOutput:
				return renderJSON(cmd, r)
			case markdown:
				fmt.Fprint(cmd.OutOrStdout(), report.RenderMarkdown(r, r.Mode))
			default:
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(r, r.Mode))
			}
			return nil
		},
	}

	in.register(cmd, true)
	cmd.Flags().StringVar(&dir, "dir", ".", "Directory holding .groomroom.yaml and run history")
	cmd.Flags().StringVar(&mode, "mode", "", "Output mode: actionable, insight or summary (default: configured mode)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "Output the report as Markdown")
	cmd.Flags().BoolVar(&showHistory, "history", false, "Show run history instead of analysing")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record this run")

	return cmd
}
