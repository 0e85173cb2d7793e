package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/groomroom/groomroom/internal/adapters/outbound/history"
	"github.com/groomroom/groomroom/internal/adapters/outbound/tui"
	"github.com/groomroom/groomroom/internal/application"
	"github.com/groomroom/groomroom/internal/domain"
)

// batchFile is the YAML layout read by `groomroom batch`.
type batchFile struct {
	Tickets []domain.Ticket `yaml:"tickets"`
}

func newBatchCmd(g *globalFlags) *cobra.Command {
	var (
		dir        string
		mode       string
		parallel   int
		jsonOutput bool
		noHistory  bool
	)

	cmd := &cobra.Command{
		Use:   "batch <tickets.yaml>",
		Short: "Analyse many tickets at once",
		Long:  "Analyse every ticket listed under `tickets:` in a YAML file (id, title, type, body) and print a readiness table.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			m, err := parseModeFlag(mode)
			if err != nil {
				return err
			}

			tickets, err := readBatchFile(args[0])
			if err != nil {
				return err
			}

			loader := g.loader()
			cfg, err := loader.Load(absDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			svc := application.NewGroomService(loader, enricher(cfg))
			reports, err := svc.AnalyzeBatch(cmd.Context(), absDir, tickets, m, parallel)
			if err != nil {
				return err
			}

			if !noHistory {
				hist := history.New()
				now := time.Now()
				for _, r := range reports {
					_ = hist.Save(absDir, history.EntryFor(r, now)) // best-effort
				}
			}

			if jsonOutput {
				return renderJSON(cmd, reports)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderBatch(reports))
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "Directory holding .groomroom.yaml and run history")
	cmd.Flags().StringVar(&mode, "mode", "", "Output mode: actionable, insight or summary")
	cmd.Flags().IntVarP(&parallel, "parallel", "p", 4, "Maximum tickets analysed concurrently")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output all reports as JSON")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record these runs")

	return cmd
}

func readBatchFile(path string) ([]domain.Ticket, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var bf batchFile
	if err := yaml.Unmarshal(data, &bf); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(bf.Tickets) == 0 {
		return nil, fmt.Errorf("%s lists no tickets", path)
	}
	return bf.Tickets, nil
}
