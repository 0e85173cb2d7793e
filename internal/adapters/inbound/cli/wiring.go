package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/groomroom/groomroom/internal/adapters/outbound/cache"
	"github.com/groomroom/groomroom/internal/adapters/outbound/config"
	"github.com/groomroom/groomroom/internal/adapters/outbound/jira"
	"github.com/groomroom/groomroom/internal/adapters/outbound/llm"
	"github.com/groomroom/groomroom/internal/application"
	"github.com/groomroom/groomroom/internal/domain"
	"github.com/groomroom/groomroom/internal/logging"
)

// loader returns the config loader honouring --config.
func (g *globalFlags) loader() *config.YAMLLoader {
	if g.configPath != "" {
		return config.NewWithPath(g.configPath)
	}
	return config.New()
}

// enricher builds the Azure OpenAI enricher when enrichment is switched on
// and credentials are present. Returns nil otherwise.
func enricher(cfg domain.Config) domain.Enricher {
	if !cfg.Enrichment.Enabled {
		return nil
	}
	az, err := llm.NewAzureEnricher(cfg.LLM, config.LLMKey(), nil)
	if err != nil {
		logging.New("cli").Warn("enrichment enabled but not configured", "error", err)
		return nil
	}
	return llm.NewResilientEnricher(az, llm.ResilienceFromConfig(cfg.Enrichment))
}

// ticketInput collects the flags every ticket-reading command shares.
type ticketInput struct {
	file    string
	jiraKey string
	refresh bool
	id      string
	title   string
	typ     string
}

func (in *ticketInput) register(cmd *cobra.Command, withJira bool) {
	cmd.Flags().StringVarP(&in.file, "file", "f", "", "Read ticket text from a file (- for stdin)")
	cmd.Flags().StringVar(&in.id, "id", "", "Ticket key, e.g. SHOP-123")
	cmd.Flags().StringVar(&in.title, "title", "", "Ticket summary line")
	cmd.Flags().StringVar(&in.typ, "type", "", "Issue type from the tracker (Story, Bug, Task, Feature)")
	if withJira {
		cmd.Flags().StringVar(&in.jiraKey, "jira", "", "Fetch the ticket from Jira by key")
		cmd.Flags().BoolVar(&in.refresh, "refresh", false, "Ignore the cached copy of a Jira ticket")
	}
}

// load resolves the ticket from Jira, a file, stdin or the positional
// arguments, in that order. Explicit flags override fetched values.
// Jira tickets are cached under dir.
func (in *ticketInput) load(ctx context.Context, cmd *cobra.Command, args []string, dir string, cfg domain.Config) (domain.Ticket, error) {
	var t domain.Ticket

	switch {
	case in.jiraKey != "":
		client, err := jira.New(cfg.Jira, config.JiraToken())
		if err != nil {
			return t, err
		}
		svc := application.NewTicketService(client, cache.New(), cfg.Jira.BaseURL)
		t, err = svc.Fetch(ctx, dir, in.jiraKey, in.refresh)
		if err != nil {
			return t, err
		}
	case in.file != "":
		body, err := readSource(cmd, in.file)
		if err != nil {
			return t, err
		}
		t.Body = body
	case len(args) > 0:
		t.Body = strings.Join(args, " ")
	default:
		return t, errNoInput
	}

	if in.id != "" {
		t.ID = in.id
	}
	if in.title != "" {
		t.Title = in.title
	}
	if in.typ != "" {
		t.Type = in.typ
	}
	return t, nil
}

func readSource(cmd *cobra.Command, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

func parseModeFlag(s string) (domain.Mode, error) {
	if s == "" {
		return "", nil
	}
	return domain.ParseMode(s)
}

var errNoInput = errors.New("no ticket text given (pass text, --file or --jira)")

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
