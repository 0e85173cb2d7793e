package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/groomroom/groomroom/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
)

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
	logFormat  string
	logFile    string

	logCloser io.Closer
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "groomroom",
		Short: "Is this ticket ready to pick up?",
		Long:  "GroomRoom checks Jira tickets against a Definition of Ready and suggests user stories, acceptance criteria, test scenarios and role-tagged recommendations.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.initLogging(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if g.logCloser != nil {
				return g.logCloser.Close()
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&g.configPath, "config", "", "Path to .groomroom.yaml (defaults to the working directory)")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&g.logFormat, "log-format", "text", "Log format (text, json)")
	cmd.PersistentFlags().StringVar(&g.logFile, "log-file", "", "Write logs to a rotating file instead of stderr")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newAnalyzeCmd(g))
	cmd.AddCommand(newBatchCmd(g))
	cmd.AddCommand(newTestGenieCmd(g))
	cmd.AddCommand(newRoastCmd(g))
	cmd.AddCommand(newFieldsCmd(g))
	cmd.AddCommand(newMCPCmd(g))
	cmd.AddCommand(newInitCmd())
	return cmd
}

func (g *globalFlags) initLogging(cmd *cobra.Command) error {
	level, err := logging.ParseLevel(g.logLevel)
	if err != nil {
		return err
	}
	switch g.logFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (valid: text, json)", g.logFormat)
	}

	w := cmd.ErrOrStderr()
	if g.logFile != "" {
		fw := logging.FileWriter(g.logFile)
		g.logCloser = fw
		w = fw
	}
	logging.Init(level, g.logFormat, w)
	return nil
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
