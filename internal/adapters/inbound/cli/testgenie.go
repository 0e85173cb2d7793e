package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/groomroom/groomroom/internal/application"
)

func newTestGenieCmd(g *globalFlags) *cobra.Command {
	var (
		file       string
		title      string
		dir        string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "testgenie [criteria]",
		Short: "Generate test scenarios from acceptance criteria",
		Long:  "Turn acceptance criteria into positive, negative and error test scenarios, each traced back to its criterion.",
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			text := strings.Join(args, "\n")
			if file != "" {
				if text, err = readSource(cmd, file); err != nil {
					return err
				}
			}

			svc := application.NewTestGenieService(g.loader())
			res, err := svc.Generate(absDir, text, title)
			if err != nil {
				return err
			}

			if jsonOutput {
				return renderJSON(cmd, res)
			}
			fmt.Fprint(cmd.OutOrStdout(), res.Markdown())
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read criteria from a file (- for stdin)")
	cmd.Flags().StringVar(&title, "title", "", "Feature or ticket title")
	cmd.Flags().StringVar(&dir, "dir", ".", "Directory holding .groomroom.yaml")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output scenarios as JSON")

	return cmd
}
