package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/groomroom/groomroom/internal/adapters/outbound/tui"
	"github.com/groomroom/groomroom/internal/application"
	"github.com/groomroom/groomroom/internal/domain"
	"github.com/groomroom/groomroom/internal/domain/classify"
	"github.com/groomroom/groomroom/internal/domain/extract"
)

// fieldsOutput is the --json payload of `groomroom fields`.
type fieldsOutput struct {
	CardType domain.CardType   `json:"card_type"`
	Required []domain.FieldKey `json:"required"`
	Fields   []domain.Field    `json:"fields"`
}

func newFieldsCmd(g *globalFlags) *cobra.Command {
	var (
		in         ticketInput
		dir        string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "fields [ticket text]",
		Short: "List which ticket sections were found",
		Long:  "Extract the ticket's sections and show each as present, placeholder or absent, marking the fields its card type requires.",
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			loader := g.loader()
			svc := application.NewGroomService(loader, nil)
			st, err := svc.LoadSettings(absDir)
			if err != nil {
				return err
			}

			ticket, err := in.load(cmd.Context(), cmd, args, absDir, st.Config)
			if err != nil {
				return err
			}

			fields := extract.New(st.Vocabulary).Extract(ticket.Text())
			ct := classify.Classify(ticket, fields, st.Vocabulary)
			required := classify.RequiredFields(ct)

			if jsonOutput {
				out := fieldsOutput{CardType: ct, Required: required}
				for _, k := range domain.AllFields {
					out.Fields = append(out.Fields, fields.Get(k))
				}
				return renderJSON(cmd, out)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderFields(fields, ct, required))
			return nil
		},
	}

	in.register(cmd, true)
	cmd.Flags().StringVar(&dir, "dir", ".", "Directory holding .groomroom.yaml")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output fields as JSON")

	return cmd
}
