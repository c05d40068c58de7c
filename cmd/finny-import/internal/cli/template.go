package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/finny-import/internal/ingest"
)

func newTemplateCmd() *cobra.Command {
	var (
		out      string
		xlsxPath string
	)

	cmd := &cobra.Command{
		Use:       "template LAYOUT",
		Short:     "Write an example statement for a layout",
		Long:      "Prints the CSV template for spreadsheet, open_finance or extrato, or writes it with --out and --xlsx.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: layoutNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := ingest.ParseLayout(args[0])
			if err != nil {
				return err
			}

			content, err := ingest.Template(layout)
			if err != nil {
				return err
			}

			if xlsxPath != "" {
				if err := writeTemplateXLSX(xlsxPath, layout); err != nil {
					return err
				}
			}

			if out == "" {
				if xlsxPath != "" {
					return nil
				}

				_, err := fmt.Fprint(cmd.OutOrStdout(), content)

				return err
			}

			if err := os.WriteFile(out, []byte(content), 0o644); err != nil {
				return fmt.Errorf("write template: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Write the CSV template to this path instead of stdout")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Write the template as an .xlsx workbook to this path")

	return cmd
}

func layoutNames() []string {
	names := make([]string, len(ingest.Layouts))
	for i, l := range ingest.Layouts {
		names[i] = l.String()
	}

	return names
}
