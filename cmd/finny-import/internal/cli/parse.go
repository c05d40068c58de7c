package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newParseCmd(a *app) *cobra.Command {
	var (
		output   string
		xlsxPath string
	)

	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Parse a statement and print the normalized transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseFormat(output)
			if err != nil {
				return err
			}

			path := args[0]

			file, err := os.Open(path)
			if err != nil {
				return err
			}
			defer file.Close()

			info, err := file.Stat()
			if err != nil {
				return err
			}

			if v := a.importer.Validate(path, info.Size()); !v.Valid {
				return fmt.Errorf("%s: %s", path, v.Error)
			}

			report, err := a.importer.Import(cmd.Context(), filepath.Base(path), file)
			if err != nil {
				return err
			}

			if xlsxPath != "" {
				if err := writeTransactionsXLSX(xlsxPath, report.Transactions); err != nil {
					return err
				}

				a.log.Info("wrote workbook", "path", xlsxPath)
			}

			return write(cmd.OutOrStdout(), f, toReportOut(report))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", string(formatJSON), "Output format: json or yaml")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Also write the transactions to this .xlsx workbook")

	return cmd
}

func newDetectCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "detect FILE",
		Short: "Report the layout of a statement without parsing its rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseFormat(output)
			if err != nil {
				return err
			}

			path := args[0]

			file, err := os.Open(path)
			if err != nil {
				return err
			}
			defer file.Close()

			d, err := a.importer.Detect(filepath.Base(path), file)
			if err != nil {
				return err
			}

			return write(cmd.OutOrStdout(), f, detectOut{
				File:            path,
				FilenameLayout:  string(d.FilenameLayout),
				FilenameMatched: d.FilenameMatched,
				Layout:          d.Classification.Layout.String(),
				Columns:         d.Classification.Columns,
				DataStartLine:   d.Classification.DataStartLine,
				Diagnostics:     toDiagnosticsOut(d.Classification.Diagnostics),
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", string(formatJSON), "Output format: json or yaml")

	return cmd
}
