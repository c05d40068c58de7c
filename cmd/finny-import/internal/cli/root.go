package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/finny-import/internal/config"
	"github.com/MrJamesThe3rd/finny-import/internal/importer"
	"github.com/MrJamesThe3rd/finny-import/internal/ingest"
	"github.com/MrJamesThe3rd/finny-import/internal/logger"
)

// app holds what every subcommand needs, built once in PersistentPreRunE.
type app struct {
	cfg      *config.Config
	log      *slog.Logger
	importer *importer.Service

	verbose bool
}

// Execute runs the CLI and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "finny-import",
		Short: "Parse bank statement exports into normalized transactions",
		Long: `finny-import reads CSV statements in one of three layouts (spreadsheet,
open_finance, extrato), detects the layout from the header, and prints the
normalized transactions together with a diagnostic for every skipped row.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(stderr)
		},
	}

	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log debug output to stderr")

	root.AddCommand(
		newParseCmd(a),
		newDetectCmd(a),
		newTemplateCmd(),
		newTokenCmd(a),
	)

	return root
}

func (a *app) init(stderr io.Writer) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level := "warn"
	if a.verbose {
		level = "debug"
	}

	a.cfg = cfg
	a.log = logger.New(stderr, level, "text")
	a.importer = importer.NewService(
		ingest.NewParser(ingest.WithDefaultCategory(cfg.Import.DefaultCategory)),
		importer.WithMaxFileSize(cfg.Import.MaxFileSize),
		importer.WithLogger(a.log),
	)

	return nil
}
