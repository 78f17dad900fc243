package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vzwadmin/beheer/internal/database/rapportages"
	"github.com/vzwadmin/beheer/internal/entrypoint"
	"github.com/vzwadmin/beheer/internal/reports"
)

type reportOptions struct {
	jaar int
	out  string
}

func newReportCmd(a *app) *cobra.Command {
	var opts reportOptions

	cmd := &cobra.Command{
		Use:   "report <naam>",
		Short: "Export a report as JSON or an xlsx workbook",
		Long: "Available reports:\n  " + strings.Join(reports.Names(), "\n  ") + `

Without --out the report is printed as JSON. An --out path ending in .xlsx
writes a workbook; a bare file name is placed in REPORTS_OUTPUT_DIR.`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, a, args[0], opts)
		},
	}

	cmd.Flags().IntVar(&opts.jaar, "jaar", 0, "Restrict to projects of this year")
	cmd.Flags().StringVar(&opts.out, "out", "", "Write to this file instead of stdout")
	return cmd
}

func runReport(cmd *cobra.Command, a *app, name string, opts reportOptions) error {
	if !isReport(name) {
		return withCode(exitUsage, fmt.Errorf("%w: %s", reports.ErrUnknownReport, name))
	}
	if opts.jaar != 0 && (opts.jaar < 1900 || opts.jaar > 2999) {
		return withCode(exitUsage, fmt.Errorf("invalid --jaar %d", opts.jaar))
	}

	db, err := entrypoint.OpenDatabase(a.cfg, a.logger)
	if err != nil {
		return withCode(exitDB, err)
	}
	defer db.Close()

	svc := reports.NewService(rapportages.NewRepository(db.DB))
	table, err := svc.Run(cmd.Context(), name, reports.Filter{Jaar: opts.jaar})
	if errors.Is(err, reports.ErrUnknownReport) {
		return withCode(exitUsage, err)
	}
	if err != nil {
		return withCode(exitDB, err)
	}

	if opts.out == "" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(table)
	}

	path := opts.out
	if filepath.Base(path) == path && a.cfg.Reports.OutputDir != "" {
		path = filepath.Join(a.cfg.Reports.OutputDir, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		err = reports.WriteXLSX(f, name, table)
	} else {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		err = enc.Encode(table)
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	a.logger.Info().Str("report", name).Str("path", path).Int("rows", len(table.Rows)).Msg("report written")
	return nil
}

func isReport(name string) bool {
	for _, n := range reports.Names() {
		if n == name {
			return true
		}
	}
	return false
}
