package cli

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/vzwadmin/beheer/internal/entrypoint"
	"github.com/vzwadmin/beheer/internal/importers"
	"github.com/vzwadmin/beheer/internal/seeding"
)

type seedOptions struct {
	importDir string
	outputDir string
	readonly  bool
	dryRun    bool
	stages    []string
}

func newSeedCmd(a *app) *cobra.Command {
	var opts seedOptions

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the database from the legacy export",
		Long: `Seed reads the legacy JSON/CSV export and writes it to the database, stage
by stage. Every record that cannot be imported is reported as a diagnostic
in <stage>-diagnostics.json in the output directory; --readonly suppresses
those files and --dry-run rolls every database write back.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, a, opts)
		},
	}

	cmd.Flags().StringVar(&opts.importDir, "import-dir", "", "Directory with the legacy export (default IMPORT_DIR)")
	cmd.Flags().StringVar(&opts.outputDir, "output-dir", "", "Directory for diagnostics and lookup files (default OUTPUT_DIR)")
	cmd.Flags().BoolVar(&opts.readonly, "readonly", false, "Do not write diagnostics or lookup files")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Run every stage in a transaction that is rolled back")
	cmd.Flags().StringSliceVar(&opts.stages, "stage", nil, "Run only the named stage; repeatable")
	return cmd
}

func runSeed(cmd *cobra.Command, a *app, opts seedOptions) error {
	ctx := cmd.Context()

	importDir := a.cfg.Import.Dir
	if opts.importDir != "" {
		importDir = opts.importDir
	}
	if opts.outputDir != "" {
		a.cfg.Output.Driver = "fs"
		a.cfg.Output.Dir = opts.outputDir
	}

	db, err := entrypoint.OpenDatabase(a.cfg, a.logger)
	if err != nil {
		return withCode(exitDB, err)
	}
	defer db.Close()

	sink, err := entrypoint.OpenSink(ctx, a.cfg)
	if err != nil {
		return withCode(exitConfig, err)
	}

	svc := seeding.NewService(db.DB, sink, a.logger)
	known := svc.Stages()
	for _, s := range opts.stages {
		if !slices.Contains(known, s) {
			return withCode(exitUsage, fmt.Errorf("unknown stage %q, expected one of: %s", s, strings.Join(known, ", ")))
		}
	}

	run, result, err := svc.Run(ctx, seeding.Request{
		ImportDir: importDir,
		Readonly:  opts.readonly,
		DryRun:    opts.dryRun,
		Stages:    opts.stages,
	})
	if run != nil {
		printResult(cmd.OutOrStdout(), run.ID, result)
	}
	switch {
	case err == nil:
		return nil
	case run == nil:
		return withCode(exitDB, err)
	case errors.Is(err, importers.ErrUnknownStage):
		return withCode(exitUsage, err)
	default:
		return withCode(exitStage, err)
	}
}

func printResult(w io.Writer, runID string, result importers.Result) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "run %s\n", runID)
	fmt.Fprintln(tw, "STAGE\tRECORDS\tCREATED\tUPDATED\tDELETED\tERRORS\tWARNINGS\tDURATION")
	for _, s := range result.Stages {
		if s.Skipped {
			fmt.Fprintf(tw, "%s\tskipped\t\t\t\t\t\t\n", s.Name)
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t%d\t%s\n",
			s.Name, s.Records, s.Created, s.Updated, s.Deleted,
			s.Diagnostics.Errors, s.Diagnostics.Warnings, s.Duration.Round(time.Millisecond))
	}
	fmt.Fprintf(tw, "total\t\t\t\t\t%d\t%d\t\n", result.Totals.Errors, result.Totals.Warnings)
	tw.Flush()
}
