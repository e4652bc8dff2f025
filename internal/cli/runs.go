package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/tensorir/internal/store"
)

// RunsOptions holds flags for the runs command.
type RunsOptions struct {
	Module string
	Show   string
}

// NewRunsCommand creates the runs command.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunsOptions{}

	cmd := &cobra.Command{
		Use:   "runs <db>",
		Short: "List stored dominator trees",
		Long: `List the dominator tree snapshots recorded by "dom --db", oldest first.

With --show, print the tree stored under one run ID instead.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRuns(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Module, "module", "m", "", "only runs of this module")
	cmd.Flags().StringVar(&opts.Show, "show", "", "print the tree stored under this run ID")

	return cmd
}

func runRuns(rootOpts *RootOptions, opts *RunsOptions, dbPath string, cmd *cobra.Command) error {
	f := rootOpts.formatter(cmd)
	s, err := store.Open(dbPath)
	if err != nil {
		return storeError(f, err)
	}
	defer s.Close()

	if opts.Show != "" {
		rec, err := s.ReadDominatorTree(cmd.Context(), opts.Show)
		if err != nil {
			return storeError(f, fmt.Errorf("run %s: %w", opts.Show, err))
		}
		return f.Emit(rec, func(w io.Writer) { writeTree(w, rec) })
	}

	runs, err := s.ListRuns(cmd.Context(), opts.Module)
	if err != nil {
		return storeError(f, err)
	}
	return f.Emit(runs, func(w io.Writer) {
		if len(runs) == 0 {
			fmt.Fprintln(w, "no runs")
			return
		}
		for _, r := range runs {
			fmt.Fprintf(w, "%s  %s.%s  %s root=%s gen=%d\n", r.ID, r.Module, r.Function, r.Kind, r.Root, r.Generation)
		}
	})
}
