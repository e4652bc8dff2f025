package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/tensorir/internal/analysis"
	"github.com/roach88/tensorir/internal/ir"
	"github.com/roach88/tensorir/internal/store"
)

// DomOptions holds flags for the dom command.
type DomOptions struct {
	Function string
	Post     bool
	Database string
}

// NewDomCommand creates the dom command.
func NewDomCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DomOptions{}

	cmd := &cobra.Command{
		Use:   "dom <file>",
		Short: "Show dominator trees",
		Long: `Compute each function's dominator tree and print every reachable block
with its immediate dominator, in reverse post-order from the root.

With --post, print one post-dominator tree per exit block instead. With
--db, also store the trees in a snapshot database and report their run IDs.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDom(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Function, "function", "f", "", "only this function")
	cmd.Flags().BoolVar(&opts.Post, "post", false, "post-dominator trees")
	cmd.Flags().StringVar(&opts.Database, "db", "", "snapshot database to record the trees in")

	return cmd
}

func runDom(rootOpts *RootOptions, opts *DomOptions, path string, cmd *cobra.Command) error {
	f := rootOpts.formatter(cmd)
	log := rootOpts.logger()
	m, err := loadModule(f, log, path)
	if err != nil {
		return err
	}
	fns, err := selectFunctions(f, m, opts.Function)
	if err != nil {
		return err
	}

	cache := analysis.NewCache(analysis.WithLogger(log))
	var records []store.TreeRecord
	for _, fn := range fns {
		recs, err := treeRecords(cache, fn, opts.Post)
		if err != nil {
			return analysisError(f, err)
		}
		records = append(records, recs...)
	}

	if opts.Database != "" {
		s, err := store.Open(opts.Database)
		if err != nil {
			return storeError(f, err)
		}
		defer func() {
			if closeErr := s.Close(); closeErr != nil {
				log.Error("error closing database", "error", closeErr)
			}
		}()
		for i := range records {
			id, err := s.WriteDominatorTree(cmd.Context(), records[i])
			if err != nil {
				return storeError(f, err)
			}
			records[i].ID = id
			log.Info("tree recorded", "run", id, "function", records[i].Function, "kind", records[i].Kind, "root", records[i].Root)
		}
	}

	if records == nil {
		records = []store.TreeRecord{}
	}
	return f.Emit(records, func(w io.Writer) {
		for i, rec := range records {
			if i > 0 {
				fmt.Fprintln(w)
			}
			writeTree(w, rec)
		}
	})
}

func treeRecords(cache *analysis.Cache, fn *ir.Function, post bool) ([]store.TreeRecord, error) {
	if post {
		pd, err := analysis.Get(cache, fn, analysis.PostDominanceAnalysis{})
		if err != nil {
			return nil, err
		}
		return store.PostDominanceRecords(fn, pd), nil
	}
	tree, err := analysis.Get(cache, fn, analysis.DominanceAnalysis{})
	if err != nil {
		return nil, err
	}
	return []store.TreeRecord{store.DominanceRecord(fn, tree)}, nil
}

func writeTree(w io.Writer, rec store.TreeRecord) {
	fmt.Fprintf(w, "func @%s %s root=%s\n", rec.Function, rec.Kind, rec.Root)
	if rec.ID != "" {
		fmt.Fprintf(w, "  run: %s\n", rec.ID)
	}
	for _, n := range rec.Nodes {
		fmt.Fprintf(w, "  %s: %s\n", n.Block, n.Idom)
	}
}
