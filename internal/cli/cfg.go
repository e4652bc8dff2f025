package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/tensorir/internal/analysis"
	"github.com/roach88/tensorir/internal/ir"
)

// CFGOptions holds flags for the cfg command.
type CFGOptions struct {
	Function string
}

// FunctionCFG is the JSON form of one function's control-flow graph.
type FunctionCFG struct {
	Function         string       `json:"function"`
	Entry            string       `json:"entry"`
	Exits            []string     `json:"exits"`
	Blocks           []BlockEdges `json:"blocks"`
	ReversePostOrder []string     `json:"reverse_post_order"`
	Loops            [][]string   `json:"loops"`
}

// BlockEdges lists a block's neighbours.
type BlockEdges struct {
	Block        string   `json:"block"`
	Successors   []string `json:"successors"`
	Predecessors []string `json:"predecessors"`
}

// NewCFGCommand creates the cfg command.
func NewCFGCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CFGOptions{}

	cmd := &cobra.Command{
		Use:   "cfg <file>",
		Short: "Show control-flow graphs",
		Long: `Show each function's control-flow graph: the edges out of every block,
the reverse post-order from the entry block, and the loops.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCFG(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Function, "function", "f", "", "only this function")

	return cmd
}

func runCFG(rootOpts *RootOptions, opts *CFGOptions, path string, cmd *cobra.Command) error {
	f := rootOpts.formatter(cmd)
	m, err := loadModule(f, rootOpts.logger(), path)
	if err != nil {
		return err
	}
	fns, err := selectFunctions(f, m, opts.Function)
	if err != nil {
		return err
	}

	cache := analysis.NewCache(analysis.WithLogger(rootOpts.logger()))
	results := make([]FunctionCFG, 0, len(fns))
	for _, fn := range fns {
		res, err := describeCFG(cache, fn)
		if err != nil {
			return analysisError(f, err)
		}
		results = append(results, res)
	}

	return f.Emit(results, func(w io.Writer) {
		for i, res := range results {
			if i > 0 {
				fmt.Fprintln(w)
			}
			writeCFG(w, res)
		}
	})
}

func describeCFG(cache *analysis.Cache, fn *ir.Function) (FunctionCFG, error) {
	premise, err := analysis.Get(cache, fn, analysis.PremiseAnalysis{})
	if err != nil {
		return FunctionCFG{}, err
	}
	g, err := analysis.Get(cache, fn, analysis.CFGAnalysis{})
	if err != nil {
		return FunctionCFG{}, err
	}
	loops, err := analysis.Get(cache, fn, analysis.LoopAnalysis{})
	if err != nil {
		return FunctionCFG{}, err
	}

	res := FunctionCFG{
		Function:         fn.Name(),
		Entry:            premise.Entry.Name(),
		Exits:            labels(premise.Exits),
		ReversePostOrder: labels(g.ReversePostOrder(premise.Entry)),
		Loops:            make([][]string, len(loops)),
	}
	for _, b := range g.Blocks() {
		res.Blocks = append(res.Blocks, BlockEdges{
			Block:        b.Name(),
			Successors:   labels(g.Successors(b)),
			Predecessors: labels(g.Predecessors(b)),
		})
	}
	for i, l := range loops {
		res.Loops[i] = labels(l.Blocks)
	}
	return res, nil
}

func writeCFG(w io.Writer, res FunctionCFG) {
	fmt.Fprintf(w, "func @%s\n", res.Function)
	for _, b := range res.Blocks {
		if len(b.Successors) == 0 {
			fmt.Fprintf(w, "  %s\n", b.Block)
			continue
		}
		fmt.Fprintf(w, "  %s -> %s\n", b.Block, strings.Join(b.Successors, ", "))
	}
	fmt.Fprintf(w, "  entry: %s\n", res.Entry)
	fmt.Fprintf(w, "  exits: %s\n", strings.Join(res.Exits, ", "))
	fmt.Fprintf(w, "  rpo: %s\n", strings.Join(res.ReversePostOrder, ", "))
	if len(res.Loops) == 0 {
		fmt.Fprintln(w, "  loops: none")
		return
	}
	loops := make([]string, len(res.Loops))
	for i, l := range res.Loops {
		loops[i] = "{" + strings.Join(l, ", ") + "}"
	}
	fmt.Fprintf(w, "  loops: %s\n", strings.Join(loops, " "))
}

func labels(blocks []*ir.BasicBlock) []string {
	out := make([]string, len(blocks))
	for i, b := range blocks {
		out[i] = b.Name()
	}
	return out
}
