package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/tensorir/internal/analysis"
)

// VerifyResult is the JSON payload of the verify command.
type VerifyResult struct {
	Valid      bool              `json:"valid"`
	Violations []ViolationRecord `json:"violations,omitempty"`
}

// ViolationRecord is one operand read that its definition does not
// dominate.
type ViolationRecord struct {
	Function    string `json:"function"`
	Block       string `json:"block"`
	Instruction string `json:"instruction"`
	Operand     int    `json:"operand"`
	Use         string `json:"use"`
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <file>",
		Short: "Check that every use is dominated by its definition",
		Long: `Check every operand of every reachable instruction: local results must
be defined earlier in the same block or in a dominating block, and block
arguments must belong to a dominating block.

Exits with status 1 when a violation is found.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(rootOpts, args[0], cmd)
		},
	}
}

func runVerify(opts *RootOptions, path string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	log := opts.logger()
	m, err := loadModule(f, log, path)
	if err != nil {
		return err
	}

	cache := analysis.NewCache(analysis.WithLogger(log))
	result := VerifyResult{Valid: true}
	for fn := range m.Functions() {
		violations, err := analysis.VerifyDominance(cache, fn)
		if err != nil {
			return analysisError(f, err)
		}
		log.Debug("function verified", "function", fn.Name(), "violations", len(violations))
		for _, v := range violations {
			result.Violations = append(result.Violations, ViolationRecord{
				Function:    fn.Name(),
				Block:       v.User.Parent().Name(),
				Instruction: v.User.String(),
				Operand:     v.Operand,
				Use:         v.Use.String(),
			})
		}
	}
	result.Valid = len(result.Violations) == 0

	if result.Valid {
		return f.Emit(result, func(w io.Writer) {
			fmt.Fprintln(w, "✓ All uses dominated")
		})
	}

	first := result.Violations[0]
	report := &ErrorReport{
		Code:       ErrCodeNotDominated,
		Message:    fmt.Sprintf("%d use(s) not dominated by their definition", len(result.Violations)),
		Function:   first.Function,
		Block:      first.Block,
		Violations: result.Violations,
	}
	if f.Format == "json" {
		return f.Fail(ExitFailure, report, nil)
	}
	for _, v := range result.Violations {
		fmt.Fprintf(f.Writer, "✗ @%s %s: %s in %s does not dominate its use\n", v.Function, v.Block, v.Use, v.Instruction)
	}
	return NewExitError(ExitFailure, report.String())
}
