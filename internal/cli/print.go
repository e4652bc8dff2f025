package cli

import (
	"io"

	"github.com/spf13/cobra"
)

// ModuleText is the JSON payload of the print command.
type ModuleText struct {
	Module string `json:"module"`
	Text   string `json:"text"`
}

// NewPrintCommand creates the print command.
func NewPrintCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "print <file>",
		Short: "Print a module document as IR text",
		Long: `Load a YAML or CUE module document and print its IR.

The output is the canonical text form: globals first, then each function
with its labelled blocks.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrint(rootOpts, args[0], cmd)
		},
	}
}

func runPrint(opts *RootOptions, path string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	m, err := loadModule(f, opts.logger(), path)
	if err != nil {
		return err
	}
	text := m.String()
	return f.Emit(ModuleText{Module: m.Name(), Text: text}, func(w io.Writer) {
		io.WriteString(w, text)
	})
}
