package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/tensorir/internal/ir"
	"github.com/roach88/tensorir/internal/irload"
)

// Error codes for failures the CLI reports itself. Document errors keep
// the loader's E0xx codes.
const (
	ErrCodeGeneric         = "E001" // Generic/unknown error
	ErrCodeUnknownFunction = "E020" // --function names no function
	ErrCodeMalformedFlow   = "E021" // Analysis rejected the control flow
	ErrCodeStore           = "E022" // Snapshot database error
	ErrCodeNotDominated    = "E023" // Verification found violations
)

// loadModule reads a module document and reports failures through f.
func loadModule(f *OutputFormatter, log *slog.Logger, path string) (*ir.Module, error) {
	m, err := irload.Load(path)
	if err != nil {
		report := &ErrorReport{Code: ErrCodeGeneric, Message: err.Error()}
		var le *irload.LoadError
		if errors.As(err, &le) {
			report = &ErrorReport{Code: le.Code, Message: le.Message, Where: le.Where}
			if le.Where != "" {
				report.Message = le.Where + ": " + le.Message
			}
		}
		return nil, f.Fail(ExitCommandError, report, err)
	}
	log.Debug("module loaded", "module", m.Name(), "path", path, "functions", m.FunctionCount())
	return m, nil
}

// selectFunctions returns the function called name, or every function
// when name is empty.
func selectFunctions(f *OutputFormatter, m *ir.Module, name string) ([]*ir.Function, error) {
	if name != "" {
		fn, ok := m.Function(name)
		if !ok {
			return nil, f.Fail(ExitCommandError, &ErrorReport{
				Code:     ErrCodeUnknownFunction,
				Message:  fmt.Sprintf("module %s has no function %s", m.Name(), name),
				Function: name,
			}, nil)
		}
		return []*ir.Function{fn}, nil
	}
	var fns []*ir.Function
	for fn := range m.Functions() {
		fns = append(fns, fn)
	}
	return fns, nil
}

// analysisError reports an analysis failure; malformed control flow gets
// its own code and names the offending function and block.
func analysisError(f *OutputFormatter, err error) error {
	report := &ErrorReport{Code: ErrCodeGeneric, Message: err.Error()}
	var ie *ir.Error
	if errors.As(err, &ie) {
		report.Message = ie.Message
		report.Function = ie.Function
		report.Block = ie.Block
		if ie.Code == ir.ErrCodeMalformedControlFlow {
			report.Code = ErrCodeMalformedFlow
		}
	}
	return f.Fail(ExitCommandError, report, err)
}

// storeError reports a snapshot database failure.
func storeError(f *OutputFormatter, err error) error {
	return f.Fail(ExitCommandError, &ErrorReport{Code: ErrCodeStore, Message: err.Error()}, err)
}
