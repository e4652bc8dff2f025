package irload

import (
	"errors"
	"fmt"
)

// LoadError reports why a document could not be turned into a module.
type LoadError struct {
	Code    string
	Message string

	// Where locates the problem inside the document, e.g.
	// "function main, block entry, instruction 2". Empty for file-level
	// failures.
	Where string
}

func (e *LoadError) Error() string {
	if e.Where != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Where, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error codes.
const (
	ErrCodeGeneric        = "E001" // Generic/unknown error
	ErrCodeReadFailed     = "E002" // File could not be read
	ErrCodeUnknownFormat  = "E003" // Extension is not .yaml, .yml or .cue
	ErrCodeDecodeFailed   = "E004" // YAML/CUE decoding failed
	ErrCodeBuildFailed    = "E005" // CUE evaluation failed
	ErrCodeMissingField   = "E006" // Required field absent
	ErrCodeInvalidType    = "E010" // Type or shape text does not parse
	ErrCodeUnknownOpcode  = "E011" // Opcode is not in the lexicon
	ErrCodeUnknownOperand = "E012" // Operand does not resolve
	ErrCodeInvalidLiteral = "E013" // Literal text does not parse
	ErrCodeDuplicateName  = "E014" // Name already declared in its scope
	ErrCodeUnknownBlock   = "E015" // Branch target does not exist
	ErrCodeInvalidInst    = "E016" // Instruction rejected by the IR
	ErrCodeArity          = "E017" // Wrong operand count for the opcode
)

// IsLoadError reports whether err is a *LoadError with the given code.
func IsLoadError(err error, code string) bool {
	var le *LoadError
	return errors.As(err, &le) && le.Code == code
}
