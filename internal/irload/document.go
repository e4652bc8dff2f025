package irload

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

// Document is the on-disk description of a module. The same shape is
// accepted as YAML and as CUE.
type Document struct {
	// Module names the module.
	Module string `yaml:"module" json:"module"`

	// Globals are declared in order before any function.
	Globals []Global `yaml:"globals,omitempty" json:"globals,omitempty"`

	// Functions are created in order; the first block of each is its entry.
	Functions []Function `yaml:"functions" json:"functions"`
}

// Global declares a module-level value.
type Global struct {
	Name string `yaml:"name" json:"name"`

	// Kind is "let", "var" or "placeholder".
	Kind string `yaml:"kind" json:"kind"`

	// Type is the value's type text, e.g. "f32[2x3]".
	Type string `yaml:"type" json:"type"`

	// Init is an optional number. Tensor globals repeat it across the
	// shape. Placeholders take none.
	Init string `yaml:"init,omitempty" json:"init,omitempty"`
}

// Function describes one function body.
type Function struct {
	Name   string  `yaml:"name" json:"name"`
	Result string  `yaml:"result" json:"result"`
	Blocks []Block `yaml:"blocks" json:"blocks"`
}

// Block is a labelled instruction sequence.
type Block struct {
	Name         string        `yaml:"name" json:"name"`
	Args         []Argument    `yaml:"args,omitempty" json:"args,omitempty"`
	Instructions []Instruction `yaml:"instructions" json:"instructions"`
}

// Argument is a block parameter.
type Argument struct {
	Name string `yaml:"name" json:"name"`
	Type string `yaml:"type" json:"type"`
}

// Instruction is one operation. Only the fields its opcode reads are
// consulted.
type Instruction struct {
	// Name is the result name; empty for stores and terminators.
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	// Op is the opcode as printed, e.g. "relu", "gt", "mmul", "condbr".
	Op string `yaml:"op" json:"op"`

	// Operands are %local, @global or #<number>:<type> references.
	Operands []string `yaml:"operands,omitempty" json:"operands,omitempty"`

	// Axis is the concat axis.
	Axis int `yaml:"axis,omitempty" json:"axis,omitempty"`

	// Shape is the shapeCast target, e.g. "2x3".
	Shape string `yaml:"shape,omitempty" json:"shape,omitempty"`

	// To is the typeCast target data type, e.g. "f64".
	To string `yaml:"to,omitempty" json:"to,omitempty"`

	// Target is the br destination label.
	Target string `yaml:"target,omitempty" json:"target,omitempty"`

	// Then and Else are the condbr destination labels.
	Then string `yaml:"then,omitempty" json:"then,omitempty"`
	Else string `yaml:"else,omitempty" json:"else,omitempty"`
}

// Format selects a document syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatCUE  Format = "cue"
)

// FormatOf infers the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".cue":
		return FormatCUE, nil
	}
	return "", &LoadError{Code: ErrCodeUnknownFormat, Message: fmt.Sprintf("unsupported document %s: want .yaml, .yml or .cue", path)}
}

// ReadDocument reads and decodes the document at path.
func ReadDocument(path string) (*Document, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeReadFailed, Message: err.Error()}
	}
	return Decode(data, format, path)
}

// Decode parses data in the given format. filename only labels CUE
// positions in error messages.
func Decode(data []byte, format Format, filename string) (*Document, error) {
	var doc Document
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, &LoadError{Code: ErrCodeDecodeFailed, Message: fmt.Sprintf("parsing YAML: %v", err)}
		}
	case FormatCUE:
		ctx := cuecontext.New()
		v := ctx.CompileBytes(data, cue.Filename(filename))
		if err := v.Err(); err != nil {
			return nil, &LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}
		}
		if err := v.Validate(cue.Concrete(true)); err != nil {
			return nil, &LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("validating CUE value: %v", err)}
		}
		if err := v.Decode(&doc); err != nil {
			return nil, &LoadError{Code: ErrCodeDecodeFailed, Message: fmt.Sprintf("decoding CUE value: %v", err)}
		}
	default:
		return nil, &LoadError{Code: ErrCodeUnknownFormat, Message: fmt.Sprintf("unsupported format %q", format)}
	}
	if err := doc.validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (d *Document) validate() error {
	if d.Module == "" {
		return &LoadError{Code: ErrCodeMissingField, Message: "module name is required"}
	}
	for i, g := range d.Globals {
		if g.Name == "" || g.Kind == "" || g.Type == "" {
			return &LoadError{Code: ErrCodeMissingField, Where: fmt.Sprintf("global %d", i), Message: "name, kind and type are required"}
		}
	}
	for i, fn := range d.Functions {
		if fn.Name == "" || fn.Result == "" {
			return &LoadError{Code: ErrCodeMissingField, Where: fmt.Sprintf("function %d", i), Message: "name and result are required"}
		}
		for j, b := range fn.Blocks {
			if b.Name == "" {
				return &LoadError{Code: ErrCodeMissingField, Where: fmt.Sprintf("function %s, block %d", fn.Name, j), Message: "block name is required"}
			}
			for k, inst := range b.Instructions {
				if inst.Op == "" {
					return &LoadError{Code: ErrCodeMissingField, Where: fmt.Sprintf("function %s, block %s, instruction %d", fn.Name, b.Name, k), Message: "op is required"}
				}
			}
		}
	}
	return nil
}
