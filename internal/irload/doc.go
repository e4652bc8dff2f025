// Package irload reads module documents written in YAML or CUE and
// lowers them to IR through the builder.
//
// A document lists globals and functions; each function lists labelled
// blocks with optional arguments and a sequence of instructions. Operands
// are written %local, @global or #<number>:<type>:
//
//	module: demo
//	functions:
//	  - name: main
//	    result: f32[4]
//	    blocks:
//	      - name: entry
//	        args: [{name: x, type: "f32[4]"}]
//	        instructions:
//	          - {name: r, op: relu, operands: ["%x"]}
//	          - {op: return, operands: ["%r"]}
//
// Every failure is reported as a *LoadError with an E0xx code; malformed
// input never panics.
package irload
