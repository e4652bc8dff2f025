package analysis

import (
	"fmt"

	"github.com/roach88/tensorir/internal/ir"
)

// Violation is an operand whose value is not available where it is used.
type Violation struct {
	// User is the instruction reading the operand.
	User *ir.Instruction

	// Operand is the offending operand index.
	Operand int

	// Use is the operand itself.
	Use ir.Use
}

// String returns e.g. "exit: %v in return %v does not dominate its use".
func (v Violation) String() string {
	return fmt.Sprintf("%s: %s in %s does not dominate its use", v.User.Parent().Name(), v.Use, v.User)
}

// VerifyDominance checks that every operand in a reachable block is
// available at its user. Unreachable blocks are not checked.
func VerifyDominance(c *Cache, fn *ir.Function) ([]Violation, error) {
	t, err := Get(c, fn, DominanceAnalysis{})
	if err != nil {
		return nil, err
	}
	var out []Violation
	for b := range fn.Blocks() {
		if !t.Contains(b) {
			continue
		}
		for inst := range b.Instructions() {
			for i, u := range inst.Operands() {
				if !t.ProperlyDominatesUse(u, inst) {
					out = append(out, Violation{User: inst, Operand: i, Use: u})
				}
			}
		}
	}
	return out, nil
}
