// Package adt provides the ordered ownership list used by the IR.
//
// A Function keeps its basic blocks in a List and a BasicBlock keeps its
// instructions in one. Lists give O(1) append and O(1) removal by node
// handle, O(index) positional access, and copy-on-write sharing through
// Clone.
package adt
