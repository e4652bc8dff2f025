// Package ir implements the tensor program graph: modules own globals and
// functions, functions own basic blocks, basic blocks own instructions.
//
// IDENTITY:
//
// Every function, block, instruction, argument and definition is a
// pointer with a unique ID minted at creation. Two nodes with identical
// fields are still different nodes. Maps and sets key on the pointer.
//
// OWNERSHIP:
//
// Children hold a back-reference to their parent for lookup only. A node
// sits in at most one parent list; inserting an owned node panics with
// AlreadyOwned and the only way to delete a node is to remove it from
// its parent. Ordered lists are adt.List values, so snapshots taken with
// BlockList or InstructionList are cheap and never observe later edits.
//
// ERRORS:
//
// Structural misuse (stale parents, duplicate names, double ownership,
// bad operands) panics with *Error. Recoverable failures such as a
// missing anchor for InsertBefore are returned.
package ir
