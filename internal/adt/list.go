package adt

import (
	"fmt"
	"iter"
)

// Node is a handle to one position in a List.
//
// A node is valid for the list that handed it out until it is removed,
// and for no other list. When that list copies storage it shares with a
// clone, its earlier handles forward to the copied nodes.
type Node[T comparable] struct {
	value      T
	prev, next *Node[T]
	owner      *storage[T]
	fwd        *Node[T]
}

// Value returns the element stored at this position.
func (n *Node[T]) Value() T { return n.value }

// Next returns the following node, or nil at the tail.
func (n *Node[T]) Next() *Node[T] { return n.next }

// Prev returns the preceding node, or nil at the head.
func (n *Node[T]) Prev() *Node[T] { return n.prev }

// storage is the shared backing sequence. refs counts the List values
// currently pointing at it. Only owner hands out its nodes; owner is nil
// once the owning list has moved to a copy.
type storage[T comparable] struct {
	head, tail *Node[T]
	count      int
	refs       int
	owner      *List[T]
}

// List is an ordered, indexable sequence with copy-on-write sharing.
//
// Clone returns a list that shares storage with the receiver. The first
// mutation through either list copies the storage, so clones behave as
// independent values while a single owner mutates in O(1).
//
// A clone that does not own its storage copies it before handing out a
// node, so Front, Back and NodeAt count as mutations on clones.
//
// List is not safe for concurrent mutation. Independent clones may be
// iterated from different goroutines as long as nobody mutates them.
//
// The zero value is an empty list ready to use. A List must not be copied
// by value once used; use Clone.
type List[T comparable] struct {
	s *storage[T]
}

// NewList returns a list holding elems in order.
func NewList[T comparable](elems ...T) *List[T] {
	l := &List[T]{}
	for _, e := range elems {
		l.Append(e)
	}
	return l
}

// Len returns the number of elements.
func (l *List[T]) Len() int {
	if l.s == nil {
		return 0
	}
	return l.s.count
}

// IsEmpty reports whether the list has no elements.
func (l *List[T]) IsEmpty() bool { return l.Len() == 0 }

// Front returns the head node, or nil if the list is empty.
func (l *List[T]) Front() *Node[T] {
	if l.Len() == 0 {
		return nil
	}
	return l.owned().head
}

// Back returns the tail node, or nil if the list is empty.
func (l *List[T]) Back() *Node[T] {
	if l.Len() == 0 {
		return nil
	}
	return l.owned().tail
}

// IsShared reports whether the storage is currently shared with a clone.
func (l *List[T]) IsShared() bool {
	return l.s != nil && l.s.refs > 1
}

// Clone returns a logically independent copy sharing the same storage.
func (l *List[T]) Clone() *List[T] {
	s := l.store()
	s.refs++
	return &List[T]{s: s}
}

// Append inserts v at the tail and returns its node.
func (l *List[T]) Append(v T) *Node[T] {
	s := l.mutable()
	n := s.pushBack(v)
	s.check()
	return n
}

// NodeAt returns the node at index. It panics with IndexOutOfRange
// unless 0 <= index < Len.
func (l *List[T]) NodeAt(index int) *Node[T] {
	l.store().boundsCheck(index)
	return l.owned().nodeAt(index)
}

// At returns the element at index. Same bounds contract as NodeAt.
func (l *List[T]) At(index int) T {
	return l.store().nodeAt(index).value
}

// InsertAt splices v in front of the element currently at index.
// It panics with IndexOutOfRange unless 0 <= index < Len.
func (l *List[T]) InsertAt(v T, index int) *Node[T] {
	l.store().boundsCheck(index)
	s := l.mutable()
	n := s.insertBefore(v, s.nodeAt(index))
	s.check()
	return n
}

// InsertBefore splices v in front of other. The list is left unchanged
// and an ElementNotFound error is returned if other is absent.
func (l *List[T]) InsertBefore(v, other T) (*Node[T], error) {
	_, idx := l.store().find(other)
	if idx < 0 {
		return nil, notFound(other, "before")
	}
	s := l.mutable()
	n := s.insertBefore(v, s.nodeAt(idx))
	s.check()
	return n, nil
}

// InsertAfter splices v behind other. The list is left unchanged and an
// ElementNotFound error is returned if other is absent.
func (l *List[T]) InsertAfter(v, other T) (*Node[T], error) {
	_, idx := l.store().find(other)
	if idx < 0 {
		return nil, notFound(other, "after")
	}
	s := l.mutable()
	at := s.nodeAt(idx)
	var n *Node[T]
	if at.next == nil {
		n = s.pushBack(v)
	} else {
		n = s.insertBefore(v, at.next)
	}
	s.check()
	return n, nil
}

// Remove unlinks n in O(1). It panics with ForeignNode, leaving the list
// unchanged, if n was not handed out by this list or is already removed.
func (l *List[T]) Remove(n *Node[T]) {
	s := l.store()
	if s.owner == l && s.refs > 1 {
		s = l.mutable()
	}
	for n != nil && n.owner != s && n.fwd != nil {
		n = n.fwd
	}
	if n == nil || n.owner != s || s.owner != l {
		panic(&Error{Code: ErrCodeForeignNode, Message: "node does not belong to this list", Count: s.count})
	}
	s.unlink(n)
	s.check()
}

// RemoveAt removes and returns the element at index. Same bounds
// contract as NodeAt.
func (l *List[T]) RemoveAt(index int) T {
	l.store().boundsCheck(index)
	s := l.mutable()
	n := s.nodeAt(index)
	s.unlink(n)
	s.check()
	return n.value
}

// RemoveValue removes the first occurrence of v. It reports whether v
// was present.
func (l *List[T]) RemoveValue(v T) bool {
	if n, _ := l.store().find(v); n == nil {
		return false
	}
	s := l.mutable()
	n, _ := s.find(v)
	s.unlink(n)
	s.check()
	return true
}

// IndexOf returns the position of the first occurrence of v.
func (l *List[T]) IndexOf(v T) (int, bool) {
	if l.s == nil {
		return -1, false
	}
	_, idx := l.s.find(v)
	return idx, idx >= 0
}

// Contains reports whether v is in the list.
func (l *List[T]) Contains(v T) bool {
	_, ok := l.IndexOf(v)
	return ok
}

// All returns the elements head to tail. The sequence reads the list
// at the time it is ranged over and may be ranged over repeatedly.
// Removing the element just yielded is allowed; any other mutation
// during iteration is undefined.
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		if l.s == nil {
			return
		}
		for n := l.s.head; n != nil; {
			next := n.next
			if !yield(n.value) {
				return
			}
			n = next
		}
	}
}

// Backward returns the elements tail to head.
func (l *List[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		if l.s == nil {
			return
		}
		for n := l.s.tail; n != nil; {
			prev := n.prev
			if !yield(n.value) {
				return
			}
			n = prev
		}
	}
}

// Values returns the elements as a fresh slice.
func (l *List[T]) Values() []T {
	out := make([]T, 0, l.Len())
	for v := range l.All() {
		out = append(out, v)
	}
	return out
}

// Validate walks the list in both directions and checks that the links
// agree with the recorded count.
func (l *List[T]) Validate() error {
	s := l.store()
	forward := 0
	var last *Node[T]
	for n := s.head; n != nil; n = n.next {
		if n.prev != last {
			return &Error{Code: ErrCodeCorrupted, Message: fmt.Sprintf("broken back link at position %d", forward), Count: s.count}
		}
		last = n
		forward++
	}
	if last != s.tail {
		return &Error{Code: ErrCodeCorrupted, Message: "tail is not the last node", Count: s.count}
	}
	if forward != s.count {
		return &Error{Code: ErrCodeCorrupted, Message: fmt.Sprintf("traversal yields %d nodes", forward), Count: s.count}
	}
	return nil
}

func (l *List[T]) store() *storage[T] {
	if l.s == nil {
		l.s = &storage[T]{refs: 1, owner: l}
	}
	return l.s
}

// owned returns storage whose nodes l may hand out.
func (l *List[T]) owned() *storage[T] {
	if s := l.store(); s.owner == l {
		return s
	}
	return l.mutable()
}

// mutable returns storage owned by l and referenced by no other list.
// The owner of shared storage leaves it to the clones and forwards its
// nodes to the copy; anyone else takes a plain copy.
func (l *List[T]) mutable() *storage[T] {
	s := l.store()
	switch {
	case s.owner == l && s.refs == 1:
		return s
	case s.owner == l:
		l.s = s.copy(l, true)
		s.owner = nil
	default:
		l.s = s.copy(l, false)
	}
	s.refs--
	return l.s
}

func (s *storage[T]) copy(owner *List[T], forward bool) *storage[T] {
	c := &storage[T]{refs: 1, owner: owner}
	for n := s.head; n != nil; n = n.next {
		m := c.pushBack(n.value)
		if forward {
			n.fwd = m
		}
	}
	return c
}

func (s *storage[T]) pushBack(v T) *Node[T] {
	n := &Node[T]{value: v, prev: s.tail, owner: s}
	if s.tail != nil {
		s.tail.next = n
	} else {
		s.head = n
	}
	s.tail = n
	s.count++
	return n
}

func (s *storage[T]) insertBefore(v T, at *Node[T]) *Node[T] {
	n := &Node[T]{value: v, prev: at.prev, next: at, owner: s}
	if at.prev != nil {
		at.prev.next = n
	} else {
		s.head = n
	}
	at.prev = n
	s.count++
	return n
}

func (s *storage[T]) unlink(n *Node[T]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		s.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		s.tail = n.prev
	}
	n.prev, n.next, n.owner = nil, nil, nil
	s.count--
}

func (s *storage[T]) boundsCheck(index int) {
	if index < 0 || index >= s.count {
		panic(indexOutOfRange(index, s.count))
	}
}

func (s *storage[T]) nodeAt(index int) *Node[T] {
	s.boundsCheck(index)
	if index <= s.count/2 {
		n := s.head
		for i := 0; i < index; i++ {
			n = n.next
		}
		return n
	}
	n := s.tail
	for i := s.count - 1; i > index; i-- {
		n = n.prev
	}
	return n
}

func (s *storage[T]) find(v T) (*Node[T], int) {
	i := 0
	for n := s.head; n != nil; n = n.next {
		if n.value == v {
			return n, i
		}
		i++
	}
	return nil, -1
}

// check asserts that the list is empty iff both ends are absent.
func (s *storage[T]) check() {
	emptyEnds := s.head == nil && s.tail == nil
	halfLinked := (s.head == nil) != (s.tail == nil)
	if halfLinked || (s.count == 0) != emptyEnds || s.count < 0 {
		panic(&Error{Code: ErrCodeCorrupted, Message: "count and head/tail disagree", Count: s.count})
	}
}

func notFound[T comparable](v T, where string) *Error {
	return &Error{
		Code:    ErrCodeElementNotFound,
		Message: fmt.Sprintf("element to insert %s is not in the list: %v", where, v),
	}
}
