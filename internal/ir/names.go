package ir

import (
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// namespace maps names to the node that declared them within one scope.
//
// Names are NFC-normalized before comparison so that canonically
// equivalent spellings collide.
type namespace struct {
	scope   string
	entries map[string]any
}

func newNamespace(scope string) namespace {
	return namespace{scope: scope, entries: make(map[string]any)}
}

func canonicalName(name string) string {
	return norm.NFC.String(name)
}

func (ns *namespace) lookup(name string) (any, bool) {
	v, ok := ns.entries[canonicalName(name)]
	return v, ok
}

func (ns *namespace) has(name string) bool {
	_, ok := ns.lookup(name)
	return ok
}

// claim records owner under name. It panics with NameCollision if the
// name is taken by a different owner.
func (ns *namespace) claim(name string, owner any) {
	key := canonicalName(name)
	if prev, ok := ns.entries[key]; ok && prev != owner {
		panic(&Error{
			Code:    ErrCodeNameCollision,
			Message: fmt.Sprintf("%q is already declared in %s scope", name, ns.scope),
			Name:    name,
		})
	}
	ns.entries[key] = owner
}

func (ns *namespace) release(name string, owner any) {
	key := canonicalName(name)
	if ns.entries[key] == owner {
		delete(ns.entries, key)
	}
}
