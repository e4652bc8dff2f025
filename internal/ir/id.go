package ir

import (
	"strconv"
	"sync/atomic"
)

// ID is the stable identity token of a graph node.
//
// IDs are minted once when a node is created and never reused. Equality
// and hashing of nodes go through their ID (or their pointer, which is
// equivalent), never through their fields.
type ID uint64

// NoID is the zero sentinel; no node ever carries it.
const NoID ID = 0

// IsValid returns true if the ID was minted by the allocator.
func (id ID) IsValid() bool { return id != NoID }

// String returns e.g. "#42".
func (id ID) String() string { return "#" + strconv.FormatUint(uint64(id), 10) }

// idClock is a monotonic counter. The first call to next returns 1.
//
// The core is single-threaded, but nodes may be built on several
// goroutines for independent modules, so minting is atomic.
type idClock struct {
	seq atomic.Uint64
}

func (c *idClock) next() ID {
	return ID(c.seq.Add(1))
}

var ids idClock

func nextID() ID { return ids.next() }
