// Package mcast implements the multicast routing matrix shared by the
// router and the PE cluster's bank/row propagation fabrics (the multicast fabric).
package mcast

import (
	"strconv"

	"github.com/sarchlab/eyerissv2/kernel"
)

// Config is an Srcs×Dsts boolean routing matrix: path[s][d] set means a
// token arriving on source s is replicated onto destination d. It is the
// Go form of the C++ mcast_config<Srcs, Dsts> template — the compile-time
// array dimensions become runtime ints, since Go generics cannot bind a
// type parameter to an array length the way a C++ non-type template
// parameter can.
type Config struct {
	srcs, dsts int
	path       [][]bool
}

// New creates a Config with all routes disabled. srcs and dsts must each
// be at least 1.
func New(srcs, dsts int) Config {
	if srcs < 1 || dsts < 1 {
		panic("mcast: srcs and dsts must each be >= 1")
	}

	path := make([][]bool, srcs)
	for s := range path {
		path[s] = make([]bool, dsts)
	}

	return Config{srcs: srcs, dsts: dsts, path: path}
}

// Srcs returns the number of source ports.
func (c Config) Srcs() int { return c.srcs }

// Dsts returns the number of destination ports.
func (c Config) Dsts() int { return c.dsts }

// GroupEnable enables the route from src to every destination in dsts,
// mirroring mcast_config::groupEnable.
func (c Config) GroupEnable(src int, dsts ...int) {
	c.mustBeSrc(src)

	for _, d := range dsts {
		c.mustBeDst(d)
		c.path[src][d] = true
	}
}

// Path reports whether src is routed to dst.
func (c Config) Path(src, dst int) bool {
	c.mustBeSrc(src)
	c.mustBeDst(dst)

	return c.path[src][dst]
}

// Valid reports whether every destination is driven by at most one source
// — a destination FIFO has exactly one writer, so two sources racing to
// write it would corrupt ordering and is forbidden by construction.
func (c Config) Valid() bool {
	for d := 0; d < c.dsts; d++ {
		routes := 0
		for s := 0; s < c.srcs; s++ {
			if c.path[s][d] {
				routes++
			}
		}
		if routes > 1 {
			return false
		}
	}

	return true
}

// Print renders the matrix as a table, the Go equivalent of
// mcast_config::print(ostream&).
func (c Config) Print() string {
	return kernel.RenderBoolMatrix("multicast routing matrix", c.srcs, func(d int) string {
		return "dst" + strconv.Itoa(d)
	}, func(s, d int) bool {
		return c.path[s][d]
	}, c.dsts)
}

func (c Config) mustBeSrc(src int) {
	if src < 0 || src >= c.srcs {
		panic("mcast: src index out of range")
	}
}

func (c Config) mustBeDst(dst int) {
	if dst < 0 || dst >= c.dsts {
		panic("mcast: dst index out of range")
	}
}
