// Package cluster implements the PE cluster: a
// PERows×PECols grid of PEs fed by bank-multicast iacts and row-broadcast
// weights, reducing partial sums up a vertically systolic chain.
package cluster

import (
	"github.com/sarchlab/eyerissv2/mcast"
	"github.com/sarchlab/eyerissv2/pe"
)

// Config is a cluster's routing and datapath configuration. IActPropagation
// has IActBanks sources and PERows·PECols destinations, linearized
// row-major with stride PECols. WeightPropagation holds one single-source
// matrix per PE row, each with PECols destinations.
type Config struct {
	IActPropagation   mcast.Config
	WeightPropagation []mcast.Config
	PE                pe.Config
}

// Valid reports whether every routing sub-matrix and the PE config are
// individually valid. It does not check dimensions against a particular
// cluster's topology; Cluster.SetConfig does that.
func (c Config) Valid() bool {
	if !c.IActPropagation.Valid() {
		return false
	}
	if !c.PE.Valid() {
		return false
	}
	for _, wp := range c.WeightPropagation {
		if !wp.Valid() {
			return false
		}
	}
	return true
}
