// Package compose implements the graphspace composer (component C9):
// ordering multiple transaction graphs by (slot, intra-block position),
// union, and isomorphism grouping. Grounded on
// original_source/GrafolanaBack/domain/transaction/models/graphspace.py
// (_build_graph, _link_transaction_graphs) and
// services/graph_service.py (analyse_isomorphic_transactions).
package compose

import (
	"context"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/solgraph/txgraph/internal/boundary"
	"github.com/solgraph/txgraph/internal/graph"
	"github.com/solgraph/txgraph/internal/txcontext"
)

// Graphspace is an ordered collection of TransactionContexts plus their
// merged graph.
type Graphspace struct {
	Contexts []*txcontext.Context
	Merged   *graph.TransactionGraph
}

// Options configures optional composer behavior.
type Options struct {
	// LinkSequential, when true, adds NEW_TRANSACTION edges between each
	// transaction's terminal account versions and the next transaction's
	// initial versions of the same address — an optional forensic
	// super-graph link, off by default (spec §4.9).
	LinkSequential bool
}

// Build orders contexts by (slot, intra-block position), unions their
// graphs, and assigns isomorphic_group ids.
func Build(ctx context.Context, contexts map[string]*txcontext.Context, blockFetcher boundary.BlockSignatureFetcher, opts Options, logger *zap.Logger) (*Graphspace, error) {
	ordered, err := order(ctx, contexts, blockFetcher)
	if err != nil {
		return nil, err
	}

	merged := graph.New()
	for _, c := range ordered {
		merged.AddGraph(c.Graph)
	}

	assignIsomorphicGroups(ordered)

	if opts.LinkSequential {
		linkSequential(merged, ordered)
	}

	if logger != nil {
		groups := map[int]bool{}
		for _, c := range ordered {
			groups[c.IsomorphicGroup] = true
		}
		logger.Info("isomorphic groups found", zap.Int("count", len(groups)))
	}

	return &Graphspace{Contexts: ordered, Merged: merged}, nil
}

// order buckets contexts by slot and, within any slot holding more than one
// context, fetches the block's signature list to sort by intra-block
// position; contexts whose signature is absent from that list sort last, in
// stable relative order.
func order(ctx context.Context, contexts map[string]*txcontext.Context, blockFetcher boundary.BlockSignatureFetcher) ([]*txcontext.Context, error) {
	bySlot := map[uint64][]*txcontext.Context{}
	for _, c := range contexts {
		bySlot[c.Slot] = append(bySlot[c.Slot], c)
	}

	slots := make([]uint64, 0, len(bySlot))
	for slot := range bySlot {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i] < slots[j] })

	var ordered []*txcontext.Context
	for _, slot := range slots {
		group := bySlot[slot]
		if len(group) <= 1 {
			ordered = append(ordered, group...)
			continue
		}
		positions := map[string]int{}
		if blockFetcher != nil {
			sigs, err := blockFetcher.FetchBlockSignatures(ctx, slot)
			if err == nil {
				for i, sig := range sigs {
					positions[sig] = i
				}
			}
		}
		sort.SliceStable(group, func(i, j int) bool {
			pi, oki := positions[group[i].Signature]
			pj, okj := positions[group[j].Signature]
			fi := float64(pi)
			if !oki {
				fi = math.Inf(1)
			}
			fj := float64(pj)
			if !okj {
				fj = math.Inf(1)
			}
			return fi < fj
		})
		ordered = append(ordered, group...)
	}
	return ordered, nil
}

func assignIsomorphicGroups(ordered []*txcontext.Context) {
	var groups []*collapsed
	for _, c := range ordered {
		shape := collapse(c)
		assigned := -1
		for gid, seen := range groups {
			if isomorphic(shape, seen) {
				assigned = gid
				break
			}
		}
		if assigned == -1 {
			assigned = len(groups)
			groups = append(groups, shape)
		}
		c.IsomorphicGroup = assigned
	}
}

// linkSequential adds a NEW_TRANSACTION edge from each transaction's
// terminal version of an address to the next transaction's initial version
// of that same address, whenever both exist. This is an optional forensic
// aid, not part of the core DAG's correctness.
func linkSequential(merged *graph.TransactionGraph, ordered []*txcontext.Context) {
	for i := 0; i+1 < len(ordered); i++ {
		cur, next := ordered[i], ordered[i+1]
		for _, addr := range cur.Repo.Addresses() {
			curVersions := cur.Repo.AllVersions(addr)
			if len(curVersions) == 0 {
				continue
			}
			if !next.Repo.HasVersions(addr) {
				continue
			}
			nextVersions := next.Repo.AllVersions(addr)
			terminal := curVersions[len(curVersions)-1].Vertex()
			initial := nextVersions[0].Vertex()
			if !merged.HasNode(terminal) || !merged.HasNode(initial) {
				continue
			}
			zeroAmt := int64(0)
			merged.AddEdge(terminal, initial, graph.Properties{
				Type:              graph.TransferNewTransaction,
				AmountSource:      zeroAmt,
				AmountDestination: zeroAmt,
			})
		}
	}
}
