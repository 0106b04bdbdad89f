// Package resolver implements the swap resolver (component C7): the
// post-pass that collapses a swap's multi-hop pool flow into a single
// canonical SWAP edge carrying amount_in, amount_out and fee. Grounded on
// original_source/GrafolanaBack/domain/transaction/services/swap_resolver_service.py
// (resolve_swap), ported step for step.
package resolver

import (
	"go.uber.org/zap"

	"github.com/solgraph/txgraph/internal/account"
	"github.com/solgraph/txgraph/internal/graph"
	"github.com/solgraph/txgraph/internal/txcontext"
)

// ResolveAll runs the resolver over every non-router swap recorded on ctx.
func ResolveAll(ctx *txcontext.Context, logger *zap.Logger) {
	for _, s := range ctx.Swaps {
		if s.Router {
			continue
		}
		resolveOne(ctx, logger, s)
	}
}

func resolveOne(ctx *txcontext.Context, logger *zap.Logger, s *txcontext.Swap) {
	sub := ctx.Graph.EdgeSubgraph(func(p graph.Properties) bool {
		return p.SwapParentID == s.ID
	})

	uSrc := minVersion(sub.NodesWithAddress(s.UserSourceAddress))
	uDst := maxVersion(sub.NodesWithAddress(s.UserDestinationAddress))
	if uSrc == nil || uDst == nil {
		warnUnresolved(logger, s.ID)
		return
	}

	var destCandidates, srcCandidates []account.Vertex
	for _, poolAddr := range s.PoolAddresses {
		for _, v := range sub.NodesWithAddress(poolAddr) {
			if sub.HasPath(*uSrc, v) {
				destCandidates = append(destCandidates, v)
			}
			if sub.HasPath(v, *uDst) {
				srcCandidates = append(srcCandidates, v)
			}
		}
	}
	pDest := maxVersion(destCandidates)
	pSrc := minVersion(srcCandidates)
	if pDest == nil || pSrc == nil {
		warnUnresolved(logger, s.ID)
		return
	}

	amountIn, firstHopKey, ok := lastHopSum(sub, *uSrc, *pDest, true)
	if !ok {
		warnUnresolved(logger, s.ID)
		return
	}
	realOut, _, ok := lastHopSum(sub, *pSrc, *uDst, false)
	if !ok {
		warnUnresolved(logger, s.ID)
		return
	}

	amountOut := netInflow(sub, s.UserDestinationAddress)
	fee := realOut - amountOut

	ctx.Graph.AddEdgeWithKey(*pDest, *pSrc, firstHopKey+1, graph.Properties{
		Type:               graph.TransferSwap,
		AmountSource:       amountIn,
		AmountDestination:  amountOut,
		ProgramAddress:     s.ProgramAddress,
		SwapID:             s.ID,
		ParentRouterSwapID: s.ParentRouterSwapID,
	})

	s.AmountIn = amountIn
	s.AmountOut = amountOut
	s.Fee = fee
	s.Resolved = true
}

func warnUnresolved(logger *zap.Logger, swapID int) {
	if logger != nil {
		logger.Error("swap unresolved", zap.Int("swap_id", swapID))
	}
}

// lastHopSum walks the shortest path from -> to within sub and sums the
// chosen amount field (destination amounts for the amount-in direction,
// source amounts for the real-out direction) over every parallel edge on
// either the first or last hop, as selected by useLastHop.
func lastHopSum(sub *graph.TransactionGraph, from, to account.Vertex, useLastHop bool) (int64, int, bool) {
	path := sub.ShortestPath(from, to)
	if len(path) < 2 {
		return 0, 0, false
	}
	var u, v account.Vertex
	if useLastHop {
		u, v = path[len(path)-2], path[len(path)-1]
	} else {
		u, v = path[0], path[1]
	}
	var sum int64
	key := 0
	for _, e := range sub.OutEdges(u) {
		if e.To != v {
			continue
		}
		if useLastHop {
			sum += e.Props.AmountDestination
		} else {
			sum += e.Props.AmountSource
		}
		if key == 0 || e.Key < key {
			key = e.Key
		}
	}
	return sum, key, true
}

// netInflow computes the net amount flowing into userDestination within sub:
// +amount_source for edges terminating there from elsewhere, -amount_source
// for edges leaving it to elsewhere.
func netInflow(sub *graph.TransactionGraph, userDestination string) int64 {
	var net int64
	for _, e := range sub.Edges(nil) {
		toMatches := e.To.Address == userDestination
		fromMatches := e.From.Address == userDestination
		switch {
		case toMatches && !fromMatches:
			net += e.Props.AmountSource
		case fromMatches && !toMatches:
			net -= e.Props.AmountSource
		}
	}
	return net
}

func minVersion(vertices []account.Vertex) *account.Vertex {
	if len(vertices) == 0 {
		return nil
	}
	best := vertices[0]
	for _, v := range vertices[1:] {
		if v.Version < best.Version {
			best = v
		}
	}
	return &best
}

func maxVersion(vertices []account.Vertex) *account.Vertex {
	if len(vertices) == 0 {
		return nil
	}
	best := vertices[0]
	for _, v := range vertices[1:] {
		if v.Version > best.Version {
			best = v
		}
	}
	return &best
}
