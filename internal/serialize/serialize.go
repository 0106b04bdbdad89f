package serialize

import (
	"go.uber.org/zap"

	"github.com/solgraph/txgraph/internal/account"
	"github.com/solgraph/txgraph/internal/graph"
	"github.com/solgraph/txgraph/internal/txcontext"
)

// Build assembles a GraphData from one or more parsed TransactionContexts
// plus the merged graph covering all of them (for a single transaction,
// pass ctx.Graph as merged; for a composed graphspace, pass compose.Build's
// Merged). solUSDPrice is the caller-supplied SOL-USD spot price used to
// seed wrapped-SOL/SOL in the price derivation pass.
func Build(contexts []*txcontext.Context, merged *graph.TransactionGraph, solUSDPrice float64, logger *zap.Logger) GraphData {
	data := GraphData{
		Transactions: make(map[string]TransactionData, len(contexts)),
	}

	repos := make([]*account.Repository, 0, len(contexts))
	for _, ctx := range contexts {
		data.Transactions[ctx.Signature] = buildTransactionData(ctx, solUSDPrice, logger)
		repos = append(repos, ctx.Repo)
	}

	data.Nodes = buildNodes(repos)
	data.Links = buildLinks(merged)
	return data
}

func buildTransactionData(ctx *txcontext.Context, solUSDPrice float64, logger *zap.Logger) TransactionData {
	prices := derivePriceRatios(ctx, solUSDPrice, logger)

	swaps := make([]SwapData, 0, len(ctx.Swaps))
	for _, s := range ctx.Swaps {
		swaps = append(swaps, SwapData{
			ID:                 s.ID,
			Router:             s.Router,
			ProgramAddress:     s.ProgramAddress,
			UserSource:         s.UserSourceAddress,
			UserDestination:    s.UserDestinationAddress,
			PoolAddresses:      s.PoolAddresses,
			AmountIn:           s.AmountIn,
			AmountOut:          s.AmountOut,
			Fee:                s.Fee,
			ParentSwapID:       s.ParentSwapID,
			ParentRouterSwapID: s.ParentRouterSwapID,
		})
	}

	return TransactionData{
		Fee:               ctx.FeeLamport,
		Signers:           ctx.Signers,
		Swaps:             swaps,
		Accounts:          ctx.Repo.Addresses(),
		MintUSDPriceRatio: prices,
		IsomorphicGroup:   ctx.IsomorphicGroup,
		TimestampMs:       ctx.BlockTime * 1000,
	}
}
