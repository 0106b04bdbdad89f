package serialize

import (
	"go.uber.org/zap"

	"github.com/solgraph/txgraph/internal/txcontext"
)

// StableUSDMints are mint addresses treated as pegged to $1, seeding the
// price derivation below. Grounded on spec.md's price-ratio derivation
// section and original_source's hardcoded USDC/USDT/PYUSD mint constants.
var StableUSDMints = []string{
	"EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", // USDC
	"Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB", // USDT
	"2b1kV6DkPAnxd5ixfnxCpjxmKwqjjaYmCZfHsFu24GXo", // PYUSD
}

// WrappedSOLMint is the mint seeded to the caller-supplied SOL-USD spot
// price.
const WrappedSOLMint = "So11111111111111111111111111111111111111112"

// derivePriceRatios implements spec.md's mint USD price ratio derivation:
// seed stable-USD mints at 1 and wrapped-SOL at spot, then propagate through
// every resolved, non-router swap via
// price_known * amount_known = price_unknown * amount_unknown,
// repeating until no more mints can be derived or a 2*|swap edges| iteration
// cap is hit. Grounded on
// original_source/GrafolanaBack/domain/transaction/services/graph_service.py
// (_derive_usd_price_ratio).
func derivePriceRatios(ctx *txcontext.Context, solUSDPrice float64, logger *zap.Logger) map[string]float64 {
	prices := map[string]float64{WrappedSOLMint: solUSDPrice}
	for _, mint := range StableUSDMints {
		prices[mint] = 1.0
	}

	var edges []*txcontext.Swap
	for _, s := range ctx.Swaps {
		if s.Router || !s.Resolved {
			continue
		}
		edges = append(edges, s)
	}
	if len(edges) == 0 {
		return prices
	}

	iterLimit := 2 * len(edges)
	for iter := 0; iter < iterLimit; iter++ {
		progressed := false
		for _, s := range edges {
			if s.SourceMint == "" || s.DestinationMint == "" {
				continue
			}
			srcPrice, srcKnown := prices[s.SourceMint]
			dstPrice, dstKnown := prices[s.DestinationMint]
			switch {
			case srcKnown && !dstKnown && s.AmountOut > 0:
				prices[s.DestinationMint] = srcPrice * float64(s.AmountIn) / float64(s.AmountOut)
				progressed = true
			case dstKnown && !srcKnown && s.AmountIn > 0:
				prices[s.SourceMint] = dstPrice * float64(s.AmountOut) / float64(s.AmountIn)
				progressed = true
			}
		}
		if !progressed {
			return prices
		}
	}

	if logger != nil {
		logger.Warn("price derivation incomplete", zap.String("signature", ctx.Signature), zap.Int("iterations", iterLimit))
	}
	return prices
}
