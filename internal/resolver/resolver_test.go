package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/solgraph/txgraph/internal/builder"
	"github.com/solgraph/txgraph/internal/graph"
	"github.com/solgraph/txgraph/internal/txcontext"
)

// buildSingleHopSwap wires a minimal two-edge swap: userSrc -> pool (in),
// pool -> userDst (out), both tagged with the same SwapParentID, matching
// what swap.Parse's native-SOL/pool-resolution step would have produced.
func buildSingleHopSwap(ctx *txcontext.Context, swapID int, amountIn, amountOut int64) {
	builder.AddTransfer(ctx, builder.Edge{
		Type:                graph.TransferGeneric,
		SourceAddress:       "userSrc",
		DestinationAddress:  "pool",
		AmountToken:         &amountIn,
		SwapParentID:        swapID,
	})
	builder.AddTransfer(ctx, builder.Edge{
		Type:                graph.TransferGeneric,
		SourceAddress:       "pool",
		DestinationAddress:  "userDst",
		AmountToken:         &amountOut,
		SwapParentID:        swapID,
	})
}

func TestResolveAllSkipsRouterSwaps(t *testing.T) {
	ctx := txcontext.New("sig1", 0, 0)
	s := ctx.AddSwap("routerProgram", true, 0, 0, 0)
	s.UserSourceAddress = "userSrc"
	s.UserDestinationAddress = "userDst"
	s.PoolAddresses = nil

	ResolveAll(ctx, nil)
	assert.False(t, s.Resolved)
}

func TestResolveOneComputesAmountsAndFee(t *testing.T) {
	ctx := txcontext.New("sig1", 0, 0)
	s := ctx.AddSwap("poolProgram", false, 0, 0, 0)
	s.UserSourceAddress = "userSrc"
	s.UserDestinationAddress = "userDst"
	s.PoolAddresses = []string{"pool", "pool"}

	buildSingleHopSwap(ctx, s.ID, 100, 95)

	ResolveAll(ctx, nil)

	assert.True(t, s.Resolved)
	assert.Equal(t, int64(100), s.AmountIn)
	assert.Equal(t, int64(95), s.AmountOut)
	assert.Equal(t, int64(0), s.Fee)
}

func TestResolveOneLeavesUnresolvedWhenNoPoolPath(t *testing.T) {
	ctx := txcontext.New("sig1", 0, 0)
	s := ctx.AddSwap("poolProgram", false, 0, 0, 0)
	s.UserSourceAddress = "userSrc"
	s.UserDestinationAddress = "userDst"
	s.PoolAddresses = []string{"unrelatedPool"}

	// Edges exist but are tagged with a different swap id, so the
	// EdgeSubgraph filtered on s.ID comes back empty.
	amt := int64(10)
	builder.AddTransfer(ctx, builder.Edge{
		SourceAddress: "userSrc", DestinationAddress: "pool",
		AmountToken: &amt, SwapParentID: s.ID + 100,
	})

	ResolveAll(ctx, nil)
	assert.False(t, s.Resolved)
}

func TestResolveOneAddsCanonicalSwapEdge(t *testing.T) {
	ctx := txcontext.New("sig1", 0, 0)
	s := ctx.AddSwap("poolProgram", false, 0, 0, 0)
	s.UserSourceAddress = "userSrc"
	s.UserDestinationAddress = "userDst"
	s.PoolAddresses = []string{"pool", "pool"}

	buildSingleHopSwap(ctx, s.ID, 100, 95)
	ResolveAll(ctx, nil)

	swapEdges := ctx.Graph.Edges(func(p graph.Properties) bool { return p.Type == graph.TransferSwap })
	assert.Len(t, swapEdges, 1)
	assert.Equal(t, s.ID, swapEdges[0].Props.SwapID)
}
