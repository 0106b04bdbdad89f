package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/solgraph/txgraph/internal/graph"
	"github.com/solgraph/txgraph/internal/txcontext"
)

func TestAddTransferCreatesInitialVersionsAndEdge(t *testing.T) {
	ctx := txcontext.New("sig1", 0, 0)
	amt := int64(100)

	key := AddTransfer(ctx, Edge{
		Type:                graph.TransferGeneric,
		SourceAddress:       "walletA",
		DestinationAddress:  "walletB",
		AmountToken:         &amt,
		Mint:                "mintX",
	})

	assert.Equal(t, 10, key)
	// The edge leaves walletA v0; the debit is recorded on the new v1.
	assert.Equal(t, 2, ctx.Repo.VersionCount("walletA"))
	src, _ := ctx.Repo.GetVersionAt("walletA", 1)
	assert.Equal(t, int64(-100), src.BalanceToken)

	dst, _ := ctx.Repo.GetVersionAt("walletB", 0)
	assert.Equal(t, int64(100), dst.BalanceToken)
}

func TestPrepareSourceVersionReversionsWhenLatestAlreadyUsed(t *testing.T) {
	ctx := txcontext.New("sig1", 0, 0)
	amt := int64(50)

	// First transfer touches walletA version 0 as source.
	AddTransfer(ctx, Edge{SourceAddress: "walletA", DestinationAddress: "walletB", AmountToken: &amt})
	// The first transfer already allocated version 1 for its debit. The second
	// transfer leaves from version 0 again (the latest version in the graph) and
	// records its debit on version 1, so no third version appears.
	AddTransfer(ctx, Edge{SourceAddress: "walletA", DestinationAddress: "walletC", AmountToken: &amt})

	assert.Equal(t, 2, ctx.Repo.VersionCount("walletA"))
}

func TestPrepareDestinationVersionReversionsToAvoidCycle(t *testing.T) {
	ctx := txcontext.New("sig1", 0, 0)
	amt := int64(10)

	// A -> B
	AddTransfer(ctx, Edge{SourceAddress: "A", DestinationAddress: "B", AmountToken: &amt})
	// B -> A: A's latest version is v1, allocated by the debit of the first
	// transfer and not yet a graph node, so the edge lands on A v1 rather than
	// back on A v0 and no cycle forms.
	AddTransfer(ctx, Edge{SourceAddress: "B", DestinationAddress: "A", AmountToken: &amt})

	assert.Equal(t, 2, ctx.Repo.VersionCount("A"))
}

func TestAddBurnCreditsVirtualAccountOnce(t *testing.T) {
	ctx := txcontext.New("sig1", 0, 0)
	AddBurn(ctx, "walletA", "mintX", 100)

	burnAcct, ok := ctx.Repo.GetVersionAt(BurnAddress("mintX"), 0)
	assert.True(t, ok)
	assert.Equal(t, int64(100), burnAcct.BalanceToken)
}

func TestAddMintToCreditsDestination(t *testing.T) {
	ctx := txcontext.New("sig1", 0, 0)
	AddMintTo(ctx, "walletA", "mintX", 250)

	dst, ok := ctx.Repo.GetVersionAt("walletA", 0)
	assert.True(t, ok)
	assert.Equal(t, int64(250), dst.BalanceToken)
}

func TestAddFeeTransfersOmitsPriorityFeeWhenZero(t *testing.T) {
	ctx := txcontext.New("sig1", 0, 0)
	AddFeeTransfers(ctx, nil, "payer", 5000, 0)

	edges := ctx.Graph.Edges(func(p graph.Properties) bool { return p.Type == graph.TransferPriorityFee })
	assert.Empty(t, edges)

	feeEdges := ctx.Graph.Edges(func(p graph.Properties) bool { return p.Type == graph.TransferFee })
	assert.Len(t, feeEdges, 1)
	assert.Equal(t, int64(5000), feeEdges[0].Props.AmountSource)
}

func TestAddFeeTransfersIncludesPriorityFeeWhenPositive(t *testing.T) {
	ctx := txcontext.New("sig1", 0, 0)
	AddFeeTransfers(ctx, nil, "payer", 5000, 1200)

	edges := ctx.Graph.Edges(func(p graph.Properties) bool { return p.Type == graph.TransferPriorityFee })
	assert.Len(t, edges, 1)
	assert.Equal(t, int64(1200), edges[0].Props.AmountSource)
}

func TestUpdateOwnerStampsAllVersionsOnlyWhenUnset(t *testing.T) {
	ctx := txcontext.New("sig1", 0, 0)
	ctx.Repo.CreateVersion("walletA", "sig1", "")
	ctx.Repo.NewVersion("walletA")

	UpdateOwner(ctx, "walletA", "ownerA")
	for _, v := range ctx.Repo.AllVersions("walletA") {
		assert.Equal(t, "ownerA", v.Owner)
	}

	// Second call with a different owner should only touch the latest version.
	UpdateOwner(ctx, "walletA", "ownerB")
	v0, _ := ctx.Repo.GetVersionAt("walletA", 0)
	latest, _ := ctx.Repo.GetLatestVersion("walletA")
	assert.Equal(t, "ownerA", v0.Owner)
	assert.Equal(t, "ownerB", latest.Owner)
}

func TestBurnAndMintToAddressesAreDeterministic(t *testing.T) {
	assert.Equal(t, "BURN_mintX", BurnAddress("mintX"))
	assert.Equal(t, "MINTTO_mintX", MintToAddress("mintX"))
}
