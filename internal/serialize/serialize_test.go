package serialize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/solgraph/txgraph/internal/account"
	"github.com/solgraph/txgraph/internal/builder"
	"github.com/solgraph/txgraph/internal/graph"
	"github.com/solgraph/txgraph/internal/txcontext"
)

func TestIsOnCurveRejectsInvalidBase58(t *testing.T) {
	assert.False(t, isOnCurve("not-valid-base58!!"))
}

func TestIsOnCurveRejectsWrongLength(t *testing.T) {
	// "abc" decodes to far fewer than 32 bytes.
	assert.False(t, isOnCurve("abc"))
}

func TestBuildNodesSetsIsOnCurveExceptForVirtualTypes(t *testing.T) {
	ctx := txcontext.New("sig1", 0, 0)
	amt := int64(100)
	ctx.Repo.GetOrCreateAccount("walletA").RefineType(account.TypeWallet)
	builder.AddBurn(ctx, "walletA", "mintX", amt)

	nodes := buildNodes([]*account.Repository{ctx.Repo})

	var burnNode, walletNode *Node
	for i := range nodes {
		if nodes[i].Type == string(account.TypeBurn) {
			burnNode = &nodes[i]
		}
		if nodes[i].AccountVertex.Address == "walletA" {
			walletNode = &nodes[i]
		}
	}

	assert.NotNil(t, burnNode)
	assert.Nil(t, burnNode.IsOnCurve)

	assert.NotNil(t, walletNode)
	assert.NotNil(t, walletNode.IsOnCurve)
}

func TestBuildLinksSortedByKeyAndOmitsZeroSwapIDs(t *testing.T) {
	ctx := txcontext.New("sig1", 0, 0)
	amt := int64(5)
	builder.AddTransfer(ctx, builder.Edge{Type: graph.TransferGeneric, SourceAddress: "a", DestinationAddress: "b", AmountToken: &amt})
	builder.AddTransfer(ctx, builder.Edge{Type: graph.TransferGeneric, SourceAddress: "a", DestinationAddress: "c", AmountToken: &amt})

	links := buildLinks(ctx.Graph)
	assert.Len(t, links, 2)
	assert.True(t, links[0].Key <= links[1].Key)
	assert.Nil(t, links[0].SwapID)
}

func TestBuildLinksSetsSwapIDWhenNonZero(t *testing.T) {
	ctx := txcontext.New("sig1", 0, 0)
	a, b := account.Vertex{Address: "a"}, account.Vertex{Address: "b"}
	ctx.Graph.AddNode(a)
	ctx.Graph.AddNode(b)
	ctx.Graph.AddEdge(a, b, graph.Properties{Type: graph.TransferSwap, SwapID: 7})

	links := buildLinks(ctx.Graph)
	assert.Len(t, links, 1)
	assert.NotNil(t, links[0].SwapID)
	assert.Equal(t, 7, *links[0].SwapID)
}

func TestDerivePriceRatiosSeedsStablesAndSOL(t *testing.T) {
	ctx := txcontext.New("sig1", 0, 0)
	prices := derivePriceRatios(ctx, 150.0, nil)

	assert.Equal(t, 150.0, prices[WrappedSOLMint])
	for _, mint := range StableUSDMints {
		assert.Equal(t, 1.0, prices[mint])
	}
}

func TestDerivePriceRatiosPropagatesThroughResolvedSwap(t *testing.T) {
	ctx := txcontext.New("sig1", 0, 0)
	s := ctx.AddSwap("pool", false, 0, 0, 0)
	s.SourceMint = WrappedSOLMint
	s.DestinationMint = "tokenX"
	s.AmountIn = 100
	s.AmountOut = 1000
	s.Resolved = true

	prices := derivePriceRatios(ctx, 100.0, nil)

	// 100 SOL-equivalent in at $100 each = $10,000 spread over 1000 tokens out
	assert.InDelta(t, 10.0, prices["tokenX"], 0.0001)
}

func TestDerivePriceRatiosIgnoresUnresolvedSwaps(t *testing.T) {
	ctx := txcontext.New("sig1", 0, 0)
	s := ctx.AddSwap("pool", false, 0, 0, 0)
	s.SourceMint = WrappedSOLMint
	s.DestinationMint = "tokenX"
	s.AmountIn = 100
	s.AmountOut = 1000
	s.Resolved = false

	prices := derivePriceRatios(ctx, 100.0, nil)
	_, ok := prices["tokenX"]
	assert.False(t, ok)
}

func TestBuildAssemblesTransactionsNodesAndLinks(t *testing.T) {
	ctx := txcontext.New("sig1", 1000, 1700000000)
	ctx.FeeLamport = 5000
	ctx.Signers = []string{"payer"}
	amt := int64(42)
	builder.AddTransfer(ctx, builder.Edge{Type: graph.TransferGeneric, SourceAddress: "payer", DestinationAddress: "recipient", AmountToken: &amt})

	data := Build([]*txcontext.Context{ctx}, ctx.Graph, 100.0, nil)

	txData, ok := data.Transactions["sig1"]
	assert.True(t, ok)
	assert.Equal(t, int64(5000), txData.Fee)
	assert.Equal(t, int64(1700000000*1000), txData.TimestampMs)
	assert.NotEmpty(t, data.Nodes)
	assert.Len(t, data.Links, 1)
}
