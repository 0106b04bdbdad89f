package compose

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/solgraph/txgraph/internal/builder"
	"github.com/solgraph/txgraph/internal/graph"
	"github.com/solgraph/txgraph/internal/txcontext"
)

type fakeBlockFetcher struct {
	sigsBySlot map[uint64][]string
}

func (f *fakeBlockFetcher) FetchBlockSignatures(_ context.Context, slot uint64) ([]string, error) {
	return f.sigsBySlot[slot], nil
}

func txWithTransfer(signature string, slot uint64, src, dst string, amount int64) *txcontext.Context {
	ctx := txcontext.New(signature, slot, 0)
	builder.AddTransfer(ctx, builder.Edge{Type: graph.TransferGeneric, SourceAddress: src, DestinationAddress: dst, AmountToken: &amount})
	return ctx
}

func TestBuildOrdersBySlotThenBlockPosition(t *testing.T) {
	contexts := map[string]*txcontext.Context{
		"sigB": txWithTransfer("sigB", 100, "a", "b", 1),
		"sigA": txWithTransfer("sigA", 100, "a", "b", 1),
		"sigC": txWithTransfer("sigC", 50, "a", "b", 1),
	}
	fetcher := &fakeBlockFetcher{sigsBySlot: map[uint64][]string{100: {"sigA", "sigB"}}}

	gs, err := Build(context.Background(), contexts, fetcher, Options{}, nil)
	assert.NoError(t, err)

	sigs := make([]string, len(gs.Contexts))
	for i, c := range gs.Contexts {
		sigs[i] = c.Signature
	}
	assert.Equal(t, []string{"sigC", "sigA", "sigB"}, sigs)
}

func TestBuildMergesGraphsWithoutCollision(t *testing.T) {
	contexts := map[string]*txcontext.Context{
		"sig1": txWithTransfer("sig1", 1, "a", "b", 10),
		"sig2": txWithTransfer("sig2", 2, "a", "b", 10),
	}

	gs, err := Build(context.Background(), contexts, nil, Options{}, nil)
	assert.NoError(t, err)
	assert.Len(t, gs.Merged.Nodes(), 4)
	assert.Len(t, gs.Merged.Edges(nil), 2)
}

func TestBuildAssignsSameIsomorphicGroupToShapeIdenticalTransactions(t *testing.T) {
	contexts := map[string]*txcontext.Context{
		"sig1": txWithTransfer("sig1", 1, "a", "b", 10),
		"sig2": txWithTransfer("sig2", 2, "x", "y", 999),
	}

	gs, err := Build(context.Background(), contexts, nil, Options{}, nil)
	assert.NoError(t, err)
	assert.Equal(t, gs.Contexts[0].IsomorphicGroup, gs.Contexts[1].IsomorphicGroup)
}

func TestBuildAssignsDifferentIsomorphicGroupToDifferentShapes(t *testing.T) {
	contexts := map[string]*txcontext.Context{
		"sig1": txWithTransfer("sig1", 1, "a", "b", 10),
		"sig2": txWithTransfer("sig2", 2, "x", "y", 1),
	}
	threeHop := txcontext.New("sig3", 3, 0)
	amt := int64(1)
	builder.AddTransfer(threeHop, builder.Edge{SourceAddress: "p", DestinationAddress: "q", AmountToken: &amt})
	builder.AddTransfer(threeHop, builder.Edge{SourceAddress: "q", DestinationAddress: "r", AmountToken: &amt})
	contexts["sig3"] = threeHop

	gs, err := Build(context.Background(), contexts, nil, Options{}, nil)
	assert.NoError(t, err)

	var group1, group3 int
	for _, c := range gs.Contexts {
		if c.Signature == "sig1" {
			group1 = c.IsomorphicGroup
		}
		if c.Signature == "sig3" {
			group3 = c.IsomorphicGroup
		}
	}
	assert.NotEqual(t, group1, group3)
}

func TestBuildLinksSequentialWhenOptedIn(t *testing.T) {
	contexts := map[string]*txcontext.Context{
		"sig1": txWithTransfer("sig1", 1, "a", "shared", 10),
		"sig2": txWithTransfer("sig2", 2, "shared", "z", 5),
	}

	gs, err := Build(context.Background(), contexts, nil, Options{LinkSequential: true}, nil)
	assert.NoError(t, err)

	linkEdges := gs.Merged.Edges(func(p graph.Properties) bool { return p.Type == graph.TransferNewTransaction })
	assert.Len(t, linkEdges, 1)
}

func TestBuildOmitsSequentialLinksByDefault(t *testing.T) {
	contexts := map[string]*txcontext.Context{
		"sig1": txWithTransfer("sig1", 1, "a", "shared", 10),
		"sig2": txWithTransfer("sig2", 2, "shared", "z", 5),
	}

	gs, err := Build(context.Background(), contexts, nil, Options{}, nil)
	assert.NoError(t, err)

	linkEdges := gs.Merged.Edges(func(p graph.Properties) bool { return p.Type == graph.TransferNewTransaction })
	assert.Empty(t, linkEdges)
}
