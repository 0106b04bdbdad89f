package instruction

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mr-tron/base58"

	"github.com/solgraph/txgraph/internal/boundary"
)

func TestBuildCallStackNoInner(t *testing.T) {
	outer := Raw{ProgramID: "prog1"}
	call, err := BuildCallStack(0, outer, nil)

	assert.NoError(t, err)
	assert.Equal(t, "prog1", call.ProgramID)
	assert.Empty(t, call.Inner)
}

func TestBuildCallStackNestsByStackHeight(t *testing.T) {
	outer := Raw{ProgramID: "router"}
	inner := []Raw{
		{ProgramID: "dexA", StackHeight: 2},
		{ProgramID: "dexA-cpi", StackHeight: 3},
		{ProgramID: "dexB", StackHeight: 2},
	}

	call, err := BuildCallStack(0, outer, inner)
	assert.NoError(t, err)
	assert.Len(t, call.Inner, 2)
	assert.Equal(t, "dexA", call.Inner[0].ProgramID)
	assert.Len(t, call.Inner[0].Inner, 1)
	assert.Equal(t, "dexA-cpi", call.Inner[0].Inner[0].ProgramID)
	assert.Equal(t, "dexB", call.Inner[1].ProgramID)
	assert.Empty(t, call.Inner[1].Inner)
}

func TestBuildCallStackRejectsLowStackHeight(t *testing.T) {
	outer := Raw{ProgramID: "router"}
	inner := []Raw{{ProgramID: "bad", StackHeight: 1}}

	_, err := BuildCallStack(0, outer, inner)
	assert.Error(t, err)
	var malformed *ErrMalformed
	assert.ErrorAs(t, err, &malformed)
}

func TestBuildCallStackRejectsOrphanParent(t *testing.T) {
	outer := Raw{ProgramID: "router"}
	// jumps straight to height 4 with nothing at height 3
	inner := []Raw{{ProgramID: "orphan", StackHeight: 4}}

	_, err := BuildCallStack(0, outer, inner)
	assert.Error(t, err)
}

func TestBuildAllCallStacksMatchesByOuterIndex(t *testing.T) {
	outer := []Raw{{ProgramID: "a"}, {ProgramID: "b"}}
	groups := []InnerGroup{
		{Index: 1, Instructions: []Raw{{ProgramID: "b-cpi", StackHeight: 2}}},
	}

	calls, err := BuildAllCallStacks(outer, groups)
	assert.NoError(t, err)
	assert.Len(t, calls, 2)
	assert.Empty(t, calls[0].Inner)
	assert.Len(t, calls[1].Inner, 1)
}

func TestWalkVisitsDepthFirstWithParent(t *testing.T) {
	root := &Call{ProgramID: "root", Inner: []*Call{
		{ProgramID: "childA"},
		{ProgramID: "childB", Inner: []*Call{{ProgramID: "grandchild"}}},
	}}

	var visited []string
	Walk(root, func(c, parent *Call) {
		p := "<nil>"
		if parent != nil {
			p = parent.ProgramID
		}
		visited = append(visited, c.ProgramID+"<-"+p)
	})

	assert.Equal(t, []string{
		"root<-<nil>",
		"childA<-root",
		"childB<-root",
		"grandchild<-childB",
	}, visited)
}

func TestFromBoundaryDecodesBase58Data(t *testing.T) {
	raw := []byte{1, 2, 3, 4}
	encoded := base58.Encode(raw)

	ix := boundary.Instruction{ProgramID: "prog1", Data: encoded}
	r := FromBoundary(ix)

	assert.Equal(t, raw, r.Data)
}

func TestFromBoundaryLeavesDataNilWhenEmpty(t *testing.T) {
	ix := boundary.Instruction{ProgramID: "prog1"}
	r := FromBoundary(ix)
	assert.Nil(t, r.Data)
}

func TestBuildAllFromTransaction(t *testing.T) {
	tx := &boundary.ParsedTransaction{
		Instructions: []boundary.Instruction{
			{ProgramID: "a"},
			{ProgramID: "b"},
		},
		InnerInstructions: []boundary.InnerInstructionGroup{
			{Index: 0, Instructions: []boundary.Instruction{{ProgramID: "a-cpi", StackHeight: 2}}},
		},
	}

	calls, err := BuildAllFromTransaction(tx)
	assert.NoError(t, err)
	assert.Len(t, calls, 2)
	assert.Len(t, calls[0].Inner, 1)
	assert.Equal(t, "a-cpi", calls[0].Inner[0].ProgramID)
}
