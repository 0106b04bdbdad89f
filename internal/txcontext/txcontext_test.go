package txcontext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewInitializesRepoAndGraph(t *testing.T) {
	c := New("sig1", 100, 1700000000)

	assert.Equal(t, "sig1", c.Signature)
	assert.Equal(t, uint64(100), c.Slot)
	assert.NotNil(t, c.Repo)
	assert.NotNil(t, c.Graph)
	assert.Empty(t, c.Swaps)
}

func TestAddSwapAssigns1IndexedID(t *testing.T) {
	c := New("sig1", 0, 0)

	s1 := c.AddSwap("prog1", false, 0, 0, 1)
	s2 := c.AddSwap("prog2", true, s1.ID, 0, 2)

	assert.Equal(t, 1, s1.ID)
	assert.Equal(t, 2, s2.ID)
	assert.Equal(t, 1, s2.ParentSwapID)
}

func TestGetSwapBoundsChecked(t *testing.T) {
	c := New("sig1", 0, 0)
	c.AddSwap("prog1", false, 0, 0, 1)

	assert.Nil(t, c.GetSwap(0))
	assert.Nil(t, c.GetSwap(2))

	got := c.GetSwap(1)
	assert.NotNil(t, got)
	assert.Equal(t, "prog1", got.ProgramAddress)
}

func TestComputePriorityFeeFloorDivides(t *testing.T) {
	// 1000 micro-lamports/CU * 500 CU = 500_000 micro-lamports = 0 lamports (floor)
	assert.Equal(t, int64(0), ComputePriorityFee(1000, 500))

	// 2_000_000 micro-lamports/CU * 1_000_000 CU = 2e12 micro-lamports = 2_000_000 lamports
	assert.Equal(t, int64(2_000_000), ComputePriorityFee(2_000_000, 1_000_000))
}

func TestComputePriorityFeeCapsAtOneSOL(t *testing.T) {
	fee := ComputePriorityFee(1_000_000_000_000, 1_000_000)
	assert.Equal(t, int64(maxPriorityFeeLamport), fee)
}
