// Package txcontext holds the per-transaction workspace (TransactionContext)
// and the Swap record, grounded on
// original_source/GrafolanaBack/domain/transaction/services/transaction_context.py
// and models/swap.go.
package txcontext

import (
	"github.com/solgraph/txgraph/internal/account"
	"github.com/solgraph/txgraph/internal/graph"
)

// Swap is a resolved or in-progress swap: one or more hops bracketed by a
// single user-facing SWAP edge once C7 resolves it.
type Swap struct {
	ID                 int
	ProgramAddress     string
	Router             bool
	ParentSwapID        int // 0 means none
	ParentRouterSwapID  int // 0 means none
	InstructionIndex    int
	UserSourceAddress      string
	UserDestinationAddress string
	// PoolAddresses is either a {source, destination} pair or an ordered
	// pool tuple; empty for router swaps, which never have pool_addresses.
	PoolAddresses []string
	SourceMint    string
	DestinationMint string
	AmountIn      int64
	AmountOut     int64
	Fee           int64
	Resolved      bool
}

// Context is the single-transaction workspace threaded through parsing:
// the account repository, the transaction graph being built, the signer
// set, the fee, and the swap list accumulated as instructions are walked.
type Context struct {
	Signature  string
	Slot       uint64
	BlockTime  int64
	Err        string // non-empty if the transaction carried an on-chain error
	Signers    []string
	FeeLamport int64

	// ComputeUnitPriceMicroLamports is populated by the compute-budget
	// priority-fee parser (C5) when it sees a SetComputeUnitPrice
	// instruction; the orchestrator combines it with the transaction's
	// reported compute units consumed to derive the priority fee.
	ComputeUnitPriceMicroLamports uint64

	Repo            *account.Repository
	Graph           *graph.TransactionGraph
	Swaps           []*Swap
	IsomorphicGroup int
}

func New(signature string, slot uint64, blockTime int64) *Context {
	return &Context{
		Signature: signature,
		Slot:      slot,
		BlockTime: blockTime,
		Repo:      account.NewRepository(),
		Graph:     graph.New(),
	}
}

// AddSwap appends a new Swap and returns it with its 1-indexed ID assigned,
// matching the original's 1-indexed swap list lookup convention.
func (c *Context) AddSwap(programAddress string, router bool, parentSwapID, parentRouterSwapID, instructionIndex int) *Swap {
	s := &Swap{
		ID:                 len(c.Swaps) + 1,
		ProgramAddress:     programAddress,
		Router:             router,
		ParentSwapID:       parentSwapID,
		ParentRouterSwapID: parentRouterSwapID,
		InstructionIndex:   instructionIndex,
	}
	c.Swaps = append(c.Swaps, s)
	return s
}

// GetSwap looks up a swap by its 1-indexed ID, returning nil if id is 0 or
// out of range.
func (c *Context) GetSwap(id int) *Swap {
	if id <= 0 || id > len(c.Swaps) {
		return nil
	}
	return c.Swaps[id-1]
}

// maxPriorityFeeLamport caps the priority fee contribution at 1 SOL, per
// transaction_context.py's authoritative (capped, floor-divided) formula —
// the uncapped true-division version in graph_builder_service.py is
// superseded by this one.
const maxPriorityFeeLamport = 1_000_000_000

// ComputePriorityFee derives the lamports paid above the base fee for a
// given compute-unit-price (micro-lamports per CU) and compute-unit-limit,
// floor-divided and capped at 1 SOL.
func ComputePriorityFee(computeUnitPriceMicroLamports, computeUnitLimit uint64) int64 {
	fee := (computeUnitPriceMicroLamports * computeUnitLimit) / 1_000_000
	if fee > maxPriorityFeeLamport {
		return maxPriorityFeeLamport
	}
	return int64(fee)
}
