// Package parser implements the instruction parser strategy set (component
// C5): system/token transfers, account lifecycle, stake operations, ATA
// creation and compute-budget priority fees. Grounded on
// original_source/GrafolanaBack/domain/transaction/parsers/instruction_parsers.py.
package parser

import (
	"strconv"

	"github.com/solgraph/txgraph/internal/instruction"
	"github.com/solgraph/txgraph/internal/txcontext"
)

// RentReserveLamports is the rent-exempt reserve spec §6 fixes for
// close-account reclamation and sync-native token top-up.
const RentReserveLamports = 203_928

const WrappedSOLMint = "So11111111111111111111111111111111111111112"

// Parser is one strategy in the C5 registry.
type Parser interface {
	Name() string
	CanParse(call *instruction.Call) bool
	Parse(ctx *txcontext.Context, call *instruction.Call, swapParentID, parentRouterSwapID int) error
}

// Registry holds parsers in declaration order; Dispatch returns the first
// one that accepts a given instruction, matching the orchestrator's
// "first parser that accepts" rule (§4.5).
type Registry struct {
	parsers []Parser
}

func NewRegistry(parsers ...Parser) *Registry {
	return &Registry{parsers: parsers}
}

func (r *Registry) Dispatch(call *instruction.Call) Parser {
	for _, p := range r.parsers {
		if p.CanParse(call) {
			return p
		}
	}
	return nil
}

// Default returns the registry wired with all 15 required parsers, in the
// order spec §4.5's table lists them.
func Default() *Registry {
	return NewRegistry(
		systemTransferParser{},
		tokenTransferParser{},
		tokenTransferCheckedParser{},
		createAccountParser{},
		closeAccountParser{},
		burnParser{},
		mintToParser{},
		syncNativeParser{},
		systemAssignParser{},
		stakeInitializeParser{},
		stakeWithdrawParser{},
		stakeSplitParser{},
		stakeAuthorizeParser{},
		ataCreateParser{},
		computeBudgetPriorityParser{},
	)
}

func infoString(info map[string]any, key string) string {
	if info == nil {
		return ""
	}
	v, ok := info[key]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

func infoMap(info map[string]any, key string) map[string]any {
	if info == nil {
		return nil
	}
	v, ok := info[key]
	if !ok {
		return nil
	}
	m, _ := v.(map[string]any)
	return m
}

// infoUint64 reads a numeric field that the RPC may hand back as a JSON
// number (float64) or as a string (common for u64 fields that would
// overflow a JS number).
func infoUint64(info map[string]any, key string) uint64 {
	if info == nil {
		return 0
	}
	v, ok := info[key]
	if !ok {
		return 0
	}
	switch t := v.(type) {
	case float64:
		return uint64(t)
	case string:
		n, _ := strconv.ParseUint(t, 10, 64)
		return n
	}
	return 0
}

func infoTokenAmount(info map[string]any, key string) uint64 {
	amt := infoMap(info, key)
	if amt == nil {
		return 0
	}
	return infoUint64(amt, "amount")
}
