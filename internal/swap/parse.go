package swap

import (
	"go.uber.org/zap"

	"github.com/solgraph/txgraph/internal/builder"
	"github.com/solgraph/txgraph/internal/graph"
	"github.com/solgraph/txgraph/internal/instruction"
	"github.com/solgraph/txgraph/internal/txcontext"
)

// CanParse reports whether call's program and data are recognized by the
// catalog, without committing any state — used by the orchestrator to
// decide between the C5/C6 dispatch branches.
func CanParse(catalog *Catalog, call *instruction.Call) bool {
	program, ok := catalog.Lookup(call.ProgramID)
	if !ok {
		return false
	}
	_, ok = Match(program, call.Data, len(call.Accounts))
	return ok
}

// Parse recognizes call as a swap instruction, allocates its Swap record,
// resolves pool endpoints (substituting BURN/MINTTO sentinels), and runs
// native-SOL inference when the matcher declares one. It returns the new
// swap so the orchestrator can update its recursion state
// (parent_swap_id / parent_router_swap_id) for inner instructions.
func Parse(ctx *txcontext.Context, catalog *Catalog, logger *zap.Logger, call *instruction.Call, parentSwapID, parentRouterSwapID int) *txcontext.Swap {
	program, ok := catalog.Lookup(call.ProgramID)
	if !ok {
		return nil
	}
	matcher, ok := Match(program, call.Data, len(call.Accounts))
	if !ok {
		return nil
	}
	if matcher.UserSourceIndex >= len(call.Accounts) || matcher.UserDestinationIndex >= len(call.Accounts) {
		return nil
	}

	userSource := call.Accounts[matcher.UserSourceIndex]
	userDestination := call.Accounts[matcher.UserDestinationIndex]

	s := ctx.AddSwap(program.ProgramAddress, program.Router, parentSwapID, parentRouterSwapID, call.Index)
	s.UserSourceAddress = userSource
	s.UserDestinationAddress = userDestination
	if acc, ok := ctx.Repo.GetAccount(userSource); ok {
		s.SourceMint = acc.MintAddress
	}
	if acc, ok := ctx.Repo.GetAccount(userDestination); ok {
		s.DestinationMint = acc.MintAddress
	}

	if program.Router {
		return s
	}

	poolSrc, poolDst := resolvePoolEndpoints(ctx, call, matcher, userSource, userDestination)
	s.PoolAddresses = []string{poolSrc, poolDst}
	if acc := ctx.Repo.GetOrCreateAccount(poolSrc); acc != nil {
		acc.IsPool = true
	}
	if acc := ctx.Repo.GetOrCreateAccount(poolDst); acc != nil {
		acc.IsPool = true
	}

	if matcher.NativeSol != nil {
		inferred, err := inferNativeSOL(call, matcher.NativeSol)
		if err != nil {
			if logger != nil {
				logger.Warn("native SOL inference failed", zap.String("program", program.ProgramAddress))
			}
		} else {
			amount := int64(inferred)
			builder.AddTransfer(ctx, builder.Edge{
				Type:               graph.TransferNativeSOL,
				ProgramAddress:     program.ProgramAddress,
				SourceAddress:      poolSrc,
				DestinationAddress: userDestination,
				AmountLamport:      &amount,
				SwapParentID:       s.ID,
				ParentRouterSwapID: parentRouterSwapID,
				InstructionIndex:   call.Index,
			})
		}
	}

	return s
}

// resolvePoolEndpoints applies spec §4.6's pool-index / pools-tuple /
// sentinel resolution. A BURN or MINTTO sentinel on one pool side is
// replaced by the matching virtual account for the *opposite* user side's
// mint (the destination-side sentinel uses the user source's mint, per the
// BURN boundary behavior in spec §8; the source-side sentinel uses the user
// destination's mint by symmetry).
func resolvePoolEndpoints(ctx *txcontext.Context, call *instruction.Call, m *InstructionMatcher, userSource, userDestination string) (src, dst string) {
	if len(m.Pools) >= 2 {
		return call.Accounts[m.Pools[0]], call.Accounts[m.Pools[1]]
	}

	switch m.PoolSourceSentinel {
	case PoolSentinelBurn:
		src = builder.BurnAddress(mintOf(ctx, userDestination))
	case PoolSentinelMintTo:
		src = builder.MintToAddress(mintOf(ctx, userDestination))
	default:
		src = call.Accounts[m.PoolSourceIndex]
	}

	switch m.PoolDestinationSentinel {
	case PoolSentinelBurn:
		dst = builder.BurnAddress(mintOf(ctx, userSource))
	case PoolSentinelMintTo:
		dst = builder.MintToAddress(mintOf(ctx, userSource))
	default:
		dst = call.Accounts[m.PoolDestinationIndex]
	}
	return src, dst
}

func mintOf(ctx *txcontext.Context, address string) string {
	if acc, ok := ctx.Repo.GetAccount(address); ok {
		return acc.MintAddress
	}
	return ""
}

// inferNativeSOL implements both native-SOL inference strategies from
// spec §4.6.
func inferNativeSOL(call *instruction.Call, cfg *NativeSolInference) (uint64, error) {
	switch cfg.Strategy {
	case NativeSolOuterInstruction:
		values, err := decodeLEUint64s(call.Data, cfg.FormatStr)
		if err != nil || len(values) == 0 {
			return 0, errInferenceFailed
		}
		return values[len(values)-1], nil
	case NativeSolInnerInstruction:
		for _, inner := range call.Inner {
			if inner.ProgramID != cfg.ProgramAddress {
				continue
			}
			if len(inner.Data) < len(cfg.Discriminator) {
				continue
			}
			match := true
			for i, b := range cfg.Discriminator {
				if inner.Data[i] != b {
					match = false
					break
				}
			}
			if !match {
				continue
			}
			values, err := decodeLEUint64s(inner.Data, cfg.FormatStr)
			if err != nil || len(values) == 0 {
				continue
			}
			return values[len(values)-1], nil
		}
		return 0, errInferenceFailed
	default:
		return 0, errInferenceFailed
	}
}

type inferenceError struct{ msg string }

func (e inferenceError) Error() string { return e.msg }

var errInferenceFailed = inferenceError{"swap: native SOL inference did not match any inner instruction"}
