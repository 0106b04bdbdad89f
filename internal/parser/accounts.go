package parser

import (
	"github.com/solgraph/txgraph/internal/account"
	"github.com/solgraph/txgraph/internal/builder"
	"github.com/solgraph/txgraph/internal/graph"
	"github.com/solgraph/txgraph/internal/instruction"
	"github.com/solgraph/txgraph/internal/txcontext"
)

type createAccountParser struct{}

func (createAccountParser) Name() string { return "system.createAccount" }

func (createAccountParser) CanParse(call *instruction.Call) bool {
	return call.ProgramName == "system" &&
		(call.InstructionName == "createAccount" || call.InstructionName == "createAccountWithSeed")
}

func (createAccountParser) Parse(ctx *txcontext.Context, call *instruction.Call, swapParentID, parentRouterSwapID int) error {
	lamports := int64(infoUint64(call.Info, "lamports"))
	owner := infoString(call.Info, "owner")
	destType := account.TypeUnknown
	if owner == StakeProgramID {
		destType = account.TypeStake
	}
	builder.AddTransfer(ctx, builder.Edge{
		Type:               graph.TransferCreateAccount,
		ProgramAddress:     call.ProgramID,
		SourceAddress:      infoString(call.Info, "source"),
		DestinationAddress: infoString(call.Info, "newAccount"),
		AmountLamport:      &lamports,
		DestinationType:    destType,
		SwapParentID:       swapParentID,
		ParentRouterSwapID: parentRouterSwapID,
		InstructionIndex:   call.Index,
	})
	return nil
}

type closeAccountParser struct{}

func (closeAccountParser) Name() string { return "spl-token.closeAccount" }

func (closeAccountParser) CanParse(call *instruction.Call) bool {
	return call.ProgramName == "spl-token" && call.InstructionName == "closeAccount"
}

func (closeAccountParser) Parse(ctx *txcontext.Context, call *instruction.Call, swapParentID, parentRouterSwapID int) error {
	addr := infoString(call.Info, "account")
	var tokenBalanceLamport int64
	if v, ok := ctx.Repo.GetLatestVersion(addr); ok {
		tokenBalanceLamport = v.BalanceToken
	}
	amount := tokenBalanceLamport + RentReserveLamports
	builder.AddTransfer(ctx, builder.Edge{
		Type:               graph.TransferCloseAccount,
		ProgramAddress:     call.ProgramID,
		SourceAddress:      addr,
		DestinationAddress: infoString(call.Info, "destination"),
		AmountLamport:      &amount,
		SwapParentID:       swapParentID,
		ParentRouterSwapID: parentRouterSwapID,
		InstructionIndex:   call.Index,
	})
	return nil
}

type burnParser struct{}

func (burnParser) Name() string { return "spl-token.burn" }

func (burnParser) CanParse(call *instruction.Call) bool {
	return call.ProgramName == "spl-token" && call.InstructionName == "burn"
}

func (burnParser) Parse(ctx *txcontext.Context, call *instruction.Call, _, _ int) error {
	amount := int64(infoUint64(call.Info, "amount"))
	builder.AddBurn(ctx, infoString(call.Info, "account"), infoString(call.Info, "mint"), amount)
	return nil
}

type mintToParser struct{}

func (mintToParser) Name() string { return "spl-token.mintTo" }

func (mintToParser) CanParse(call *instruction.Call) bool {
	return call.ProgramName == "spl-token" && call.InstructionName == "mintTo"
}

func (mintToParser) Parse(ctx *txcontext.Context, call *instruction.Call, _, _ int) error {
	amount := int64(infoUint64(call.Info, "amount"))
	builder.AddMintTo(ctx, infoString(call.Info, "account"), infoString(call.Info, "mint"), amount)
	return nil
}

type syncNativeParser struct{}

func (syncNativeParser) Name() string { return "spl-token.syncNative" }

func (syncNativeParser) CanParse(call *instruction.Call) bool {
	return call.ProgramName == "spl-token" && call.InstructionName == "syncNative"
}

// Parse flips the account to a wrapped-SOL token account in place and tops
// up its token balance to match its lamport balance minus the rent reserve.
// No edge is emitted — syncNative just reconciles bookkeeping, it moves no
// value between accounts.
func (syncNativeParser) Parse(ctx *txcontext.Context, call *instruction.Call, _, _ int) error {
	addr := infoString(call.Info, "account")
	if !ctx.Repo.HasVersions(addr) {
		ctx.Repo.CreateVersion(addr, ctx.Signature, "")
	}
	acc, _ := ctx.Repo.GetAccount(addr)
	acc.RefineType(account.TypeToken)
	acc.RefineMint(WrappedSOLMint)

	v, _ := ctx.Repo.GetLatestVersion(addr)
	delta := v.BalanceLamport - RentReserveLamports
	v.ApplyTokenCredit(delta)
	return nil
}

type systemAssignParser struct{}

func (systemAssignParser) Name() string { return "system.assign" }

func (systemAssignParser) CanParse(call *instruction.Call) bool {
	return call.ProgramName == "system" && call.InstructionName == "assign"
}

func (systemAssignParser) Parse(ctx *txcontext.Context, call *instruction.Call, _, _ int) error {
	owner := infoString(call.Info, "owner")
	if owner != StakeProgramID {
		return nil
	}
	addr := infoString(call.Info, "account")
	if !ctx.Repo.HasVersions(addr) {
		ctx.Repo.CreateVersion(addr, ctx.Signature, "")
	}
	acc, _ := ctx.Repo.GetAccount(addr)
	acc.RefineType(account.TypeStake)
	return nil
}

type ataCreateParser struct{}

func (ataCreateParser) Name() string { return "spl-associated-token-account.create" }

func (ataCreateParser) CanParse(call *instruction.Call) bool {
	return call.ProgramName == "spl-associated-token-account" &&
		(call.InstructionName == "create" || call.InstructionName == "createIdempotent")
}

func (ataCreateParser) Parse(ctx *txcontext.Context, call *instruction.Call, _, _ int) error {
	addr := infoString(call.Info, "account")
	owner := infoString(call.Info, "wallet")
	mint := infoString(call.Info, "mint")
	if !ctx.Repo.HasVersions(addr) {
		ctx.Repo.CreateVersion(addr, ctx.Signature, owner)
	}
	builder.UpdateOwner(ctx, addr, owner)
	acc, _ := ctx.Repo.GetAccount(addr)
	acc.RefineType(account.TypeToken)
	acc.RefineMint(mint)
	return nil
}
