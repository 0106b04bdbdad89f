package parser

import (
	"github.com/solgraph/txgraph/internal/account"
	"github.com/solgraph/txgraph/internal/builder"
	"github.com/solgraph/txgraph/internal/graph"
	"github.com/solgraph/txgraph/internal/instruction"
	"github.com/solgraph/txgraph/internal/txcontext"
)

type stakeInitializeParser struct{}

func (stakeInitializeParser) Name() string { return "stake.initialize" }

func (stakeInitializeParser) CanParse(call *instruction.Call) bool {
	return call.ProgramName == "stake" && call.InstructionName == "initialize"
}

func (stakeInitializeParser) Parse(ctx *txcontext.Context, call *instruction.Call, _, _ int) error {
	addr := infoString(call.Info, "stakeAccount")
	if addr == "" {
		addr = infoString(call.Info, "account")
	}
	if !ctx.Repo.HasVersions(addr) {
		ctx.Repo.CreateVersion(addr, ctx.Signature, "")
	}
	acc, _ := ctx.Repo.GetAccount(addr)
	acc.RefineType(account.TypeStake)

	withdrawer := infoString(infoMap(call.Info, "authorized"), "withdrawer")
	if withdrawer != "" {
		ctx.Repo.UpdateOwnerInAllVersions(addr, withdrawer)
	}
	return nil
}

type stakeWithdrawParser struct{}

func (stakeWithdrawParser) Name() string { return "stake.withdraw" }

func (stakeWithdrawParser) CanParse(call *instruction.Call) bool {
	return call.ProgramName == "stake" && call.InstructionName == "withdraw"
}

func (stakeWithdrawParser) Parse(ctx *txcontext.Context, call *instruction.Call, swapParentID, parentRouterSwapID int) error {
	lamports := int64(infoUint64(call.Info, "lamports"))
	builder.AddTransfer(ctx, builder.Edge{
		Type:               graph.TransferWithdraw,
		ProgramAddress:     call.ProgramID,
		SourceAddress:      infoString(call.Info, "stakeAccount"),
		DestinationAddress: infoString(call.Info, "destination"),
		AmountLamport:      &lamports,
		SwapParentID:       swapParentID,
		ParentRouterSwapID: parentRouterSwapID,
		InstructionIndex:   call.Index,
	})
	return nil
}

type stakeSplitParser struct{}

func (stakeSplitParser) Name() string { return "stake.split" }

func (stakeSplitParser) CanParse(call *instruction.Call) bool {
	return call.ProgramName == "stake" && call.InstructionName == "split"
}

func (stakeSplitParser) Parse(ctx *txcontext.Context, call *instruction.Call, swapParentID, parentRouterSwapID int) error {
	lamports := int64(infoUint64(call.Info, "lamports"))
	builder.AddTransfer(ctx, builder.Edge{
		Type:               graph.TransferSplit,
		ProgramAddress:     call.ProgramID,
		SourceAddress:      infoString(call.Info, "stakeAccount"),
		DestinationAddress: infoString(call.Info, "newSplitAccount"),
		AmountLamport:      &lamports,
		DestinationType:    account.TypeStake,
		SwapParentID:       swapParentID,
		ParentRouterSwapID: parentRouterSwapID,
		InstructionIndex:   call.Index,
	})
	return nil
}

type stakeAuthorizeParser struct{}

func (stakeAuthorizeParser) Name() string { return "stake.authorize" }

func (stakeAuthorizeParser) CanParse(call *instruction.Call) bool {
	return call.ProgramName == "stake" && call.InstructionName == "authorize" &&
		infoString(call.Info, "authorityType") == "Withdrawer"
}

func (stakeAuthorizeParser) Parse(ctx *txcontext.Context, call *instruction.Call, swapParentID, parentRouterSwapID int) error {
	zero := int64(0)
	builder.AddTransfer(ctx, builder.Edge{
		Type:               graph.TransferAuthorize,
		ProgramAddress:     call.ProgramID,
		SourceAddress:      infoString(call.Info, "stakeAccount"),
		DestinationAddress: infoString(call.Info, "stakeAccount"),
		AmountLamport:      &zero,
		DestinationOwner:   infoString(call.Info, "newAuthority"),
		SwapParentID:       swapParentID,
		ParentRouterSwapID: parentRouterSwapID,
		InstructionIndex:   call.Index,
	})
	return nil
}
