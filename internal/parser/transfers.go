package parser

import (
	"github.com/solgraph/txgraph/internal/account"
	"github.com/solgraph/txgraph/internal/builder"
	"github.com/solgraph/txgraph/internal/graph"
	"github.com/solgraph/txgraph/internal/instruction"
	"github.com/solgraph/txgraph/internal/txcontext"
)

type systemTransferParser struct{}

func (systemTransferParser) Name() string { return "system.transfer" }

func (systemTransferParser) CanParse(call *instruction.Call) bool {
	return call.ProgramName == "system" && call.InstructionName == "transfer"
}

func (systemTransferParser) Parse(ctx *txcontext.Context, call *instruction.Call, swapParentID, parentRouterSwapID int) error {
	lamports := int64(infoUint64(call.Info, "lamports"))
	builder.AddTransfer(ctx, builder.Edge{
		Type:               graph.TransferGeneric,
		ProgramAddress:     call.ProgramID,
		SourceAddress:      infoString(call.Info, "source"),
		DestinationAddress: infoString(call.Info, "destination"),
		AmountLamport:      &lamports,
		SwapParentID:       swapParentID,
		ParentRouterSwapID: parentRouterSwapID,
		InstructionIndex:   call.Index,
	})
	return nil
}

type tokenTransferParser struct{}

func (tokenTransferParser) Name() string { return "spl-token.transfer" }

func (tokenTransferParser) CanParse(call *instruction.Call) bool {
	return call.ProgramName == "spl-token" && call.InstructionName == "transfer"
}

func (tokenTransferParser) Parse(ctx *txcontext.Context, call *instruction.Call, swapParentID, parentRouterSwapID int) error {
	amount := int64(infoUint64(call.Info, "amount"))
	builder.AddTransfer(ctx, builder.Edge{
		Type:               graph.TransferGeneric,
		ProgramAddress:     call.ProgramID,
		SourceAddress:      infoString(call.Info, "source"),
		DestinationAddress: infoString(call.Info, "destination"),
		AmountToken:        &amount,
		SourceAuthority:    infoString(call.Info, "authority"),
		SwapParentID:       swapParentID,
		ParentRouterSwapID: parentRouterSwapID,
		InstructionIndex:   call.Index,
	})
	return nil
}

type tokenTransferCheckedParser struct{}

func (tokenTransferCheckedParser) Name() string { return "spl-token.transferChecked" }

func (tokenTransferCheckedParser) CanParse(call *instruction.Call) bool {
	return call.ProgramName == "spl-token" && call.InstructionName == "transferChecked"
}

func (tokenTransferCheckedParser) Parse(ctx *txcontext.Context, call *instruction.Call, swapParentID, parentRouterSwapID int) error {
	amount := int64(infoTokenAmount(call.Info, "tokenAmount"))
	authority := infoString(call.Info, "authority")
	if authority == "" {
		if multisig, ok := call.Info["multisigAuthority"]; ok {
			if s, ok := multisig.(string); ok {
				authority = s
			} else if arr, ok := multisig.([]any); ok && len(arr) > 0 {
				if s, ok := arr[0].(string); ok {
					authority = s
				}
			}
		}
	}
	builder.AddTransfer(ctx, builder.Edge{
		Type:               graph.TransferChecked,
		ProgramAddress:     call.ProgramID,
		SourceAddress:      infoString(call.Info, "source"),
		DestinationAddress: infoString(call.Info, "destination"),
		AmountToken:        &amount,
		Mint:                infoString(call.Info, "mint"),
		SourceAuthority:    authority,
		SourceType:         account.TypeToken,
		DestinationType:    account.TypeToken,
		SwapParentID:       swapParentID,
		ParentRouterSwapID: parentRouterSwapID,
		InstructionIndex:   call.Index,
	})
	return nil
}
