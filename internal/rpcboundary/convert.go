package rpcboundary

import (
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/solgraph/txgraph/internal/boundary"
)

func decodeSignature(s string) (solana.Signature, error) {
	return solana.SignatureFromBase58(s)
}

// convertTransaction maps one jsonParsed RPC transaction result into the
// host-neutral boundary.ParsedTransaction, the only place RPC wire types
// are visible outside this package.
func convertTransaction(signature string, res *rpc.GetParsedTransactionResult) *boundary.ParsedTransaction {
	out := &boundary.ParsedTransaction{
		Slot:      res.Slot,
		Signature: signature,
	}
	if res.BlockTime != nil {
		bt := int64(*res.BlockTime)
		out.BlockTime = &bt
	}

	if res.Meta != nil {
		meta := res.Meta
		if meta.Err != nil {
			out.Err = "error"
		}
		out.Fee = meta.Fee
		out.PreBalances = meta.PreBalances
		out.PostBalances = meta.PostBalances
		if meta.ComputeUnitsConsumed != nil {
			out.ComputeUnitsConsumed = *meta.ComputeUnitsConsumed
		}
		out.PreTokenBalances = convertTokenBalances(meta.PreTokenBalances)
		out.PostTokenBalances = convertTokenBalances(meta.PostTokenBalances)
		out.InnerInstructions = convertInnerInstructions(meta.InnerInstructions)
	}

	if res.Transaction != nil {
		for _, acc := range res.Transaction.Message.AccountKeys {
			out.AccountKeys = append(out.AccountKeys, boundary.AccountKey{
				Pubkey: acc.PublicKey.String(),
				Signer: acc.Signer,
			})
		}
		out.Instructions = convertInstructions(res.Transaction.Message.Instructions, 0)
	}

	return out
}

func convertTokenBalances(in []rpc.TokenBalance) []boundary.TokenBalance {
	out := make([]boundary.TokenBalance, 0, len(in))
	for _, tb := range in {
		owner := ""
		if tb.Owner != nil {
			owner = tb.Owner.String()
		}
		amount := ""
		if tb.UiTokenAmount != nil {
			amount = tb.UiTokenAmount.Amount
		}
		out = append(out, boundary.TokenBalance{
			AccountIndex: int(tb.AccountIndex),
			Mint:         tb.Mint.String(),
			Owner:        owner,
			Amount:       amount,
		})
	}
	return out
}

func convertInnerInstructions(in []rpc.ParsedInnerInstruction) []boundary.InnerInstructionGroup {
	out := make([]boundary.InnerInstructionGroup, 0, len(in))
	for _, group := range in {
		out = append(out, boundary.InnerInstructionGroup{
			Index:        int(group.Index),
			Instructions: convertInstructions(group.Instructions, 2),
		})
	}
	return out
}

// convertInstructions maps parsed RPC instructions into the host-neutral
// shape, reading each instruction's own stack_height off the RPC response
// (jsonParsed inner instructions carry it per instruction, matching
// instruction_utils.py's get_instruction_call_stack). defaultHeight is used
// only when the wire value is absent, which happens for outer instructions
// (height 0, by convention) and for older RPC responses that predate the
// field.
func convertInstructions(in []rpc.ParsedInstruction, defaultHeight int) []boundary.Instruction {
	out := make([]boundary.Instruction, 0, len(in))
	for _, ix := range in {
		height := defaultHeight
		if ix.StackHeight != nil {
			height = int(*ix.StackHeight)
		}
		entry := boundary.Instruction{
			ProgramID:   ix.ProgramId.String(),
			Data:        string(ix.Data),
			StackHeight: height,
		}
		for _, acc := range ix.Accounts {
			entry.Accounts = append(entry.Accounts, acc.String())
		}
		if ix.Parsed != nil {
			entry.ProgramName = ix.Program
			entry.InstructionName = ix.Parsed.InstructionType
			entry.Info = ix.Parsed.Info
		}
		out = append(out, entry)
	}
	return out
}
