package parser

import (
	"github.com/solgraph/txgraph/internal/instruction"
	"github.com/solgraph/txgraph/internal/txcontext"
	"github.com/solgraph/txgraph/internal/utils/binary"
)

// setComputeUnitPriceDiscriminator is the compute-budget program's first
// instruction byte for SetComputeUnitPrice (spec §4.5's "first byte == 0x03"
// trigger), matching the ComputeBudgetInstruction enum ordinal the program
// itself switches on.
const setComputeUnitPriceDiscriminator = 0x03

type computeBudgetPriorityParser struct{}

func (computeBudgetPriorityParser) Name() string { return "compute-budget.setComputeUnitPrice" }

func (computeBudgetPriorityParser) CanParse(call *instruction.Call) bool {
	return call.ProgramID == ComputeBudgetProgramID &&
		len(call.Data) >= 9 &&
		call.Data[0] == setComputeUnitPriceDiscriminator
}

// Parse records the observed compute-unit price on the context; the
// orchestrator combines it with the transaction's reported compute units
// consumed to derive the priority fee once all instructions are walked.
func (computeBudgetPriorityParser) Parse(ctx *txcontext.Context, call *instruction.Call, _, _ int) error {
	microLamports := binary.ReadUint64LittleEndian(call.Data, 1)
	ctx.ComputeUnitPriceMicroLamports = microLamports
	return nil
}
