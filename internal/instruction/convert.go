package instruction

import (
	"github.com/mr-tron/base58"

	"github.com/solgraph/txgraph/internal/boundary"
)

// FromBoundary converts a wire-shaped boundary.Instruction into the Raw form
// the call-stack decoder consumes, base58-decoding the data field when the
// host did not hand back a pre-parsed instruction.
func FromBoundary(ix boundary.Instruction) Raw {
	r := Raw{
		ProgramID:       ix.ProgramID,
		ProgramName:     ix.ProgramName,
		InstructionName: ix.InstructionName,
		Info:            ix.Info,
		Accounts:        ix.Accounts,
		StackHeight:     ix.StackHeight,
	}
	if ix.Data != "" {
		if decoded, err := base58.Decode(ix.Data); err == nil {
			r.Data = decoded
		}
	}
	return r
}

func fromBoundaryInnerGroups(groups []boundary.InnerInstructionGroup) []InnerGroup {
	out := make([]InnerGroup, 0, len(groups))
	for _, g := range groups {
		raws := make([]Raw, 0, len(g.Instructions))
		for _, ix := range g.Instructions {
			raws = append(raws, FromBoundary(ix))
		}
		out = append(out, InnerGroup{Index: g.Index, Instructions: raws})
	}
	return out
}

// BuildAllFromTransaction builds the full call-stack forest directly from a
// ParsedTransaction's top-level and inner instruction lists.
func BuildAllFromTransaction(tx *boundary.ParsedTransaction) ([]*Call, error) {
	outer := make([]Raw, 0, len(tx.Instructions))
	for _, ix := range tx.Instructions {
		outer = append(outer, FromBoundary(ix))
	}
	return BuildAllCallStacks(outer, fromBoundaryInnerGroups(tx.InnerInstructions))
}
