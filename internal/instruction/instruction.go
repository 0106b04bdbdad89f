// Package instruction implements the instruction call-stack decoder
// (component C1), turning a transaction's flat outer/inner instruction lists
// into the nested call tree that every downstream parser walks. Grounded on
// original_source/GrafolanaBack/domain/transaction/utils/instruction_utils.py
// (get_instruction_call_stack, build_call_stack).
package instruction

import "fmt"

// Raw is the flat, wire-shaped instruction as it appears in a transaction's
// message or meta.inner_instructions, before tree reconstruction. ProgramName,
// InstructionName and Info are populated only when the host RPC recognized
// the program and returned a parsed JSON form; otherwise Data carries the
// raw instruction bytes and parsers fall back to discriminator matching.
type Raw struct {
	ProgramID       string
	ProgramName     string
	InstructionName string
	Info            map[string]any
	Accounts        []string
	Data            []byte
	StackHeight     int // 0 for outer instructions; >=2 for the first level of CPI per spec
}

// InnerGroup is meta.inner_instructions[i]: the flat list of CPI instructions
// invoked by outer instruction Index.
type InnerGroup struct {
	Index        int
	Instructions []Raw
}

// Call is one node of the reconstructed call tree: an instruction together
// with the instructions it invoked via CPI, in program order.
type Call struct {
	Index           int // position among its siblings at this level
	ProgramID       string
	ProgramName     string
	InstructionName string
	Info            map[string]any
	Accounts        []string
	Data            []byte
	StackHeight     int
	Inner           []*Call
}

// ErrMalformed is returned when stack heights are not monotonically
// consistent with a tree (spec §7's MalformedInstruction/InvalidInnerInstructions).
type ErrMalformed struct {
	Reason string
}

func (e *ErrMalformed) Error() string {
	return fmt.Sprintf("instruction: malformed call stack: %s", e.Reason)
}

// BuildCallStack reconstructs the nested call tree for a single outer
// instruction given its flat inner-instruction list. Outer instructions
// always sit at stack height 0; the first level of CPI begins at height 2
// (Solana RPC reserves 1 for the outer instruction itself), consistent with
// build_call_stack's floor.
func BuildCallStack(outerIndex int, outer Raw, inner []Raw) (*Call, error) {
	root := &Call{
		Index:           outerIndex,
		ProgramID:       outer.ProgramID,
		ProgramName:     outer.ProgramName,
		InstructionName: outer.InstructionName,
		Info:            outer.Info,
		Accounts:        outer.Accounts,
		Data:            outer.Data,
		StackHeight:     0,
	}
	if len(inner) == 0 {
		return root, nil
	}

	// stack[h] is the most recently pushed Call at height h; a new
	// instruction at height h is attached to stack[h-1]. The outer
	// instruction is height 0 on the wire but is the parent frame for the
	// first CPI level (height 2), so it's seeded at slot 1, not 0.
	stack := map[int]*Call{1: root}
	prevHeight := 1
	for i, raw := range inner {
		h := raw.StackHeight
		if h < 2 {
			return nil, &ErrMalformed{Reason: fmt.Sprintf("inner instruction %d has stack_height %d, want >=2", i, h)}
		}
		parent, ok := stack[h-1]
		if !ok {
			return nil, &ErrMalformed{Reason: fmt.Sprintf("inner instruction %d at height %d has no parent at height %d", i, h, h-1)}
		}
		call := &Call{
			Index:           len(parent.Inner),
			ProgramID:       raw.ProgramID,
			ProgramName:     raw.ProgramName,
			InstructionName: raw.InstructionName,
			Info:            raw.Info,
			Accounts:        raw.Accounts,
			Data:            raw.Data,
			StackHeight:     h,
		}
		parent.Inner = append(parent.Inner, call)
		stack[h] = call
		// Drop any stale deeper frames once we've popped back up, so a
		// sibling at the same height doesn't mistakenly look like a parent.
		for deeper := h + 1; deeper <= prevHeight; deeper++ {
			delete(stack, deeper)
		}
		prevHeight = h
	}
	return root, nil
}

// BuildAllCallStacks builds the call tree for every outer instruction in a
// transaction, matching inner instruction groups by outer index.
func BuildAllCallStacks(outer []Raw, innerGroups []InnerGroup) ([]*Call, error) {
	byIndex := make(map[int][]Raw, len(innerGroups))
	for _, g := range innerGroups {
		byIndex[g.Index] = g.Instructions
	}
	calls := make([]*Call, 0, len(outer))
	for i, o := range outer {
		call, err := BuildCallStack(i, o, byIndex[i])
		if err != nil {
			return nil, err
		}
		calls = append(calls, call)
	}
	return calls, nil
}

// Walk visits call and every descendant, depth-first, in program order.
func Walk(call *Call, visit func(*Call, *Call)) {
	walk(call, nil, visit)
}

func walk(call, parent *Call, visit func(*Call, *Call)) {
	visit(call, parent)
	for _, child := range call.Inner {
		walk(child, call, visit)
	}
}
