package parser

// Well-known program ids referenced directly by parsers that need to compare
// an owner/program field against a known address rather than a parsed name
// (spec §6's sentinel addresses).
const (
	StakeProgramID         = "Stake11111111111111111111111111111111111111"
	ComputeBudgetProgramID = "ComputeBudget111111111111111111111111111111"
)
