// Package boundary defines the external interfaces spec §6 requires of the
// host: fetching transactions/blocks/prices. The core never implements these
// itself; internal/rpcboundary provides one concrete adapter.
package boundary

import "context"

// AccountKey is one entry of ParsedTransaction.account_keys.
type AccountKey struct {
	Pubkey string
	Signer bool
}

// TokenBalance is one entry of pre_token_balances/post_token_balances.
type TokenBalance struct {
	AccountIndex int
	Mint         string
	Owner        string // may be empty
	Amount       string // integer string, per spec §6
}

// Instruction is one top-level or inner instruction as delivered by the
// host RPC layer: either pre-parsed JSON (ProgramName/InstructionName/Info)
// or raw base58 data (Data), matching Solana's jsonParsed instruction shape.
type Instruction struct {
	ProgramID       string
	ProgramName     string         // e.g. "system", "spl-token"; empty when unparsed
	InstructionName string         // e.g. "transfer", "burn"; empty when unparsed
	Info            map[string]any // RPC-decoded instruction fields; nil when unparsed
	Accounts        []string
	Data            string // base58, used when ProgramName is empty
	StackHeight     int    // meaningful only within InnerInstructions
}

// InnerInstructionGroup is one entry of meta.inner_instructions.
type InnerInstructionGroup struct {
	Index        int
	Instructions []Instruction
}

// ParsedTransaction is the input value object spec §6 describes.
type ParsedTransaction struct {
	Slot                 uint64
	BlockTime            *int64
	Signature            string
	Err                  string // empty means no error
	Fee                  uint64
	ComputeUnitsConsumed uint64
	AccountKeys          []AccountKey
	PreBalances          []uint64
	PostBalances         []uint64
	PreTokenBalances     []TokenBalance
	PostTokenBalances    []TokenBalance
	Instructions         []Instruction
	InnerInstructions    []InnerInstructionGroup
}

// ErrNotFound is returned by FetchTransaction when the signature is unknown
// to the host RPC endpoint.
var ErrNotFound = notFoundError{}

type notFoundError struct{}

func (notFoundError) Error() string { return "boundary: transaction not found" }

// TransactionFetcher retrieves a single transaction by signature.
type TransactionFetcher interface {
	FetchTransaction(ctx context.Context, signature string) (*ParsedTransaction, error)
}

// BlockSignatureFetcher retrieves the ordered signature list of a slot, used
// by the graphspace composer (C9) to order same-slot transactions.
type BlockSignatureFetcher interface {
	FetchBlockSignatures(ctx context.Context, slot uint64) ([]string, error)
}

// PriceFetcher retrieves the SOL-USD spot price nearest timestampMs, used to
// seed C10's price-ratio derivation. A nil result means no price is
// available for that timestamp.
type PriceFetcher interface {
	GetSolUsdPrice(ctx context.Context, timestampMs int64) (*float64, error)
}

// Fetcher bundles all three boundary interfaces, the shape internal/rpcboundary
// implements.
type Fetcher interface {
	TransactionFetcher
	BlockSignatureFetcher
	PriceFetcher
}
