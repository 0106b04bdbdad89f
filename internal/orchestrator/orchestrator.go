// Package orchestrator drives a single transaction through C1→C7 and
// finalizes its fee edges (component C8), and offers a worker-pool entry
// point for parsing many transactions concurrently (§5's concurrency
// model). Grounded on
// original_source/GrafolanaBack/domain/transaction/services/transaction_parser_service.py
// (parse_transaction, _process_instructions).
package orchestrator

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/solgraph/txgraph/internal/account"
	"github.com/solgraph/txgraph/internal/boundary"
	"github.com/solgraph/txgraph/internal/builder"
	"github.com/solgraph/txgraph/internal/instruction"
	"github.com/solgraph/txgraph/internal/parser"
	"github.com/solgraph/txgraph/internal/resolver"
	"github.com/solgraph/txgraph/internal/swap"
	"github.com/solgraph/txgraph/internal/txcontext"
	"github.com/solgraph/txgraph/internal/utils"
)

// Orchestrator wires the C5 parser registry and C6 swap catalog a caller
// wants applied to every transaction it parses.
type Orchestrator struct {
	Registry *parser.Registry
	Catalog  *swap.Catalog
	Logger   *zap.Logger
}

func New(registry *parser.Registry, catalog *swap.Catalog, logger *zap.Logger) *Orchestrator {
	if registry == nil {
		registry = parser.Default()
	}
	if catalog == nil {
		catalog = swap.DefaultCatalog()
	}
	return &Orchestrator{Registry: registry, Catalog: catalog, Logger: logger}
}

// ParseTransaction builds the TransactionContext for a single transaction:
// account repository seeding, instruction walk, fee edges and swap
// resolution. It never returns an error for a malformed or erred
// transaction — per spec §7 the failure is recorded on the context itself.
func (o *Orchestrator) ParseTransaction(tx *boundary.ParsedTransaction) *txcontext.Context {
	var blockTime int64
	if tx.BlockTime != nil {
		blockTime = *tx.BlockTime
	}
	ctx := txcontext.New(tx.Signature, tx.Slot, blockTime)
	ctx.Err = tx.Err
	ctx.FeeLamport = int64(tx.Fee)

	feePayer := seedRepository(ctx, tx)

	if tx.Err != "" {
		builder.AddFeeTransfers(ctx, o.Logger, feePayer, int64(tx.Fee), 0)
		if o.Logger != nil {
			o.Logger.Info("transaction erred", zap.String("signature", tx.Signature))
		}
		return ctx
	}

	calls, err := instruction.BuildAllFromTransaction(tx)
	if err != nil {
		utils.HandleError(o.Logger, err, "instruction decode failed")
		ctx.Err = err.Error()
		builder.AddFeeTransfers(ctx, o.Logger, feePayer, int64(tx.Fee), 0)
		return ctx
	}

	for _, call := range calls {
		o.walk(ctx, call, 0, 0)
	}

	priorityFee := txcontext.ComputePriorityFee(ctx.ComputeUnitPriceMicroLamports, tx.ComputeUnitsConsumed)
	baseFee := int64(tx.Fee) - priorityFee
	if baseFee < 0 {
		baseFee = int64(tx.Fee)
		priorityFee = 0
	}
	builder.AddFeeTransfers(ctx, o.Logger, feePayer, baseFee, priorityFee)

	resolver.ResolveAll(ctx, o.Logger)

	if o.Logger != nil {
		o.Logger.Info("transaction parsed", zap.String("signature", tx.Signature))
	}
	return ctx
}

// walk implements _process_instructions: it tags the invoked program,
// dispatches to a C5 parser or the C6 swap parser (first match wins), and
// recurses into inner instructions carrying local — not shared — copies of
// parent_swap_id/parent_router_swap_id, so sibling instructions never see a
// swap scope they aren't actually nested inside.
func (o *Orchestrator) walk(ctx *txcontext.Context, call *instruction.Call, parentSwapID, parentRouterSwapID int) {
	ctx.Repo.GetOrCreateAccount(call.ProgramID).RefineType(account.TypeProgram)

	if p := o.Registry.Dispatch(call); p != nil {
		_ = p.Parse(ctx, call, parentSwapID, parentRouterSwapID)
		for _, inner := range call.Inner {
			o.walk(ctx, inner, parentSwapID, parentRouterSwapID)
		}
		return
	}

	if swap.CanParse(o.Catalog, call) {
		s := swap.Parse(ctx, o.Catalog, o.Logger, call, parentSwapID, parentRouterSwapID)
		if s != nil {
			childRouterID := parentRouterSwapID
			if s.Router {
				childRouterID = s.ID
			}
			for _, inner := range call.Inner {
				o.walk(ctx, inner, s.ID, childRouterID)
			}
			return
		}
	}

	for _, inner := range call.Inner {
		o.walk(ctx, inner, parentSwapID, parentRouterSwapID)
	}
}

// seedRepository builds the account repository from pre-transaction
// balances, classifying addresses as TOKEN, WALLET or TOKEN_MINT per
// spec §4.8 step 1, and returns the fee payer's address.
func seedRepository(ctx *txcontext.Context, tx *boundary.ParsedTransaction) string {
	var feePayer string
	for i, key := range tx.AccountKeys {
		var lamport int64
		if i < len(tx.PreBalances) {
			lamport = int64(tx.PreBalances[i])
		}
		v := ctx.Repo.CreateVersion(key.Pubkey, tx.Signature, "")
		v.BalanceLamport = lamport
		if key.Signer {
			ctx.Signers = append(ctx.Signers, key.Pubkey)
			if feePayer == "" {
				feePayer = key.Pubkey
			}
			ctx.Repo.GetOrCreateAccount(key.Pubkey).RefineType(account.TypeWallet)
		}
	}

	mints := make(map[string]bool)
	for _, tb := range tx.PreTokenBalances {
		seedTokenBalance(ctx, tx, tb)
		mints[tb.Mint] = true
	}
	for _, tb := range tx.PostTokenBalances {
		mints[tb.Mint] = true
	}
	for _, key := range tx.AccountKeys {
		if mints[key.Pubkey] {
			ctx.Repo.GetOrCreateAccount(key.Pubkey).RefineType(account.TypeTokenMint)
		}
	}

	if feePayer == "" && len(tx.AccountKeys) > 0 {
		feePayer = tx.AccountKeys[0].Pubkey
	}
	return feePayer
}

func seedTokenBalance(ctx *txcontext.Context, tx *boundary.ParsedTransaction, tb boundary.TokenBalance) {
	if tb.AccountIndex >= len(tx.AccountKeys) {
		return
	}
	addr := tx.AccountKeys[tb.AccountIndex].Pubkey
	amount := parseAmount(tb.Amount)
	v, ok := ctx.Repo.GetLatestVersion(addr)
	if !ok {
		v = ctx.Repo.CreateVersion(addr, tx.Signature, tb.Owner)
	}
	v.BalanceToken = amount
	acc, _ := ctx.Repo.GetAccount(addr)
	acc.RefineType(account.TypeToken)
	acc.RefineMint(tb.Mint)
	if tb.Owner != "" {
		builder.UpdateOwner(ctx, addr, tb.Owner)
	}
}

func parseAmount(s string) int64 {
	var n int64
	for _, r := range s {
		if r < '0' || r > '9' {
			return n
		}
		n = n*10 + int64(r-'0')
	}
	return n
}

// ParseMany parses transactions concurrently, one worker per transaction
// bounded at workers in flight, per §5: "N transactions may be parsed in
// parallel, one worker per transaction, each with its own repository/graph".
func (o *Orchestrator) ParseMany(ctx context.Context, txs []*boundary.ParsedTransaction, workers int) (map[string]*txcontext.Context, error) {
	results := make([]*txcontext.Context, len(txs))
	g, _ := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, tx := range txs {
		i, tx := i, tx
		g.Go(func() error {
			results[i] = o.ParseTransaction(tx)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	out := make(map[string]*txcontext.Context, len(results))
	for _, r := range results {
		if r != nil {
			out[r.Signature] = r
		}
	}
	return out, nil
}
