package rpcboundary

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"

	"github.com/solgraph/txgraph/internal/boundary"
)

// Adapter implements boundary.Fetcher over an RPC Pool: FetchTransaction and
// FetchBlockSignatures are retried with exponential backoff across the pool's
// endpoints (GetSolUsdPrice goes straight to the embedded PriceFetcher,
// without retry), mirroring
// the retry discipline the teacher applies to transaction submission
// (internal/dex/pumpswap/transaction.go) but pointed at read-only history
// queries instead.
type Adapter struct {
	*PriceFetcher
	pool      *Pool
	logger    *zap.Logger
	maxWindow time.Duration
}

// NewAdapter wires an RPC Pool and a price fetcher into one value
// satisfying boundary.Fetcher in full.
func NewAdapter(pool *Pool, priceFetcher *PriceFetcher, logger *zap.Logger) *Adapter {
	return &Adapter{PriceFetcher: priceFetcher, pool: pool, logger: logger, maxWindow: 15 * time.Second}
}

var maxSupportedTransactionVersion uint64 = 0

// FetchTransaction implements boundary.TransactionFetcher via
// rpc.Client.GetTransaction with jsonParsed encoding, converting the result
// into the host-neutral boundary.ParsedTransaction shape.
func (a *Adapter) FetchTransaction(ctx context.Context, signature string) (*boundary.ParsedTransaction, error) {
	op := func() (*boundary.ParsedTransaction, error) {
		ep, err := a.fetchOnce(ctx, signature)
		if err != nil {
			if a.logger != nil {
				a.logger.Warn("FetchTransaction failed, retrying", zap.String("signature", signature), zap.Error(err))
			}
			return nil, err
		}
		return ep, nil
	}
	return backoff.Retry(ctx, op,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(a.maxWindow),
	)
}

func (a *Adapter) fetchOnce(ctx context.Context, signature string) (*boundary.ParsedTransaction, error) {
	sig, err := decodeSignature(signature)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("rpcboundary: invalid signature %q: %w", signature, err))
	}

	var result *rpc.GetParsedTransactionResult
	_, callErr := a.pool.call(ctx, func(c *rpc.Client) error {
		res, err := c.GetParsedTransaction(ctx, sig, &rpc.GetParsedTransactionOpts{
			MaxSupportedTransactionVersion: &maxSupportedTransactionVersion,
			Commitment:                     rpc.CommitmentConfirmed,
		})
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if callErr != nil {
		if isNotFound(callErr) {
			return nil, backoff.Permanent(boundary.ErrNotFound)
		}
		return nil, callErr
	}
	return convertTransaction(signature, result), nil
}

// FetchBlockSignatures implements boundary.BlockSignatureFetcher, used by
// the graphspace composer to order same-slot transactions.
func (a *Adapter) FetchBlockSignatures(ctx context.Context, slot uint64) ([]string, error) {
	op := func() ([]string, error) {
		var sigs []string
		_, err := a.pool.call(ctx, func(c *rpc.Client) error {
			details := rpc.TransactionDetailsSignatures
			block, err := c.GetBlockWithOpts(ctx, slot, &rpc.GetBlockOpts{
				TransactionDetails:             details,
				MaxSupportedTransactionVersion: &maxSupportedTransactionVersion,
				Commitment:                     rpc.CommitmentConfirmed,
			})
			if err != nil {
				return err
			}
			sigs = make([]string, len(block.Signatures))
			for i, s := range block.Signatures {
				sigs[i] = s.String()
			}
			return nil
		})
		return sigs, err
	}
	return backoff.Retry(ctx, op,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(a.maxWindow),
	)
}

func isNotFound(err error) bool {
	return err != nil && (err.Error() == "not found" || err == rpc.ErrNotFound)
}

var _ boundary.Fetcher = (*Adapter)(nil)
