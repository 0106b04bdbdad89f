// Package rpcboundary is the concrete boundary.Fetcher adapter over Solana
// RPC: an endpoint pool with failover plus a per-call backoff/retry policy.
// Grounded on the teacher's
// internal/blockchain/solana/{client.go,rpc_pool.go,types.go} — same pool +
// metrics shape, rewritten from a trade-submission client (SendTransaction,
// GetRecentBlockhash) to a historical-read client (GetTransaction, GetBlock).
package rpcboundary

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
)

// rpcMetrics tracks a lightweight rolling view of one endpoint's health
// (success and error counts, averaged latency). pick does not consult it;
// endpoint selection is round-robin over the active endpoints.
type rpcMetrics struct {
	mutex        sync.RWMutex
	successCount uint64
	errorCount   uint64
	latency      time.Duration
}

func (m *rpcMetrics) record(success bool, latency time.Duration) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if success {
		atomic.AddUint64(&m.successCount, 1)
	} else {
		atomic.AddUint64(&m.errorCount, 1)
	}
	m.latency = (m.latency + latency) / 2
}

type endpoint struct {
	url     string
	client  *rpc.Client
	mutex   sync.RWMutex
	active  bool
	metrics rpcMetrics
}

func (e *endpoint) setActive(state bool) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.active = state
}

func (e *endpoint) isActive() bool {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	return e.active
}

// Pool is a round-robin set of RPC endpoints with simple health tracking;
// a call that fails on one endpoint is retried against the next.
type Pool struct {
	endpoints []*endpoint
	next      uint64
	logger    *zap.Logger
}

// NewPool dials every URL in urls, marks each reachable one active, and
// fails only if none responds. Grounded on client.go's NewClient: connect
// to every configured node up front, log failures, keep going.
func NewPool(ctx context.Context, urls []string, logger *zap.Logger) (*Pool, error) {
	if len(urls) == 0 {
		return nil, errors.New("rpcboundary: empty RPC endpoint list")
	}

	pool := &Pool{logger: logger}
	var lastErr error
	for _, raw := range urls {
		if _, err := url.Parse(raw); err != nil {
			return nil, fmt.Errorf("rpcboundary: invalid RPC URL %q: %w", raw, err)
		}
		ep := &endpoint{url: raw, client: rpc.New(raw)}

		probeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		_, err := ep.client.GetHealth(probeCtx)
		cancel()
		if err != nil {
			if logger != nil {
				logger.Warn("RPC endpoint failed health check", zap.String("url", raw), zap.Error(err))
			}
			lastErr = err
			continue
		}
		ep.setActive(true)
		pool.endpoints = append(pool.endpoints, ep)
	}

	if len(pool.endpoints) == 0 {
		return nil, fmt.Errorf("rpcboundary: all RPC endpoints unreachable: %w", lastErr)
	}
	return pool, nil
}

// pick returns the next active endpoint in round-robin order, or the first
// configured endpoint if every one is currently marked inactive.
func (p *Pool) pick() *endpoint {
	n := uint64(len(p.endpoints))
	for i := uint64(0); i < n; i++ {
		idx := atomic.AddUint64(&p.next, 1) % n
		ep := p.endpoints[idx]
		if ep.isActive() {
			return ep
		}
	}
	return p.endpoints[0]
}

// call runs fn against one endpoint, recording success/failure metrics and
// deactivating the endpoint on error so the next pick() skips it.
func (p *Pool) call(ctx context.Context, fn func(*rpc.Client) error) (*endpoint, error) {
	ep := p.pick()
	start := time.Now()
	err := fn(ep.client)
	ep.metrics.record(err == nil, time.Since(start))
	if err != nil {
		ep.setActive(false)
	}
	return ep, err
}
