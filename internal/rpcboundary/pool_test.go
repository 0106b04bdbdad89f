package rpcboundary

import (
	"context"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
)

// newTestEndpoint builds an endpoint without dialing anything: rpc.New only
// constructs a client value, it never touches the network.
func newTestEndpoint(url string, active bool) *endpoint {
	ep := &endpoint{url: url, client: rpc.New(url)}
	ep.setActive(active)
	return ep
}

func TestPoolPickRoundRobinsOverActiveEndpoints(t *testing.T) {
	p := &Pool{endpoints: []*endpoint{
		newTestEndpoint("a", true),
		newTestEndpoint("b", true),
	}}

	seen := map[string]bool{}
	for i := 0; i < 4; i++ {
		seen[p.pick().url] = true
	}
	assert.True(t, seen["a"])
	assert.True(t, seen["b"])
}

func TestPoolPickFallsBackToFirstWhenAllInactive(t *testing.T) {
	p := &Pool{endpoints: []*endpoint{
		newTestEndpoint("a", false),
		newTestEndpoint("b", false),
	}}

	assert.Equal(t, "a", p.pick().url)
}

func TestPoolPickSkipsInactiveEndpoint(t *testing.T) {
	p := &Pool{endpoints: []*endpoint{
		newTestEndpoint("a", false),
		newTestEndpoint("b", true),
	}}

	for i := 0; i < 3; i++ {
		assert.Equal(t, "b", p.pick().url)
	}
}

func TestPoolCallRecordsSuccessAndLeavesEndpointActive(t *testing.T) {
	p := &Pool{endpoints: []*endpoint{newTestEndpoint("a", true)}}

	ep, err := p.call(context.Background(), func(*rpc.Client) error { return nil })
	assert.NoError(t, err)
	assert.True(t, ep.isActive())
	assert.Equal(t, uint64(1), ep.metrics.successCount)
}

func TestPoolCallDeactivatesEndpointOnError(t *testing.T) {
	p := &Pool{endpoints: []*endpoint{newTestEndpoint("a", true)}}

	boom := errors.New("boom")
	ep, err := p.call(context.Background(), func(*rpc.Client) error { return boom })
	assert.Equal(t, boom, err)
	assert.False(t, ep.isActive())
	assert.Equal(t, uint64(1), ep.metrics.errorCount)
}
