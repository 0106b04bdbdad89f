package rpcboundary

import (
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
)

func TestDecodeSignatureAcceptsValidBase58(t *testing.T) {
	raw := make([]byte, 64)
	for i := range raw {
		raw[i] = byte(i + 1)
	}
	encoded := base58.Encode(raw)

	sig, err := decodeSignature(encoded)
	assert.NoError(t, err)
	assert.Equal(t, encoded, sig.String())
}

func TestDecodeSignatureRejectsGarbage(t *testing.T) {
	_, err := decodeSignature("not-a-signature")
	assert.Error(t, err)
}

func TestIsNotFoundMatchesSentinelError(t *testing.T) {
	assert.True(t, isNotFound(rpc.ErrNotFound))
	assert.True(t, isNotFound(errors.New("not found")))
	assert.False(t, isNotFound(errors.New("timeout")))
	assert.False(t, isNotFound(nil))
}
