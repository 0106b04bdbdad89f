package serialize

import (
	"filippo.io/edwards25519"

	"github.com/mr-tron/base58"
)

// isOnCurve reports whether address decodes to 32 bytes that represent a
// valid point on the ed25519 curve — the same test solana-go's PDA
// derivation relies on to tell a regular wallet key apart from a derived
// program address. Best-effort: an address that fails to decode as base58
// or isn't exactly 32 bytes reports false rather than erroring, since this
// is a cosmetic graph annotation, not a correctness-bearing check.
func isOnCurve(address string) bool {
	raw, err := base58.Decode(address)
	if err != nil || len(raw) != 32 {
		return false
	}
	var buf [32]byte
	copy(buf[:], raw)
	_, err = new(edwards25519.Point).SetBytes(buf[:])
	return err == nil
}
