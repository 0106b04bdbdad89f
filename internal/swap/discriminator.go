package swap

import (
	"crypto/sha256"
	"encoding/hex"
)

// AnchorDiscriminator derives the 8-byte leading discriminator Anchor
// programs prefix every instruction with: sha256("global:"+name)[0:8].
// Cross-grounded on the teacher's idl_decoder.go CalculateDiscriminator.
func AnchorDiscriminator(instructionName string) []byte {
	sum := sha256.Sum256([]byte("global:" + instructionName))
	return sum[:8]
}

// AnchorEventDiscriminator derives the 8-byte discriminator Anchor prefixes
// a self-CPI event log instruction with: sha256("event:"+name)[0:8]. Used by
// the native-SOL inner-instruction inference strategy to find a program's
// own emitted event among its inner instructions.
func AnchorEventDiscriminator(eventName string) []byte {
	sum := sha256.Sum256([]byte("event:" + eventName))
	return sum[:8]
}

func mustHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic("swap: invalid discriminator hex literal: " + s)
	}
	return b
}
