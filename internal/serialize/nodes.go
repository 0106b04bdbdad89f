package serialize

import "github.com/solgraph/txgraph/internal/account"

// curveExcludedTypes are virtual/synthetic account types for which
// is_on_curve is meaningless (they never correspond to an actual on-chain
// key) and so the field is left unset entirely.
var curveExcludedTypes = map[account.Type]bool{
	account.TypeBurn:    true,
	account.TypeMintTo:  true,
	account.TypeFee:     true,
	account.TypeUnknown: true,
}

// buildNodes collects one Node per account version across every repository
// passed in. Repositories come from distinct TransactionContexts, so a
// shared address across two transactions never collides: each Version's
// Vertex identity includes the owning transaction's signature.
func buildNodes(repos []*account.Repository) []Node {
	var nodes []Node
	for _, repo := range repos {
		for _, addr := range repo.Addresses() {
			acc, _ := repo.GetAccount(addr)
			for _, v := range repo.AllVersions(addr) {
				n := Node{
					AccountVertex:  Vertex{Address: addr, Version: v.Version, Signature: v.Signature},
					Mint:           acc.MintAddress,
					Owner:          v.Owner,
					Authorities:    acc.Authorities,
					BalanceToken:   v.BalanceToken,
					BalanceLamport: v.BalanceLamport,
					Type:           string(acc.Type),
					IsPool:         acc.IsPool,
				}
				if !curveExcludedTypes[acc.Type] {
					onCurve := isOnCurve(addr)
					n.IsOnCurve = &onCurve
				}
				nodes = append(nodes, n)
			}
		}
	}
	return nodes
}
