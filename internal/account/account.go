// Package account implements the versioned-account state machine (component C2):
// an Account carries identity and slowly-refined metadata, while an ordered list
// of AccountVersion snapshots records balances at each point the account was
// touched during a single transaction's parse.
package account

// Type classifies an Account. Once refined away from Unknown it may only be
// refined further to a strictly more informative kind, never reset.
type Type string

const (
	TypeBurn      Type = "BURN"
	TypeMintTo    Type = "MINTTO"
	TypeTokenMint Type = "TOKEN_MINT"
	TypeStake     Type = "STAKE"
	TypeToken     Type = "TOKEN"
	TypeWallet    Type = "WALLET"
	TypeFee       Type = "FEE"
	TypeProgram   Type = "PROGRAM"
	TypeUnknown   Type = "UNKNOWN"
)

// rank gives a total order over Type so RefineType can reject a regression.
// Higher is more informative; Unknown is always the bottom. WALLET is the
// weakest concrete kind since it is assigned merely from the is-signer flag;
// TOKEN/TOKEN_MINT/STAKE each reflect progressively more specific positive
// evidence (a seen token balance, a mint address, a stake-program owner);
// the synthetic sentinel kinds (FEE/BURN/MINTTO) are only ever assigned to
// their own dedicated addresses and rank just below PROGRAM, which is the
// most authoritative: an address is never mistakenly dispatched to as an
// instruction's program id.
var rank = map[Type]int{
	TypeUnknown:   0,
	TypeWallet:    1,
	TypeToken:     2,
	TypeTokenMint: 3,
	TypeStake:     4,
	TypeFee:       5,
	TypeBurn:      5,
	TypeMintTo:    5,
	TypeProgram:   6,
}

// Account is the identity shared by every AccountVersion of the same address
// within a transaction. It is never deep-copied; versions hold a pointer to it.
type Account struct {
	Address     string
	Type        Type
	MintAddress string
	IsPool      bool
	Authorities []string
}

// RefineType applies the monotonic-refinement invariant from spec §3: a
// concrete type is never overwritten by a weaker or equally-informative one,
// and Unknown never reappears once cleared.
func (a *Account) RefineType(t Type) {
	if t == "" || t == TypeUnknown {
		return
	}
	if rank[t] > rank[a.Type] {
		a.Type = t
	}
}

// RefineMint sets MintAddress only if it is not already set.
func (a *Account) RefineMint(mint string) {
	if mint != "" && a.MintAddress == "" {
		a.MintAddress = mint
	}
}

// AddAuthority appends authority if it is not already present.
func (a *Account) AddAuthority(authority string) {
	if authority == "" {
		return
	}
	for _, existing := range a.Authorities {
		if existing == authority {
			return
		}
	}
	a.Authorities = append(a.Authorities, authority)
}

func (a *Account) IsWallet() bool {
	return a.Type == TypeWallet
}

func (a *Account) IsSystemAccount() bool {
	return a.Type == TypeBurn || a.Type == TypeMintTo || a.Type == TypeFee
}

// Vertex is the node identity in the TransactionGraph: (address, version, signature).
type Vertex struct {
	Address             string
	Version             int
	TransactionSignature string
}

// Version is a per-version snapshot of an Account's balances and owner,
// identified by a Vertex. It shares its Account pointer with every sibling
// version of the same address.
type Version struct {
	Version       int
	Account       *Account
	Signature     string
	Owner         string
	BalanceToken  int64
	BalanceLamport int64
}

func (v *Version) Vertex() Vertex {
	return Vertex{Address: v.Account.Address, Version: v.Version, TransactionSignature: v.Signature}
}

func (v *Version) ApplyTokenDebit(amount int64) { v.BalanceToken -= amount }
func (v *Version) ApplyTokenCredit(amount int64) { v.BalanceToken += amount }
func (v *Version) ApplyLamportDebit(amount int64) { v.BalanceLamport -= amount }
func (v *Version) ApplyLamportCredit(amount int64) { v.BalanceLamport += amount }

// clone returns a new Version carrying forward balances/owner but sharing the
// same Account pointer, per the C2 invariant that identity is never copied.
func (v *Version) clone(nextVersion int) *Version {
	return &Version{
		Version:        nextVersion,
		Account:        v.Account,
		Signature:      v.Signature,
		Owner:          v.Owner,
		BalanceToken:   v.BalanceToken,
		BalanceLamport: v.BalanceLamport,
	}
}
