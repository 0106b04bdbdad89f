package account

import "fmt"

// Repository owns every Account and Version created while parsing a single
// transaction. It is the arena referenced by spec §9: a flat, append-only
// store keyed by address, never by pointer identity across transactions.
type Repository struct {
	accounts map[string]*Account
	versions map[string][]*Version
	order    []string
}

func NewRepository() *Repository {
	return &Repository{
		accounts: make(map[string]*Account),
		versions: make(map[string][]*Version),
	}
}

// GetOrCreateAccount returns the existing Account for address, creating an
// Unknown-typed one if this is the first time address is seen.
func (r *Repository) GetOrCreateAccount(address string) *Account {
	if a, ok := r.accounts[address]; ok {
		return a
	}
	a := &Account{Address: address, Type: TypeUnknown}
	r.accounts[address] = a
	r.order = append(r.order, address)
	return a
}

func (r *Repository) GetAccount(address string) (*Account, bool) {
	a, ok := r.accounts[address]
	return a, ok
}

// CreateVersion appends version 0 for address if none exists yet, or the
// next gapless version otherwise. signature is the owning transaction's
// signature, part of the Vertex identity.
func (r *Repository) CreateVersion(address, signature, owner string) *Version {
	acc := r.GetOrCreateAccount(address)
	existing := r.versions[address]
	v := &Version{Version: len(existing), Account: acc, Signature: signature, Owner: owner}
	r.versions[address] = append(existing, v)
	return v
}

// NewVersion clones the latest version of address forward by one, carrying
// balances and owner. It panics if address has no version yet — callers must
// establish version 0 first via CreateVersion.
func (r *Repository) NewVersion(address string) *Version {
	existing := r.versions[address]
	if len(existing) == 0 {
		panic(fmt.Sprintf("account: NewVersion called before CreateVersion for %s", address))
	}
	last := existing[len(existing)-1]
	next := last.clone(last.Version + 1)
	r.versions[address] = append(existing, next)
	return next
}

func (r *Repository) GetLatestVersion(address string) (*Version, bool) {
	existing := r.versions[address]
	if len(existing) == 0 {
		return nil, false
	}
	return existing[len(existing)-1], true
}

func (r *Repository) GetVersionAt(address string, version int) (*Version, bool) {
	existing := r.versions[address]
	if version < 0 || version >= len(existing) {
		return nil, false
	}
	return existing[version], true
}

func (r *Repository) HasVersions(address string) bool {
	return len(r.versions[address]) > 0
}

func (r *Repository) VersionCount(address string) int {
	return len(r.versions[address])
}

// UpdateOwnerInAllVersions rewrites Owner on every existing version of
// address. Used when the true owner is discovered late (e.g. via a
// transferChecked instruction) after earlier versions were stamped blank.
func (r *Repository) UpdateOwnerInAllVersions(address, owner string) {
	for _, v := range r.versions[address] {
		v.Owner = owner
	}
}

// Addresses returns every address seen, in first-touched order.
func (r *Repository) Addresses() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// AllVersions returns every Version ever created for address, oldest first.
func (r *Repository) AllVersions(address string) []*Version {
	return r.versions[address]
}
