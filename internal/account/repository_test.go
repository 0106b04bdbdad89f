package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateVersionAssignsGaplessSequence(t *testing.T) {
	r := NewRepository()
	v0 := r.CreateVersion("addr1", "sig1", "owner1")
	v1 := r.NewVersion("addr1")

	assert.Equal(t, 0, v0.Version)
	assert.Equal(t, 1, v1.Version)
	assert.Same(t, v0.Account, v1.Account)
}

func TestNewVersionCarriesBalancesForward(t *testing.T) {
	r := NewRepository()
	v0 := r.CreateVersion("addr1", "sig1", "")
	v0.BalanceToken = 500
	v0.BalanceLamport = 1000

	v1 := r.NewVersion("addr1")
	assert.Equal(t, int64(500), v1.BalanceToken)
	assert.Equal(t, int64(1000), v1.BalanceLamport)

	// Mutating the new version must not retroactively change the old one.
	v1.ApplyTokenDebit(500)
	assert.Equal(t, int64(500), v0.BalanceToken)
	assert.Equal(t, int64(0), v1.BalanceToken)
}

func TestNewVersionPanicsWithoutCreateVersion(t *testing.T) {
	r := NewRepository()
	assert.Panics(t, func() {
		r.NewVersion("addr1")
	})
}

func TestGetLatestAndGetVersionAt(t *testing.T) {
	r := NewRepository()
	r.CreateVersion("addr1", "sig1", "")
	r.NewVersion("addr1")
	r.NewVersion("addr1")

	latest, ok := r.GetLatestVersion("addr1")
	assert.True(t, ok)
	assert.Equal(t, 2, latest.Version)

	v1, ok := r.GetVersionAt("addr1", 1)
	assert.True(t, ok)
	assert.Equal(t, 1, v1.Version)

	_, ok = r.GetVersionAt("addr1", 5)
	assert.False(t, ok)
}

func TestUpdateOwnerInAllVersions(t *testing.T) {
	r := NewRepository()
	r.CreateVersion("addr1", "sig1", "")
	r.NewVersion("addr1")

	r.UpdateOwnerInAllVersions("addr1", "realOwner")
	for _, v := range r.AllVersions("addr1") {
		assert.Equal(t, "realOwner", v.Owner)
	}
}

func TestAddressesPreservesFirstTouchOrder(t *testing.T) {
	r := NewRepository()
	r.GetOrCreateAccount("addr2")
	r.GetOrCreateAccount("addr1")
	r.GetOrCreateAccount("addr2")

	assert.Equal(t, []string{"addr2", "addr1"}, r.Addresses())
}

func TestHasVersionsAndVersionCount(t *testing.T) {
	r := NewRepository()
	assert.False(t, r.HasVersions("addr1"))
	assert.Equal(t, 0, r.VersionCount("addr1"))

	r.CreateVersion("addr1", "sig1", "")
	r.NewVersion("addr1")
	assert.True(t, r.HasVersions("addr1"))
	assert.Equal(t, 2, r.VersionCount("addr1"))
}
