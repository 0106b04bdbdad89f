package swap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/solgraph/txgraph/internal/builder"
	"github.com/solgraph/txgraph/internal/instruction"
	"github.com/solgraph/txgraph/internal/txcontext"
)

func TestAnchorDiscriminatorMatchesKnownBytes(t *testing.T) {
	buy := AnchorDiscriminator("buy")
	sell := AnchorDiscriminator("sell")

	assert.Len(t, buy, 8)
	assert.Len(t, sell, 8)
	assert.NotEqual(t, buy, sell)
}

func TestDefaultCatalogLookupAndMatch(t *testing.T) {
	catalog := DefaultCatalog()

	program, ok := catalog.Lookup(PumpFunProgramAddress)
	assert.True(t, ok)
	assert.Equal(t, "Pump.fun", program.Label)

	buyDisc := AnchorDiscriminator("buy")
	accounts := make([]string, 12)
	matcher, ok := Match(program, buyDisc, len(accounts))
	assert.True(t, ok)
	assert.Equal(t, "buy", matcher.InstructionName)
}

func TestMatchRejectsWrongAccountsLength(t *testing.T) {
	catalog := DefaultCatalog()
	program, _ := catalog.Lookup(PumpFunProgramAddress)

	buyDisc := AnchorDiscriminator("buy")
	_, ok := Match(program, buyDisc, 3)
	assert.False(t, ok)
}

func TestParseNonRouterSwapResolvesPoolsAndUserAddresses(t *testing.T) {
	ctx := txcontext.New("sig1", 0, 0)
	catalog := DefaultCatalog()

	accounts := make([]string, 12)
	for i := range accounts {
		accounts[i] = "acct" + string(rune('A'+i))
	}

	call := &instruction.Call{
		ProgramID: PumpFunProgramAddress,
		Data:      AnchorDiscriminator("buy"),
		Accounts:  accounts,
	}

	s := Parse(ctx, catalog, nil, call, 0, 0)
	assert.NotNil(t, s)
	assert.Equal(t, accounts[6], s.UserSourceAddress)
	assert.Equal(t, accounts[5], s.UserDestinationAddress)
	assert.Equal(t, []string{accounts[6], accounts[4]}, s.PoolAddresses)
	assert.False(t, s.Router)

	poolAcc, ok := ctx.Repo.GetAccount(accounts[4])
	assert.True(t, ok)
	assert.True(t, poolAcc.IsPool)
}

func TestParseRouterSwapSkipsPoolResolution(t *testing.T) {
	ctx := txcontext.New("sig1", 0, 0)
	catalog := DefaultCatalog()

	call := &instruction.Call{
		ProgramID: JupiterV6ProgramAddress,
		Data:      AnchorDiscriminator("route"),
		Accounts:  []string{"userWallet", "userDest"},
	}

	s := Parse(ctx, catalog, nil, call, 0, 0)
	assert.NotNil(t, s)
	assert.True(t, s.Router)
	assert.Empty(t, s.PoolAddresses)
}

func TestParseReturnsNilWhenProgramUnknown(t *testing.T) {
	ctx := txcontext.New("sig1", 0, 0)
	catalog := DefaultCatalog()

	call := &instruction.Call{ProgramID: "unknownProgram", Data: []byte{1}}
	assert.Nil(t, Parse(ctx, catalog, nil, call, 0, 0))
}

func TestCanParseMirrorsParseRecognition(t *testing.T) {
	catalog := DefaultCatalog()
	call := &instruction.Call{
		ProgramID: PumpFunProgramAddress,
		Data:      AnchorDiscriminator("sell"),
		Accounts:  make([]string, 12),
	}
	assert.True(t, CanParse(catalog, call))

	call.ProgramID = "unknown"
	assert.False(t, CanParse(catalog, call))
}

func TestDecodeLEUint64sSkipsAndReadsInOrder(t *testing.T) {
	data := make([]byte, 48+8)
	data[48] = 0x2a // 42 little-endian in the low byte

	values, err := decodeLEUint64s(data, "<48sQ")
	assert.NoError(t, err)
	assert.Equal(t, []uint64{42}, values)
}

func TestDecodeLEUint64sErrorsWhenTruncated(t *testing.T) {
	data := make([]byte, 4)
	_, err := decodeLEUint64s(data, "<8sQ")
	assert.Error(t, err)
}

func TestSaberWrapUsesMintToSentinelOnDestination(t *testing.T) {
	ctx := txcontext.New("sig1", 0, 0)
	catalog := DefaultCatalog()

	accounts := []string{"acct0", "userSrc", "userDst"}
	ctx.Repo.CreateVersion("userSrc", "sig1", "")
	srcAcc, _ := ctx.Repo.GetAccount("userSrc")
	srcAcc.MintAddress = "rawMint"

	call := &instruction.Call{
		ProgramID: SaberDecimalWrapperProgramAddress,
		Data:      AnchorDiscriminator("wrap"),
		Accounts:  accounts,
	}

	s := Parse(ctx, catalog, nil, call, 0, 0)
	assert.NotNil(t, s)
	assert.Equal(t, builder.MintToAddress("rawMint"), s.PoolAddresses[1])
}
