package swap

// Program addresses seeded into the default catalog. Grounded on
// SPEC_FULL.md §4.6's seed-catalog table, which cross-checks the
// discriminators below against the teacher's pumpfun/pumpswap instruction
// builders.
const (
	PumpFunProgramAddress            = "6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P"
	PumpSwapProgramAddress           = "pAMMBay6oceH9fJKBRHGP5D4bD4sWpmSwMn52FMfXEA"
	MercurialSaberProgramAddress     = "MERLuDFBMmsHnsBPZw2sDQZHvXFMwp8EdjudcU2HKky"
	JupiterV6ProgramAddress          = "JUP6LkbZbjS1jKKwapdHNy74zcZ3tLUZoi5QNyVTaV4"
	SaberDecimalWrapperProgramAddress = "DecZY86MU5Gj7kppfUCEmd4LbXXuyZH1yHaP2NTqdiZB"
)

var zeroNibble byte = 0x00

// DefaultCatalog returns the seed catalog of recognized DEX programs.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		SwapProgram{
			ProgramAddress: PumpFunProgramAddress,
			Label:          "Pump.fun",
			Router:         false,
			Matchers: []InstructionMatcher{
				{
					// discriminator resolves to 66063d1201daebea
					InstructionName:      "buy",
					AccountsLength:       12,
					UserSourceIndex:      6, // user wallet, paying SOL
					UserDestinationIndex: 5, // user's associated token account
					PoolSourceIndex:      6,
					PoolDestinationIndex: 4, // associated bonding curve (token vault)
				},
				{
					// discriminator resolves to 33e685a4017f83ad
					InstructionName:      "sell",
					AccountsLength:       12,
					UserSourceIndex:      5, // user's associated token account
					UserDestinationIndex: 6, // user wallet, receiving SOL
					PoolSourceIndex:      4,
					PoolDestinationIndex: 6,
					NativeSol: &NativeSolInference{
						Strategy:       NativeSolInnerInstruction,
						ProgramAddress: PumpFunProgramAddress,
						Discriminator:  AnchorEventDiscriminator("TradeEvent"),
						FormatStr:      "<48sQ",
					},
				},
			},
		},
		SwapProgram{
			ProgramAddress: PumpSwapProgramAddress,
			Label:          "PumpSwap",
			Router:         false,
			Matchers: []InstructionMatcher{
				{
					InstructionName:      "buy",
					AccountsLength:       17,
					UserSourceIndex:      8,
					UserDestinationIndex: 7,
					PoolSourceIndex:      8,
					PoolDestinationIndex: 6,
				},
				{
					InstructionName:      "sell",
					AccountsLength:       17,
					UserSourceIndex:      7,
					UserDestinationIndex: 8,
					PoolSourceIndex:      6,
					PoolDestinationIndex: 8,
				},
			},
		},
		SwapProgram{
			ProgramAddress: MercurialSaberProgramAddress,
			Label:          "Mercurial/Saber",
			Router:         false,
			Matchers: []InstructionMatcher{
				{
					InstructionName:      "exchange",
					Terminator:           &zeroNibble,
					UserSourceIndex:      2,
					UserDestinationIndex: 3,
					Pools:                []int{4, 5},
				},
			},
		},
		SwapProgram{
			ProgramAddress: SaberDecimalWrapperProgramAddress,
			Label:          "Saber decimal wrapper",
			Router:         false,
			Matchers: []InstructionMatcher{
				{
					InstructionName:         "wrap",
					UserSourceIndex:         1,
					UserDestinationIndex:    2,
					PoolSourceIndex:         1,
					PoolDestinationSentinel: PoolSentinelMintTo,
				},
				{
					InstructionName:     "unwrap",
					UserSourceIndex:     1,
					UserDestinationIndex: 2,
					PoolSourceSentinel:  PoolSentinelBurn,
					PoolDestinationIndex: 2,
				},
			},
		},
		SwapProgram{
			ProgramAddress: JupiterV6ProgramAddress,
			Label:          "Jupiter V6",
			Router:         true,
			Matchers: []InstructionMatcher{
				{InstructionName: "route"},
				{InstructionName: "sharedAccountsRoute"},
			},
		},
	)
}
