// Package swap implements the swap parser (component C6): a static,
// process-wide catalog of DEX programs and the discriminator/account-shape
// matchers that recognize their swap instructions, plus native-SOL amount
// inference for pool legs the host RPC never reports as ordinary transfers.
// Grounded on
// original_source/GrafolanaBack/domain/transaction/services/swap_parser_service.py
// and config/dex_programs/{dex_program_struct,sol_infer,swap_programs}.py.
package swap

// PoolSentinel marks a pool-side account as virtual rather than a literal
// account index into the instruction.
type PoolSentinel int

const (
	PoolSentinelNone PoolSentinel = iota
	PoolSentinelBurn
	PoolSentinelMintTo
)

// ByteValueCheck disambiguates matchers sharing a discriminator by requiring
// a specific byte at a fixed offset into the instruction data.
type ByteValueCheck struct {
	Offset int
	Value  byte
}

// NativeSolStrategy selects which of §4.6's two inference strategies a
// matcher uses.
type NativeSolStrategy int

const (
	NativeSolNone NativeSolStrategy = iota
	NativeSolInnerInstruction
	NativeSolOuterInstruction
)

// NativeSolInference describes how to recover a SOL leg the RPC did not
// expose as a normal transfer.
type NativeSolInference struct {
	Strategy        NativeSolStrategy
	ProgramAddress  string // inner-instruction strategy: program to scan for
	Discriminator   []byte // inner-instruction strategy: leading bytes to match
	FormatStr       string // little-endian struct format, e.g. "<48sQ"
}

// InstructionMatcher is one candidate recognizer within a SwapProgram,
// tried in declaration order.
type InstructionMatcher struct {
	InstructionName    string
	Discriminator      []byte // derived from InstructionName via AnchorDiscriminator if nil
	AccountsLength     int    // 0 means unchecked
	Terminator         *byte  // required low nibble of the last data byte
	ByteValue          *ByteValueCheck

	UserSourceIndex      int
	UserDestinationIndex int

	// Pool endpoints: either Pools (an explicit ordered tuple of indices,
	// highest priority) or the Source/Destination index pair below. A
	// sentinel takes precedence over its corresponding index.
	Pools                 []int
	PoolSourceIndex        int
	PoolDestinationIndex   int
	PoolSourceSentinel     PoolSentinel
	PoolDestinationSentinel PoolSentinel

	NativeSol *NativeSolInference
}

func (m InstructionMatcher) discriminatorBytes() []byte {
	if m.Discriminator != nil {
		return m.Discriminator
	}
	if m.InstructionName != "" {
		return AnchorDiscriminator(m.InstructionName)
	}
	return nil
}

// SwapProgram is a single entry of the static DEX catalog.
type SwapProgram struct {
	ProgramAddress string
	Label          string
	Router         bool
	Matchers       []InstructionMatcher
}

// Catalog is the process-wide, immutable table of known DEX programs,
// constructed once at startup per spec §5.
type Catalog struct {
	byProgram map[string]*SwapProgram
}

func NewCatalog(programs ...SwapProgram) *Catalog {
	c := &Catalog{byProgram: make(map[string]*SwapProgram, len(programs))}
	for i := range programs {
		p := programs[i]
		c.byProgram[p.ProgramAddress] = &p
	}
	return c
}

func (c *Catalog) Lookup(programAddress string) (*SwapProgram, bool) {
	p, ok := c.byProgram[programAddress]
	return p, ok
}

// Match finds the first matcher within program that accepts data/accounts,
// in declaration order, per spec §4.6's matching procedure.
func Match(program *SwapProgram, data []byte, numAccounts int) (*InstructionMatcher, bool) {
	for i := range program.Matchers {
		m := &program.Matchers[i]
		if m.AccountsLength != 0 && numAccounts != m.AccountsLength {
			continue
		}
		if m.Terminator != nil {
			if len(data) == 0 || data[len(data)-1]&0x0f != *m.Terminator {
				continue
			}
		}
		if m.ByteValue != nil {
			if len(data) <= m.ByteValue.Offset || data[m.ByteValue.Offset] != m.ByteValue.Value {
				continue
			}
		}
		disc := m.discriminatorBytes()
		if len(disc) > 0 {
			if len(data) < len(disc) {
				continue
			}
			match := true
			for j, b := range disc {
				if data[j] != b {
					match = false
					break
				}
			}
			if !match {
				continue
			}
		}
		return m, true
	}
	return nil, false
}
