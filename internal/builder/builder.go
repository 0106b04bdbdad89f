// Package builder implements the graph-builder primitives (component C4):
// source/destination version preparation with automatic re-versioning to
// preserve the DAG invariant, burn/mint-to virtualization, and fee edges.
// Grounded on
// original_source/GrafolanaBack/domain/transaction/services/graph_builder_service.py.
package builder

import (
	"go.uber.org/zap"

	"github.com/solgraph/txgraph/internal/account"
	"github.com/solgraph/txgraph/internal/graph"
	"github.com/solgraph/txgraph/internal/txcontext"
)

// FeeVertexAddress is the single process-wide sentinel fee account (spec §6).
const FeeVertexAddress = "FEE"

// BurnAddress returns the deterministic virtual burn account for mint.
func BurnAddress(mint string) string { return "BURN_" + mint }

// MintToAddress returns the deterministic virtual mint-to account for mint.
func MintToAddress(mint string) string { return "MINTTO_" + mint }

// VersionOptions carries the optional refinements prepare_source_version and
// prepare_destination_version may apply alongside a balance mutation.
type VersionOptions struct {
	AmountToken   *int64
	AmountLamport *int64
	Mint          string
	Owner         string
	Authority     string
	Type          account.Type
}

// PrepareSourceVersion implements prepare_source_version from spec §4.4: it
// returns the graph vertex the edge should originate from (the version
// already visible in the graph), while recording the debit on the
// subsequent version.
func PrepareSourceVersion(ctx *txcontext.Context, address string, opts VersionOptions) account.Vertex {
	repo := ctx.Repo
	if !repo.HasVersions(address) {
		repo.CreateVersion(address, ctx.Signature, opts.Owner)
	}

	vSrc := latestVersionAlreadyInGraph(ctx, address)
	latest, _ := repo.GetLatestVersion(address)
	if vSrc == nil {
		vSrc = latest
		ctx.Graph.AddNode(vSrc.Vertex())
	}

	var vNext *account.Version
	if vSrc.Version == latest.Version {
		vNext = repo.NewVersion(address)
	} else {
		vNext = latest
	}

	applyMutation(vSrc, vNext, opts, debit)

	return vSrc.Vertex()
}

// PrepareDestinationVersion implements prepare_destination_version from spec
// §4.4: it returns the vertex the edge should terminate at, re-versioning
// automatically if using the current latest version would close a cycle
// back to srcVertex.
func PrepareDestinationVersion(ctx *txcontext.Context, srcVertex account.Vertex, address string, opts VersionOptions) account.Vertex {
	repo := ctx.Repo
	if !repo.HasVersions(address) {
		mint := opts.Mint
		repo.CreateVersion(address, ctx.Signature, opts.Owner)
		if mint != "" {
			if acc, ok := repo.GetAccount(address); ok {
				acc.RefineMint(mint)
			}
		}
	}

	vDst, _ := repo.GetLatestVersion(address)
	vDstVertex := vDst.Vertex()
	if !ctx.Graph.HasNode(vDstVertex) {
		ctx.Graph.AddNode(vDstVertex)
	} else if ctx.Graph.HasPath(vDstVertex, srcVertex) {
		vDst = repo.NewVersion(address)
		vDstVertex = vDst.Vertex()
		ctx.Graph.AddNode(vDstVertex)
	}

	applyMutation(vDst, vDst, opts, credit)
	if opts.Owner != "" {
		UpdateOwner(ctx, address, opts.Owner)
	}

	return vDstVertex
}

type mutationDirection int

const (
	debit mutationDirection = iota
	credit
)

// applyMutation refines identity fields on edgeVersion's shared Account and
// applies the requested balance delta to mutateVersion. For a source prepare
// these are different versions (edge points at the old one, the debit lands
// on the new one); for a destination prepare they are the same version.
func applyMutation(edgeVersion, mutateVersion *account.Version, opts VersionOptions, dir mutationDirection) {
	edgeVersion.Account.RefineMint(opts.Mint)
	edgeVersion.Account.RefineType(opts.Type)
	if opts.Authority != "" {
		edgeVersion.Account.AddAuthority(opts.Authority)
	}

	if opts.AmountToken != nil {
		if dir == debit {
			mutateVersion.ApplyTokenDebit(*opts.AmountToken)
		} else {
			mutateVersion.ApplyTokenCredit(*opts.AmountToken)
		}
	}
	if opts.AmountLamport != nil {
		if dir == debit {
			mutateVersion.ApplyLamportDebit(*opts.AmountLamport)
		} else {
			mutateVersion.ApplyLamportCredit(*opts.AmountLamport)
		}
	}
}

func latestVersionAlreadyInGraph(ctx *txcontext.Context, address string) *account.Version {
	versions := ctx.Repo.AllVersions(address)
	for i := len(versions) - 1; i >= 0; i-- {
		if ctx.Graph.HasNode(versions[i].Vertex()) {
			return versions[i]
		}
	}
	return nil
}

// UpdateOwner implements update_owner_in_all_versions: if version 0's owner
// is unset, stamp it everywhere; otherwise only the latest version is
// touched if it differs.
func UpdateOwner(ctx *txcontext.Context, address, owner string) {
	if owner == "" {
		return
	}
	versions := ctx.Repo.AllVersions(address)
	if len(versions) == 0 {
		return
	}
	if versions[0].Owner == "" {
		ctx.Repo.UpdateOwnerInAllVersions(address, owner)
		return
	}
	latest := versions[len(versions)-1]
	if latest.Owner != owner {
		latest.Owner = owner
	}
}

// Edge bundles the parameters of a single value transfer, expressed as a
// source prepare + destination prepare + AddEdge, the one primitive every
// C5/C6 parser composes on top of.
type Edge struct {
	Type               graph.TransferType
	ProgramAddress     string
	SourceAddress      string
	DestinationAddress string
	AmountToken        *int64
	AmountLamport      *int64
	Mint               string
	SourceAuthority    string
	DestinationOwner   string
	SourceType         account.Type
	DestinationType    account.Type
	SwapParentID       int
	ParentRouterSwapID int
	InstructionIndex   int
}

// amount resolves the single amount value recorded on the edge's
// TransferProperties, preferring token amount when both are absent is not
// possible — callers set exactly one of AmountToken/AmountLamport per
// instruction kind.
func (e Edge) amount() int64 {
	if e.AmountToken != nil {
		return *e.AmountToken
	}
	if e.AmountLamport != nil {
		return *e.AmountLamport
	}
	return 0
}

// AddTransfer runs prepare_source_version + prepare_destination_version and
// inserts the resulting edge, returning its key.
func AddTransfer(ctx *txcontext.Context, e Edge) int {
	srcVertex := PrepareSourceVersion(ctx, e.SourceAddress, VersionOptions{
		AmountToken:   e.AmountToken,
		AmountLamport: e.AmountLamport,
		Mint:          e.Mint,
		Authority:     e.SourceAuthority,
		Type:          e.SourceType,
	})
	dstVertex := PrepareDestinationVersion(ctx, srcVertex, e.DestinationAddress, VersionOptions{
		AmountToken:   e.AmountToken,
		AmountLamport: e.AmountLamport,
		Mint:          e.Mint,
		Owner:         e.DestinationOwner,
		Type:          e.DestinationType,
	})
	amt := e.amount()
	return ctx.Graph.AddEdge(srcVertex, dstVertex, graph.Properties{
		Type:               e.Type,
		AmountSource:       amt,
		AmountDestination:  amt,
		MintAddress:        e.Mint,
		ProgramAddress:     e.ProgramAddress,
		SwapParentID:       e.SwapParentID,
		ParentRouterSwapID: e.ParentRouterSwapID,
		InstructionIndex:   e.InstructionIndex,
	})
}

// AddBurn virtualizes a burn: a token debit on address plus a BURN edge into
// BURN_<mint>. The virtual account accumulates a single credit, not two
// (see DESIGN.md's Open Question resolution on the source model's apparent
// double-credit).
func AddBurn(ctx *txcontext.Context, address, mint string, amount int64) int {
	return AddTransfer(ctx, Edge{
		Type:            graph.TransferBurn,
		SourceAddress:   address,
		DestinationAddress: BurnAddress(mint),
		AmountToken:     &amount,
		Mint:            mint,
		DestinationType: account.TypeBurn,
	})
}

// AddMintTo virtualizes a mint-to: a MINTTO edge from MINTTO_<mint> with a
// token credit to destination.
func AddMintTo(ctx *txcontext.Context, destination, mint string, amount int64) int {
	return AddTransfer(ctx, Edge{
		Type:            graph.TransferMintTo,
		SourceAddress:   MintToAddress(mint),
		DestinationAddress: destination,
		AmountToken:     &amount,
		Mint:            mint,
		SourceType:      account.TypeMintTo,
	})
}

// AddFeeTransfers emits the end-of-transaction fee edges from feePayer to
// the singleton FEE virtual account: a FEE edge for baseFeeLamport always,
// and a PRIORITY_FEE edge for priorityFeeLamport only when positive.
func AddFeeTransfers(ctx *txcontext.Context, logger *zap.Logger, feePayer string, baseFeeLamport, priorityFeeLamport int64) {
	AddTransfer(ctx, Edge{
		Type:               graph.TransferFee,
		SourceAddress:      feePayer,
		DestinationAddress: FeeVertexAddress,
		AmountLamport:      &baseFeeLamport,
		DestinationType:    account.TypeFee,
	})
	if priorityFeeLamport > 0 {
		AddTransfer(ctx, Edge{
			Type:               graph.TransferPriorityFee,
			SourceAddress:      feePayer,
			DestinationAddress: FeeVertexAddress,
			AmountLamport:      &priorityFeeLamport,
			DestinationType:    account.TypeFee,
		})
		if logger != nil {
			logger.Debug("fee transfers recorded", zap.Int64("priority_fee_lamport", priorityFeeLamport))
		}
	}
}
