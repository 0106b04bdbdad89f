package serialize

import (
	"sort"

	"github.com/solgraph/txgraph/internal/graph"
)

func buildLinks(g *graph.TransactionGraph) []Link {
	edges := g.Edges(nil)
	sort.SliceStable(edges, func(i, j int) bool { return edges[i].Key < edges[j].Key })

	links := make([]Link, 0, len(edges))
	for _, e := range edges {
		l := Link{
			Source:            Vertex{Address: e.From.Address, Version: e.From.Version, Signature: e.From.TransactionSignature},
			Target:            Vertex{Address: e.To.Address, Version: e.To.Version, Signature: e.To.TransactionSignature},
			Key:               e.Key,
			Type:              string(e.Props.Type),
			AmountSource:      e.Props.AmountSource,
			AmountDestination: e.Props.AmountDestination,
			ProgramAddress:    e.Props.ProgramAddress,
			MintAddress:       e.Props.MintAddress,
		}
		if e.Props.SwapID != 0 {
			id := e.Props.SwapID
			l.SwapID = &id
		}
		if e.Props.SwapParentID != 0 {
			id := e.Props.SwapParentID
			l.SwapParentID = &id
		}
		if e.Props.ParentRouterSwapID != 0 {
			id := e.Props.ParentRouterSwapID
			l.ParentRouterSwapID = &id
		}
		links = append(links, l)
	}
	return links
}
