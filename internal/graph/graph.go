// Package graph implements the directed multigraph (component C3) that a
// single transaction's accounts and transfers are recorded into. It is a
// small hand-rolled adjacency-map multigraph: nothing in the surrounding
// ecosystem models a signature-scoped, integer-keyed parallel-edge directed
// graph, so this is built directly on stdlib maps/slices rather than
// imported.
package graph

import (
	"fmt"

	"github.com/solgraph/txgraph/internal/account"
)

// TransferType classifies an edge's semantic role, per spec §3's full set.
type TransferType string

const (
	TransferGeneric        TransferType = "TRANSFER"
	TransferChecked        TransferType = "TRANSFERCHECKED"
	TransferCreateAccount  TransferType = "CREATE_ACCOUNT"
	TransferCloseAccount   TransferType = "CLOSE_ACCOUNT"
	TransferBurn           TransferType = "BURN"
	TransferMintTo         TransferType = "MINTTO"
	TransferNativeSOL      TransferType = "NATIVE_SOL"
	TransferSwap           TransferType = "SWAP"
	TransferFee            TransferType = "FEE"
	TransferPriorityFee    TransferType = "PRIORITY_FEE"
	TransferAuthorize      TransferType = "AUTHORIZE"
	TransferSplit          TransferType = "SPLIT"
	TransferWithdraw       TransferType = "WITHDRAW"
	TransferNewTransaction TransferType = "NEW_TRANSACTION"
)

// Properties is the data carried by a single edge. AmountSource and
// AmountDestination are equal for every transfer type except SWAP, where the
// resolver may record a routing-fee difference between them.
type Properties struct {
	Type               TransferType
	AmountSource       int64
	AmountDestination  int64
	MintAddress        string
	ProgramAddress     string
	SwapID             int
	SwapParentID       int
	ParentRouterSwapID int
	InstructionIndex   int
}

// edge is one parallel edge between two vertices, keyed within that
// ordered-pair bucket by an integer key that increases by 10 per insertion
// (mirrors NetworkX's MultiDiGraph key convention used by the source model,
// leaving room for edges to be re-keyed relative to each other later).
type edge struct {
	key   int
	to    account.Vertex
	props Properties
}

// TransactionGraph is a directed multigraph over account.Vertex nodes, scoped
// to a single transaction signature.
type TransactionGraph struct {
	nodes    map[account.Vertex]bool
	nodeList []account.Vertex
	out      map[account.Vertex][]*edge
	nextKey  map[[2]account.Vertex]int
}

func New() *TransactionGraph {
	return &TransactionGraph{
		nodes:   make(map[account.Vertex]bool),
		out:     make(map[account.Vertex][]*edge),
		nextKey: make(map[[2]account.Vertex]int),
	}
}

func (g *TransactionGraph) HasNode(v account.Vertex) bool {
	return g.nodes[v]
}

func (g *TransactionGraph) AddNode(v account.Vertex) {
	if g.nodes[v] {
		return
	}
	g.nodes[v] = true
	g.nodeList = append(g.nodeList, v)
}

func (g *TransactionGraph) Nodes() []account.Vertex {
	out := make([]account.Vertex, len(g.nodeList))
	copy(out, g.nodeList)
	return out
}

// AddEdge inserts a new parallel edge from -> to and returns its key. Both
// endpoints must already exist as nodes.
func (g *TransactionGraph) AddEdge(from, to account.Vertex, props Properties) int {
	pairKey := [2]account.Vertex{from, to}
	key := g.nextKey[pairKey]
	if key == 0 {
		key = 10
	}
	g.nextKey[pairKey] = key + 10

	g.out[from] = append(g.out[from], &edge{key: key, to: to, props: props})
	return key
}

// AddEdgeWithKey inserts an edge at an explicit key, used by the swap
// resolver to place a SWAP edge immediately after the last consumed hop
// (first_hop.key + 1).
func (g *TransactionGraph) AddEdgeWithKey(from, to account.Vertex, key int, props Properties) {
	g.out[from] = append(g.out[from], &edge{key: key, to: to, props: props})
}

type Edge struct {
	From, To account.Vertex
	Key      int
	Props    Properties
}

// Edges returns every edge in the graph, optionally filtered by predicate
// (pass nil for no filter).
func (g *TransactionGraph) Edges(filter func(Properties) bool) []Edge {
	var out []Edge
	for _, from := range g.nodeList {
		for _, e := range g.out[from] {
			if filter != nil && !filter(e.props) {
				continue
			}
			out = append(out, Edge{From: from, To: e.to, Key: e.key, Props: e.props})
		}
	}
	return out
}

// OutEdges returns the edges leaving v, in insertion order.
func (g *TransactionGraph) OutEdges(v account.Vertex) []Edge {
	var out []Edge
	for _, e := range g.out[v] {
		out = append(out, Edge{From: v, To: e.to, Key: e.key, Props: e.props})
	}
	return out
}

// HasPath reports whether to is reachable from from by following directed
// edges. Used as the cycle guard before reusing an existing account version
// as an edge endpoint (spec's DAG invariant).
func (g *TransactionGraph) HasPath(from, to account.Vertex) bool {
	if from == to {
		return true
	}
	visited := map[account.Vertex]bool{from: true}
	stack := []account.Vertex{from}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range g.out[cur] {
			if e.to == to {
				return true
			}
			if !visited[e.to] {
				visited[e.to] = true
				stack = append(stack, e.to)
			}
		}
	}
	return false
}

// ShortestPath returns the sequence of vertices from `from` to `to`
// (inclusive), following the fewest hops, or nil if no path exists.
func (g *TransactionGraph) ShortestPath(from, to account.Vertex) []account.Vertex {
	if from == to {
		return []account.Vertex{from}
	}
	prev := map[account.Vertex]account.Vertex{}
	visited := map[account.Vertex]bool{from: true}
	queue := []account.Vertex{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range g.out[cur] {
			if visited[e.to] {
				continue
			}
			visited[e.to] = true
			prev[e.to] = cur
			if e.to == to {
				path := []account.Vertex{to}
				for v := cur; ; v = prev[v] {
					path = append([]account.Vertex{v}, path...)
					if v == from {
						break
					}
				}
				return path
			}
			queue = append(queue, e.to)
		}
	}
	return nil
}

// Subgraph returns a new graph containing only the nodes for which include
// returns true, and edges whose both endpoints are included.
func (g *TransactionGraph) Subgraph(include func(account.Vertex) bool) *TransactionGraph {
	sub := New()
	for _, v := range g.nodeList {
		if include(v) {
			sub.AddNode(v)
		}
	}
	for _, from := range g.nodeList {
		if !include(from) {
			continue
		}
		for _, e := range g.out[from] {
			if include(e.to) {
				sub.AddEdgeWithKey(from, e.to, e.key, e.props)
			}
		}
	}
	return sub
}

// EdgeSubgraph returns a new graph containing only the edges for which
// filter returns true, plus their endpoint nodes. Used by the swap resolver
// (C7) to isolate a single swap's edges by swap_parent_id.
func (g *TransactionGraph) EdgeSubgraph(filter func(Properties) bool) *TransactionGraph {
	sub := New()
	for _, from := range g.nodeList {
		for _, e := range g.out[from] {
			if !filter(e.props) {
				continue
			}
			sub.AddNode(from)
			sub.AddNode(e.to)
			sub.AddEdgeWithKey(from, e.to, e.key, e.props)
		}
	}
	return sub
}

// NodesWithAddress returns every vertex in the graph whose address matches.
func (g *TransactionGraph) NodesWithAddress(address string) []account.Vertex {
	var out []account.Vertex
	for _, v := range g.nodeList {
		if v.Address == address {
			out = append(out, v)
		}
	}
	return out
}

// AddGraph unions other into g. Node identity already includes the
// transaction signature, so graphs from different transactions never
// collide; this is how the composer (C9) merges per-transaction graphs into
// a graphspace without any renumbering.
func (g *TransactionGraph) AddGraph(other *TransactionGraph) {
	for _, v := range other.nodeList {
		g.AddNode(v)
	}
	for _, from := range other.nodeList {
		for _, e := range other.out[from] {
			g.out[from] = append(g.out[from], &edge{key: e.key, to: e.to, props: e.props})
			pairKey := [2]account.Vertex{from, e.to}
			if e.key+10 > g.nextKey[pairKey] {
				g.nextKey[pairKey] = e.key + 10
			}
		}
	}
}

func (v Properties) String() string {
	return fmt.Sprintf("%s amount=%d/%d mint=%s", v.Type, v.AmountSource, v.AmountDestination, v.MintAddress)
}
