package compose

import (
	"github.com/solgraph/txgraph/internal/txcontext"
)

// collapsed is the directed, address-level view of a transaction's DAG used for
// isomorphism grouping: vertices are addresses (versions and signatures
// dropped), and there is at most one edge per ordered address pair
// regardless of how many parallel transfers produced it. Grounded on
// original_source/GrafolanaBack/domain/transaction/services/graph_service.py
// (convert_dag_to_cyclicgraph).
type collapsed struct {
	nodes   []string
	index   map[string]int
	adj     [][]bool // adj[i][j] true iff an edge i->j exists
	outDeg  []int
	inDeg   []int
}

func collapse(ctx *txcontext.Context) *collapsed {
	c := &collapsed{index: map[string]int{}}
	nodeIndex := func(addr string) int {
		if i, ok := c.index[addr]; ok {
			return i
		}
		i := len(c.nodes)
		c.index[addr] = i
		c.nodes = append(c.nodes, addr)
		return i
	}

	seenPair := map[[2]string]bool{}
	for _, e := range ctx.Graph.Edges(nil) {
		pair := [2]string{e.From.Address, e.To.Address}
		if pair[0] == pair[1] {
			continue
		}
		nodeIndex(pair[0])
		nodeIndex(pair[1])
		seenPair[pair] = true
	}

	n := len(c.nodes)
	c.adj = make([][]bool, n)
	for i := range c.adj {
		c.adj[i] = make([]bool, n)
	}
	c.outDeg = make([]int, n)
	c.inDeg = make([]int, n)
	for pair := range seenPair {
		i, j := c.index[pair[0]], c.index[pair[1]]
		c.adj[i][j] = true
		c.outDeg[i]++
		c.inDeg[j]++
	}
	return c
}

// isomorphic reports whether a and b have the same collapsed shape: a
// bijection between their nodes under which every directed edge in a
// corresponds to one in b, and vice versa. Backtracking search with
// degree-sequence pruning, adequate at the "tens of nodes" scale spec §9
// expects for a single transaction's collapsed graph.
func isomorphic(a, b *collapsed) bool {
	n := len(a.nodes)
	if n != len(b.nodes) {
		return false
	}
	if countEdges(a.adj) != countEdges(b.adj) {
		return false
	}

	mapping := make([]int, n) // a-index -> b-index
	used := make([]bool, n)
	for i := range mapping {
		mapping[i] = -1
	}

	order := orderByDegree(a)

	var backtrack func(pos int) bool
	backtrack = func(pos int) bool {
		if pos == n {
			return true
		}
		ai := order[pos]
		for bi := 0; bi < n; bi++ {
			if used[bi] {
				continue
			}
			if a.outDeg[ai] != b.outDeg[bi] || a.inDeg[ai] != b.inDeg[bi] {
				continue
			}
			if !consistent(a, b, mapping, ai, bi) {
				continue
			}
			mapping[ai] = bi
			used[bi] = true
			if backtrack(pos + 1) {
				return true
			}
			mapping[ai] = -1
			used[bi] = false
		}
		return false
	}
	return backtrack(0)
}

func consistent(a, b *collapsed, mapping []int, ai, bi int) bool {
	for aj, bj := range mapping {
		if bj == -1 {
			continue
		}
		if a.adj[ai][aj] != b.adj[bi][bj] {
			return false
		}
		if a.adj[aj][ai] != b.adj[bj][bi] {
			return false
		}
	}
	return true
}

func orderByDegree(c *collapsed) []int {
	idx := make([]int, len(c.nodes))
	for i := range idx {
		idx[i] = i
	}
	for i := 1; i < len(idx); i++ {
		for j := i; j > 0 && (c.outDeg[idx[j]]+c.inDeg[idx[j]]) > (c.outDeg[idx[j-1]]+c.inDeg[idx[j-1]]); j-- {
			idx[j], idx[j-1] = idx[j-1], idx[j]
		}
	}
	return idx
}

func countEdges(adj [][]bool) int {
	n := 0
	for _, row := range adj {
		for _, present := range row {
			if present {
				n++
			}
		}
	}
	return n
}
