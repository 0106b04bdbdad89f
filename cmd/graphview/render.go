package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/solgraph/txgraph/internal/serialize"
)

// renderGraph builds the scrollable body a viewport displays: one section
// per transaction (fee, signers, swaps), then the node and link tables.
func renderGraph(data *serialize.GraphData, st styles) string {
	var b strings.Builder

	b.WriteString(st.header.Render(fmt.Sprintf("Transactions (%d)", len(data.Transactions))))
	b.WriteString("\n")
	for _, sig := range sortedKeys(data.Transactions) {
		tx := data.Transactions[sig]
		b.WriteString(st.muted.Render(shorten(sig)))
		b.WriteString(fmt.Sprintf("  fee=%d  signers=%d  swaps=%d  group=%d\n",
			tx.Fee, len(tx.Signers), len(tx.Swaps), tx.IsomorphicGroup))
		for _, s := range tx.Swaps {
			b.WriteString("    ")
			b.WriteString(renderSwap(s, st))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(st.header.Render(fmt.Sprintf("Nodes (%d)", len(data.Nodes))))
	b.WriteString("\n")
	for _, n := range data.Nodes {
		line := fmt.Sprintf("%s  v%d  %-10s", shorten(n.AccountVertex.Address), n.AccountVertex.Version, n.Type)
		if n.IsPool {
			line = st.pool.Render(line) + " (pool)"
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(st.header.Render(fmt.Sprintf("Links (%d)", len(data.Links))))
	b.WriteString("\n")
	for _, l := range data.Links {
		b.WriteString(fmt.Sprintf("%s --[%s]--> %s  src=%d dst=%d\n",
			shorten(l.Source.Address), l.Type, shorten(l.Target.Address), l.AmountSource, l.AmountDestination))
	}

	return b.String()
}

func renderSwap(s serialize.SwapData, st styles) string {
	label := fmt.Sprintf("swap #%d  %s -> %s  in=%d out=%d fee=%d",
		s.ID, shorten(s.UserSource), shorten(s.UserDestination), s.AmountIn, s.AmountOut, s.Fee)
	if s.Router {
		return st.warn.Render(label + " (router)")
	}
	return st.swap.Render(label)
}

func sortedKeys(m map[string]serialize.TransactionData) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func shorten(s string) string {
	if len(s) <= 12 {
		return s
	}
	return s[:6] + "..." + s[len(s)-4:]
}
