// Command graphview is a terminal viewer for serialize.GraphData JSON, the
// output of cmd/solgraph. Grounded on the teacher's bubbletea usage
// (internal/ui/component/compact_logs.go's viewport pattern, internal/ui's
// KeyMap shape) but scoped to a single screen: the teacher's full
// router/screen/component/state UI framework exists to support a trading
// bot's many distinct screens (main menu, task list, monitor, settings,
// logs), a need this single-purpose GraphData browser doesn't share.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/solgraph/txgraph/internal/serialize"
)

type model struct {
	keys     keyMap
	styles   styles
	viewport viewport.Model
	content  string
	ready    bool
	showHelp bool
	source   string
}

func newModel(data *serialize.GraphData, source string) model {
	st := defaultStyles()
	return model{
		keys:    defaultKeyMap(),
		styles:  st,
		content: renderGraph(data, st),
		source:  source,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
		case key.Matches(msg, m.keys.Top):
			m.viewport.GotoTop()
		case key.Matches(msg, m.keys.Bottom):
			m.viewport.GotoBottom()
		case key.Matches(msg, m.keys.PageUp):
			m.viewport.ViewUp()
		case key.Matches(msg, m.keys.PageDn):
			m.viewport.ViewDown()
		case key.Matches(msg, m.keys.Up):
			m.viewport.LineUp(1)
		case key.Matches(msg, m.keys.Down):
			m.viewport.LineDown(1)
		}

	case tea.WindowSizeMsg:
		headerHeight := lipgloss.Height(m.headerView())
		footerHeight := lipgloss.Height(m.footerView())
		verticalMargin := headerHeight + footerHeight

		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-verticalMargin)
			m.viewport.SetContent(m.content)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - verticalMargin
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if !m.ready {
		return "Loading graph..."
	}
	return fmt.Sprintf("%s\n%s\n%s", m.headerView(), m.viewport.View(), m.footerView())
}

func (m model) headerView() string {
	return m.styles.title.Render(fmt.Sprintf("solgraph viewer — %s", m.source))
}

func (m model) footerView() string {
	scroll := fmt.Sprintf("%3.f%%", m.viewport.ScrollPercent()*100)
	help := "↑/↓ scroll · g/G top/bottom · ? help · q quit"
	if m.showHelp {
		help = "up/down/k/j: line  pgup/pgdn/b/f: page  g/G: top/bottom  ?: toggle help  q/ctrl+c: quit"
	}
	return m.styles.status.Render(scroll + "  " + help)
}

func main() {
	path := flag.String("file", "", "Path to a GraphData JSON file produced by solgraph; reads stdin if omitted")
	flag.Parse()

	var r io.Reader
	source := "stdin"
	if *path != "" {
		f, err := os.Open(*path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "graphview: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		r = f
		source = *path
	} else {
		r = os.Stdin
	}

	var data serialize.GraphData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		fmt.Fprintf(os.Stderr, "graphview: failed to parse graph data: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(newModel(&data, source), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "graphview: %v\n", err)
		os.Exit(1)
	}
}
