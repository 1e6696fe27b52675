package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chainsight/chainsight/pkg/dataset"
	"github.com/chainsight/chainsight/pkg/graph"
	"github.com/chainsight/chainsight/pkg/impact"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			MarginLeft(2).
			MarginTop(1)

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(1, 2).
			MarginLeft(2)

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFF00")).
			MarginLeft(2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true).
			MarginLeft(2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

type nodeItem struct {
	node graph.Node
}

func (i nodeItem) Title() string { return i.node.ID }
func (i nodeItem) Description() string {
	return fmt.Sprintf("tier %d · %s · risk %.2f", i.node.Tier, i.node.Kind, i.node.RiskScore)
}
func (i nodeItem) FilterValue() string { return i.node.ID }

type model struct {
	ix       *graph.Index
	nodeList list.Model
	trace    *impact.AffectedSet
	traceErr error
	selected string
	width    int
	height   int
}

func newModel(ix *graph.Index, nodes []graph.Node) model {
	items := make([]list.Item, 0, len(nodes))
	for _, n := range nodes {
		items = append(items, nodeItem{node: n})
	}

	l := list.New(items, list.NewDefaultDelegate(), 40, 20)
	l.Title = "Supply Chain Nodes"
	l.SetShowStatusBar(false)

	return model{ix: ix, nodeList: l}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.nodeList.SetSize(msg.Width/2, msg.Height-6)

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter":
			if item, ok := m.nodeList.SelectedItem().(nodeItem); ok {
				m.selected = item.node.ID
				m.trace, m.traceErr = impact.TraceDownstream(
					context.Background(), m.ix, []string{item.node.ID},
					impact.DefaultTraceOptions())
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.nodeList, cmd = m.nodeList.Update(msg)
	return m, cmd
}

func (m model) View() string {
	left := m.nodeList.View()

	right := statsBoxStyle.Render(m.statsView())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Chainsight — disruption explorer"),
		body,
		helpStyle.Render("enter: trace disruption · /: filter · q: quit"))
}

func (m model) statsView() string {
	if m.traceErr != nil {
		return errorStyle.Render("trace failed: " + m.traceErr.Error())
	}
	if m.trace == nil {
		return "Select a node and press enter\nto simulate a disruption."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Disruption at %s\n\n", m.selected)
	fmt.Fprintf(&b, "Affected nodes:  %d\n", len(m.trace.Nodes))
	fmt.Fprintf(&b, "Affected edges:  %d\n", len(m.trace.Edges))
	fmt.Fprintf(&b, "Critical paths:  %d\n", len(m.trace.CriticalPaths))
	fmt.Fprintf(&b, "Severity score:  %.2f\n", m.trace.TotalImpact)

	if len(m.trace.CriticalPaths) > 0 {
		b.WriteString("\nWorst critical path:\n")
		b.WriteString(pathStyle.Render(strings.Join(m.trace.CriticalPaths[0], " → ")))
	}
	return b.String()
}

func main() {
	datasetPath := flag.String("dataset", "", "dataset file (.json or .csnap)")
	flag.Parse()

	if *datasetPath == "" {
		fmt.Fprintln(os.Stderr, "usage: chainsight-tui -dataset FILE")
		os.Exit(2)
	}

	g, err := dataset.LoadFile(*datasetPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	ix, _ := graph.BuildIndex(g)

	p := tea.NewProgram(newModel(ix, g.Nodes), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
