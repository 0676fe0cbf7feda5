package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/topicnet/pkg/attr"
	"github.com/matzehuels/topicnet/pkg/errors"
	"github.com/matzehuels/topicnet/pkg/filter"
	"github.com/matzehuels/topicnet/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	paneStyle         = lipgloss.NewStyle().MarginRight(2)
)

// =============================================================================
// ExploreModel - Interactive selection over a laid out network
// =============================================================================

// Pane identifies which list receives cursor keys.
type Pane int

const (
	PaneNodes Pane = iota
	PaneLegend
)

// viewLoadedMsg is delivered once the network has been built and laid out.
type viewLoadedMsg struct {
	view *pipeline.View
	err  error
}

// ExploreModel is the bubbletea model behind 'topicnet explore'. The node
// list shows every entity, hidden ones dimmed; the legend lists every topic.
//
// Keys: ↑/↓ move, enter clicks the node or legend row under the cursor,
// d double-clicks the node, esc clicks the background, tab switches lists,
// q quits.
type ExploreModel struct {
	Source  string
	Loading bool
	Err     error
	Net     *pipeline.View

	Focus        Pane
	NodeCursor   int
	LegendCursor int
	Offset       int
	Height       int

	// LastEvent is the canonical form of the last dispatched event.
	LastEvent string

	ctx    context.Context
	load   func(context.Context) (*pipeline.View, error)
	ids    []string
	legend []attr.LegendRow
}

// NewExploreModel creates a model that calls load from Init.
func NewExploreModel(ctx context.Context, source string, load func(context.Context) (*pipeline.View, error)) ExploreModel {
	return ExploreModel{
		Source:  source,
		Loading: true,
		Height:  15,
		ctx:     ctx,
		load:    load,
	}
}

func (m ExploreModel) Init() tea.Cmd {
	if m.load == nil {
		return nil
	}
	ctx, load := m.ctx, m.load
	return func() tea.Msg {
		v, err := load(ctx)
		return viewLoadedMsg{view: v, err: err}
	}
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case viewLoadedMsg:
		m.Loading = false
		if msg.err != nil {
			m.Err = msg.err
			return m, nil
		}
		m = m.withView(msg.view)
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
		m.scroll()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m ExploreModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	if m.Net == nil {
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "tab":
		if m.Focus == PaneNodes {
			m.Focus = PaneLegend
		} else {
			m.Focus = PaneNodes
		}
	case "enter":
		if m.Focus == PaneNodes {
			if id, ok := m.currentNode(); ok {
				m.dispatch(filter.Click(id))
			}
		} else if m.LegendCursor < len(m.legend) {
			m.dispatch(filter.Legend(m.legend[m.LegendCursor].TopicID))
		}
	case "d":
		if m.Focus == PaneNodes {
			if id, ok := m.currentNode(); ok {
				m.dispatch(filter.DoubleClick(id))
			}
		}
	case "esc":
		m.dispatch(filter.Stage())
	}
	return m, nil
}

func (m ExploreModel) withView(v *pipeline.View) ExploreModel {
	m.Net = v
	m.ids = v.Dataset.Graph.IDs()
	m.legend = attr.Legend(v.Dataset.Topics)
	m.NodeCursor, m.LegendCursor, m.Offset = 0, 0, 0
	return m
}

func (m *ExploreModel) dispatch(ev filter.Event) {
	m.LastEvent = ev.String()
	m.Err = m.Net.Dispatch(m.ctx, ev)
}

func (m *ExploreModel) move(delta int) {
	if m.Focus == PaneLegend {
		m.LegendCursor = clamp(m.LegendCursor+delta, 0, len(m.legend)-1)
		return
	}
	m.NodeCursor = clamp(m.NodeCursor+delta, 0, len(m.ids)-1)
	m.scroll()
}

// scroll keeps the node cursor inside the visible window.
func (m *ExploreModel) scroll() {
	if m.NodeCursor < m.Offset {
		m.Offset = m.NodeCursor
	}
	if m.NodeCursor >= m.Offset+m.Height {
		m.Offset = m.NodeCursor - m.Height + 1
	}
}

func (m ExploreModel) currentNode() (string, bool) {
	if m.NodeCursor < 0 || m.NodeCursor >= len(m.ids) {
		return "", false
	}
	return m.ids[m.NodeCursor], true
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}

// =============================================================================
// Rendering
// =============================================================================

func (m ExploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("topicnet"))
	b.WriteString(" " + listDimStyle.Render(m.Source))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ move  ⏎ click  d double-click  esc reset  tab legend  q quit"))
	b.WriteString("\n\n")

	switch {
	case m.Loading:
		b.WriteString(listDimStyle.Render("Loading network..."))
		b.WriteString("\n")
		return b.String()
	case m.Net == nil && m.Err != nil:
		b.WriteString(styleIconError.Render(iconError) + " " + errors.UserMessage(m.Err))
		b.WriteString("\n")
		return b.String()
	case m.Net == nil:
		return b.String()
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		paneStyle.Render(m.nodeTable()),
		m.legendList(),
	))
	b.WriteString("\n\n")
	b.WriteString(m.statusLine())
	return b.String()
}

func (m ExploreModel) nodeTable() string {
	g := m.Net.Dataset.Graph
	end := min(m.Offset+m.Height, len(m.ids))

	var rows [][]string
	for i := m.Offset; i < end; i++ {
		e, _ := g.Entity(m.ids[i])
		cursor := "  "
		if i == m.NodeCursor {
			cursor = "▸ "
		}
		topic, _ := m.Net.Dataset.Topics.Name(e.TopicID)
		rows = append(rows, []string{cursor, swatch(e.Color), e.ID, e.DisplayLabel(), topic, strconv.Itoa(g.Degree(e.ID))})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "", "ID", "Label", "Topic", "Degree").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			idx := m.Offset + row
			if idx >= len(m.ids) {
				return lipgloss.NewStyle()
			}
			if idx == m.NodeCursor && m.Focus == PaneNodes {
				return listSelectedStyle
			}
			if !m.Net.Controller.IsVisible(m.ids[idx]) {
				return listDimStyle
			}
			return listNormalStyle
		})

	return t.Render() + "\n" + listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.NodeCursor+1, len(m.ids)))
}

func (m ExploreModel) legendList() string {
	var b strings.Builder
	b.WriteString(styleHeader.Render("Legend"))
	b.WriteString("\n")
	for i, r := range m.legend {
		cursor := "  "
		style := listNormalStyle
		if i == m.LegendCursor && m.Focus == PaneLegend {
			cursor = "▸ "
			style = listSelectedStyle
		}
		b.WriteString(cursor + swatch(r.Color) + " " + style.Render(r.TopicID+"  "+r.Name))
		b.WriteString("\n")
	}
	return b.String()
}

func (m ExploreModel) statusLine() string {
	g := m.Net.Dataset.Graph
	parts := []string{
		m.Net.Controller.State().String(),
		fmt.Sprintf("%d/%d visible", g.VisibleCount(), g.NodeCount()),
	}
	if m.LastEvent != "" {
		parts = append(parts, m.LastEvent)
	}
	line := StyleDim.Render(strings.Join(parts, " · "))
	if m.Err != nil {
		line += "  " + styleIconError.Render(iconError) + " " + errors.UserMessage(m.Err)
	}
	return line
}
