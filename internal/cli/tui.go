package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/verbump/pkg/deps"
	"github.com/matzehuels/verbump/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// SelectModel - Interactive target selection
// =============================================================================

// selectItem is one proposed change. result and target index into the
// update results the model was built from.
type selectItem struct {
	result, target int
	label          string
	checked        bool
}

// SelectModel is the bubbletea model for choosing which dependency changes
// to write. Every change starts checked.
type SelectModel struct {
	Items     []selectItem
	Cursor    int
	Offset    int
	Height    int
	Confirmed bool
}

// NewSelectModel lists every target of results, each checked when
// selectAll is set.
func NewSelectModel(results []pipeline.UpdateResult, selectAll bool) SelectModel {
	width := 0
	for _, r := range results {
		for _, t := range r.Targets {
			width = max(width, len(r.Package.Name())+len(t.Dependency.Name)+1)
		}
	}

	var items []selectItem
	for i, r := range results {
		for j, t := range r.Targets {
			name := r.Package.Name() + " " + t.Dependency.Name
			items = append(items, selectItem{
				result:  i,
				target:  j,
				label:   fmt.Sprintf("%-*s  %s %s %s", width, name, t.From(), iconArrow, t.Comparator),
				checked: selectAll,
			})
		}
	}
	return SelectModel{Items: items, Height: 15}
}

func (m SelectModel) Init() tea.Cmd {
	return nil
}

func (m SelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Items)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ", "x":
			if len(m.Items) > 0 {
				m.Items[m.Cursor].checked = !m.Items[m.Cursor].checked
			}
		case "a":
			all := !m.allChecked()
			for i := range m.Items {
				m.Items[i].checked = all
			}
		case "enter":
			m.Confirmed = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m SelectModel) allChecked() bool {
	for _, it := range m.Items {
		if !it.checked {
			return false
		}
	}
	return true
}

func (m SelectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Updates"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  a all  ⏎ apply  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Items))
	for i := m.Offset; i < end; i++ {
		it := m.Items[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		box := "[ ]"
		if it.checked {
			box = "[" + StyleSuccess.Render("x") + "]"
		}

		line := cursor + box + " " + it.label
		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case it.checked:
			b.WriteString(listNormalStyle.Render(line))
		default:
			b.WriteString(listDimStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d] %d selected", m.Cursor+1, len(m.Items), m.checkedCount())))
	return b.String()
}

func (m SelectModel) checkedCount() int {
	n := 0
	for _, it := range m.Items {
		if it.checked {
			n++
		}
	}
	return n
}

// Selected narrows results to the checked targets. Packages left without a
// target are dropped. Nothing is selected unless the user confirmed.
func (m SelectModel) Selected(results []pipeline.UpdateResult) []pipeline.UpdateResult {
	if !m.Confirmed {
		return nil
	}

	keep := make(map[[2]int]bool)
	for _, it := range m.Items {
		if it.checked {
			keep[[2]int{it.result, it.target}] = true
		}
	}

	var out []pipeline.UpdateResult
	for i, r := range results {
		sel := pipeline.UpdateResult{Package: r.Package, Tree: &deps.Tree{Agent: r.Tree.Agent}}
		for j, t := range r.Targets {
			if keep[[2]int{i, j}] {
				sel.Targets = append(sel.Targets, t)
				sel.Tree.Dependencies = append(sel.Tree.Dependencies, t.Dependency)
			}
		}
		if len(sel.Targets) > 0 {
			out = append(out, sel)
		}
	}
	return out
}

// chooseTargets runs the selection list on in and out.
func chooseTargets(ctx context.Context, in io.Reader, out io.Writer, results []pipeline.UpdateResult, selectAll bool) ([]pipeline.UpdateResult, error) {
	p := tea.NewProgram(NewSelectModel(results, selectAll),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
	return final.(SelectModel).Selected(results), nil
}
