package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// RenderProgressModel - Frame rendering progress bar
// =============================================================================

// frameMsg reports that a frame has been written.
type frameMsg struct {
	Index int
	Total int
}

// renderDoneMsg reports that the pipeline finished.
type renderDoneMsg struct {
	Err error
}

// RenderProgressModel is the bubbletea model showing frame progress.
// The render command feeds it frameMsg values from the pipeline's
// OnFrame callback.
type RenderProgressModel struct {
	Current  int
	Total    int
	Done     bool
	Err      error
	Quitting bool
	barWidth int
}

// NewRenderProgressModel creates a progress model with the default bar
// width.
func NewRenderProgressModel() RenderProgressModel {
	return RenderProgressModel{barWidth: 30}
}

func (m RenderProgressModel) Init() tea.Cmd {
	return nil
}

func (m RenderProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
	case frameMsg:
		m.Current = msg.Index + 1
		m.Total = msg.Total
	case renderDoneMsg:
		m.Done = true
		m.Err = msg.Err
		return m, tea.Quit
	case tea.WindowSizeMsg:
		if w := msg.Width - 24; w > 10 && w < 60 {
			m.barWidth = w
		}
	}
	return m, nil
}

func (m RenderProgressModel) View() string {
	if m.Done || m.Quitting {
		return ""
	}

	filled := 0
	if m.Total > 0 {
		filled = m.Current * m.barWidth / m.Total
	}
	if filled > m.barWidth {
		filled = m.barWidth
	}

	var b strings.Builder
	b.WriteString(StyleDim.Render("rendering "))
	b.WriteString(styleBarFilled.Render(strings.Repeat("█", filled)))
	b.WriteString(styleBarEmpty.Render(strings.Repeat("░", m.barWidth-filled)))
	b.WriteString(StyleDim.Render(fmt.Sprintf(" %d/%d", m.Current, m.Total)))
	b.WriteString("\n")
	return b.String()
}
