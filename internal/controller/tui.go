package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "kover.dev/pkg/kover/internal/model"
)

// reserved rows: title, blank, blank, footer.
const treeChromeHeight = 4

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	footerStyle = lipgloss.NewStyle().Faint(true)
)

// TUI implements UI using Bubble Tea. Trees taller than the terminal are shown
// in a scrollable pager; everything else prints like SimpleUI.
type TUI struct {
	*SimpleUI
	output io.Writer
}

// NewTUI creates a new TUI.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{SimpleUI: NewSimpleUI(cmd), output: cmd.OutOrStdout()}
}

// DisplayTree pages the declaration tree when it does not fit on screen.
func (t *TUI) DisplayTree(ctx context.Context, files []*m.SourceFile) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	model := newTreeModel(fmt.Sprintf("kover: %d file(s)", len(files)), RenderTree(files))

	if f, ok := t.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model.width = width
			model.height = height
		}
	}

	if !model.needsPagination() {
		_, err := fmt.Fprint(t.output, model.content)
		return err
	}

	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// treeModel is the Bubble Tea model of the tree pager.
type treeModel struct {
	title    string
	content  string
	viewport viewport.Model
	ready    bool
	width    int
	height   int
}

func newTreeModel(title, content string) treeModel {
	return treeModel{title: title, content: content}
}

func (tm treeModel) needsPagination() bool {
	if tm.height == 0 {
		return false
	}

	return strings.Count(tm.content, "\n") > tm.height-treeChromeHeight
}

func (tm treeModel) Init() tea.Cmd {
	return nil
}

func (tm treeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		tm.width = msg.Width
		tm.height = msg.Height

		viewHeight := max(msg.Height-treeChromeHeight, 1)

		if !tm.ready {
			tm.viewport = viewport.New(msg.Width, viewHeight)
			tm.viewport.SetContent(tm.content)
			tm.ready = true
		} else {
			tm.viewport.Width = msg.Width
			tm.viewport.Height = viewHeight
		}

		return tm, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return tm, tea.Quit
		}
	}

	var cmd tea.Cmd

	tm.viewport, cmd = tm.viewport.Update(msg)

	return tm, cmd
}

func (tm treeModel) View() string {
	if !tm.ready {
		return "\n  Loading..."
	}

	footer := footerStyle.Render(fmt.Sprintf("%3.f%%  ↑/↓ scroll • q quit", tm.viewport.ScrollPercent()*100))

	return titleStyle.Render(tm.title) + "\n\n" + tm.viewport.View() + "\n\n" + footer
}
