package controller

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTUI_DisplayTreePrintsWhenNotATerminal(t *testing.T) {
	cmd, out, _ := newTestCmd()

	require.NoError(t, NewTUI(cmd).DisplayTree(t.Context(), sampleTree()))
	assert.Equal(t, RenderTree(sampleTree()), out.String())
}

func TestTreeModel_NeedsPagination(t *testing.T) {
	content := strings.Repeat("line\n", 30)

	tests := []struct {
		name   string
		height int
		want   bool
	}{
		{"unknown height", 0, false},
		{"fits", 40, false},
		{"too tall", 20, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := newTreeModel("title", content)
			model.height = tt.height
			assert.Equal(t, tt.want, model.needsPagination())
		})
	}
}

func TestTreeModel_Update(t *testing.T) {
	model := newTreeModel("kover: 1 file(s)", strings.Repeat("line\n", 50))
	assert.Equal(t, "\n  Loading...", model.View())

	updated, cmd := model.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	assert.Nil(t, cmd)

	sized := updated.(treeModel)
	assert.True(t, sized.ready)
	assert.Equal(t, 20-treeChromeHeight, sized.viewport.Height)
	assert.Contains(t, sized.View(), "kover: 1 file(s)")

	resized, _ := sized.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Equal(t, 100, resized.(treeModel).viewport.Width)

	_, quit := sized.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, quit)
	assert.IsType(t, tea.QuitMsg{}, quit())
}

func TestTUI_DelegatesToSimpleUI(t *testing.T) {
	cmd, out, _ := newTestCmd()

	require.NoError(t, NewTUI(cmd).DisplayStructure(t.Context(), []byte("files: []\n")))
	assert.Equal(t, "files: []\n", out.String())
}
