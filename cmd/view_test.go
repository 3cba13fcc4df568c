package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"kover.dev/pkg/kover/internal/domain"
	domainmocks "kover.dev/pkg/kover/internal/domain/mocks"
	m "kover.dev/pkg/kover/internal/model"
)

func withWorkflow(t *testing.T, replacement domain.Workflow) {
	t.Helper()

	originalWorkflow := workflow
	workflow = replacement

	t.Cleanup(func() { workflow = originalWorkflow })
}

func TestViewCmd_DefaultsToCurrentDirectory(t *testing.T) {
	useTempLog(t)

	mockWorkflow := domainmocks.NewMockWorkflow(t)
	withWorkflow(t, mockWorkflow)

	cmd := newRootCmd()
	cmd.AddCommand(newViewCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	mockWorkflow.On("View", mock.Anything, mock.MatchedBy(func(args domain.ViewArgs) bool {
		return len(args.Paths) == 1 && args.Paths[0] == m.Path("./...")
	})).Return(nil)

	cmd.SetArgs([]string{"view"})
	err := cmd.Execute()
	require.NoError(t, err)
}

func TestViewCmd_PassesPathsAndExcludes(t *testing.T) {
	useTempLog(t)

	mockWorkflow := domainmocks.NewMockWorkflow(t)
	withWorkflow(t, mockWorkflow)

	cmd := newRootCmd()
	cmd.AddCommand(newViewCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	mockWorkflow.On("View", mock.Anything, mock.MatchedBy(func(args domain.ViewArgs) bool {
		return len(args.Paths) == 2 &&
			args.Paths[1] == m.Path("b.yaml") &&
			len(args.Exclude) == 1 && args.Exclude[0] == "_test"
	})).Return(nil)

	cmd.SetArgs([]string{"view", "a.yaml", "b.yaml", "--exclude", "_test"})
	err := cmd.Execute()
	require.NoError(t, err)
}
