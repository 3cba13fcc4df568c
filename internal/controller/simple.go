package controller

import (
	"bytes"
	"context"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "kover.dev/pkg/kover/internal/model"
)

// SimpleUI implements UI using cobra Command's output writer.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayStructure prints an encoded structure document as is.
func (s *SimpleUI) DisplayStructure(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := s.cmd.OutOrStdout().Write(data)

	return err
}

// DisplayStats prints a per-file declaration table.
func (s *SimpleUI) DisplayStats(ctx context.Context, stats []FileStats) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderStatsTable(stats))

	return nil
}

func renderStatsTable(stats []FileStats) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Classes", "Local classes", "Functions", "Local functions", "Lines"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
	})

	var total m.Stats

	for _, stat := range stats {
		table.Append([]string{
			string(stat.Path),
			fmt.Sprintf("%d", stat.Classes),
			fmt.Sprintf("%d", localClassCount(stat.Stats)),
			fmt.Sprintf("%d", stat.Functions),
			fmt.Sprintf("%d", stat.LocalFunctions+stat.Anonymous),
			fmt.Sprintf("%d", stat.Lines),
		})

		total.Classes += stat.Classes
		total.LocalClasses += stat.LocalClasses
		total.AnonymousClasses += stat.AnonymousClasses
		total.LambdaClasses += stat.LambdaClasses
		total.Functions += stat.Functions
		total.LocalFunctions += stat.LocalFunctions
		total.Anonymous += stat.Anonymous
		total.Lines += stat.Lines
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(stats)),
		fmt.Sprintf("%d", total.Classes),
		fmt.Sprintf("%d", localClassCount(total)),
		fmt.Sprintf("%d", total.Functions),
		fmt.Sprintf("%d", total.LocalFunctions+total.Anonymous),
		fmt.Sprintf("%d", total.Lines),
	})

	table.Render()

	return tableBuffer.String()
}

func localClassCount(stats m.Stats) int {
	return stats.LocalClasses + stats.AnonymousClasses + stats.LambdaClasses
}

// DisplayTree prints the declaration tree of every file.
func (s *SimpleUI) DisplayTree(ctx context.Context, files []*m.SourceFile) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s", RenderTree(files))

	return nil
}

// DisplayFailures lists files that could not be composed.
func (s *SimpleUI) DisplayFailures(ctx context.Context, failures []Failure) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(failures) == 0 {
		return nil
	}

	s.errorf("%d file(s) failed to compose:\n", len(failures))

	for _, failure := range failures {
		s.errorf("  %s: %v\n", failure.Path, failure.Err)
	}

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func (s *SimpleUI) errorf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.ErrOrStderr(), format, args...)
}
