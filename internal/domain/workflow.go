package domain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"kover.dev/pkg/kover/internal/adapter"
	"kover.dev/pkg/kover/internal/controller"
	m "kover.dev/pkg/kover/internal/model"
)

// ErrGoldenMismatch is returned when a composed structure differs from the golden file.
var ErrGoldenMismatch = errors.New("structure differs from golden file")

// ComposeArgs contains the arguments for composing record files into a structure document.
type ComposeArgs struct {
	Paths    []m.Path
	Exclude  []string
	Output   m.Path // "" or "-" prints the document
	Golden   m.Path // when set the document is compared against this file
	Threads  int
	FailFast bool
}

// ListArgs contains the arguments for the per-file statistics listing.
type ListArgs struct {
	Paths   []m.Path
	Exclude []string
	Threads int
}

// ViewArgs contains the arguments for printing declaration trees.
type ViewArgs struct {
	Paths   []m.Path
	Exclude []string
	Threads int
}

// Workflow defines the interface for the composition workflow.
type Workflow interface {
	Compose(ctx context.Context, args ComposeArgs) error
	List(ctx context.Context, args ListArgs) error
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	adapter.RecordSource
	adapter.StructureStore
	controller.UI
	composer Composer
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	records adapter.RecordSource,
	store adapter.StructureStore,
	ui controller.UI,
	composer Composer,
) Workflow {
	return &workflow{
		RecordSource:   records,
		StructureStore: store,
		UI:             ui,
		composer:       composer,
	}
}

func (w *workflow) Compose(ctx context.Context, args ComposeArgs) error {
	files, err := w.Load(ctx, args.Paths, args.Exclude...)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}

	composed, failures, err := w.composeAll(ctx, files, args.Threads, args.FailFast)
	if err != nil {
		return err
	}

	data, err := w.Marshal(adapter.BuildStructure(composed))
	if err != nil {
		return err
	}

	if err := w.emit(ctx, args.Output, data); err != nil {
		return err
	}

	if err := w.DisplayFailures(ctx, failures); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	if args.Golden != "" {
		if err := w.compareGolden(args.Golden, args.Output, data); err != nil {
			return err
		}
	}

	return joinFailures(failures)
}

func (w *workflow) emit(ctx context.Context, output m.Path, data []byte) error {
	if output == "" || output == "-" {
		if err := w.DisplayStructure(ctx, data); err != nil {
			return fmt.Errorf("display: %w", err)
		}

		return nil
	}

	path, err := w.Save(output, data)
	if err != nil {
		return err
	}

	slog.Info("Saved structure", "path", path)

	return nil
}

func (w *workflow) compareGolden(golden, output m.Path, actual []byte) error {
	expected, err := w.Read(golden)
	if err != nil {
		return err
	}

	if bytes.Equal(expected, actual) {
		return nil
	}

	actualName := string(output)
	if actualName == "" || actualName == "-" {
		actualName = "actual"
	}

	diff, err := adapter.Diff(string(golden), actualName, expected, actual)
	if err != nil {
		return fmt.Errorf("diff against %s: %w", golden, err)
	}

	slog.Error("Structure differs from golden file", "golden", golden)

	return fmt.Errorf("%w %s:\n%s", ErrGoldenMismatch, golden, diff)
}

func (w *workflow) List(ctx context.Context, args ListArgs) error {
	files, err := w.Load(ctx, args.Paths, args.Exclude...)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}

	composed, failures, err := w.composeAll(ctx, files, args.Threads, false)
	if err != nil {
		return err
	}

	stats := make([]controller.FileStats, 0, len(composed))
	for _, file := range composed {
		stats = append(stats, controller.FileStats{Path: file.Path, Stats: m.CountFile(file)})
	}

	if err := w.DisplayStats(ctx, stats); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	if err := w.DisplayFailures(ctx, failures); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	return joinFailures(failures)
}

func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	files, err := w.Load(ctx, args.Paths, args.Exclude...)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}

	composed, failures, err := w.composeAll(ctx, files, args.Threads, false)
	if err != nil {
		return err
	}

	if err := w.DisplayTree(ctx, composed); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	if err := w.DisplayFailures(ctx, failures); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	return joinFailures(failures)
}

// composeAll composes files concurrently. Each file is independent; with
// failFast the first failure cancels the rest, otherwise failures are collected.
func (w *workflow) composeAll(
	ctx context.Context,
	files []m.FileInitial,
	threads int,
	failFast bool,
) ([]*m.SourceFile, []controller.Failure, error) {
	results := make([]*m.SourceFile, len(files))
	failed := make([]error, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	if threads > 0 {
		group.SetLimit(threads)
	}

	for i, file := range files {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			composed, err := w.composer.Compose(file)
			if err != nil {
				slog.Error("Failed to compose file", "path", file.Path, "error", err)

				if failFast {
					return fmt.Errorf("compose %s: %w", file.Path, err)
				}

				failed[i] = err

				return nil
			}

			results[i] = composed

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, nil, err
	}

	composed := make([]*m.SourceFile, 0, len(files))
	failures := make([]controller.Failure, 0)

	for i, file := range files {
		if failed[i] != nil {
			failures = append(failures, controller.Failure{Path: file.Path, Err: failed[i]})
			continue
		}

		composed = append(composed, results[i])
	}

	sort.SliceStable(composed, func(i, j int) bool {
		return composed[i].Path < composed[j].Path
	})

	slog.Debug("Composed files", "composed", len(composed), "failed", len(failures), "threads", threads)

	return composed, failures, nil
}

func joinFailures(failures []controller.Failure) error {
	errs := make([]error, 0, len(failures))
	for _, failure := range failures {
		errs = append(errs, failure.Err)
	}

	return errors.Join(errs...)
}
