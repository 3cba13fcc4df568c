// Package adapter contains the file-system facing pieces of the composer CLI:
// loading reader records and storing composed structures.
package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	m "kover.dev/pkg/kover/internal/model"
)

const recursiveSuffix = "/..."

// RecordSource loads the initial records written by the class-file reader.
type RecordSource interface {
	// Load reads every record file matched by paths. Supports dir/... for a
	// recursive scan; files whose path matches any exclude regex are skipped.
	// Documents describing the same source path are merged into one record.
	Load(ctx context.Context, paths []m.Path, exclude ...string) ([]m.FileInitial, error)
}

// LocalRecordSource reads YAML or JSON record files through a SourceFSAdapter.
type LocalRecordSource struct {
	fs SourceFSAdapter
}

// NewLocalRecordSource constructs a LocalRecordSource.
func NewLocalRecordSource(fs SourceFSAdapter) *LocalRecordSource {
	return &LocalRecordSource{fs: fs}
}

// Load implements RecordSource.
func (s *LocalRecordSource) Load(ctx context.Context, paths []m.Path, exclude ...string) ([]m.FileInitial, error) {
	excludes, err := compileExcludes(exclude)
	if err != nil {
		return nil, err
	}

	files, err := s.collectFiles(ctx, paths, excludes)
	if err != nil {
		return nil, err
	}

	merged := newRecordSet()

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		records, err := s.decodeFile(file)
		if err != nil {
			slog.Error("Failed to decode record file", "file", file, "error", err)
			return nil, err
		}

		for _, record := range records {
			merged.add(record)
		}
	}

	slog.Debug("Loaded records", "files", len(files), "sources", len(merged.order))

	return merged.list(), nil
}

func compileExcludes(patterns []string) ([]*regexp.Regexp, error) {
	excludes := make([]*regexp.Regexp, 0, len(patterns))

	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}

		excludes = append(excludes, re)
	}

	return excludes, nil
}

func excluded(path string, excludes []*regexp.Regexp) bool {
	for _, re := range excludes {
		if re.MatchString(path) {
			return true
		}
	}

	return false
}

func isRecordFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	}

	return false
}

func (s *LocalRecordSource) collectFiles(ctx context.Context, paths []m.Path, excludes []*regexp.Regexp) ([]string, error) {
	var files []string

	seen := make(map[string]struct{})
	add := func(path string) {
		if _, ok := seen[path]; ok || excluded(path, excludes) {
			return
		}

		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		root := string(p)
		recursive := strings.HasSuffix(root, recursiveSuffix) || root == "..."

		if recursive {
			root = strings.TrimSuffix(strings.TrimSuffix(root, "..."), "/")
			if root == "" {
				root = "."
			}
		}

		info, err := s.fs.FileInfo(m.Path(root))
		if err != nil {
			return nil, fmt.Errorf("record path %s: %w", root, err)
		}

		if !info.IsDir() {
			add(root)
			continue
		}

		err = s.fs.Walk(m.Path(root), recursive, func(path string, info os.FileInfo, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}

			if !info.IsDir() && isRecordFile(path) {
				add(path)
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	return files, nil
}

func (s *LocalRecordSource) decodeFile(path string) ([]m.FileInitial, error) {
	data, err := s.fs.ReadFile(m.Path(path))
	if err != nil {
		return nil, err
	}

	var records []m.FileInitial

	decoder := yaml.NewDecoder(bytes.NewReader(data))

	for index := 0; ; index++ {
		var record m.FileInitial

		err := decoder.Decode(&record)
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%s: document %d: %w", path, index, err)
		}

		if record.Path == "" {
			return nil, fmt.Errorf("%s: document %d: missing source path", path, index)
		}

		normalizeLines(&record)
		records = append(records, record)
	}

	return records, nil
}

// recordSet merges documents by source path, keeping first-seen order.
type recordSet struct {
	byPath map[m.Path]*m.FileInitial
	order  []m.Path
}

func newRecordSet() *recordSet {
	return &recordSet{byPath: make(map[m.Path]*m.FileInitial)}
}

func (rs *recordSet) add(record m.FileInitial) {
	existing, ok := rs.byPath[record.Path]
	if !ok {
		copied := record
		rs.byPath[record.Path] = &copied
		rs.order = append(rs.order, record.Path)

		return
	}

	if existing.FacadeClassName == nil {
		existing.FacadeClassName = record.FacadeClassName
	}

	if existing.InitFunction == nil {
		existing.InitFunction = record.InitFunction
	}

	existing.Classes = append(existing.Classes, record.Classes...)
	existing.Functions = append(existing.Functions, record.Functions...)
	existing.LocalFunctions = append(existing.LocalFunctions, record.LocalFunctions...)
	existing.Properties = append(existing.Properties, record.Properties...)
	existing.LocalClasses = append(existing.LocalClasses, record.LocalClasses...)
	existing.DefaultImpls = append(existing.DefaultImpls, record.DefaultImpls...)
}

func (rs *recordSet) list() []m.FileInitial {
	records := make([]m.FileInitial, 0, len(rs.order))
	for _, path := range rs.order {
		records = append(records, *rs.byPath[path])
	}

	return records
}

func normalizeLines(record *m.FileInitial) {
	normalizeAnonymous(record.InitFunction)
	normalizeSimple(record.Functions)
	normalizeAnonymousList(record.LocalFunctions)
	normalizeProperties(record.Properties)

	for i := range record.Classes {
		class := &record.Classes[i]
		normalizeSimple(class.Functions)
		normalizeSimple(class.Constructors)
		normalizeAnonymousList(class.LocalFunctions)
		normalizeProperties(class.Properties)
	}

	for i := range record.LocalClasses {
		class := &record.LocalClasses[i]
		normalizeSimple(class.Functions)
		normalizeSimple(class.Constructors)
		normalizeAnonymousList(class.LocalFunctions)
		normalizeProperties(class.Properties)
	}

	for i := range record.DefaultImpls {
		normalizeAnonymousList(record.DefaultImpls[i].Functions)
	}
}

func normalizeSimple(functions []m.SimpleFunctionInitial) {
	for i := range functions {
		functions[i].Lines = functions[i].Lines.Normalize()
	}
}

func normalizeAnonymousList(functions []m.AnonymousFunctionInitial) {
	for i := range functions {
		normalizeAnonymous(&functions[i])
	}
}

func normalizeAnonymous(fn *m.AnonymousFunctionInitial) {
	if fn != nil {
		fn.Lines = fn.Lines.Normalize()
	}
}

func normalizeProperties(properties []m.PropertyInitial) {
	for i := range properties {
		normalizeAnonymous(properties[i].Getter)
		normalizeAnonymous(properties[i].Setter)
	}
}
