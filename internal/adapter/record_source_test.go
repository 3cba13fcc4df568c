package adapter

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "kover.dev/pkg/kover/internal/model"
)

const classRecords = `path: a/Foo.kt
classes:
  - name: a/Foo
    jvmName: a/Foo
    companion: Companion
    functions:
      - name: bar
        parameters: [Int]
        signature: bar(I)V
        lines: [12, 10, 11, 10]
    localFunctions:
      - signature: bar$local$1(I)V
        lines: [11]
localClasses:
  - outerClass: a/Foo
    outerMethod: bar(I)V
    jvmName: a/Foo$bar$1
`

const facadeRecords = `path: a/Foo.kt
facade: a/FooKt
init:
  signature: <clinit>()V
  lines: [1]
functions:
  - name: top
    signature: top()V
    lines: [20]
---
path: a/Bar.kt
functions:
  - name: other
    signature: other()V
`

func newTestRecordSource() *LocalRecordSource {
	return NewLocalRecordSource(NewLocalSourceFSAdapter())
}

func TestLocalRecordSource_DecodesAndNormalizes(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "Foo.yaml"), classRecords)

	records, err := newTestRecordSource().Load(t.Context(), []m.Path{m.Path(filepath.Join(root, "Foo.yaml"))})
	require.NoError(t, err)
	require.Len(t, records, 1)

	record := records[0]
	assert.Equal(t, m.Path("a/Foo.kt"), record.Path)
	require.Len(t, record.Classes, 1)

	foo := record.Classes[0]
	assert.Equal(t, m.QualifiedName{Package: "a", Relative: "Foo"}, foo.JvmName)
	assert.Equal(t, "Companion", foo.CompanionName)
	assert.Equal(t, m.Lines{10, 11, 12}, foo.Functions[0].Lines)
	assert.Equal(t, []string{"Int"}, foo.Functions[0].ValueParameters)
	assert.Equal(t, m.MethodSignature{Name: "bar$local$1", Desc: "(I)V"}, foo.LocalFunctions[0].Signature)

	require.Len(t, record.LocalClasses, 1)
	assert.Equal(t, "Foo.bar.1", record.LocalClasses[0].JvmName.Relative)
	assert.Equal(t, "bar", record.LocalClasses[0].OuterMethod.Name)
}

func TestLocalRecordSource_MergesDocumentsByPath(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "a.yaml"), classRecords)
	writeTestFile(t, filepath.Join(root, "b.yml"), facadeRecords)
	writeTestFile(t, filepath.Join(root, "notes.txt"), "ignored")

	records, err := newTestRecordSource().Load(t.Context(), []m.Path{m.Path(root)})
	require.NoError(t, err)
	require.Len(t, records, 2)

	foo := records[0]
	assert.Equal(t, m.Path("a/Foo.kt"), foo.Path)
	assert.Len(t, foo.Classes, 1)
	assert.Len(t, foo.Functions, 1)
	require.NotNil(t, foo.FacadeClassName)
	assert.Equal(t, "FooKt", foo.FacadeClassName.Relative)
	require.NotNil(t, foo.InitFunction)

	assert.Equal(t, m.Path("a/Bar.kt"), records[1].Path)
}

func TestLocalRecordSource_Patterns(t *testing.T) {
	root := t.TempDir()
	mustMkdir(t, filepath.Join(root, "nested", "generated"))
	writeTestFile(t, filepath.Join(root, "Top.yaml"), "path: Top.kt\n")
	writeTestFile(t, filepath.Join(root, "nested", "Inner.json"), `{"path": "Inner.kt"}`)
	writeTestFile(t, filepath.Join(root, "nested", "generated", "Gen.yaml"), "path: Gen.kt\n")

	tests := []struct {
		name    string
		paths   []m.Path
		exclude []string
		want    []m.Path
	}{
		{"directory is not recursive", []m.Path{m.Path(root)}, nil, []m.Path{"Top.kt"}},
		{"recursive pattern", []m.Path{m.Path(root + "/...")}, nil, []m.Path{"Top.kt", "Inner.kt", "Gen.kt"}},
		{"exclude regex", []m.Path{m.Path(root + "/...")}, []string{"generated"}, []m.Path{"Top.kt", "Inner.kt"}},
		{"duplicate paths read once", []m.Path{m.Path(root), m.Path(filepath.Join(root, "Top.yaml"))}, nil, []m.Path{"Top.kt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := newTestRecordSource().Load(t.Context(), tt.paths, tt.exclude...)
			require.NoError(t, err)

			got := make([]m.Path, 0, len(records))
			for _, record := range records {
				got = append(got, record.Path)
			}

			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

func TestLocalRecordSource_Errors(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "NoPath.yaml"), "classes: []\n")
	writeTestFile(t, filepath.Join(root, "Bad.yaml"), "functions:\n  - signature: notasignature\n")

	tests := []struct {
		name    string
		paths   []m.Path
		exclude []string
		errText string
	}{
		{"missing path", []m.Path{m.Path(filepath.Join(root, "NoPath.yaml"))}, nil, "missing source path"},
		{"malformed signature", []m.Path{m.Path(filepath.Join(root, "Bad.yaml"))}, nil, "malformed method signature"},
		{"missing file", []m.Path{m.Path(filepath.Join(root, "Nope.yaml"))}, nil, "record path"},
		{"invalid exclude", []m.Path{m.Path(root)}, []string{"("}, "invalid exclude pattern"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestRecordSource().Load(t.Context(), tt.paths, tt.exclude...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestLocalRecordSource_Cancelled(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "Top.yaml"), "path: Top.kt\n")

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := newTestRecordSource().Load(ctx, []m.Path{m.Path(root)})
	require.Error(t, err)
}
