package adapter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "kover.dev/pkg/kover/internal/model"
)

func sampleDocument() StructureDocument {
	return StructureDocument{Files: []FileStructure{{
		Path: "Foo.kt",
		Classes: []ClassStructure{{
			Name:    "/Foo",
			JvmName: "Foo",
			Functions: []FunctionStructure{{
				Name:         "bar",
				Descriptor:   "(Int)",
				JvmSignature: "bar(I)V",
				Lines:        []int{10, 11, 12},
			}},
		}},
	}}}
}

func TestYAMLStructureStore_SaveAndRead(t *testing.T) {
	store := NewYAMLStructureStore(NewLocalSourceFSAdapter())

	data, err := store.Marshal(sampleDocument())
	require.NoError(t, err)
	assert.Contains(t, string(data), "lines: [10, 11, 12]")

	tests := []struct {
		name   string
		output string
		want   string
	}{
		{"directory", "out", filepath.Join("out", StructureFileName)},
		{"explicit file", "custom.yaml", "custom.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()

			path, err := store.Save(m.Path(filepath.Join(dir, tt.output)), data)
			require.NoError(t, err)
			assert.Equal(t, m.Path(filepath.Join(dir, tt.want)), path)

			read, err := store.Read(path)
			require.NoError(t, err)
			assert.Equal(t, data, read)
		})
	}
}

func TestYAMLStructureStore_ReadMissing(t *testing.T) {
	store := NewYAMLStructureStore(NewLocalSourceFSAdapter())

	_, err := store.Read(m.Path(filepath.Join(t.TempDir(), "missing.yaml")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read structure")
}

func TestDiff(t *testing.T) {
	diff, err := Diff("golden.yaml", "actual", []byte("a\nb\nc\n"), []byte("a\nB\nc\n"))
	require.NoError(t, err)

	assert.Contains(t, diff, "--- golden.yaml")
	assert.Contains(t, diff, "+++ actual")
	assert.Contains(t, diff, "-b")
	assert.Contains(t, diff, "+B")

	same, err := Diff("a", "b", []byte("x\n"), []byte("x\n"))
	require.NoError(t, err)
	assert.Empty(t, same)
}
