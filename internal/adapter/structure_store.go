package adapter

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"

	m "kover.dev/pkg/kover/internal/model"
)

// StructureFileName is the file a structure document is saved under inside the output directory.
const StructureFileName = "structure.yaml"

// StructureStore persists composed structure documents.
type StructureStore interface {
	// Marshal encodes doc as YAML.
	Marshal(doc StructureDocument) ([]byte, error)
	// Save writes encoded data into dir and returns the file written.
	Save(dir m.Path, data []byte) (m.Path, error)
	// Read loads a previously saved document, e.g. a golden file.
	Read(path m.Path) ([]byte, error)
}

// YAMLStructureStore implements StructureStore with yaml.v3.
type YAMLStructureStore struct {
	fs SourceFSAdapter
}

// NewYAMLStructureStore constructs a YAMLStructureStore.
func NewYAMLStructureStore(fs SourceFSAdapter) *YAMLStructureStore {
	return &YAMLStructureStore{fs: fs}
}

// Marshal implements StructureStore.
func (s *YAMLStructureStore) Marshal(doc StructureDocument) ([]byte, error) {
	var buf bytes.Buffer

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode structure: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("encode structure: %w", err)
	}

	return buf.Bytes(), nil
}

// Save implements StructureStore. A dir ending in .yaml or .yml is used as the file path.
func (s *YAMLStructureStore) Save(dir m.Path, data []byte) (m.Path, error) {
	path := dir
	if !strings.HasSuffix(string(dir), ".yaml") && !strings.HasSuffix(string(dir), ".yml") {
		path = s.fs.JoinPath(string(dir), StructureFileName)
	}

	if err := s.fs.WriteFile(path, data, 0o600); err != nil {
		slog.Error("Failed to save structure", "path", path, "error", err)
		return "", fmt.Errorf("save structure to %s: %w", path, err)
	}

	return path, nil
}

// Read implements StructureStore.
func (s *YAMLStructureStore) Read(path m.Path) ([]byte, error) {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read structure %s: %w", path, err)
	}

	return data, nil
}
