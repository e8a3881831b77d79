package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"adhesion/internal/membership/models"
	"adhesion/pkg/platform/sentinel"
)

// FSStore writes one pretty-printed JSON document per member under a
// dedicated directory, beside the rendered PDF of the same numero.
type FSStore struct {
	dir string
}

// NewFS returns a filesystem-backed record store rooted at dir.
func NewFS(dir string) *FSStore {
	return &FSStore{dir: dir}
}

// Save writes {dir}/{numero}.json, creating the directory if absent.
func (s *FSStore) Save(ctx context.Context, m models.Member) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create record dir: %w", err)
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record %s: %w", m.Numero, err)
	}
	if err := os.WriteFile(s.Path(m.Numero), data, 0o644); err != nil {
		return fmt.Errorf("write record %s: %w", m.Numero, err)
	}
	return nil
}

// Load reads the record back; a missing file maps to sentinel.ErrNotFound.
func (s *FSStore) Load(ctx context.Context, numero string) (models.Member, error) {
	raw, err := os.ReadFile(s.Path(numero))
	if os.IsNotExist(err) {
		return models.Member{}, fmt.Errorf("record %s: %w", numero, sentinel.ErrNotFound)
	}
	if err != nil {
		return models.Member{}, fmt.Errorf("read record %s: %w", numero, err)
	}
	var m models.Member
	if err := json.Unmarshal(raw, &m); err != nil {
		return models.Member{}, fmt.Errorf("unmarshal record %s: %w", numero, err)
	}
	return m, nil
}

// Path returns the JSON file location for a numero.
func (s *FSStore) Path(numero string) string {
	return filepath.Join(s.dir, numero+".json")
}
