package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"retrolog/internal/modules/suggest/domain"
	suggestout "retrolog/internal/modules/suggest/port/out"
	apperrors "retrolog/internal/platform/errors"
)

// FileManifestStore reads provider declarations from <vault>/plugins/plugins.json.
// A missing file means no providers are installed.
type FileManifestStore struct {
	vaultPath string
}

func NewFileManifestStore(vaultPath string) suggestout.ManifestStore {
	return &FileManifestStore{vaultPath: vaultPath}
}

func (s *FileManifestStore) path() string {
	return filepath.Join(s.vaultPath, "plugins", "plugins.json")
}

func (s *FileManifestStore) Load(_ context.Context) ([]domain.Manifest, error) {
	raw, err := os.ReadFile(s.path())
	if os.IsNotExist(err) {
		return []domain.Manifest{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read suggestion providers: %w", err)
	}
	manifests := []domain.Manifest{}
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&manifests); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", apperrors.ErrInvalidInput, filepath.Base(s.path()), err)
	}
	for i := range manifests {
		manifests[i].Binary = s.resolveBinary(manifests[i].Binary)
	}
	return manifests, nil
}

// resolveBinary anchors relative binaries at the vault root.
func (s *FileManifestStore) resolveBinary(binary string) string {
	if binary == "" || filepath.IsAbs(binary) {
		return binary
	}
	return filepath.Clean(filepath.Join(s.vaultPath, binary))
}
