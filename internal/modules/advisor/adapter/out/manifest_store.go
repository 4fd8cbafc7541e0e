package out

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"paymind/internal/modules/advisor/domain"
	advisorout "paymind/internal/modules/advisor/port/out"

	"gopkg.in/yaml.v3"
)

const manifestFileName = "plugin.yaml"

// DirManifestStore reads <dir>/<name>/plugin.yaml for every subdirectory of dir.
type DirManifestStore struct {
	dir string
}

func NewDirManifestStore(dir string) advisorout.ManifestStore {
	return &DirManifestStore{dir: dir}
}

func (s *DirManifestStore) Load(_ context.Context) ([]domain.Manifest, error) {
	if s.dir == "" {
		return []domain.Manifest{}, nil
	}
	paths, err := filepath.Glob(filepath.Join(s.dir, "*", manifestFileName))
	if err != nil {
		return nil, fmt.Errorf("scan plugin dir: %w", err)
	}
	sort.Strings(paths)
	manifests := make([]domain.Manifest, 0, len(paths))
	for _, path := range paths {
		manifest, err := readManifest(path)
		if err != nil {
			return nil, err
		}
		manifests = append(manifests, manifest)
	}
	return manifests, nil
}

func readManifest(path string) (domain.Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.Manifest{}, fmt.Errorf("read plugin manifest: %w", err)
	}
	var manifest domain.Manifest
	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)
	if err := decoder.Decode(&manifest); err != nil && !errors.Is(err, io.EOF) {
		return domain.Manifest{}, fmt.Errorf("decode plugin manifest %s: %w", path, err)
	}
	if manifest.Binary != "" && !filepath.IsAbs(manifest.Binary) {
		manifest.Binary = filepath.Clean(filepath.Join(filepath.Dir(path), manifest.Binary))
	}
	return manifest, nil
}
