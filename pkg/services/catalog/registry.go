package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gws-tools/scubacfg/pkg/models/api"
	"github.com/gws-tools/scubacfg/pkg/models/domain"
	"github.com/gws-tools/scubacfg/pkg/services/extract"
	"gopkg.in/yaml.v3"
)

// Registry serves the baseline catalog as read-only reference data.
type Registry interface {
	Baselines(ctx context.Context) ([]string, error)
	Catalog(ctx context.Context) (domain.BaselineCatalog, error)
}

type dirRegistry struct {
	dir     string
	catalog domain.BaselineCatalog
}

// NewRegistry builds a registry from a directory of baseline documents. Each
// *.md file (README.md excluded) becomes one baseline named by its
// upper-cased file stem. Extraction happens once, at construction.
func NewRegistry(ctx context.Context, dir string) (Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read baselines dir: %w", err)
	}

	docs := map[string]string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".md") || strings.EqualFold(name, "README.md") {
			continue
		}
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read baseline %s: %w", name, err)
		}
		baseline := strings.ToUpper(strings.TrimSuffix(name, ".md"))
		docs[baseline] = string(content)
	}

	return &dirRegistry{dir: dir, catalog: extract.Baselines(ctx, docs)}, nil
}

func (r *dirRegistry) Baselines(_ context.Context) ([]string, error) {
	names := r.catalog.Baselines()
	sort.Strings(names)
	return names, nil
}

func (r *dirRegistry) Catalog(_ context.Context) (domain.BaselineCatalog, error) {
	return r.catalog, nil
}

type staticRegistry struct {
	catalog domain.BaselineCatalog
}

// NewStaticRegistry wraps an already-built catalog, e.g. the embedded
// snapshot or a test fixture.
func NewStaticRegistry(catalog domain.BaselineCatalog) Registry {
	return &staticRegistry{catalog: catalog}
}

func (r *staticRegistry) Baselines(_ context.Context) ([]string, error) {
	names := r.catalog.Baselines()
	sort.Strings(names)
	return names, nil
}

func (r *staticRegistry) Catalog(_ context.Context) (domain.BaselineCatalog, error) {
	return r.catalog, nil
}

// EncodeSnapshot serializes a catalog into the snapshot format consumed by
// DecodeSnapshot and the embedded dataset. Baselines are sorted so identical
// catalogs always produce byte-identical snapshots.
func EncodeSnapshot(catalog domain.BaselineCatalog) ([]byte, error) {
	snapshot := api.Catalog{Baselines: make(map[string][]api.Policy, len(catalog))}
	for name, policies := range catalog {
		recs := make([]api.Policy, 0, len(policies))
		for _, p := range policies {
			recs = append(recs, api.Policy{ID: p.ID, Description: p.Description})
		}
		snapshot.Baselines[name] = recs
	}
	return yaml.Marshal(&snapshot)
}

func DecodeSnapshot(data []byte) (domain.BaselineCatalog, error) {
	var snapshot api.Catalog
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to parse catalog snapshot: %w", err)
	}
	catalog := make(domain.BaselineCatalog, len(snapshot.Baselines))
	for name, policies := range snapshot.Baselines {
		recs := make([]domain.PolicyRecord, 0, len(policies))
		for _, p := range policies {
			recs = append(recs, domain.PolicyRecord{ID: p.ID, Description: p.Description})
		}
		catalog[name] = recs
	}
	return catalog, nil
}
