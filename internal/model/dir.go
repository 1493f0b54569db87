package model

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yourorg/sdkdoc/pkg/types"
)

var modelExtensions = map[string]bool{".json": true, ".yaml": true, ".yml": true}

// LoadDir loads every model file directly under dir, sorted by file name.
// Two files describing the same service are an error.
func LoadDir(dir string) ([]*types.ServiceModel, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read models dir: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !modelExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	seen := make(map[string]string, len(names))
	out := make([]*types.ServiceModel, 0, len(names))
	for _, name := range names {
		svc, err := Load(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if prev, ok := seen[svc.Name]; ok {
			return nil, fmt.Errorf("%w: service %q defined by %s and %s", ErrInvalidModel, svc.Name, prev, name)
		}
		seen[svc.Name] = name
		out = append(out, svc)
	}
	return out, nil
}
