package filter

import (
	"path"
	"strings"

	"github.com/yourorg/sdkdoc/internal/config"
	"github.com/yourorg/sdkdoc/pkg/types"
)

// FilterConfig is an alias of config.FilterConfig.
type FilterConfig = config.FilterConfig

// Apply returns the operations selected by cfg, in model order. An empty
// include list selects every operation; exclude patterns win over includes.
func Apply(ops []*types.Operation, cfg FilterConfig) []*types.Operation {
	filtered := make([]*types.Operation, 0, len(ops))
	for _, op := range ops {
		if op == nil {
			continue
		}
		if len(cfg.Include) > 0 && !matchesAny(op.Name, cfg.Include) {
			continue
		}
		if matchesAny(op.Name, cfg.Exclude) {
			continue
		}
		filtered = append(filtered, op)
	}
	return filtered
}

// Match reports whether the operation name matches the glob pattern,
// ignoring case.
func Match(pattern, name string) bool {
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	if pattern == "" {
		return false
	}
	ok, err := path.Match(pattern, strings.ToLower(name))
	if err != nil {
		return pattern == strings.ToLower(name)
	}
	return ok
}

func matchesAny(name string, patterns []string) bool {
	for _, p := range patterns {
		if Match(p, name) {
			return true
		}
	}
	return false
}
