package template

import (
	"context"

	"wpm/internal/config"
)

// ResourceResolver resolves a config.Executable to a local path.
// internal/resourcestore.Store satisfies this.
type ResourceResolver interface {
	Resolve(ctx context.Context, e config.Executable) (string, error)
}

// ResolveResources resolves every entry in a unit's service.resources map
// ahead of time, so Engine.Expand can substitute {{ Resources.KEY }}
// synchronously without performing I/O mid-expansion.
func ResolveResources(ctx context.Context, r ResourceResolver, resources map[string]config.ResourceRef) (map[string]string, error) {
	resolved := make(map[string]string, len(resources))
	for key, ref := range resources {
		ref := ref
		path, err := r.Resolve(ctx, config.Executable{Resource: &ref})
		if err != nil {
			return nil, err
		}
		resolved[key] = path
	}
	return resolved, nil
}

// BuildVars assembles the context exposed to the Sprig-powered template
// fallback: the unit's own name and its env map.
func BuildVars(unitName string, env map[string]string) map[string]interface{} {
	envCopy := make(map[string]string, len(env))
	for k, v := range env {
		envCopy[k] = v
	}
	return map[string]interface{}{
		"unit": unitName,
		"env":  envCopy,
	}
}

// MergeContexts merges multiple var maps into one; later maps override
// values from earlier ones.
func MergeContexts(contexts ...map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{})
	for _, ctx := range contexts {
		for key, value := range ctx {
			result[key] = value
		}
	}
	return result
}
