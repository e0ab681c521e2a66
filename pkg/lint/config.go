package lint

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadConfigFile reads an engine configuration file into a generic map.
// Both YAML and JSON files parse, JSON being a YAML subset. A missing or
// unreadable file is an error; configuration discovery is the caller's job.
func LoadConfigFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg map[string]any
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg == nil {
		cfg = map[string]any{}
	}
	return cfg, nil
}

// MergeConfig deep-merges override into base and returns the result. Neither
// input is modified. Maps merge recursively; any other value in override
// replaces the base value outright, so a list in override is a replacement,
// not an append.
func MergeConfig(base, override map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(override))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range override {
		subOverride, overrideIsMap := v.(map[string]any)
		subBase, baseIsMap := merged[k].(map[string]any)
		if overrideIsMap && baseIsMap {
			merged[k] = MergeConfig(subBase, subOverride)
			continue
		}
		merged[k] = v
	}
	return merged
}

// ResolveOptions computes the effective configuration for a set of engine
// options: the config file (when given) merged with the inline settings,
// inline winning. This is the default ResolveConfig implementation shared by
// engines that have no richer discovery of their own.
func ResolveOptions(opts EngineOptions) (map[string]any, error) {
	var cfg map[string]any
	if path := opts.EffectiveConfigPath(); path != "" {
		loaded, err := LoadConfigFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = map[string]any{}
	}
	return MergeConfig(cfg, opts.Inline), nil
}
