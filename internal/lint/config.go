package lint

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"schema-tools/internal/fuzzy"
)

// ConfigFileNames are searched, in order, when no config path is given.
var ConfigFileNames = []string{
	".cdxlintrc.json",
	".cdxlintrc",
	"cdxlint.config.json",
	".cdxlintrc.yaml",
}

// Config selects and tunes checks.
type Config struct {
	// Checks holds per-check options keyed by check ID.
	Checks map[string]CheckConfig `yaml:"checks"`
	// ExcludeChecks are never run.
	ExcludeChecks []string `yaml:"excludeChecks"`
	// IncludeChecks, when non-empty, are the only checks run.
	IncludeChecks []string `yaml:"includeChecks"`
	// MaxDepth limits document traversal. 0 means unlimited.
	MaxDepth int `yaml:"maxDepth"`
}

// CheckConfig holds the options of one check as decoded from the config
// file.
type CheckConfig map[string]any

// LoadConfig loads and parses a config file. JSON files are accepted since
// they are valid YAML.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lint config %s: %w", path, err)
	}

	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// ParseConfig parses YAML or JSON config data.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config

	err := yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse lint config: %w", err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// FindConfig returns the first of ConfigFileNames present in dir.
func FindConfig(dir string) (string, bool) {
	for _, name := range ConfigFileNames {
		p := filepath.Join(dir, name)

		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
	}

	return "", false
}

func applyDefaults(cfg *Config) {
	if cfg.Checks == nil {
		cfg.Checks = map[string]CheckConfig{}
	}
}

// For returns the options of a check; never nil.
func (c *Config) For(id string) CheckConfig {
	if cc, ok := c.Checks[id]; ok && cc != nil {
		return cc
	}

	return CheckConfig{}
}

// Selects reports whether the include and exclude lists allow a check.
func (c *Config) Selects(id string) bool {
	if len(c.IncludeChecks) > 0 && !slices.Contains(c.IncludeChecks, id) {
		return false
	}

	return !slices.Contains(c.ExcludeChecks, id)
}

// UnknownCheck is a check ID named in a config that no registered check has.
type UnknownCheck struct {
	// ID as written.
	ID string
	// Field naming it: "checks", "excludeChecks" or "includeChecks".
	Field string
	// Suggestion is the closest registered ID, if any is close enough.
	Suggestion string
}

func (u UnknownCheck) String() string {
	if u.Suggestion == "" {
		return fmt.Sprintf("unknown check %q in %s", u.ID, u.Field)
	}

	return fmt.Sprintf("unknown check %q in %s (did you mean %q?)", u.ID, u.Field, u.Suggestion)
}

// UnknownChecks lists the IDs in c that reg does not hold, per field in
// the order checks, excludeChecks, includeChecks.
func (c *Config) UnknownChecks(reg *Registry) []UnknownCheck {
	ids := reg.IDs()

	var out []UnknownCheck

	check := func(field string, names []string) {
		for _, id := range names {
			if slices.Contains(ids, id) {
				continue
			}

			suggestion, _ := fuzzy.Closest(id, ids)
			out = append(out, UnknownCheck{ID: id, Field: field, Suggestion: suggestion})
		}
	}

	check("checks", slices.Sorted(maps.Keys(c.Checks)))
	check("excludeChecks", c.ExcludeChecks)
	check("includeChecks", c.IncludeChecks)

	return out
}

// Enabled is false only when the "enabled" option is explicitly false.
func (cc CheckConfig) Enabled() bool {
	return cc.Bool("enabled", true)
}

// Bool returns a boolean option.
func (cc CheckConfig) Bool(key string, def bool) bool {
	if b, ok := cc[key].(bool); ok {
		return b
	}

	return def
}

// String returns a string option.
func (cc CheckConfig) String(key, def string) string {
	if s, ok := cc[key].(string); ok {
		return s
	}

	return def
}

// Int returns an integer option. Whole floats are accepted.
func (cc CheckConfig) Int(key string, def int) int {
	switch v := cc[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		return int(v)
	case float64:
		if v == float64(int(v)) {
			return int(v)
		}
	}

	return def
}

// Strings returns a list-of-strings option. Non-string items are skipped.
func (cc CheckConfig) Strings(key string, def []string) []string {
	switch v := cc[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))

		for _, it := range v {
			if s, ok := it.(string); ok {
				out = append(out, s)
			}
		}

		return out
	}

	return def
}
