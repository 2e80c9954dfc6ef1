package beancomplete

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the .beancomplete.yaml configuration file.
type Config struct {
	// Beans lists bean description files, directories or glob patterns, relative to the
	// directory holding the config. When empty, the workspace is searched for them.
	Beans []string `yaml:"beans,omitempty"`

	// Matcher selects how a typed prefix filters candidates: "prefix" (default) or "fuzzy".
	Matcher string `yaml:"matcher,omitempty"`

	// Hide holds expressions over an entry; entries matching any of them are not offered.
	// e.g. `Deprecated` or `Name startsWith "_"`
	Hide []string `yaml:"hide,omitempty"`

	// MaxDepth bounds variable-through-variable resolution.
	MaxDepth int `yaml:"maxDepth,omitempty"`

	// MaxSubstitutions bounds variable substitution rounds per resolution.
	MaxSubstitutions int `yaml:"maxSubstitutions,omitempty"`

	// PlainInsert makes editors insert plain text instead of snippets.
	PlainInsert bool `yaml:"plainInsert,omitempty"`

	// Dir is the directory the config was loaded from. Relative bean paths resolve
	// against it.
	Dir string `yaml:"-"`
}

// DefaultConfigNames are the filenames we search for.
var DefaultConfigNames = []string{".beancomplete.yaml", ".beancomplete.yml", "beancomplete.yaml", "beancomplete.yml"}

// LoadConfig finds and loads the nearest .beancomplete.yaml walking up from dir.
func LoadConfig(dir string) (*Config, error) {
	path, err := FindConfig(dir)
	if err != nil {
		return nil, err
	}

	return LoadConfigFile(path)
}

// FindConfig searches for a config file starting from dir and walking up.
func FindConfig(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for dir := absDir; ; {
		for _, name := range DefaultConfigNames {
			path := filepath.Join(dir, name)

			_, err := os.Stat(path)
			if err == nil {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrConfigNotFound
		}

		dir = parent
	}
}

// LoadConfigFile loads a config from a specific path.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, err
	}

	cfg.Dir = abs

	return cfg, nil
}

// ParseConfig decodes config YAML.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config

	err := yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Options translates the resolution settings into Autocompleter options. The matcher is
// validated; entry filters are compiled by the caller.
func (c *Config) Options() ([]Option, error) {
	matcher, err := MatcherByName(c.Matcher)
	if err != nil {
		return nil, err
	}

	return []Option{
		WithMatcher(matcher),
		WithMaxDepth(c.MaxDepth),
		WithMaxSubstitutions(c.MaxSubstitutions),
	}, nil
}

// BeanPaths returns the configured bean paths made absolute against the config directory.
func (c *Config) BeanPaths() []string {
	paths := make([]string, len(c.Beans))
	for i, p := range c.Beans {
		if filepath.IsAbs(p) || c.Dir == "" {
			paths[i] = p
		} else {
			paths[i] = filepath.Join(c.Dir, p)
		}
	}

	return paths
}
