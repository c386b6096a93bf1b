package config

// ProjectConfig is the optional YAML-shaped document the engine reads from
// a known project-root path. Unknown top-level keys are collected into
// Extra by ParseConfig and are otherwise unused; Extra is excluded from
// YAML encoding, and the package has no function that writes a config
// file back out.
type ProjectConfig struct {
	ProjectName string          `yaml:"project_name" validate:"required,min=1"`
	Discovery   DiscoveryConfig `yaml:"discovery"`
	CacheDir    string          `yaml:"cache_dir"`
	DocsDir     string          `yaml:"docs_dir"`

	Extra map[string]any `yaml:"-"`
}

// DiscoveryConfig names the directories scanned for entity and operation
// declarations.
type DiscoveryConfig struct {
	EntitiesDirs   []string `yaml:"entities_dirs" validate:"omitempty,dive,min=1"`
	OperationsDirs []string `yaml:"operations_dirs" validate:"omitempty,dive,min=1"`
}

const (
	defaultCacheDir = ".run_cache"
	defaultDocsDir  = "docs"
)

func (c *ProjectConfig) applyDefaults() {
	if c.CacheDir == "" {
		c.CacheDir = defaultCacheDir
	}
	if c.DocsDir == "" {
		c.DocsDir = defaultDocsDir
	}
}
