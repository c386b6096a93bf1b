package config

import (
	"os"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"

	streamyerrors "github.com/alexisbeaulieu97/weave/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

var knownTopLevelKeys = map[string]struct{}{
	"project_name": {},
	"discovery":    {},
	"cache_dir":    {},
	"docs_dir":     {},
}

// ParseConfig loads the project configuration file from disk, applies
// cache_dir/docs_dir defaults, and validates it. A missing file is not an
// error: the caller receives a zero-value ProjectConfig with defaults
// applied, since the configuration file is optional per the engine's
// external-interfaces contract.
func ParseConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := &ProjectConfig{}
		cfg.applyDefaults()
		return cfg, nil
	}
	if err != nil {
		return nil, streamyerrors.NewParseError(path, 0, err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, streamyerrors.NewParseError(path, extractLine(err), err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, streamyerrors.NewParseError(path, extractLine(err), err)
	}
	cfg.Extra = make(map[string]any)
	for k, v := range raw {
		if _, known := knownTopLevelKeys[k]; !known {
			cfg.Extra[k] = v
		}
	}

	cfg.applyDefaults()

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	line, convErr := strconv.Atoi(matches[1])
	if convErr != nil {
		return 0
	}

	return line
}
