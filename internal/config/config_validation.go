package config

import streamyerrors "github.com/alexisbeaulieu97/weave/pkg/errors"

// ValidateConfig runs struct-tag validation over cfg and wraps any
// validation failure in a ParseError so callers see one consistent error
// shape regardless of whether the document failed to decode or failed to
// validate.
func ValidateConfig(cfg *ProjectConfig) error {
	if err := validatorInstance().Struct(cfg); err != nil {
		return streamyerrors.NewParseError("project_config", 0, err)
	}
	return nil
}
