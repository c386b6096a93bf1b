package main

import (
	"github.com/alexisbeaulieu97/weave/internal/config"
	"github.com/alexisbeaulieu97/weave/internal/logger"
)

// AppContext carries the dependencies every subcommand needs: the resolved
// project configuration and a logger configured for the session.
type AppContext struct {
	ProjectRoot string
	Config      *config.ProjectConfig
	Logger      *logger.Logger
}
