// Package config loads pipekit configuration from YAML files and the
// environment.
//
// Configuration is resolved in layers: defaults, then an optional YAML
// file, then PIPEKIT_* environment variables (an optional .env file is
// loaded first). A FileSystem seam keeps file discovery testable.
package config

import (
	"github.com/kbukum/pipekit/logger"
	"github.com/kbukum/pipekit/observe"
)

// Config is the root pipekit configuration.
type Config struct {
	// Strict makes unresolved declarative references a build error instead
	// of a silent pass-through.
	Strict bool `yaml:"strict" mapstructure:"strict"`
	// PipelineDirs lists the directories searched for pipeline declaration
	// files.
	PipelineDirs []string `yaml:"pipeline_dirs" mapstructure:"pipeline_dirs"`
	// Logging configures structured logging.
	Logging logger.Config `yaml:"logging" mapstructure:"logging"`
	// Observe configures OpenTelemetry tracing and metrics.
	Observe observe.Config `yaml:"observe" mapstructure:"observe"`
}

// ApplyDefaults applies default values.
func (c *Config) ApplyDefaults() {
	if len(c.PipelineDirs) == 0 {
		c.PipelineDirs = []string{"./pipelines"}
	}
	c.Logging.ApplyDefaults()
	c.Observe.ApplyDefaults()
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	return c.Logging.Validate()
}
