// Package config is the ambient settings layer: an optional `cogform.hcl`
// file carrying server/runtime defaults (HTTP port, log level/format,
// default execution mode and budgets). It plays the same format-agnostic
// Model/Loader role the teacher's internal/config did for its runner/asset
// grid, generalized to this engine's much smaller settings surface — there
// is no step DAG to translate here, just a flat settings block.
package config

import (
	"github.com/cogform/cogform/internal/schema"
)

// Settings is the unified, format-agnostic configuration model.
type Settings struct {
	HTTPPort      int
	LogLevel      string
	LogFormat     string
	FormsDir      string
	DefaultMode   schema.ExecutionMode
	MaxIterations int
	TimeoutMS     int
}

// Defaults returns the settings used when no config file is present.
func Defaults() Settings {
	return Settings{
		HTTPPort:      8080,
		LogLevel:      "info",
		LogFormat:     "json",
		FormsDir:      "forms",
		DefaultMode:   schema.DefaultMode,
		MaxIterations: schema.DefaultMaxIterations,
		TimeoutMS:     schema.DefaultTimeoutMS,
	}
}

// Loader is the interface a format-specific configuration loader
// implements (mirrors the teacher's config.Loader).
type Loader interface {
	Load(path string) (Settings, error)
}

// modeFromString maps a settings-file string onto the closed ExecutionMode
// set, falling back to the package default for anything unrecognized
// rather than rejecting the whole file over one bad field.
func modeFromString(s string) schema.ExecutionMode {
	switch schema.ExecutionMode(s) {
	case schema.ModeSequential, schema.ModeParallel, schema.ModeAdaptive:
		return schema.ExecutionMode(s)
	default:
		return schema.DefaultMode
	}
}
