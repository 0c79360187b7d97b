package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/hclsimple"
)

// hclSettings is the on-disk shape of a `cogform.hcl` settings file.
// Every attribute is optional; omitted ones keep Defaults()'s value.
type hclSettings struct {
	HTTPPort      *int    `hcl:"http_port,optional"`
	LogLevel      *string `hcl:"log_level,optional"`
	LogFormat     *string `hcl:"log_format,optional"`
	FormsDir      *string `hcl:"forms_dir,optional"`
	DefaultMode   *string `hcl:"default_mode,optional"`
	MaxIterations *int    `hcl:"max_iterations,optional"`
	TimeoutMS     *int    `hcl:"timeout_ms,optional"`
}

// HCLLoader loads Settings from an HCL file, grounded on the teacher's
// concrete-loader-behind-an-interface pattern (internal/hcl.NewLoader in
// the original) but using hclsimple's single-call decode since there is
// no block structure left to walk by hand.
type HCLLoader struct{}

// NewHCLLoader returns a Loader backed by HCL files.
func NewHCLLoader() Loader { return HCLLoader{} }

func (HCLLoader) Load(path string) (Settings, error) {
	settings := Defaults()
	if path == "" {
		return settings, nil
	}

	var parsed hclSettings
	if err := hclsimple.DecodeFile(path, nil, &parsed); err != nil {
		return Settings{}, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if parsed.HTTPPort != nil {
		settings.HTTPPort = *parsed.HTTPPort
	}
	if parsed.LogLevel != nil {
		settings.LogLevel = *parsed.LogLevel
	}
	if parsed.LogFormat != nil {
		settings.LogFormat = *parsed.LogFormat
	}
	if parsed.FormsDir != nil {
		settings.FormsDir = *parsed.FormsDir
	}
	if parsed.DefaultMode != nil {
		settings.DefaultMode = modeFromString(*parsed.DefaultMode)
	}
	if parsed.MaxIterations != nil {
		settings.MaxIterations = *parsed.MaxIterations
	}
	if parsed.TimeoutMS != nil {
		settings.TimeoutMS = *parsed.TimeoutMS
	}
	return settings, nil
}
