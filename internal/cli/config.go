package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/loomhq/loom/internal/models"
)

// DefaultOutputFile is the generated companion file written per package
const DefaultOutputFile = "autogen_loom.go"

// DefaultConfigFile is the optional project configuration file
const DefaultConfigFile = "loom.toml"

// Config holds the configuration for one generator run
type Config struct {
	// Directories is the list of directories to scan for annotated Go files
	Directories []string

	// ModuleName is the custom module name for imports.
	// If empty, will be determined from go.mod file.
	ModuleName string

	// Verbose enables detailed logging and error reporting
	Verbose bool

	// ApplyFixes rewrites source files with suggested fixes for findings
	// that carry one
	ApplyFixes bool

	// File carries the project-level loom.toml settings
	File FileConfig
}

// FileConfig is the optional loom.toml project configuration.
type FileConfig struct {
	// Output is the name of the generated companion file per package
	Output string `toml:"output"`

	// Exclude lists directory names skipped during scanning, in addition
	// to the built-in skips (vendor, testdata, hidden directories)
	Exclude []string `toml:"exclude"`

	// Templates overrides the default naming patterns; {0} is replaced
	// with the declaration's own name
	Templates TemplateConfig `toml:"templates"`
}

// TemplateConfig holds the {0}-parameterized naming patterns.
type TemplateConfig struct {
	Class  string `toml:"class"`
	Method string `toml:"method"`
	Group  string `toml:"group"`
}

// DefaultFileConfig returns the configuration used when no loom.toml exists.
func DefaultFileConfig() FileConfig {
	return FileConfig{Output: DefaultOutputFile}
}

// LoadFileConfig reads a loom.toml file. A missing file is not an error,
// the defaults apply.
func LoadFileConfig(path string) (FileConfig, error) {
	config := DefaultFileConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	if _, err := toml.DecodeFile(path, &config); err != nil {
		return config, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if config.Output == "" {
		config.Output = DefaultOutputFile
	}
	return config, nil
}

// SettingsTemplate converts the configured naming patterns into the
// resolver's defaults, falling back to the built-in patterns per field.
func (c FileConfig) SettingsTemplate() models.SettingsTemplate {
	defaults := models.DefaultSettingsTemplate()
	if c.Templates.Class != "" {
		defaults.ExtensionClassName = c.Templates.Class
	}
	if c.Templates.Method != "" {
		defaults.ExtensionMethodName = c.Templates.Method
	}
	if c.Templates.Group != "" {
		defaults.GroupName = c.Templates.Group
	}
	return defaults
}
