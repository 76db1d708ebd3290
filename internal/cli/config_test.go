package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileConfig_MissingFileUsesDefaults(t *testing.T) {
	config, err := LoadFileConfig(filepath.Join(t.TempDir(), "loom.toml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultOutputFile, config.Output)
	assert.Empty(t, config.Exclude)
	assert.Empty(t, config.Templates.Class)
}

func TestLoadFileConfig_ReadsProjectFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "loom.toml")
	content := `output = "generated_loom.go"
exclude = ["fixtures", "migrations"]

[templates]
class = "{0}Client"
method = "{0}Blocking"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config, err := LoadFileConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "generated_loom.go", config.Output)
	assert.Equal(t, []string{"fixtures", "migrations"}, config.Exclude)
	assert.Equal(t, "{0}Client", config.Templates.Class)
	assert.Equal(t, "{0}Blocking", config.Templates.Method)
	assert.Empty(t, config.Templates.Group)
}

func TestLoadFileConfig_EmptyOutputFallsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "loom.toml")
	require.NoError(t, os.WriteFile(path, []byte(`output = ""`), 0644))

	config, err := LoadFileConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultOutputFile, config.Output)
}

func TestLoadFileConfig_InvalidToml(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "loom.toml")
	require.NoError(t, os.WriteFile(path, []byte("output = [broken"), 0644))

	_, err := LoadFileConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestSettingsTemplate_PerFieldFallback(t *testing.T) {
	config := FileConfig{Templates: TemplateConfig{Class: "{0}Client"}}

	template := config.SettingsTemplate()
	assert.Equal(t, "{0}Client", template.ExtensionClassName)
	assert.Equal(t, "{0}Async", template.ExtensionMethodName)
	assert.Equal(t, "{0}", template.GroupName)
}

func TestSettingsTemplate_Defaults(t *testing.T) {
	template := DefaultFileConfig().SettingsTemplate()
	assert.Equal(t, "{0}Sync", template.ExtensionClassName)
	assert.Equal(t, "{0}Async", template.ExtensionMethodName)
	assert.Equal(t, "{0}", template.GroupName)
}
