package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shreyaw333/portfolio/internal/config"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestRootCommandTree(t *testing.T) {
	root := NewRootCmd()

	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "serve")
	assert.Contains(t, names, "preview")

	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
	assert.NotNil(t, root.PersistentFlags().Lookup("debug"))
	assert.Equal(t, "c", root.PersistentFlags().Lookup("config").Shorthand)
}

func TestSetupDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	rt, err := setup(&rootFlags{}, true)
	require.NoError(t, err)
	defer rt.close()

	assert.Equal(t, "Shreya", rt.site.Profile.Name)
	assert.False(t, rt.cfg.Log.Debug)

	tw := rt.typewriterConfig()
	assert.Equal(t, rt.site.Profile.Roles, tw.Phrases)
	assert.Equal(t, 150*time.Millisecond, tw.TypeInterval)
	assert.Equal(t, 2*time.Second, tw.Hold)
}

func TestSetupDebugFlagOverridesConfig(t *testing.T) {
	chdir(t, t.TempDir())

	rt, err := setup(&rootFlags{debug: true}, true)
	require.NoError(t, err)
	defer rt.close()

	assert.True(t, rt.cfg.Log.Debug)
}

func TestSetupConfigFileAndLogFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "portfolio.log")
	contentPath := writeFile(t, dir, "site.yaml", `
profile:
  name: Ada
  greeting: Hi, I am
  roles: [Engineer, Writer]
nav:
  - id: home
    label: Home
`)
	cfgPath := writeFile(t, dir, "custom.yaml", "log:\n  file: "+logPath+"\n  format: json\n  debug: true\n"+
		"content:\n  file: "+contentPath+"\ntypewriter:\n  type_interval: 40ms\n")

	rt, err := setup(&rootFlags{configFile: cfgPath}, true)
	require.NoError(t, err)

	assert.Equal(t, "Ada", rt.site.Profile.Name)
	tw := rt.typewriterConfig()
	assert.Equal(t, []string{"Engineer", "Writer"}, tw.Phrases)
	assert.Equal(t, 40*time.Millisecond, tw.TypeInterval)

	rt.logger.Info("hello from test")
	rt.close()

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello from test"`)
	assert.Contains(t, string(data), "Config loaded")
}

func TestSetupInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "bad.yaml", "server:\n  port: 70000\n")

	_, err := setup(&rootFlags{configFile: cfgPath}, true)
	require.ErrorIs(t, err, config.ErrInvalidPort)
}

func TestSetupMissingContentFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "portfolio.yaml", "content:\n  file: "+filepath.Join(dir, "missing.yaml")+"\n")

	_, err := setup(&rootFlags{configFile: cfgPath}, true)
	require.Error(t, err)
}

// chdir changes the working directory for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
