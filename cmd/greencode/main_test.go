package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nulzo/greencode-advisor/cmd"
	"github.com/nulzo/greencode-advisor/internal/cli"
	"github.com/nulzo/greencode-advisor/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
mock:
  delay: 0s
updates:
  check: false
providers:
  gemini:
    api_key: "AIza-configured"
`

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o600))
	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "")

	root := newRootCommand()
	var out bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	return execute(t, stdin, append([]string{"--no-color", "--config", writeConfig(t)}, args...)...)
}

func TestAnalyze_MockFromStdin(t *testing.T) {
	out, err := run(t, "print('hi')", "analyze", "--provider", "Grok (Mock)")
	require.NoError(t, err)
	assert.Contains(t, out, "## Grok Analysis (Mock)")
	assert.Contains(t, out, "print('hi')")
}

func TestAnalyze_FromFileAsJSON(t *testing.T) {
	file := filepath.Join(t.TempDir(), "main.go")
	require.NoError(t, os.WriteFile(file, []byte("package main"), 0o600))

	out, err := run(t, "", "analyze", "-p", "Llama (Mock)", "-f", file, "--json")
	require.NoError(t, err)

	var resp api.AnalyzeResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "Llama (Mock)", resp.Provider)
	assert.Contains(t, resp.Result, "package main")
}

func TestAnalyze_Errors(t *testing.T) {
	_, err := run(t, "x = 1", "analyze", "-p", "OpenAI")
	require.Error(t, err)
	assert.Equal(t, "API key is required for OpenAI.", err.Error())

	_, err = run(t, "x = 1", "analyze", "-p", "UnknownXYZ")
	require.Error(t, err)
	assert.Equal(t, "Invalid AI provider selected.", err.Error())

	_, err = run(t, "  \n", "analyze")
	assert.ErrorIs(t, err, errNoCode)
}

func TestProviders_Table(t *testing.T) {
	out, err := run(t, "", "providers")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[1], "OpenAI")
	assert.Contains(t, lines[1], "required")
	assert.Contains(t, lines[2], "Gemini")
	assert.Contains(t, lines[2], "configured")
	assert.Contains(t, lines[3], "Grok (Mock)")
	assert.Contains(t, lines[3], "placeholder output")
}

func TestVersion_NoCheck(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "greencode "+cmd.AppVersion+"\n", out)
}

func TestAnalyze_JSONStaysPlainWithColorEnabled(t *testing.T) {
	prev := cli.Enabled()
	cli.SetEnabled(true)
	t.Cleanup(func() { cli.SetEnabled(prev) })

	out, err := execute(t, "print('hi')", "--config", writeConfig(t), "analyze", "-p", "Grok (Mock)", "--json")
	require.NoError(t, err)

	assert.NotContains(t, out, "\x1b")
	var resp api.AnalyzeResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "Grok (Mock)", resp.Provider)

	out, err = execute(t, "", "--config", writeConfig(t), "providers", "--json")
	require.NoError(t, err)
	var list api.List[api.ProviderInfo]
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	assert.Len(t, list.Data, 4)
}

func TestConfigFlag_LeavesEnvironmentAlone(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.yaml")
	t.Setenv("CONFIG_FILE", missing)

	out, err := run(t, "", "providers")
	require.NoError(t, err)
	assert.Contains(t, out, "configured")
	assert.Equal(t, missing, os.Getenv("CONFIG_FILE"))
}
