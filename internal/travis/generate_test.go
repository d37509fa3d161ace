package travis

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/penwyp/travisify/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestRender(t *testing.T) {
	out := Render([]string{"0.8.1", "0.10.0"})
	assert.Equal(t, "language: node_js\nnode_js:\n  - \"0.8\"\n  - \"0.10\"\n", string(out))

	var doc struct {
		Language string   `yaml:"language"`
		NodeJS   []string `yaml:"node_js"`
	}
	require.NoError(t, yaml.Unmarshal(out, &doc))
	assert.Equal(t, "node_js", doc.Language)
	assert.Equal(t, []string{"0.8", "0.10"}, doc.NodeJS)
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		expected string
		versions []string
	}{
		{
			name:     "no engines uses default range",
			manifest: `{"name": "proj"}`,
			expected: "language: node_js\nnode_js:\n  - \"0.8\"\n  - \"0.10\"\n",
			versions: []string{"0.8.1", "0.10.0"},
		},
		{
			name:     "engines.node >=0.9",
			manifest: `{"name": "proj", "engines": {"node": ">=0.9"}}`,
			expected: "language: node_js\nnode_js:\n  - \"0.10\"\n",
			versions: []string{"0.10.0"},
		},
		{
			name:     "engines as array",
			manifest: `{"name": "proj", "engines": ["node >= 0.4"]}`,
			expected: "language: node_js\nnode_js:\n  - \"0.8\"\n  - \"0.10\"\n",
			versions: []string{"0.8.1", "0.10.0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, ManifestName, tt.manifest)

			res, err := Generate(dir)
			require.NoError(t, err)
			assert.Equal(t, OutcomeWritten, res.Outcome)
			assert.Equal(t, tt.versions, res.Versions)

			data, err := os.ReadFile(filepath.Join(dir, FileName))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(data))

			_, err = os.Stat(filepath.Join(dir, FileName+".tmp"))
			assert.True(t, os.IsNotExist(err))
		})
	}
}

func TestGenerate_NoCompatibleVersion(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ManifestName, `{"engines": {"node": ">=1.0"}}`)

	res, err := Generate(dir)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Equal(t, errors.ErrTypeNoVersion, errors.GetType(err))

	_, statErr := os.Stat(filepath.Join(dir, FileName))
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerate_ExistingFileUntouched(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ManifestName, `{"engines": {"node": ">=0.9"}}`)
	writeFile(t, dir, FileName, "language: ruby\n")

	res, err := Generate(dir)
	require.NoError(t, err)
	assert.Equal(t, OutcomeExists, res.Outcome)

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.Equal(t, "language: ruby\n", string(data))
}

func TestGenerate_NoManifest(t *testing.T) {
	dir := t.TempDir()

	res, err := Generate(dir)
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoManifest, res.Outcome)

	_, statErr := os.Stat(filepath.Join(dir, FileName))
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerate_BrokenManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ManifestName, `{"engines": `)

	_, err := Generate(dir)
	require.Error(t, err)
	assert.Equal(t, errors.ErrTypeIO, errors.GetType(err))
}

func TestManifest_EngineRange(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		expected string
	}{
		{"missing engines", `{}`, ">=0.4"},
		{"empty node", `{"engines": {"node": ""}}`, ">=0.4"},
		{"npm only", `{"engines": {"npm": ">=1"}}`, ">=0.4"},
		{"node set", `{"engines": {"node": "0.10.x"}}`, "0.10.x"},
		{"non-string node", `{"engines": {"node": 10}}`, ">=0.4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, ManifestName, tt.manifest)

			m, err := ReadManifest(filepath.Join(dir, ManifestName))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, m.EngineRange())
		})
	}
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "written", OutcomeWritten.String())
	assert.Equal(t, "exists", OutcomeExists.String())
	assert.Equal(t, "no-manifest", OutcomeNoManifest.String())
}
