package e2e

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func apiEnv(api *FakeGitHub) map[string]string {
	return map[string]string{
		"TRAVISIFY_TOKEN":   "t0k",
		"TRAVISIFY_API_URL": api.URL,
	}
}

func TestE2E_DefaultModeIsIdempotent(t *testing.T) {
	h := NewTestHelper(t)
	api := NewFakeGitHub(t, "alice/proj")
	repo := h.CreateGitRepo(RepoConfig{
		Remotes: map[string]string{"origin": "git@github.com:alice/proj.git"},
		Files:   map[string]string{"package.json": `{"name":"proj","engines":{"node":">=0.9"}}`},
	})

	stdout, stderr, err := h.Run(repo, nil, apiEnv(api))
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, "# created a .travis.yml")
	assert.Contains(t, stdout, "travis hook added for alice/proj with id 101")
	assert.Equal(t, "t0k:x-oauth-basic", api.LastAuth())

	data, err := os.ReadFile(filepath.Join(repo, ".travis.yml"))
	require.NoError(t, err)
	assert.Equal(t, "language: node_js\nnode_js:\n  - \"0.10\"\n", string(data))

	stdout, stderr, err = h.Run(repo, nil, apiEnv(api))
	require.NoError(t, err, stderr)
	assert.Equal(t, "this repo already has a travis hook\n", stdout)
	assert.Equal(t, 1, api.Creates())
}

func TestE2E_TestMode(t *testing.T) {
	h := NewTestHelper(t)
	api := NewFakeGitHub(t, "alice/proj")
	repo := h.CreateGitRepo(RepoConfig{
		Remotes: map[string]string{"origin": "https://github.com/alice/proj.git"},
	})

	// 尚无 hook
	_, stderr, err := h.Run(repo, []string{"test"}, apiEnv(api))
	require.NoError(t, err)
	assert.Contains(t, stderr, "no hook for this project")

	_, stderr, err = h.Run(repo, nil, apiEnv(api))
	require.NoError(t, err, stderr)

	stdout, stderr, err := h.Run(repo, []string{"test"}, apiEnv(api))
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, "test hook sent for alice/proj/101")
	assert.Equal(t, []int{101}, api.Tests())
}

func TestE2E_Badge(t *testing.T) {
	h := NewTestHelper(t)
	h.WriteConfig(`{"user":"alice","pass":"s3cret"}`)
	repo := h.CreateGitRepo(RepoConfig{
		Remotes: map[string]string{"origin": "git://github.com/alice/proj.git"},
	})

	stdout, stderr, err := h.Run(repo, []string{"badge"}, nil)
	require.NoError(t, err, stderr)
	assert.Equal(t, "[![build status](https://secure.travis-ci.org/alice/proj.png)](http://travis-ci.org/alice/proj)\n", stdout)
}

func TestE2E_MissingConfig(t *testing.T) {
	h := NewTestHelper(t)
	api := NewFakeGitHub(t, "alice/proj")
	repo := h.CreateGitRepo(RepoConfig{
		Remotes: map[string]string{"origin": "git@github.com:alice/proj.git"},
		Files:   map[string]string{"package.json": `{"name":"proj"}`},
	})

	stdout, stderr, err := h.Run(repo, nil, map[string]string{"TRAVISIFY_API_URL": api.URL})
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "no credentials configured")
	assert.Equal(t, 0, api.Creates())

	_, statErr := os.Stat(filepath.Join(repo, ".travis.yml"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestE2E_NoOriginRemote(t *testing.T) {
	h := NewTestHelper(t)
	api := NewFakeGitHub(t, "alice/proj")
	repo := h.CreateGitRepo(RepoConfig{
		Remotes: map[string]string{"upstream": "git@github.com:alice/proj.git"},
	})

	stdout, stderr, err := h.Run(repo, nil, apiEnv(api))
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "no 'origin' remote found")

	// --remote 选择其他 remote
	stdout, stderr, err = h.Run(repo, []string{"badge", "--remote", "upstream"}, apiEnv(api))
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, "travis-ci.org/alice/proj")
}
