package e2e

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildBinary 构建 travisify 可执行文件并返回路径。
func buildBinary(t *testing.T) string {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "travisify-bin")
	if runtime.GOOS == "windows" {
		binPath += ".exe"
	}

	cmd := exec.Command("go", "build", "-o", binPath, "github.com/penwyp/travisify")
	cmd.Env = append(os.Environ(), "CGO_ENABLED=0")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to build binary: %v, output: %s", err, string(out))
	}
	return binPath
}

// TestHelper provides utilities for E2E tests
type TestHelper struct {
	t       *testing.T
	binPath string
	home    string
}

// NewTestHelper creates a new test helper with an isolated config directory
func NewTestHelper(t *testing.T) *TestHelper {
	return &TestHelper{
		t:       t,
		binPath: buildBinary(t),
		home:    t.TempDir(),
	}
}

// RepoConfig holds configuration for creating a test repository
type RepoConfig struct {
	Remotes map[string]string
	Files   map[string]string
}

// CreateGitRepo creates a new git repository with the given remotes and files
func (h *TestHelper) CreateGitRepo(config RepoConfig) string {
	dir := h.t.TempDir()
	h.runGit(dir, "init")

	for name, url := range config.Remotes {
		h.runGit(dir, "remote", "add", name, url)
	}
	for name, content := range config.Files {
		h.AddFile(dir, name, content)
	}
	return dir
}

// runGit executes a git command in the specified directory
func (h *TestHelper) runGit(dir string, args ...string) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		h.t.Fatalf("git %v failed: %v\nOutput: %s", args, err, out)
	}
}

// AddFile creates a file in the repository
func (h *TestHelper) AddFile(repoDir, filename, content string) {
	filePath := filepath.Join(repoDir, filename)
	require.NoError(h.t, os.MkdirAll(filepath.Dir(filePath), 0755))
	require.NoError(h.t, os.WriteFile(filePath, []byte(content), 0644))
}

// WriteConfig writes travisify.json into the isolated config directory
func (h *TestHelper) WriteConfig(content string) {
	dir := filepath.Join(h.home, ".config")
	require.NoError(h.t, os.MkdirAll(dir, 0755))
	require.NoError(h.t, os.WriteFile(filepath.Join(dir, "travisify.json"), []byte(content), 0600))
}

// Run executes travisify in dir. Stdout and stderr are returned separately.
func (h *TestHelper) Run(dir string, args []string, env map[string]string) (stdout, stderr string, err error) {
	cmd := exec.Command(h.binPath, args...)
	cmd.Dir = dir

	cmdEnv := []string{
		"HOME=" + h.home,
		"XDG_CONFIG_HOME=" + filepath.Join(h.home, ".config"),
		"PATH=" + os.Getenv("PATH"),
		"NO_COLOR=1",
	}
	for k, v := range env {
		cmdEnv = append(cmdEnv, fmt.Sprintf("%s=%s", k, v))
	}
	cmd.Env = cmdEnv

	var out, errOut strings.Builder
	cmd.Stdout = &out
	cmd.Stderr = &errOut
	err = cmd.Run()
	return out.String(), errOut.String(), err
}

// FakeGitHub is an in-memory hooks API for a single repository
type FakeGitHub struct {
	*httptest.Server

	mu       sync.Mutex
	repo     string
	hooks    []map[string]any
	nextID   int
	creates  int
	tests    []int
	lastAuth string
}

// NewFakeGitHub starts a fake API serving /repos/<repo>/hooks
func NewFakeGitHub(t *testing.T, repo string) *FakeGitHub {
	f := &FakeGitHub{repo: repo, nextID: 100, hooks: []map[string]any{}}
	f.Server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.Close)
	return f
}

func (f *FakeGitHub) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if user, pass, ok := r.BasicAuth(); ok {
		f.lastAuth = user + ":" + pass
	}

	base := "/repos/" + f.repo + "/hooks"
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.URL.Path == base && r.Method == http.MethodGet:
		_ = json.NewEncoder(w).Encode(f.hooks)
	case r.URL.Path == base && r.Method == http.MethodPost:
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.nextID++
		f.creates++
		body["id"] = f.nextID
		body["active"] = true
		f.hooks = append(f.hooks, body)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(body)
	case strings.HasPrefix(r.URL.Path, base+"/") && strings.HasSuffix(r.URL.Path, "/test") && r.Method == http.MethodPost:
		var id int
		_, _ = fmt.Sscanf(strings.TrimPrefix(r.URL.Path, base+"/"), "%d/test", &id)
		f.tests = append(f.tests, id)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found"}`))
	}
}

// Creates returns the number of hook creation requests
func (f *FakeGitHub) Creates() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.creates
}

// Tests returns the hook ids that received a test request
func (f *FakeGitHub) Tests() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.tests...)
}

// LastAuth returns the last basic auth pair as user:pass
func (f *FakeGitHub) LastAuth() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastAuth
}
