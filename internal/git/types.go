package git

import "context"

// Remote 对应 `git remote -v` 中的一个条目
type Remote struct {
	Name     string
	FetchURL string
	PushURL  string
}

// URL returns the fetch URL, falling back to the push URL.
func (r Remote) URL() string {
	if r.FetchURL != "" {
		return r.FetchURL
	}
	return r.PushURL
}

// Runner runs a command and returns its stdout.
type Runner interface {
	Run(ctx context.Context, command string, args ...string) (string, error)
}

// RemoteManager lists remotes and picks the one travisify works against.
type RemoteManager interface {
	// GetRemotes 按 git 输出顺序返回所有 remote
	GetRemotes(ctx context.Context) ([]Remote, error)

	// SelectRemote 返回名为 name 的 remote，不做回退
	SelectRemote(remotes []Remote, name string) (*Remote, error)
}
