package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/penwyp/travisify/internal/errors"
)

// DefaultRemote 默认使用的远程仓库名
const DefaultRemote = "origin"

// remoteManager Git远程仓库管理器实现
type remoteManager struct {
	runner Runner
}

// NewRemoteManager 创建新的远程仓库管理器
func NewRemoteManager(runner Runner) RemoteManager {
	return &remoteManager{
		runner: runner,
	}
}

// GetRemotes 获取所有远程仓库，按 git 输出顺序返回
func (m *remoteManager) GetRemotes(ctx context.Context) ([]Remote, error) {
	output, err := m.runner.Run(ctx, "git", "remote", "-v")
	if err != nil {
		return nil, fmt.Errorf("failed to get remotes: %w", err)
	}

	remotes := make(map[string]*Remote)
	order := make([]string, 0)

	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		// 格式: origin	https://github.com/owner/repo.git (fetch)
		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}

		name, url := parts[0], parts[1]
		if _, exists := remotes[name]; !exists {
			remotes[name] = &Remote{Name: name}
			order = append(order, name)
		}

		typeStr := "fetch"
		if len(parts) >= 3 {
			typeStr = strings.Trim(parts[2], "()")
		}

		switch typeStr {
		case "fetch":
			remotes[name].FetchURL = url
		case "push":
			remotes[name].PushURL = url
		}
	}

	result := make([]Remote, 0, len(order))
	for _, name := range order {
		result = append(result, *remotes[name])
	}

	return result, nil
}

// SelectRemote 选择名为 name 的 remote，name 为空时使用 origin
func (m *remoteManager) SelectRemote(remotes []Remote, name string) (*Remote, error) {
	if len(remotes) == 0 {
		return nil, errors.New(errors.ErrTypeNoRemote, "no remotes configured").
			WithSuggestion("add one with: git remote add origin git@github.com:OWNER/REPO.git")
	}

	if name == "" {
		name = DefaultRemote
	}

	for _, remote := range remotes {
		if remote.Name == name {
			return &remote, nil
		}
	}

	return nil, errors.Newf(errors.ErrTypeNoRemote, "no '%s' remote found", name)
}
