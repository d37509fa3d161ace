package provider

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/penwyp/travisify/internal/errors"
)

// scp 风格的 SSH 地址: git@host:owner/repo.git
var scpPattern = regexp.MustCompile(`^git@([^:/\s]+):(\S+)$`)

// formRule 描述一种 URL 形态及其提取规则
type formRule struct {
	form    RemoteForm
	matches func(raw string) bool
	extract func(raw string) (host string, port int, path string, ok bool)
}

var formRules = []formRule{
	{
		form:    FormSSH,
		matches: func(raw string) bool { return strings.HasPrefix(raw, "git@") },
		extract: func(raw string) (string, int, string, bool) {
			m := scpPattern.FindStringSubmatch(raw)
			if m == nil {
				return "", 0, "", false
			}
			return m[1], 0, m[2], true
		},
	},
	{
		form: FormHTTPS,
		matches: func(raw string) bool {
			return strings.HasPrefix(raw, "https://") || strings.HasPrefix(raw, "http://")
		},
		extract: extractHierarchical,
	},
	{
		form:    FormGit,
		matches: func(raw string) bool { return strings.HasPrefix(raw, "git://") },
		extract: extractHierarchical,
	},
}

// extractHierarchical 处理 scheme://[user@]host[:port]/path 形式
func extractHierarchical(raw string) (string, int, string, bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return "", 0, "", false
	}

	port := 0
	if p := u.Port(); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			return "", 0, "", false
		}
		port = n
	}

	return u.Hostname(), port, u.Path, true
}

// ParseRemoteURL 解析Git remote URL
//
// 只接受 SSH、HTTPS 与 git:// 三种形态，其余一律返回 NoRemoteFound，
// 不会产生残缺的 owner/repo。
func ParseRemoteURL(remoteURL string) (RemoteInfo, error) {
	remoteURL = strings.TrimSpace(remoteURL)
	if remoteURL == "" {
		return RemoteInfo{}, errors.New(errors.ErrTypeNoRemote, "empty remote URL")
	}

	for _, rule := range formRules {
		if !rule.matches(remoteURL) {
			continue
		}

		host, port, path, ok := rule.extract(remoteURL)
		if !ok {
			break
		}

		owner, repo, ok := splitRepoPath(path)
		if !ok {
			return RemoteInfo{}, errors.Newf(errors.ErrTypeNoRemote, "invalid repository path in remote URL: %s", remoteURL)
		}

		return RemoteInfo{
			Form:     rule.form,
			Provider: detectProviderFromHost(host),
			Host:     host,
			Port:     port,
			Owner:    owner,
			Repo:     repo,
		}, nil
	}

	return RemoteInfo{}, errors.Newf(errors.ErrTypeNoRemote, "unsupported remote URL: %s", remoteURL)
}

// splitRepoPath 拆分 owner/repo，去掉 .git 后缀
func splitRepoPath(path string) (string, string, bool) {
	path = strings.Trim(path, "/")
	path = strings.TrimSuffix(path, ".git")

	parts := strings.Split(path, "/")
	if len(parts) < 2 {
		return "", "", false
	}
	for _, p := range parts {
		if p == "" {
			return "", "", false
		}
	}

	return strings.Join(parts[:len(parts)-1], "/"), parts[len(parts)-1], true
}

// detectProviderFromHost 根据主机名检测Provider类型
func detectProviderFromHost(host string) string {
	switch {
	case strings.Contains(host, "github.com"):
		return "github"
	case strings.Contains(host, "gitlab.com"):
		return "gitlab"
	case strings.Contains(host, "bitbucket.org"):
		return "bitbucket"
	default:
		return "unknown"
	}
}
