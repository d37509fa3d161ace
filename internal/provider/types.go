package provider

// RemoteForm 标识 remote URL 的形态
type RemoteForm int

const (
	// FormUnknown 无法识别的 URL
	FormUnknown RemoteForm = iota
	// FormSSH git@host:owner/repo(.git)
	FormSSH
	// FormHTTPS http(s)://host/owner/repo(.git)
	FormHTTPS
	// FormGit git://host/owner/repo(.git)
	FormGit
)

func (f RemoteForm) String() string {
	switch f {
	case FormSSH:
		return "ssh"
	case FormHTTPS:
		return "https"
	case FormGit:
		return "git"
	default:
		return "unknown"
	}
}

// RemoteInfo 包含解析后的Git remote信息
type RemoteInfo struct {
	Form     RemoteForm
	Provider string // github, gitlab, bitbucket, unknown
	Host     string // 主机名，如 github.com
	Port     int    // 端口号，0表示默认端口
	Owner    string // 仓库所有者或组织
	Repo     string // 仓库名称，不含 .git
}

// Slug returns the owner/repo identifier.
func (r RemoteInfo) Slug() string {
	return r.Owner + "/" + r.Repo
}
