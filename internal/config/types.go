package config

// DefaultAPIURL GitHub REST API 地址
const DefaultAPIURL = "https://api.github.com"

// 环境变量覆盖
const (
	EnvUser   = "TRAVISIFY_USER"
	EnvPass   = "TRAVISIFY_PASS"
	EnvToken  = "TRAVISIFY_TOKEN"
	EnvAPIURL = "TRAVISIFY_API_URL"
)

// Config 凭据配置，加载后只读
type Config struct {
	User   string `json:"user" yaml:"user"`
	Pass   string `json:"pass,omitempty" yaml:"pass,omitempty"`
	Token  string `json:"token,omitempty" yaml:"token,omitempty"`
	APIURL string `json:"api_url,omitempty" yaml:"api_url,omitempty"`
}

// Credentials returns the userinfo pair used for basic auth.
// A token takes precedence over user/pass.
func (c Config) Credentials() (username, password string) {
	if c.Token != "" {
		return c.Token, "x-oauth-basic"
	}
	return c.User, c.Pass
}

// Loader 配置加载器接口
type Loader interface {
	// Load 加载并校验配置
	Load() (*Config, error)
}
