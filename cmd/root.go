package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/penwyp/travisify/client"
	"github.com/penwyp/travisify/internal/config"
	"github.com/penwyp/travisify/internal/errors"
	"github.com/penwyp/travisify/internal/git"
	"github.com/penwyp/travisify/internal/logger"
	"github.com/penwyp/travisify/internal/provider"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version holds the current version of travisify
// This will be set at build time via ldflags
var version = "dev"

// GetVersionString returns a formatted version string
func GetVersionString() string {
	return fmt.Sprintf("travisify version %s", version)
}

// mode 由第一个位置参数决定
type mode string

const (
	modeDefault mode = "default"
	modeTest    mode = "test"
	modeBadge   mode = "badge"
)

func selectMode(args []string) mode {
	if len(args) == 0 {
		return modeDefault
	}
	switch args[0] {
	case string(modeTest):
		return modeTest
	case string(modeBadge):
		return modeBadge
	default:
		return modeDefault
	}
}

// 将关键依赖抽象为接口以便测试时注入 Mock。
// 若在运行时未被替换，则使用默认实现。
var (
	configProvider   func(path string) (*config.Config, error)                   = defaultConfigProvider
	resolverProvider func(dir, remote string, log *zap.Logger) resolverInterface = defaultResolverProvider
	hookProvider     func(cfg *config.Config, log *zap.Logger) hookInterface     = defaultHookProvider
	workDir          func() (string, error)                                      = os.Getwd
)

type resolverInterface interface {
	Resolve(ctx context.Context) (provider.RemoteInfo, error)
}

type hookInterface interface {
	AddHook(ctx context.Context, repo string) (*client.AddResult, error)
	TestHook(ctx context.Context, repo string) (*client.Hook, error)
}

// ---------------- 默认实现 ------------------
func defaultConfigProvider(path string) (*config.Config, error) {
	loader, err := config.NewLoader(path)
	if err != nil {
		return nil, err
	}
	return loader.Load()
}

func defaultResolverProvider(dir, remote string, log *zap.Logger) resolverInterface {
	return git.NewResolver(git.ExecRunner{Dir: dir, Logger: log}, remote, log)
}

func defaultHookProvider(cfg *config.Config, log *zap.Logger) hookInterface {
	return client.NewClient(cfg, client.WithLogger(log))
}

// renderStatusBar 渲染带样式的状态条
func renderStatusBar(message string, isSuccess bool) string {
	var style lipgloss.Style
	if isSuccess {
		style = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")). // Green
			Bold(true)
	} else {
		style = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")). // Blue
			Bold(true)
	}

	indicator := "▶"
	if isSuccess {
		indicator = "✓"
	}

	return style.Render(indicator + " " + message)
}

// -------------------------------------------------

type rootOptions struct {
	debug      bool
	configPath string
	remote     string
	timeout    int
	version    bool
}

// NewRootCommand builds the travisify command.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "travisify [test|badge]",
		Short: "Register a travis webhook for the current GitHub repository",
		Long: `travisify registers the travis webhook for the repository in the current
directory and, for node projects, writes a .travis.yml derived from the
engines.node field of package.json.

Modes:
  travisify         write .travis.yml if missing, then add the travis hook
  travisify test    trigger a test delivery of the travis hook
  travisify badge   print a markdown build status badge

Credentials are read from ~/.config/travisify.json ({"user","pass"} or
{"token"}) or the TRAVISIFY_USER / TRAVISIFY_PASS / TRAVISIFY_TOKEN
environment variables.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		RunE:          opts.run,
	}

	cmd.Flags().BoolVar(&opts.debug, "debug", false, "enable debug output for troubleshooting")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "credentials file (default ~/.config/travisify.json)")
	cmd.Flags().StringVarP(&opts.remote, "remote", "r", git.DefaultRemote, "git remote naming the GitHub repository")
	cmd.Flags().IntVarP(&opts.timeout, "timeout", "t", 0, "overall timeout in seconds (0 disables)")
	cmd.Flags().BoolVar(&opts.version, "version", false, "show version information")

	return cmd
}

var rootCmd = NewRootCommand()

func Execute() error { return rootCmd.Execute() }

func (o *rootOptions) run(cmd *cobra.Command, args []string) error {
	if o.version {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), GetVersionString())
		return nil
	}

	appLogger, err := logger.New(o.debug)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = appLogger.Sync() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(o.timeout)*time.Second)
		defer cancel()
	}

	d := &dispatcher{
		out:      cmd.OutOrStdout(),
		reporter: errors.NewReporter(cmd.ErrOrStderr()),
		logger:   appLogger,
	}

	// 凭据缺失是致命错误：不会执行任何 git 或网络操作
	cfg, err := configProvider(o.configPath)
	if err != nil {
		d.reporter.Report(err)
		return nil
	}

	dir, err := workDir()
	if err != nil {
		d.reporter.Report(errors.Wrap(errors.ErrTypeIO, "cannot determine working directory", err))
		return nil
	}

	info, err := resolverProvider(dir, o.remote, appLogger).Resolve(ctx)
	if err != nil {
		d.reporter.Report(err)
		return nil
	}
	repo := info.Slug()

	m := selectMode(args)
	appLogger.Debug("Dispatching", zap.String("mode", string(m)), zap.String("repo", repo), zap.String("dir", dir))

	switch m {
	case modeTest:
		d.test(ctx, hookProvider(cfg, appLogger), repo)
	case modeBadge:
		d.badge(repo)
	default:
		d.setup(ctx, hookProvider(cfg, appLogger), dir, repo)
	}

	return nil
}
