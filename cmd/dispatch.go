package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/penwyp/travisify/internal/errors"
	"github.com/penwyp/travisify/internal/git"
	"github.com/penwyp/travisify/internal/travis"
	"go.uber.org/zap"
)

// dispatcher 执行选定的模式。每个分支在出错处报告错误并返回，不向上传播。
type dispatcher struct {
	out      io.Writer
	reporter *errors.Reporter
	logger   *zap.Logger
}

func (d *dispatcher) test(ctx context.Context, hooks hookInterface, repo string) {
	h, err := hooks.TestHook(ctx, repo)
	if err != nil {
		d.reporter.Report(err)
		return
	}
	_, _ = fmt.Fprintln(d.out, renderStatusBar(fmt.Sprintf("test hook sent for %s/%d", repo, h.ID), true))
}

func (d *dispatcher) badge(repo string) {
	_, _ = fmt.Fprintln(d.out, travis.BadgeMarkdown(repo))
}

// setup 生成 .travis.yml（如需要），随后无论结果如何都尝试添加 hook
func (d *dispatcher) setup(ctx context.Context, hooks hookInterface, dir, repo string) {
	d.generate(dir)

	res, err := hooks.AddHook(ctx, repo)
	if err != nil {
		d.reporter.Report(err)
		return
	}
	if res.Existing {
		_, _ = fmt.Fprintln(d.out, "this repo already has a travis hook")
		return
	}
	_, _ = fmt.Fprintln(d.out, renderStatusBar(fmt.Sprintf("travis hook added for %s with id %d", repo, res.Hook.ID), true))
}

func (d *dispatcher) generate(dir string) {
	root, ok := git.FindRoot(dir)
	if !ok {
		d.logger.Debug("No enclosing git directory, skipping .travis.yml", zap.String("dir", dir))
		return
	}

	res, err := travis.Generate(root)
	if err != nil {
		d.reporter.Report(err)
		return
	}

	d.logger.Debug("CI config", zap.String("outcome", res.Outcome.String()), zap.String("path", res.Path))
	if res.Outcome != travis.OutcomeWritten {
		return
	}

	d.logger.Debug("Matched node versions", zap.String("range", res.Range), zap.Strings("versions", res.Versions))
	_, _ = fmt.Fprintln(d.out, "# created a .travis.yml")
	_, _ = fmt.Fprintln(d.out, "# make sure to `git add .travis.yml`")
}
