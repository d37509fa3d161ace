package git

import (
	"context"

	"github.com/penwyp/travisify/internal/errors"
	"github.com/penwyp/travisify/internal/logger"
	"github.com/penwyp/travisify/internal/provider"
	"go.uber.org/zap"
)

// Resolver 从本地 git remote 推导出 owner/repo
type Resolver struct {
	manager    RemoteManager
	remoteName string
	logger     *zap.Logger
}

// NewResolver creates a resolver reading remotes through runner.
// An empty remoteName means origin.
func NewResolver(runner Runner, remoteName string, log *zap.Logger) *Resolver {
	return &Resolver{
		manager:    NewRemoteManager(runner),
		remoteName: remoteName,
		logger:     logger.OrNop(log),
	}
}

// Resolve returns the parsed remote of the selected remote.
func (r *Resolver) Resolve(ctx context.Context) (provider.RemoteInfo, error) {
	remotes, err := r.manager.GetRemotes(ctx)
	if err != nil {
		return provider.RemoteInfo{}, err
	}

	remote, err := r.manager.SelectRemote(remotes, r.remoteName)
	if err != nil {
		return provider.RemoteInfo{}, err
	}

	info, err := provider.ParseRemoteURL(remote.URL())
	if err != nil {
		return provider.RemoteInfo{}, errors.Wrap(errors.ErrTypeNoRemote, "no github remote found", err)
	}

	if info.Provider != "github" {
		r.logger.Debug("Remote is not hosted on github.com",
			zap.String("remote", remote.Name),
			zap.String("host", info.Host),
			zap.String("provider", info.Provider))
	}

	r.logger.Debug("Resolved repository",
		zap.String("remote", remote.Name),
		zap.String("form", info.Form.String()),
		zap.String("host", info.Host),
		zap.Int("port", info.Port),
		zap.String("repo", info.Slug()))

	return info, nil
}
