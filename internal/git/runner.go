package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/penwyp/travisify/internal/errors"
	"github.com/penwyp/travisify/internal/logger"
	"go.uber.org/zap"
)

// ExecRunner 通过 os/exec 执行命令。
// stdout 与 stderr 分开捕获：只要 stderr 有内容即视为失败，并原样返回。
type ExecRunner struct {
	Dir    string
	Logger *zap.Logger
}

// Run executes command and returns its stdout.
func (r ExecRunner) Run(ctx context.Context, command string, args ...string) (string, error) {
	log := logger.OrNop(r.Logger)
	cmdline := strings.TrimSpace(command + " " + strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = r.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Debug("Running command", zap.String("command", command), zap.Strings("args", args), zap.String("dir", r.Dir))

	err := cmd.Run()
	errText := strings.TrimSpace(stderr.String())

	log.Debug("Command output",
		zap.Int("stdout_length", stdout.Len()),
		zap.String("stderr", errText),
		zap.Error(err))

	if err != nil {
		msg := fmt.Sprintf("%s failed", cmdline)
		if errText != "" {
			msg += ": " + errText
		}
		return "", errors.Wrap(errors.ErrTypeProcess, msg, err)
	}
	if errText != "" {
		return "", errors.New(errors.ErrTypeProcess, errText)
	}

	return stdout.String(), nil
}
