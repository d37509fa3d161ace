// Package travis generates a minimal .travis.yml for node projects.
package travis

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/penwyp/travisify/internal/errors"
	"github.com/penwyp/travisify/internal/version"
)

// FileName CI 配置文件名
const FileName = ".travis.yml"

// Outcome describes what Generate did.
type Outcome int

const (
	// OutcomeWritten a new .travis.yml was written
	OutcomeWritten Outcome = iota
	// OutcomeExists .travis.yml was already present and left alone
	OutcomeExists
	// OutcomeNoManifest there is no package.json to derive versions from
	OutcomeNoManifest
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWritten:
		return "written"
	case OutcomeExists:
		return "exists"
	case OutcomeNoManifest:
		return "no-manifest"
	default:
		return "unknown"
	}
}

// Result 生成结果
type Result struct {
	Outcome  Outcome
	Path     string
	Range    string
	Versions []string
}

// Render 渲染 .travis.yml 内容，每个版本截断为 major.minor
func Render(versions []string) []byte {
	var sb strings.Builder
	sb.WriteString("language: node_js\n")
	sb.WriteString("node_js:\n")
	for _, v := range versions {
		fmt.Fprintf(&sb, "  - %q\n", version.MajorMinor(v))
	}
	return []byte(sb.String())
}

// Generate writes dir/.travis.yml when it does not exist and dir/package.json
// does. The node versions come from matching engines.node against
// version.TravisNodeVersions; an empty match writes nothing and returns
// NoCompatibleVersion.
func Generate(dir string) (*Result, error) {
	target := filepath.Join(dir, FileName)
	if _, err := os.Stat(target); err == nil {
		return &Result{Outcome: OutcomeExists, Path: target}, nil
	}

	manifestPath := filepath.Join(dir, ManifestName)
	if _, err := os.Stat(manifestPath); err != nil {
		return &Result{Outcome: OutcomeNoManifest, Path: target}, nil
	}

	manifest, err := ReadManifest(manifestPath)
	if err != nil {
		return nil, err
	}

	engineRange := manifest.EngineRange()
	versions, err := version.Match(engineRange, version.TravisNodeVersions)
	if err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		return nil, errors.New(errors.ErrTypeNoVersion, "no node versions on travis match the engine field semver").
			WithSuggestion(fmt.Sprintf("engines.node is %q; travis offers %s", engineRange, strings.Join(version.TravisNodeVersions, ", ")))
	}

	if err := writeAtomic(target, Render(versions)); err != nil {
		return nil, err
	}

	return &Result{
		Outcome:  OutcomeWritten,
		Path:     target,
		Range:    engineRange,
		Versions: versions,
	}, nil
}

// writeAtomic 先写入临时文件，然后重命名
func writeAtomic(path string, data []byte) error {
	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return errors.Wrap(errors.ErrTypeIO, "failed to write temp file", err)
	}

	if err := os.Rename(tmpFile, path); err != nil {
		os.Remove(tmpFile)
		return errors.Wrap(errors.ErrTypeIO, fmt.Sprintf("failed to write %s", path), err)
	}

	return nil
}
