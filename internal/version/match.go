// Package version matches node engine ranges against the runtime versions
// a CI service can provide.
package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/penwyp/travisify/internal/errors"
)

// DefaultEngineRange is used when package.json declares no engines.node.
const DefaultEngineRange = ">=0.4"

// TravisNodeVersions are the node releases offered by travis, oldest first.
var TravisNodeVersions = []string{"0.8.1", "0.10.0"}

// Match returns the candidates satisfying rangeExpr, preserving their order.
// Candidates that are not valid versions are skipped. An unparsable range is
// reported as NoCompatibleVersion since nothing can satisfy it.
func Match(rangeExpr string, candidates []string) ([]string, error) {
	expr := strings.TrimSpace(rangeExpr)
	if expr == "" {
		expr = "*"
	}

	constraint, err := semver.NewConstraint(expr)
	if err != nil {
		return nil, errors.Wrap(errors.ErrTypeNoVersion, fmt.Sprintf("invalid engine range %q", rangeExpr), err)
	}

	matched := make([]string, 0, len(candidates))
	for _, c := range candidates {
		v, err := semver.NewVersion(c)
		if err != nil {
			continue
		}
		if constraint.Check(v) {
			matched = append(matched, c)
		}
	}

	return matched, nil
}

// MajorMinor truncates a version to major.minor ("0.10.0" -> "0.10").
// Strings that do not parse are returned unchanged.
func MajorMinor(v string) string {
	parsed, err := semver.StrictNewVersion(v)
	if err != nil {
		return v
	}
	return fmt.Sprintf("%d.%d", parsed.Major(), parsed.Minor())
}
