package version

import (
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/penwyp/travisify/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name       string
		rangeExpr  string
		candidates []string
		expected   []string
	}{
		{name: "default range", rangeExpr: DefaultEngineRange, candidates: TravisNodeVersions, expected: []string{"0.8.1", "0.10.0"}},
		{name: ">=0.9", rangeExpr: ">=0.9", candidates: TravisNodeVersions, expected: []string{"0.10.0"}},
		{name: ">=1.0 matches nothing", rangeExpr: ">=1.0", candidates: TravisNodeVersions, expected: []string{}},
		{name: "upper bound", rangeExpr: "<=0.9", candidates: TravisNodeVersions, expected: []string{"0.8.1"}},
		{name: "wildcard", rangeExpr: "0.10.x", candidates: TravisNodeVersions, expected: []string{"0.10.0"}},
		{name: "star", rangeExpr: "*", candidates: TravisNodeVersions, expected: []string{"0.8.1", "0.10.0"}},
		{name: "empty range matches all", rangeExpr: "  ", candidates: TravisNodeVersions, expected: []string{"0.8.1", "0.10.0"}},
		{name: "hyphen range", rangeExpr: "0.6 - 0.9", candidates: TravisNodeVersions, expected: []string{"0.8.1"}},
		{name: "or", rangeExpr: "0.8.x || 0.10.x", candidates: TravisNodeVersions, expected: []string{"0.8.1", "0.10.0"}},
		{name: "tilde", rangeExpr: "~0.8", candidates: TravisNodeVersions, expected: []string{"0.8.1"}},
		{name: "order preserved", rangeExpr: ">=0.4", candidates: []string{"0.10.0", "0.8.1"}, expected: []string{"0.10.0", "0.8.1"}},
		{name: "invalid candidates skipped", rangeExpr: ">=0.4", candidates: []string{"latest", "0.10.0"}, expected: []string{"0.10.0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Match(tt.rangeExpr, tt.candidates)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMatch_SubsetAndSatisfies(t *testing.T) {
	candidates := []string{"0.6.21", "0.8.1", "0.10.0", "0.11.13", "4.2.6", "6.9.1"}
	ranges := []string{">=0.4", ">=0.9", "<0.10", "0.8 - 4", "^0.10", ">=4 <6", "0.x || >=6", ">=100"}

	for _, r := range ranges {
		t.Run(r, func(t *testing.T) {
			got, err := Match(r, candidates)
			require.NoError(t, err)

			c, err := semver.NewConstraint(r)
			require.NoError(t, err)

			last := -1
			for _, v := range got {
				idx := indexOf(candidates, v)
				require.GreaterOrEqual(t, idx, 0, "result %s is not a candidate", v)
				assert.Greater(t, idx, last, "order not preserved")
				last = idx
				assert.True(t, c.Check(semver.MustParse(v)), "%s does not satisfy %s", v, r)
			}
		})
	}
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

func TestMatch_InvalidRange(t *testing.T) {
	_, err := Match("not-a-range!", TravisNodeVersions)
	require.Error(t, err)
	assert.Equal(t, errors.ErrTypeNoVersion, errors.GetType(err))
}

func TestMajorMinor(t *testing.T) {
	assert.Equal(t, "0.8", MajorMinor("0.8.1"))
	assert.Equal(t, "0.10", MajorMinor("0.10.0"))
	assert.Equal(t, "12.22", MajorMinor("12.22.12"))
	assert.Equal(t, "latest", MajorMinor("latest"))
}
