package travis

import "fmt"

// BadgeMarkdown returns the markdown build-status badge for repo (owner/name).
func BadgeMarkdown(repo string) string {
	return fmt.Sprintf("[![build status](https://secure.travis-ci.org/%s.png)](http://travis-ci.org/%s)", repo, repo)
}
