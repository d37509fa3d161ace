package git

import (
	"os"
	"path/filepath"
)

// FindRoot 从 start 开始向上查找，返回最近的包含 .git 的目录。
// 找不到时 ok 为 false。
func FindRoot(start string) (dir string, ok bool) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
