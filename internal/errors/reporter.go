package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Reporter 将错误以单行（可附带建议）的形式写入 stderr。
// 所有失败都在检测处报告，不会向上层传播或重试。
type Reporter struct {
	w io.Writer
}

// NewReporter 创建新的错误报告器
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// Report writes err to the underlying writer. A nil error is ignored.
func (r *Reporter) Report(err error) {
	if err == nil {
		return
	}

	lines := strings.SplitN(FormatError(err), "\n", 2)
	_, _ = fmt.Fprintln(r.w, color.RedString("ERROR: %s", lines[0]))
	if len(lines) > 1 {
		_, _ = fmt.Fprintln(r.w, color.YellowString("%s", lines[1]))
	}
}
