package result

import (
	"strings"
)

// 框架自身调用机器的堆栈特征。
// RE 的堆栈里只应出现目标程序自己的帧,
// worker 入口、panic 恢复等框架帧一律剔除,避免干扰用户定位问题。
var harnessFrameMarkers = []string{
	"pox5fly-oj/pkg/harness",
	"pox5fly-oj/internal/task",
}

// FilterTrace 过滤 stderr 中属于框架调用机器的堆栈帧。
// Go 的堆栈是"函数行 + 缩进的文件位置行"成对出现,
// 命中特征的函数行连同它的位置行一起剔除;非堆栈内容原样保留。
func FilterTrace(stderr string) string {
	if stderr == "" {
		return ""
	}

	lines := strings.Split(stderr, "\n")
	filtered := make([]string, 0, len(lines))
	skipNext := false
	for _, line := range lines {
		if skipNext {
			skipNext = false
			// 只跳过配对的文件位置行
			if strings.HasPrefix(line, "\t") {
				continue
			}
		}
		if isHarnessFrame(line) {
			skipNext = true
			continue
		}
		filtered = append(filtered, line)
	}
	return strings.Join(filtered, "\n")
}

func isHarnessFrame(line string) bool {
	for _, marker := range harnessFrameMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}
