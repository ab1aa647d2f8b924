package result

import (
	"strings"

	"github.com/poflygogo/pox5fly-oj/api"
	"github.com/poflygogo/pox5fly-oj/internal/constants"
)

// Comparator 输出比对器
type Comparator struct {
	strict   bool
	maxDiffs int // WA 最大记录差异数,负数表示不限制
}

// NewComparator 创建比对器实例
func NewComparator(strict bool, maxDiffs int) *Comparator {
	return &Comparator{
		strict:   strict,
		maxDiffs: maxDiffs,
	}
}

// Compare 比对程序输出和期望输出。
// 宽松模式: 逐行去除首尾空白、丢弃空行后,比较行序列是否完全一致;
// 严格模式: 逐字节比较,不做任何归一化。
// 不相等时返回按行号位置对齐的差异列表(非 LCS),
// 以及因超出上限而省略的差异数。
func (c *Comparator) Compare(actualOutput, expectedOutput string) (bool, []api.DiffEntry, int) {
	var actLines, expLines []string
	if c.strict {
		if actualOutput == expectedOutput {
			return true, nil, 0
		}
		// 严格模式的差异报告仍按行展示,只是不做归一化
		actLines = splitLines(actualOutput)
		expLines = splitLines(expectedOutput)
	} else {
		actLines = processLines(actualOutput)
		expLines = processLines(expectedOutput)
		if equalLines(actLines, expLines) {
			return true, nil, 0
		}
	}

	diffs, omitted := c.positionalDiff(actLines, expLines)
	return false, diffs, omitted
}

// positionalDiff 逐行找出差异,行号从1开始
func (c *Comparator) positionalDiff(actLines, expLines []string) ([]api.DiffEntry, int) {
	maxLen := len(actLines)
	if len(expLines) > maxLen {
		maxLen = len(expLines)
	}

	var diffs []api.DiffEntry
	diffCount := 0
	for i := 0; i < maxLen; i++ {
		// 实际输出行数不足,记录一条缺行差异后停止
		if i >= len(actLines) {
			diffCount++
			if c.maxDiffs < 0 || len(diffs) < c.maxDiffs {
				diffs = append(diffs, api.DiffEntry{
					Line:     i + 1,
					Expected: expLines[i],
					Actual:   constants.DiffEOFMarker,
				})
			}
			break
		}

		lineAct := actLines[i]
		lineExp := constants.DiffEOFMarker
		if i < len(expLines) {
			lineExp = expLines[i]
		}

		if lineAct != lineExp {
			diffCount++
			if c.maxDiffs < 0 || len(diffs) < c.maxDiffs {
				diffs = append(diffs, api.DiffEntry{
					Line:     i + 1,
					Expected: lineExp,
					Actual:   lineAct,
				})
			}
		}
	}

	return diffs, diffCount - len(diffs)
}

// processLines 宽松模式预处理: 去除每行首尾空白,丢弃空行
func processLines(text string) []string {
	lines := splitLines(text)
	processed := make([]string, 0, len(lines))
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped != "" {
			processed = append(processed, stripped)
		}
	}
	return processed
}

// splitLines 按行拆分,末尾换行符不产生多余空行
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
