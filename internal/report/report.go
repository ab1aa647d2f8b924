package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/poflygogo/pox5fly-oj/api"
	"github.com/poflygogo/pox5fly-oj/internal/metrics"
)

// Reporter 报告协作方,把核心产出的结构化 Verdict 渲染成终端文本。
// 核心自身从不直接格式化终端输出。
type Reporter struct {
	w                 io.Writer
	showMissingOutput bool // MISSING 时是否附带程序原始输出
	showRawOutput     bool // 是否总是附带程序原始输出
}

// NewReporter 创建报告实例
func NewReporter(w io.Writer, showMissingOutput, showRawOutput bool) *Reporter {
	return &Reporter{
		w:                 w,
		showMissingOutput: showMissingOutput,
		showRawOutput:     showRawOutput,
	}
}

const separator = "----------------------------------------"

// PrintHeader 输出测试开始信息
func (r *Reporter) PrintHeader(target string, selected int) {
	fmt.Fprintf(r.w, "=== Running Tests on %s ===\n", target)
	fmt.Fprintf(r.w, "Cases: %d selected\n", selected)
	fmt.Fprintln(r.w, separator)
}

// PrintVerdict 输出单个测试点的判定结果
func (r *Reporter) PrintVerdict(v *api.Verdict) {
	fmt.Fprintf(r.w, "[%s] Status: %s | Time: %s\n", v.CaseName, v.Status, formatTimes(v))

	switch v.Status {
	case api.StatusWA:
		fmt.Fprintln(r.w, "  [Wrong Answer Info]")
		for _, d := range v.Diffs {
			fmt.Fprintf(r.w, "    line %d: got:    %q\n", d.Line, d.Actual)
			fmt.Fprintf(r.w, "            expect: %q\n", d.Expected)
		}
		if v.DiffOmitted > 0 {
			fmt.Fprintf(r.w, "    ... and %d more differences.\n", v.DiffOmitted)
		}

	case api.StatusRE:
		fmt.Fprintln(r.w, "  [Runtime Error Info]")
		printIndented(r.w, v.Error)

	case api.StatusTLE:
		fmt.Fprintln(r.w, "  [Time Limit Exceeded]")

	case api.StatusMISSING:
		fmt.Fprintf(r.w, "  [Info] %s\n", v.Error)
		if r.showMissingOutput {
			fmt.Fprintln(r.w, "  [Raw Output (Missing .out)]")
			printIndented(r.w, v.Output)
			fmt.Fprintln(r.w, "  [End Raw Output]")
		}
	}

	if r.showRawOutput {
		fmt.Fprintln(r.w, "  [Raw Output]")
		printIndented(r.w, v.Output)
		fmt.Fprintln(r.w, "  [End Raw Output]")
	}

	fmt.Fprintln(r.w, separator)
}

// PrintSummary 输出整轮测试的统计汇总
func (r *Reporter) PrintSummary(m *metrics.RunMetrics) {
	fmt.Fprintf(r.w, "Total: %d | AC: %d | WA: %d | TLE: %d | RE: %d | MISSING: %d\n",
		m.TotalCases(), m.ACCount, m.WACount, m.TLECount, m.RECount, m.MissingCount)
	fmt.Fprintf(r.w, "Total execution time: %.2fms\n", toMillis(m.TotalTime()))
}

// formatTimes 格式化耗时,重复执行时附带 min/max
func formatTimes(v *api.Verdict) string {
	if len(v.Times) == 0 {
		return "N/A"
	}
	if len(v.Times) == 1 {
		return fmt.Sprintf("%.2fms", toMillis(v.Times[0]))
	}
	return fmt.Sprintf("%.2fms (min:%.2f, max:%.2f)",
		toMillis(v.AvgTime()), toMillis(v.MinTime()), toMillis(v.MaxTime()))
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func printIndented(w io.Writer, text string) {
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		fmt.Fprintf(w, "    %s\n", line)
	}
}
