package api

import "time"

// ExecutionResult 单次进程执行的原始结果,由执行器产出,交给分类器消费
type ExecutionResult struct {
	Outcome  Outcome       `json:"outcome"`   // 执行结局
	Stdout   string        `json:"stdout"`    // 捕获的标准输出(TLE/RE 时为终止前的部分输出)
	Stderr   string        `json:"stderr"`    // 捕获的标准错误,用于 RE 诊断
	TimeUsed time.Duration `json:"time_used"` // 墙钟耗时
	ExitCode int           `json:"exit_code"` // 退出码,被信号终止时为 -1
}

// DiffEntry WA 时单行差异,按行号位置对齐(非 LCS)
type DiffEntry struct {
	Line     int    `json:"line"`     // 行号,从1开始
	Expected string `json:"expected"` // 期望行,超出期望行数时为 "<EOF>"
	Actual   string `json:"actual"`   // 实际行
}

// Verdict 单个测试点的终局判定
type Verdict struct {
	CaseName    string          `json:"case_name"`    // 测试点名称(如 "01", "test_01")
	Status      Status          `json:"status"`       // 判定状态
	Times       []time.Duration `json:"times"`        // 每次重复执行的墙钟耗时,失败时提前截止
	Output      string          `json:"output"`       // 程序标准输出
	Diffs       []DiffEntry     `json:"diffs"`        // WA 的逐行差异(有界)
	DiffOmitted int             `json:"diff_omitted"` // 超出显示上限而省略的差异数
	Error       string          `json:"error"`        // RE 的过滤后堆栈 / MISSING 的说明信息
	ExitCode    int             `json:"exit_code"`    // 最后一次执行的退出码
}

// AvgTime 重复执行的平均耗时
func (v *Verdict) AvgTime() time.Duration {
	if len(v.Times) == 0 {
		return 0
	}
	var total time.Duration
	for _, t := range v.Times {
		total += t
	}
	return total / time.Duration(len(v.Times))
}

// MinTime 重复执行的最小耗时
func (v *Verdict) MinTime() time.Duration {
	if len(v.Times) == 0 {
		return 0
	}
	minT := v.Times[0]
	for _, t := range v.Times[1:] {
		if t < minT {
			minT = t
		}
	}
	return minT
}

// MaxTime 重复执行的最大耗时
func (v *Verdict) MaxTime() time.Duration {
	if len(v.Times) == 0 {
		return 0
	}
	maxT := v.Times[0]
	for _, t := range v.Times[1:] {
		if t > maxT {
			maxT = t
		}
	}
	return maxT
}
