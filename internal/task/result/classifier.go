package result

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/poflygogo/pox5fly-oj/api"
)

// Classifier 结果分类器,把执行器的原始结果归入终局判定
type Classifier struct {
	comparator *Comparator
}

// NewClassifier 创建分类器实例
func NewClassifier(strict bool, maxDiffs int) *Classifier {
	return &Classifier{
		comparator: NewComparator(strict, maxDiffs),
	}
}

// Classify 对单次执行结果做终局判定。
// 优先级: 超时 > 崩溃 > 缺少期望输出 > 输出比对。
// hasExpected 为 false 表示没有配对的 .out 文件,这是合法状态而非错误,
// 判定为 MISSING 并保留原始输出供查看。
func (cl *Classifier) Classify(caseName string, execResult *api.ExecutionResult, expected string, hasExpected bool) *api.Verdict {
	verdict := &api.Verdict{
		CaseName: caseName,
		Output:   execResult.Stdout,
		ExitCode: execResult.ExitCode,
	}

	switch execResult.Outcome {
	case api.OutcomeTimedOut:
		// 超时优先于一切比对,即使部分输出恰好和期望一致
		verdict.Status = api.StatusTLE
		return verdict

	case api.OutcomeCrashed:
		verdict.Status = api.StatusRE
		verdict.Error = FilterTrace(execResult.Stderr)
		return verdict
	}

	if !hasExpected {
		verdict.Status = api.StatusMISSING
		verdict.Error = fmt.Sprintf("找不到对应的 %s.out 文件", caseName)
		return verdict
	}

	equal, diffs, omitted := cl.comparator.Compare(execResult.Stdout, expected)
	if equal {
		verdict.Status = api.StatusAC
		return verdict
	}

	verdict.Status = api.StatusWA
	verdict.Diffs = diffs
	verdict.DiffOmitted = omitted
	zap.L().Debug("输出不匹配",
		zap.String("case", caseName),
		zap.Int("diff_shown", len(diffs)),
		zap.Int("diff_omitted", omitted),
	)
	return verdict
}
