package task

import (
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/poflygogo/pox5fly-oj/api"
	"github.com/poflygogo/pox5fly-oj/internal/cache"
	"github.com/poflygogo/pox5fly-oj/internal/conf"
	"github.com/poflygogo/pox5fly-oj/internal/constants"
	"github.com/poflygogo/pox5fly-oj/internal/metrics"
	"github.com/poflygogo/pox5fly-oj/internal/model"
	"github.com/poflygogo/pox5fly-oj/internal/task/result"
	"github.com/poflygogo/pox5fly-oj/internal/task/runner"
	"github.com/poflygogo/pox5fly-oj/internal/testcase"
	"github.com/poflygogo/pox5fly-oj/pkg/errors"
	"github.com/poflygogo/pox5fly-oj/pkg/snowflake"
)

// Orchestrator 测试编排器,驱动 测资 -> 执行 -> 分类 的主循环
type Orchestrator struct {
	cfg        *conf.HarnessConfig
	runner     runner.Runner
	classifier *result.Classifier
	payloads   *cache.PayloadCache
	metrics    *metrics.RunMetrics

	// OnStart 测资选择完成、开始执行前的回调,参数是选中的测试点数;可以为 nil
	OnStart func(selected int)
	// OnVerdict 每个测试点判定完成后的回调,供报告协作方即时消费;可以为 nil
	OnVerdict func(*api.Verdict)
}

// NewOrchestrator 创建编排器实例
func NewOrchestrator(cfg *conf.HarnessConfig, r runner.Runner) *Orchestrator {
	return &Orchestrator{
		cfg:        cfg,
		runner:     r,
		classifier: result.NewClassifier(cfg.Strict, cfg.MaxDiffs),
		payloads:   cache.GetPayloadCache(),
		metrics:    metrics.NewRunMetrics(),
	}
}

// Metrics 返回本轮统计
func (o *Orchestrator) Metrics() *metrics.RunMetrics {
	return o.metrics
}

// Run 执行一轮完整测试。
// target 是待测程序路径,caseTokens 是测试点选择标记(空表示全部)。
// 测试点按固定顺序串行执行;每个测试点重复 repeat 次,
// 一旦某次判定不是 AC 立即停止该测试点的后续重复(重复是为了观测耗时稳定性,
// 不是为了重试失败)。返回每个测试点恰好一个 Verdict。
// 返回的 error 一律是框架/环境级故障,此时整轮测试中止,不产出任何部分报告。
func (o *Orchestrator) Run(target string, args []string, caseTokens []string) ([]api.Verdict, error) {
	if err := o.cfg.Validate(); err != nil {
		return nil, err
	}

	absTarget, err := filepath.Abs(target)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSetup, "解析目标程序路径失败", err)
	}

	caseDir := o.cfg.CaseDir
	if caseDir == "" {
		caseDir = filepath.Join(filepath.Dir(absTarget), constants.DefaultCaseDir)
	}

	runID, err := snowflake.NextID()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "生成运行ID失败", err)
	}

	repo := testcase.NewRepository(caseDir)
	allCases, err := repo.Collect()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCaseDirNotFound, "读取测资目录失败", err)
	}
	if len(allCases) == 0 && len(caseTokens) == 0 {
		return nil, errors.NewNoTestCaseError(repo.CaseDir())
	}

	selected := testcase.Filter(allCases, caseTokens)
	if len(caseTokens) > 0 && len(selected) == 0 {
		// 过滤结果为空是用户输入问题,给出警告但不算故障
		zap.L().Warn("没有测试点匹配选择条件",
			zap.Int64("run_id", runID),
			zap.Strings("tokens", caseTokens),
		)
		return nil, nil
	}

	if o.OnStart != nil {
		o.OnStart(len(selected))
	}

	zap.L().Info("开始执行测试",
		zap.Int64("run_id", runID),
		zap.String("target", absTarget),
		zap.String("case_dir", caseDir),
		zap.Int("selected", len(selected)),
		zap.Int("repeat", o.cfg.Repeat),
	)

	verdicts := make([]api.Verdict, 0, len(selected))
	for _, tc := range selected {
		verdict, err := o.runCase(runID, absTarget, args, &tc)
		if err != nil {
			return nil, err
		}
		o.metrics.RecordVerdict(verdict)
		if o.OnVerdict != nil {
			o.OnVerdict(verdict)
		}
		verdicts = append(verdicts, *verdict)
	}

	zap.L().Info("测试执行完成",
		zap.Int64("run_id", runID),
		zap.Int("total", len(verdicts)),
		zap.Int64("ac", o.metrics.ACCount),
		zap.Duration("total_time", o.metrics.TotalTime()),
	)
	return verdicts, nil
}

// runCase 执行单个测试点(含重复执行逻辑)
func (o *Orchestrator) runCase(runID int64, target string, args []string, tc *model.TestCase) (*api.Verdict, error) {
	input, err := o.payloads.Read(tc.InputFile)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSetup,
			fmt.Sprintf("读取输入文件失败: %s", tc.InputFile), err)
	}

	var expected string
	if tc.HasExpected() {
		expected, err = o.payloads.Read(tc.OutputFile)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeSetup,
				fmt.Sprintf("读取期望输出文件失败: %s", tc.OutputFile), err)
		}
	}

	var verdict *api.Verdict
	times := make([]time.Duration, 0, o.cfg.Repeat)
	for i := 0; i < o.cfg.Repeat; i++ {
		// 每轮重复都用全新的参数和全新的进程,状态不跨轮次残留
		params := model.RunParams{
			RunID:     runID,
			CaseName:  tc.Name,
			Target:    target,
			Args:      args,
			Input:     input,
			TimeLimit: o.cfg.TimeLimit,
		}

		execResult, err := o.runner.Execute(params)
		if err != nil {
			// 执行器自身的故障是环境错误,中止整轮测试,
			// 绝不折叠成该测试点的判定
			return nil, err
		}

		// worker 没有绑定解题函数属于调用方配置错误,整轮中止,
		// 否则会被误判成该测试点的 RE
		if execResult.Outcome == api.OutcomeCrashed &&
			execResult.ExitCode == constants.WorkerMissingCallbackExitCode {
			return nil, errors.NewMissingCallbackError()
		}

		times = append(times, execResult.TimeUsed)
		verdict = o.classifier.Classify(tc.Name, execResult, expected, tc.HasExpected())

		// 非 AC 立即停止重测
		if verdict.Status != api.StatusAC {
			break
		}
	}

	verdict.Times = times
	zap.L().Info("测试点判定完成",
		zap.Int64("run_id", runID),
		zap.String("case", tc.Name),
		zap.String("status", verdict.Status),
		zap.String("status_desc", api.StatusDesc(verdict.Status)),
		zap.Duration("avg_time", verdict.AvgTime()),
		zap.Int("iterations", len(times)),
	)
	return verdict, nil
}
