// Package harness 是本地 Online Judge 测试框架的公开入口。
//
// 典型用法是在解题程序的 main 里直接调用:
//
//	func solve() {
//		var n int
//		fmt.Scan(&n)
//		fmt.Println(n * n)
//	}
//
//	func main() {
//		harness.Run(solve, harness.Options{})
//	}
//
// 顶层调用会重新以 worker 模式孵化自身,每个测试点一个全新进程;
// worker 模式下 Run 只执行一次 solve 然后退出,绝不进入编排逻辑,
// 因此解题程序的顶层代码被重复进入也不会出现递归孵化。
package harness

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/poflygogo/pox5fly-oj/api"
	"github.com/poflygogo/pox5fly-oj/internal/constants"
	"github.com/poflygogo/pox5fly-oj/internal/report"
	"github.com/poflygogo/pox5fly-oj/internal/task"
	"github.com/poflygogo/pox5fly-oj/internal/task/result"
	"github.com/poflygogo/pox5fly-oj/internal/task/runner"
	"github.com/poflygogo/pox5fly-oj/pkg/errors"
	"github.com/poflygogo/pox5fly-oj/pkg/logging"
)

// InWorkerMode 当前进程是否处于 worker 模式。
// 该标记由编排进程在孵化时无条件写入子进程环境。
func InWorkerMode() bool {
	return os.Getenv(constants.WorkerEnvKey) == constants.WorkerEnvValue
}

// Run 执行一轮测试,目标程序是当前可执行文件自身。
//
// 必须是入口逻辑里最先执行的调用: 若当前进程是被孵化的 worker,
// Run 会执行恰好一次 sol 然后直接终止进程,后面的代码不再运行。
// 顶层调用时 Run 编排全部测试并输出报告,返回每个测试点的判定。
func Run(sol func(), opts Options) ([]api.Verdict, error) {
	// 递归防护: worker 路径优先级最高,短路一切编排逻辑
	if InWorkerMode() {
		runWorker(sol) // 不返回
	}

	target, err := os.Executable()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSetup, "定位当前可执行文件失败", err)
	}
	return RunTarget(target, nil, opts)
}

// RunTarget 执行一轮测试,目标是任意外部程序。
// 供 CLI 模式使用;库模式请用 Run。
func RunTarget(target string, args []string, opts Options) ([]api.Verdict, error) {
	if logger, err := logging.NewLogger(nil); err == nil {
		defer logger.Sync()
	}

	cfg := opts.toHarnessConfig()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	reporter := report.NewReporter(os.Stdout, cfg.ShowMissingOutput, cfg.ShowRawOutput)
	orch := task.NewOrchestrator(cfg, runner.New())
	orch.OnStart = func(selected int) {
		reporter.PrintHeader(target, selected)
	}
	orch.OnVerdict = reporter.PrintVerdict

	verdicts, err := orch.Run(target, args, opts.Cases)
	if err != nil {
		return nil, err
	}
	reporter.PrintSummary(orch.Metrics())
	return verdicts, nil
}

// runWorker worker 模式的终局路径: 执行一次解题函数,冲刷输出,退出进程。
// 本函数永不返回。
func runWorker(sol func()) {
	if sol == nil {
		// 没有绑定解题函数是调用方的配置错误,必须立刻大声失败,
		// 静默返回会让编排侧误以为程序输出为空
		fmt.Fprintln(os.Stderr, "pox5fly-oj: worker 模式下未绑定解题函数(疑似递归调用)")
		os.Exit(constants.WorkerMissingCallbackExitCode)
	}

	defer func() {
		if r := recover(); r != nil {
			// 过滤掉框架自身的堆栈帧,只保留解题代码的现场
			fmt.Fprintf(os.Stderr, "panic: %v\n\n%s", r, result.FilterTrace(string(debug.Stack())))
			os.Stdout.Sync()
			os.Exit(1)
		}
	}()

	sol()
	os.Stdout.Sync()
	os.Exit(0)
}
