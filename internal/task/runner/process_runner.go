package runner

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/poflygogo/pox5fly-oj/api"
	"github.com/poflygogo/pox5fly-oj/internal/constants"
	"github.com/poflygogo/pox5fly-oj/internal/model"
	"github.com/poflygogo/pox5fly-oj/pkg/errors"
)

// ProcessRunner 基于 os/exec 的进程执行器
type ProcessRunner struct {
	extraEnv []string // 注入子进程的额外环境变量
}

// NewProcessRunner 创建进程执行器。
// 无论目标程序是否使用本框架,worker 标记都会无条件注入子进程环境,
// 这是递归防护协议的编排侧义务。
func NewProcessRunner() *ProcessRunner {
	return &ProcessRunner{
		extraEnv: []string{constants.WorkerEnvKey + "=" + constants.WorkerEnvValue},
	}
}

// Execute 孵化子进程执行一次目标程序。
// 输入通过 stdin 喂给子进程,stdout/stderr 全量捕获;
// 到达时限后强杀整个进程组(包括目标程序自己孵化的后代进程),
// 已捕获的部分输出仍然保留在结果里供诊断。
func (pr *ProcessRunner) Execute(params model.RunParams) (*api.ExecutionResult, error) {
	if err := validateRunParams(&params); err != nil {
		return nil, err
	}

	cmd := exec.Command(params.Target, params.Args...)
	cmd.Dir = params.WorkDir
	if cmd.Dir == "" {
		cmd.Dir = filepath.Dir(params.Target)
	}
	cmd.Stdin = strings.NewReader(params.Input)

	stdout := newLimitedBuffer(constants.MaxOutputSize)
	stderr := newLimitedBuffer(constants.MaxErrorSize)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	cmd.Env = append(os.Environ(), pr.extraEnv...)

	// 单独的进程组,超时强杀时连同后代一起终止,不留孤儿进程
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	startTime := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, errors.NewSpawnError(params.Target, err)
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	timer := time.NewTimer(params.TimeLimit)
	defer timer.Stop()

	select {
	case waitErr := <-done:
		elapsed := time.Since(startTime)
		return pr.buildResult(&params, waitErr, elapsed, stdout, stderr), nil

	case <-timer.C:
		// 到达时限,强杀整个进程组后回收
		elapsed := time.Since(startTime)
		pr.killProcessGroup(cmd, &params)

		// 等待 Wait 返回以回收子进程并冲刷输出管道;
		// 极端情况下(后代进程握着管道不放)按宽限期放弃等待
		select {
		case <-done:
		case <-time.After(constants.KillGracePeriod):
			zap.L().Warn("超时进程回收超过宽限期",
				zap.Int64("run_id", params.RunID),
				zap.String("case", params.CaseName),
			)
		}

		zap.L().Info("测试点超时被终止",
			zap.Int64("run_id", params.RunID),
			zap.String("case", params.CaseName),
			zap.Duration("time_limit", params.TimeLimit),
			zap.Duration("elapsed", elapsed),
		)
		return &api.ExecutionResult{
			Outcome:  api.OutcomeTimedOut,
			Stdout:   stdout.String(),
			Stderr:   stderr.String(),
			TimeUsed: elapsed,
			ExitCode: -1,
		}, nil
	}
}

// buildResult 根据进程退出情况构建执行结果
func (pr *ProcessRunner) buildResult(params *model.RunParams, waitErr error, elapsed time.Duration, stdout, stderr *limitedBuffer) *api.ExecutionResult {
	result := &api.ExecutionResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		TimeUsed: elapsed,
	}

	// 进程自己在边界附近结束也按超时算,保证"耗时 >= 时限 则必为 TLE"
	if elapsed >= params.TimeLimit {
		result.Outcome = api.OutcomeTimedOut
		result.ExitCode = -1
		return result
	}

	if waitErr != nil {
		result.Outcome = api.OutcomeCrashed
		result.ExitCode = -1
		if exitErr, ok := waitErr.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
			if waitStatus, ok := exitErr.Sys().(syscall.WaitStatus); ok && waitStatus.Signaled() {
				zap.L().Debug("目标程序被信号终止",
					zap.Int64("run_id", params.RunID),
					zap.String("case", params.CaseName),
					zap.String("signal", waitStatus.Signal().String()),
				)
			}
		}
		return result
	}

	result.Outcome = api.OutcomeCompleted
	result.ExitCode = 0
	return result
}

// killProcessGroup 强杀子进程所在的整个进程组
func (pr *ProcessRunner) killProcessGroup(cmd *exec.Cmd, params *model.RunParams) {
	if cmd.Process == nil {
		return
	}
	// 负 pid 表示向整个进程组发信号
	if err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL); err != nil {
		zap.L().Warn("终止进程组失败,回退到单进程终止",
			zap.Int64("run_id", params.RunID),
			zap.Int("pid", cmd.Process.Pid),
			zap.Error(err),
		)
		_ = cmd.Process.Kill()
	}
}

// limitedBuffer 带上限的并发安全输出缓冲。
// 超出上限的数据直接丢弃(写入仍报告成功,避免提前杀死管道),
// 防止恶意或失控程序用海量输出耗尽内存。
type limitedBuffer struct {
	mu        sync.Mutex
	buf       bytes.Buffer
	max       int
	truncated bool
}

func newLimitedBuffer(max int) *limitedBuffer {
	return &limitedBuffer{max: max}
}

func (b *limitedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	remain := b.max - b.buf.Len()
	if remain > 0 {
		if len(p) <= remain {
			b.buf.Write(p)
		} else {
			b.buf.Write(p[:remain])
			b.truncated = true
		}
	} else if len(p) > 0 {
		b.truncated = true
	}
	return len(p), nil
}

func (b *limitedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.truncated {
		return b.buf.String() + "\n... (输出被截断)"
	}
	return b.buf.String()
}
