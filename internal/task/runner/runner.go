package runner

import (
	"github.com/poflygogo/pox5fly-oj/api"
	"github.com/poflygogo/pox5fly-oj/internal/model"
)

// Runner 隔离执行器接口。
// 每次 Execute 都孵化一个全新进程并在返回前终止它,进程绝不跨测试点复用,
// 目标程序内部的全局状态因此不可能在测试点之间泄漏。
// 返回的 error 只表示框架自身的故障(无法孵化进程等),
// 目标程序的超时和崩溃体现在 ExecutionResult.Outcome 里,不是 error。
type Runner interface {
	Execute(params model.RunParams) (*api.ExecutionResult, error)
}

// New 创建默认的进程执行器
func New() Runner {
	return NewProcessRunner()
}
