package model

import "time"

// RunParams 单次进程执行的请求参数。
// 每个(测试点,重复轮次)由编排器新建一份,绝不跨测试点复用,
// 保证任何执行状态都不会在测试点之间泄漏。
type RunParams struct {
	RunID     int64         `json:"run_id"`     // 本轮测试的唯一ID,用于日志关联
	CaseName  string        `json:"case_name"`  // 测试点名称
	Target    string        `json:"target"`     // 目标程序路径
	Args      []string      `json:"args"`       // 目标程序参数
	WorkDir   string        `json:"work_dir"`   // 子进程工作目录,空表示目标程序所在目录
	Input     string        `json:"input"`      // 输入数据,作为子进程 stdin
	TimeLimit time.Duration `json:"time_limit"` // 墙钟时间限制
}
