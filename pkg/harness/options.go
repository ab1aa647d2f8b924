package harness

import (
	"time"

	"github.com/poflygogo/pox5fly-oj/internal/conf"
)

// Options 一轮测试的选项,零值字段使用默认配置
type Options struct {
	TimeLimit         time.Duration // 单测试点时间限制,0 表示默认 3000ms
	Strict            bool          // 是否启用严格(逐字节)比对,默认宽松比对
	MaxDiffs          int           // WA 最大显示差异行数,0 表示默认 10,负数表示不限制
	Repeat            int           // 单测试点重复执行次数,0 表示 1
	Cases             []string      // 测试点选择标记(数字或名称片段),空表示全部
	CaseDir           string        // 测资目录,空表示目标程序同层的 test_case
	ShowMissingOutput bool          // 缺少 .out 时是否显示程序原始输出
	ShowRawOutput     bool          // 是否总是显示程序原始输出
}

// toHarnessConfig 合并默认值,转换为内部配置
func (o *Options) toHarnessConfig() *conf.HarnessConfig {
	cfg := conf.GetDefaultHarnessConfig()
	if o.TimeLimit > 0 {
		cfg.TimeLimit = o.TimeLimit
	}
	cfg.Strict = o.Strict
	if o.MaxDiffs != 0 {
		cfg.MaxDiffs = o.MaxDiffs
	}
	if o.Repeat > 0 {
		cfg.Repeat = o.Repeat
	}
	cfg.ShowMissingOutput = o.ShowMissingOutput
	cfg.ShowRawOutput = o.ShowRawOutput
	cfg.CaseDir = o.CaseDir
	return cfg
}
