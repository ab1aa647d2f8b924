package conf

import (
	"time"

	"github.com/spf13/viper"

	"github.com/poflygogo/pox5fly-oj/internal/constants"
	"github.com/poflygogo/pox5fly-oj/pkg/errors"
)

// HarnessConfig 测试框架配置
type HarnessConfig struct {
	TimeLimit         time.Duration // 单测试点时间限制
	Strict            bool          // 是否启用严格(逐字节)比对
	MaxDiffs          int           // WA 最大显示差异行数,负数表示不限制
	Repeat            int           // 单测试点重复执行次数
	ShowMissingOutput bool          // 缺少 .out 时是否附带程序原始输出
	ShowRawOutput     bool          // 是否总是附带程序原始输出
	CaseDir           string        // 测资目录,空表示目标程序同层的 test_case
}

// LoadHarnessConfig 从配置文件加载框架配置
func LoadHarnessConfig(cfg *viper.Viper) *HarnessConfig {
	hc := GetDefaultHarnessConfig()
	if cfg.IsSet("harness.time_limit_ms") {
		hc.TimeLimit = time.Duration(cfg.GetInt("harness.time_limit_ms")) * time.Millisecond
	}
	if cfg.IsSet("harness.strict") {
		hc.Strict = cfg.GetBool("harness.strict")
	}
	if cfg.IsSet("harness.max_diffs") {
		hc.MaxDiffs = cfg.GetInt("harness.max_diffs")
	}
	if cfg.IsSet("harness.repeat") {
		hc.Repeat = cfg.GetInt("harness.repeat")
	}
	if cfg.IsSet("harness.show_missing_output") {
		hc.ShowMissingOutput = cfg.GetBool("harness.show_missing_output")
	}
	if cfg.IsSet("harness.show_raw_output") {
		hc.ShowRawOutput = cfg.GetBool("harness.show_raw_output")
	}
	if cfg.IsSet("harness.case_dir") {
		hc.CaseDir = cfg.GetString("harness.case_dir")
	}
	return hc
}

// GetDefaultHarnessConfig 获取默认框架配置
func GetDefaultHarnessConfig() *HarnessConfig {
	return &HarnessConfig{
		TimeLimit:         constants.DefaultTimeLimit,
		Strict:            false,
		MaxDiffs:          constants.DefaultMaxDiffs,
		Repeat:            constants.DefaultRepeat,
		ShowMissingOutput: false,
		ShowRawOutput:     false,
		CaseDir:           "",
	}
}

// Validate 校验配置合法性
func (c *HarnessConfig) Validate() error {
	if c.TimeLimit < constants.MinTimeLimit || c.TimeLimit > constants.MaxTimeLimit {
		return errors.NewInvalidParamError("time_limit",
			"应在 "+constants.MinTimeLimit.String()+" 到 "+constants.MaxTimeLimit.String()+" 之间")
	}
	if c.Repeat < 1 || c.Repeat > constants.MaxRepeat {
		return errors.NewInvalidParamError("repeat", "应在 1 到 100 之间")
	}
	return nil
}
