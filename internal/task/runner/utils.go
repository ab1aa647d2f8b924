package runner

import (
	"os"
	"os/exec"
	"strings"

	"github.com/poflygogo/pox5fly-oj/internal/constants"
	"github.com/poflygogo/pox5fly-oj/internal/model"
	"github.com/poflygogo/pox5fly-oj/pkg/errors"
)

// validateRunParams 验证运行参数。
// 目标程序不可执行属于环境错误,必须中止整轮测试,
// 绝不能被包装成某个测试点的 RE。
func validateRunParams(params *model.RunParams) error {
	if params.Target == "" {
		return errors.NewInvalidParamError("target", "目标程序路径为空")
	}

	if strings.ContainsRune(params.Target, os.PathSeparator) {
		if _, err := os.Stat(params.Target); err != nil {
			return errors.NewTargetNotFoundError(params.Target)
		}
	} else {
		if _, err := exec.LookPath(params.Target); err != nil {
			return errors.NewTargetNotFoundError(params.Target)
		}
	}

	if params.TimeLimit < constants.MinTimeLimit || params.TimeLimit > constants.MaxTimeLimit {
		return errors.NewInvalidParamError("time_limit",
			"应在 "+constants.MinTimeLimit.String()+" 到 "+constants.MaxTimeLimit.String()+" 之间")
	}
	return nil
}
