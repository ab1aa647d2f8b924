package constants

import "time"

// 评测相关常量
const (
	// 默认资源限制
	DefaultTimeLimit = 3000 * time.Millisecond // 默认时间限制
	DefaultRepeat    = 1                       // 默认重复执行次数
	DefaultMaxDiffs  = 10                      // 默认最大显示差异行数

	// 资源限制范围
	MinTimeLimit = 100 * time.Millisecond // 最小时间限制
	MaxTimeLimit = 60 * time.Second       // 最大时间限制
	MaxRepeat    = 100                    // 最大重复执行次数

	// 输出限制
	MaxOutputSize = 10 * 1024 * 1024 // 最大捕获输出大小（10MB）
	MaxErrorSize  = 64 * 1024        // 最大错误信息大小（64KB）

	// 终止相关
	KillGracePeriod = 200 * time.Millisecond // 强杀后等待回收输出的时间
)

// 递归防护相关常量
const (
	// WorkerEnvKey 子进程工作模式的环境变量标记。
	// 孵化出的子进程必须在入口处最先检查该变量,
	// 为 WorkerEnvValue 时只执行一次解题函数然后退出,绝不进入编排逻辑。
	WorkerEnvKey   = "POX5FLY_OJ_WORKER"
	WorkerEnvValue = "1"

	// WorkerMissingCallbackExitCode worker 模式下发现没有绑定解题函数时的退出码。
	// 编排侧据此把该故障识别为致命的配置错误而不是测试点 RE。
	WorkerMissingCallbackExitCode = 87
)

// 测资文件相关常量
const (
	InputFileExt   = ".in"       // 输入文件扩展名
	OutputFileExt  = ".out"      // 期望输出文件扩展名
	DefaultCaseDir = "test_case" // 默认测资目录名(相对目标程序所在目录)
	DiffEOFMarker  = "<EOF>"     // 期望行数不足时的占位标记
)

// 日志相关常量
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"

	DefaultLogFile    = "log/ojtest.log"
	DefaultLogMaxSize = 100 // MB
	DefaultLogMaxAge  = 30  // days
	DefaultLogBackups = 7
)
