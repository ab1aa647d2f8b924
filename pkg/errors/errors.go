package errors

import (
	"fmt"
)

// ErrorCode 错误码类型
type ErrorCode int

const (
	// 系统错误 (1000-1999)
	ErrCodeSystem ErrorCode = 1000 + iota
	ErrCodeInternal
	ErrCodeTimeout

	// 参数错误 (2000-2999)
	ErrCodeInvalidParam ErrorCode = 2000 + iota
	ErrCodeInvalidTimeLimit
	ErrCodeInvalidRepeat

	// 环境错误 (3000-3999)
	ErrCodeSetup ErrorCode = 3000 + iota
	ErrCodeTargetNotFound
	ErrCodeSpawnFailed
	ErrCodeCaseDirNotFound
	ErrCodeNoTestCase

	// 递归防护错误 (4000-4999)
	ErrCodeGuard ErrorCode = 4000 + iota
	ErrCodeMissingCallback
)

// HarnessError 测试框架错误。
// 框架自身的失败(孵化进程失败、缺少测资等)用本类型表示并中止整轮测试,
// 绝不折叠进某个测试点的 Verdict,以免把框架故障误报成解题程序故障。
type HarnessError struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error 实现 error 接口
func (e *HarnessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持错误链
func (e *HarnessError) Unwrap() error {
	return e.Err
}

// New 创建新的框架错误
func New(code ErrorCode, message string) *HarnessError {
	return &HarnessError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装已有错误
func Wrap(code ErrorCode, message string, err error) *HarnessError {
	return &HarnessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// 预定义的错误创建函数

// NewInvalidParamError 创建参数错误
func NewInvalidParamError(param string, reason string) *HarnessError {
	return New(ErrCodeInvalidParam, fmt.Sprintf("参数 %s 无效: %s", param, reason))
}

// NewSpawnError 创建进程孵化错误
func NewSpawnError(target string, err error) *HarnessError {
	return Wrap(ErrCodeSpawnFailed, fmt.Sprintf("无法启动目标程序: %s", target), err)
}

// NewTargetNotFoundError 创建目标程序不存在错误
func NewTargetNotFoundError(target string) *HarnessError {
	return New(ErrCodeTargetNotFound, fmt.Sprintf("目标程序不存在: %s", target))
}

// NewNoTestCaseError 创建无测资错误
func NewNoTestCaseError(dir string) *HarnessError {
	return New(ErrCodeNoTestCase, fmt.Sprintf("目录下没有找到任何 .in 文件: %s", dir))
}

// NewMissingCallbackError 创建子进程缺少解题回调的错误。
// 这是递归防护协议里唯一必须显式暴露给用户的配置错误。
func NewMissingCallbackError() *HarnessError {
	return New(ErrCodeMissingCallback, "worker 模式下未绑定解题函数(疑似递归调用或调用方配置错误)")
}

// IsErrorCode 判断错误是否为指定错误码
func IsErrorCode(err error, code ErrorCode) bool {
	if harnessErr, ok := err.(*HarnessError); ok {
		return harnessErr.Code == code
	}
	return false
}

// GetErrorCode 获取错误码
func GetErrorCode(err error) ErrorCode {
	if harnessErr, ok := err.(*HarnessError); ok {
		return harnessErr.Code
	}
	return ErrCodeInternal
}
