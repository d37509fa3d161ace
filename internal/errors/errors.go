package errors

import (
	"errors"
	"fmt"
)

// ErrorType 定义错误类型
type ErrorType int

const (
	// ErrTypeUnknown 未知错误
	ErrTypeUnknown ErrorType = iota
	// ErrTypeProcess git 子进程执行失败或写入了 stderr
	ErrTypeProcess
	// ErrTypeNoRemote 未找到可识别的远程仓库
	ErrTypeNoRemote
	// ErrTypeConfig 凭据配置读取或解析失败
	ErrTypeConfig
	// ErrTypeStatus API 返回了非预期的状态码
	ErrTypeStatus
	// ErrTypeMalformed API 响应格式错误
	ErrTypeMalformed
	// ErrTypeNoVersion 没有满足 engines 范围的 node 版本
	ErrTypeNoVersion
	// ErrTypeNoHook 仓库上不存在 travis hook
	ErrTypeNoHook
	// ErrTypeNetwork 网络相关错误
	ErrTypeNetwork
	// ErrTypeIO 本地文件读写错误
	ErrTypeIO
)

// String returns the taxonomy name used in debug logs.
func (t ErrorType) String() string {
	switch t {
	case ErrTypeProcess:
		return "ProcessInvocationError"
	case ErrTypeNoRemote:
		return "NoRemoteFound"
	case ErrTypeConfig:
		return "ConfigLoadError"
	case ErrTypeStatus:
		return "UnexpectedStatus"
	case ErrTypeMalformed:
		return "MalformedResponse"
	case ErrTypeNoVersion:
		return "NoCompatibleVersion"
	case ErrTypeNoHook:
		return "NoHook"
	case ErrTypeNetwork:
		return "NetworkError"
	case ErrTypeIO:
		return "IOError"
	default:
		return "Unknown"
	}
}

// TravisifyError 统一错误结构
type TravisifyError struct {
	Type       ErrorType
	Message    string
	Cause      error
	Suggestion string
}

// Error 实现 error 接口
func (e *TravisifyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap 支持 errors.Is 和 errors.As
func (e *TravisifyError) Unwrap() error {
	return e.Cause
}

// WithSuggestion 添加解决建议
func (e *TravisifyError) WithSuggestion(suggestion string) *TravisifyError {
	e.Suggestion = suggestion
	return e
}

// New 创建新的 TravisifyError
func New(errType ErrorType, message string) *TravisifyError {
	return &TravisifyError{
		Type:    errType,
		Message: message,
	}
}

// Newf is New with a format string.
func Newf(errType ErrorType, format string, args ...any) *TravisifyError {
	return New(errType, fmt.Sprintf(format, args...))
}

// Wrap 包装已有错误
func Wrap(errType ErrorType, message string, cause error) *TravisifyError {
	return &TravisifyError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// GetType 获取错误类型
func GetType(err error) ErrorType {
	var tErr *TravisifyError
	if errors.As(err, &tErr) {
		return tErr.Type
	}
	return ErrTypeUnknown
}

// IsType reports whether err carries the given type anywhere in its chain.
func IsType(err error, errType ErrorType) bool {
	return err != nil && GetType(err) == errType
}

// GetSuggestion 获取错误建议
func GetSuggestion(err error) string {
	var tErr *TravisifyError
	if errors.As(err, &tErr) {
		return tErr.Suggestion
	}
	return ""
}

// FormatError 格式化错误输出
func FormatError(err error) string {
	var tErr *TravisifyError
	if !errors.As(err, &tErr) {
		return err.Error()
	}

	msg := err.Error()
	if tErr.Suggestion != "" {
		msg += fmt.Sprintf("\n💡 %s", tErr.Suggestion)
	}

	return msg
}
