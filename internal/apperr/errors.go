// Package apperr 定义工具调用边界上的错误类型
package apperr

import (
	"errors"
	"fmt"
)

// ConfigurationError 访问提供方所需的配置缺失，在任何网络调用之前检测
type ConfigurationError struct {
	Name string
}

func (e *ConfigurationError) Error() string {
	return "Missing " + e.Name
}

// ProviderError 调用外部搜索提供方失败（网络、超时、响应格式、提供方报错）
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err == nil {
		return e.Provider + ": request failed"
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// UnknownToolError 分发接口收到未注册的工具名
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("Unknown tool '%s'", e.Name)
}

// ValidationError 请求参数不合法
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return "invalid arguments: " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsConfiguration 判断是否为配置错误
func IsConfiguration(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

// IsValidation 判断是否为参数错误
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}
