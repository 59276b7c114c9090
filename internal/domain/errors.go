package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCredentials 登录失败统一返回这个，避免暴露用户名/邮箱哪个不存在
var ErrInvalidCredentials = errors.New("invalid username/email or password")

// ValidationError 按字段收集校验错误，表单回显用
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for f, msg := range e.Fields {
		parts = append(parts, f+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	e.Fields[field] = msg
}

func (e *ValidationError) Empty() bool { return len(e.Fields) == 0 }

// NotFoundError 资源不存在 → 404
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ConflictError 唯一冲突（username/email 重复）或删除被依赖阻断
type ConflictError struct {
	Field    string
	Message  string
	Blocking int64 // 阻断删除时的依赖数量
}

func (e *ConflictError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Field + " already exists"
}
