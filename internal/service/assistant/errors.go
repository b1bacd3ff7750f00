package assistant

import "net/http"

// StatusError 带 HTTP 状态码的业务错误
type StatusError struct {
	Status  int
	Message string
}

// Error 实现 error 接口
func (e *StatusError) Error() string {
	return e.Message
}

// NewBadRequest 创建 400 错误
func NewBadRequest(message string) *StatusError {
	return &StatusError{Status: http.StatusBadRequest, Message: message}
}

// NewUnauthorized 创建 401 错误
func NewUnauthorized(message string) *StatusError {
	return &StatusError{Status: http.StatusUnauthorized, Message: message}
}

// NewForbidden 创建 403 错误
func NewForbidden(message string) *StatusError {
	return &StatusError{Status: http.StatusForbidden, Message: message}
}

// NewNotFound 创建 404 错误
func NewNotFound(message string) *StatusError {
	return &StatusError{Status: http.StatusNotFound, Message: message}
}
