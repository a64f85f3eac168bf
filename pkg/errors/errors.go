package errors

import "errors"

// ErrStorageUnavailable 后端存储不可用或查询异常
// Repository 层在非"记录不存在"类错误上附加此哨兵，
// 由 Handler 层统一映射为 503，提示调用方稍后重试。
// 引擎自身不做重试。
var ErrStorageUnavailable = errors.New("存储服务暂不可用")
