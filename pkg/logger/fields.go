package logger

// 统一的日志字段命名常量
// 用于确保整个项目中日志字段命名的一致性，便于日志查询和分析
const (
	// FieldTraceID 追踪 ID 字段
	FieldTraceID = "traceId"

	// FieldToken 分享 Token 字段（仅记录前缀，避免整串落盘）
	FieldToken = "token"

	// FieldEventID 活动 ID 字段
	FieldEventID = "eventId"

	// FieldFolderID 文件夹 ID 字段
	FieldFolderID = "folderId"

	// FieldAssetID 资产 ID 字段
	FieldAssetID = "assetId"

	// FieldScope 范围类型字段
	FieldScope = "scope"

	// FieldIP 客户端 IP 字段
	FieldIP = "ip"

	// FieldReason 拒绝原因字段
	FieldReason = "reason"

	// FieldDuration 耗时字段
	FieldDuration = "duration"

	// FieldError 错误信息字段
	FieldError = "error"

	// FieldCount 数量字段
	FieldCount = "count"

	// FieldBucket 存储桶名称字段
	FieldBucket = "bucket"

	// FieldFileKey 文件键字段
	FieldFileKey = "fileKey"
)

// TokenPrefix shortens a share token for log output. Full tokens are
// bearer credentials and must not be written to logs.
// TokenPrefix 截短分享 Token 用于日志输出，完整 Token 属于凭据，
// 不允许写入日志。
func TokenPrefix(token string) string {
	if len(token) <= 8 {
		return token
	}
	return token[:8]
}
