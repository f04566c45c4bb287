package code

// Common codes // 通用码
var (
	Success = NewSuss(0, lang{
		en:    "Success",
		zh_cn: "成功",
	})
	Failed = NewError(1, lang{
		en:    "Failed",
		zh_cn: "失败",
	})
	ErrorInvalidParams = NewError(10001, lang{
		en:    "Invalid request parameters",
		zh_cn: "请求参数错误",
	})
	ErrorServerInternal = NewError(10002, lang{
		en:    "Internal server error",
		zh_cn: "服务内部错误",
	})
	ErrorTooManyRequests = NewError(10003, lang{
		en:    "Too many requests",
		zh_cn: "请求过于频繁",
	})
	ErrorNotFound = NewError(10004, lang{
		en:    "Resource not found",
		zh_cn: "资源不存在",
	})
	ErrorInvalidAuthToken = NewError(10005, lang{
		en:    "Invalid or missing auth token",
		zh_cn: "认证 Token 无效或缺失",
	})
	ErrorInvalidStorageType = NewError(10006, lang{
		en:    "Invalid storage type",
		zh_cn: "存储类型无效",
	})
)

// Share access codes, one per validation state machine denial
// 分享访问码，验证状态机的每种拒绝原因各占一个
var (
	ErrorShareInvalidToken = NewError(20001, lang{
		en:    "Share token is invalid or inactive",
		zh_cn: "分享 Token 无效或已停用",
	})
	ErrorShareExpired = NewError(20002, lang{
		en:    "Share token has expired",
		zh_cn: "分享 Token 已过期",
	})
	ErrorShareMaxViews = NewError(20003, lang{
		en:    "Share token has reached its view limit",
		zh_cn: "分享 Token 已达到访问次数上限",
	})
	ErrorSharePasswordRequired = NewError(20004, lang{
		en:    "Share password required",
		zh_cn: "需要访问密码",
	})
	ErrorSharePasswordWrong = NewError(20005, lang{
		en:    "Share password is incorrect",
		zh_cn: "访问密码错误",
	})
)

// Share issuance codes // 分享签发码
var (
	ErrorShareEventUnresolvable = NewError(21001, lang{
		en:    "Cannot determine owning event for the share",
		zh_cn: "无法确定分享所属的活动",
	})
	ErrorShareScopeValidation = NewError(21002, lang{
		en:    "Share scope references do not belong to the target event",
		zh_cn: "分享范围引用不属于目标活动",
	})
	ErrorSharePersistReference = NewError(21003, lang{
		en:    "Share references a record that does not exist",
		zh_cn: "分享引用的记录不存在",
	})
	ErrorSharePersistDuplicate = NewError(21004, lang{
		en:    "A share with the same token already exists",
		zh_cn: "相同 Token 的分享已存在",
	})
	ErrorSharePersist = NewError(21005, lang{
		en:    "Failed to persist the share",
		zh_cn: "分享持久化失败",
	})
	ErrorShareNotFound = NewError(21006, lang{
		en:    "Share not found",
		zh_cn: "分享不存在",
	})
)
