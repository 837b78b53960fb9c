package response

// 业务状态码
const (
	CodeSuccess = 0
	CodeError   = 1

	// 用户模块错误 100xx
	ErrUserNotFound = 10001
	ErrAuthFailed   = 10002
	ErrTokenInvalid = 10003
	ErrNoPermission = 10004

	// 社区模块错误 200xx
	ErrCommunityNotFound = 20001

	// 动态模块错误 300xx
	ErrPostNotFound    = 30001
	ErrCommentNotFound = 30002
	ErrInvalidVote     = 30003
	ErrNotPostOwner    = 30004
	ErrInvalidParent   = 30005

	// 系统错误 500xx
	ErrServerInternal  = 50001
	ErrInvalidParam    = 50002
	ErrTooManyRequests = 50003
	ErrSchemaMissing   = 50004 // 数据表缺失，提示先跑迁移
)
