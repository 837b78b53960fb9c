package utils

// ClampLimit 动态流不分页只截断，这里统一默认值和上限
func ClampLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	if limit > 100 {
		return 100
	}
	return limit
}
