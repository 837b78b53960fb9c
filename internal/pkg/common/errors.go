package common

import (
	"errors"
	"net/http"
	"strings"

	"zoomies/pkg/logger"
	"zoomies/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const pgUndefinedTable = "42P01"

// IsSchemaMissing 判断错误是否为数据表缺失
// 直连 Postgres 时能拿到 SQLSTATE，其他驱动退化为错误信息匹配
func IsSchemaMissing(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUndefinedTable
	}
	return strings.Contains(err.Error(), "does not exist")
}

// HandleError 统一的服务层错误 → HTTP 响应映射
// 错误分三类：记录不存在（预期缺失）、表缺失（指引跑迁移）、其他（内部错误）
func HandleError(c *gin.Context, err error, notFoundCode int, notFoundMsg string) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Error(c, http.StatusNotFound, notFoundCode, notFoundMsg)
	case IsSchemaMissing(err):
		logger.Log.Error("Database schema missing", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, response.ErrSchemaMissing,
			"Database tables are missing. Run `go run ./cmd/migrate` to set up the schema")
	default:
		logger.Log.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
	}
}
