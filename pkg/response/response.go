package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response API 统一返回体，code 为业务码，0 表示成功
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Success 成功时返回数据
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeSuccess,
		Message: "success",
		Data:    data,
	})
}

// Error 错误返回，HTTP 状态码和业务码一起给
func Error(c *gin.Context, httpCode, errCode int, msg string) {
	c.JSON(httpCode, Response{Code: errCode, Message: msg})
}

// Fail 业务失败，HTTP 仍返回 200，由业务码区分
func Fail(c *gin.Context, errCode int, msg string) {
	c.JSON(http.StatusOK, Response{Code: errCode, Message: msg})
}
