package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gin-inventory/internal/domain"
)

const (
	LabelValidation   = "Validation Error"
	LabelNotFound     = "Not Found"
	LabelConflict     = "Conflict"
	LabelAuthFailure  = "Authentication Failed"
	LabelUnauthorized = "Unauthorized"
	LabelForbidden    = "Forbidden"
	LabelInternal     = "Internal Server Error"
)

// Err 集中分类：按错误形态定状态码和包体。
// 预期外的错误挂到 gin 的错误栈（进访问日志），对外只给笼统话术。
func Err(c *gin.Context, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		body := Fail(LabelValidation, ve.Error())
		body["fields"] = ve.Fields
		c.JSON(http.StatusBadRequest, body)
		return
	}
	var nfe *domain.NotFoundError
	if errors.As(err, &nfe) {
		c.JSON(http.StatusNotFound, Fail(LabelNotFound, nfe.Error()))
		return
	}
	var ce *domain.ConflictError
	if errors.As(err, &ce) {
		body := Fail(LabelConflict, ce.Error())
		body["field"] = ce.Field
		if ce.Blocking > 0 {
			body["blockingCount"] = ce.Blocking
		}
		c.JSON(http.StatusConflict, body)
		return
	}
	if errors.Is(err, domain.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, Fail(LabelAuthFailure, err.Error()))
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, Fail(LabelInternal, "an unexpected error occurred"))
}
