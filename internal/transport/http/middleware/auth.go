package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-inventory/internal/core/session"
	"go-gin-inventory/internal/domain"
	resp "go-gin-inventory/internal/transport/http/response"
)

const keyIdentity = "identity"

// CurrentUser 每个请求解析一次会话 cookie，把身份挂到请求上下文。
// 解析失败（比如 redis 挂了）只记日志，按匿名继续，不阻断只读路径。
func CurrentUser(cookieName string, sessions *session.Manager, l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}
		u, err := sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			l.Warn("session resolve failed", zap.Error(err))
			c.Next()
			return
		}
		if id := domain.IdentityOf(u); id != nil {
			c.Set(keyIdentity, id)
		}
		c.Next()
	}
}

// IdentityFrom 匿名返回 nil
func IdentityFrom(c *gin.Context) *domain.Identity {
	v, ok := c.Get(keyIdentity)
	if !ok {
		return nil
	}
	id, _ := v.(*domain.Identity)
	return id
}

// RequireAuthenticated 未登录跳登录页
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IdentityFrom(c) == nil {
			c.Redirect(http.StatusFound, "/auth/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin 非 admin 一律 403，不提示登录（不暴露路由是否存在）
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IdentityFrom(c).IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden,
				resp.Fail(resp.LabelForbidden, "access denied, admin privileges required"))
			return
		}
		c.Next()
	}
}

// RequireAnonymous 已登录用户别停留在登录/注册页
func RequireAnonymous() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IdentityFrom(c) != nil {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}
