package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-inventory/internal/core/session"
	"go-gin-inventory/internal/domain"
	"go-gin-inventory/internal/service"
	mdw "go-gin-inventory/internal/transport/http/middleware"
	resp "go-gin-inventory/internal/transport/http/response"
)

const forgotMessage = "If an account with that email exists, a password reset link has been sent."

type AuthHandler struct {
	auth       *service.AuthService
	sessions   *session.Manager
	cookieName string
	secure     bool // 生产环境 cookie 只走 HTTPS
	devMode    bool // 开发模式才把 reset token 直接回给请求方
	log        *zap.Logger
}

func NewAuthHandler(auth *service.AuthService, sessions *session.Manager, cookieName string, secure, devMode bool, l *zap.Logger) *AuthHandler {
	return &AuthHandler{
		auth:       auth,
		sessions:   sessions,
		cookieName: cookieName,
		secure:     secure,
		devMode:    devMode,
		log:        l,
	}
}

type loginReq struct {
	Username string `form:"username" json:"username" binding:"required"` // 用户名或邮箱
	Password string `form:"password" json:"password" binding:"required"`
}

func (h *AuthHandler) LoginForm(c *gin.Context) {
	c.JSON(http.StatusOK, resp.OK(gin.H{"form": "login"}))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var in loginReq
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Fail(resp.LabelValidation, "username or email and password are required"))
		return
	}
	u, err := h.auth.Authenticate(c.Request.Context(), in.Username, in.Password)
	if err != nil {
		resp.Err(c, err)
		return
	}
	token, err := h.sessions.Establish(c.Request.Context(), u.ID)
	if err != nil {
		resp.Err(c, err)
		return
	}
	h.setSessionCookie(c, token, int(h.sessions.TTL().Seconds()))
	h.log.Info("user logged in", zap.String("user_id", u.ID))
	c.JSON(http.StatusOK, resp.OK(gin.H{"user": domain.IdentityOf(u)}))
}

type registerReq struct {
	Username        string `form:"username" json:"username"`
	Email           string `form:"email" json:"email"`
	Password        string `form:"password" json:"password"`
	ConfirmPassword string `form:"confirmPassword" json:"confirmPassword"`
	Phone           string `form:"phone" json:"phone"`
}

func (h *AuthHandler) RegisterForm(c *gin.Context) {
	c.JSON(http.StatusOK, resp.OK(gin.H{"form": "register"}))
}

func (h *AuthHandler) Register(c *gin.Context) {
	var in registerReq
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Fail(resp.LabelValidation, err.Error()))
		return
	}
	if in.ConfirmPassword != in.Password {
		ve := &domain.ValidationError{}
		ve.Add("confirmPassword", "password confirmation does not match password")
		resp.Err(c, ve)
		return
	}
	u, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
		Phone:    in.Phone,
	})
	if err != nil {
		resp.Err(c, err)
		return
	}
	h.log.Info("user registered", zap.String("user_id", u.ID), zap.String("username", u.Username))
	c.JSON(http.StatusCreated, resp.OK(gin.H{
		"message": "Registration successful! Please login.",
		"user":    domain.IdentityOf(u),
	}))
}

type forgotReq struct {
	Email string `form:"email" json:"email" binding:"required"`
}

func (h *AuthHandler) ForgotForm(c *gin.Context) {
	c.JSON(http.StatusOK, resp.OK(gin.H{"form": "forgot"}))
}

// Forgot 无论邮箱是否存在都回同一句话，防枚举。
// 开发模式把 token 带回响应，占位真实的邮件投递。
func (h *AuthHandler) Forgot(c *gin.Context) {
	var in forgotReq
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Fail(resp.LabelValidation, "please enter a valid email"))
		return
	}
	token, err := h.auth.ForgotPassword(c.Request.Context(), in.Email)
	if err != nil {
		resp.Err(c, err)
		return
	}
	out := gin.H{"message": forgotMessage}
	if token != "" && h.devMode {
		out["resetToken"] = token
	}
	c.JSON(http.StatusOK, resp.OK(out))
}

type resetReq struct {
	Token    string `form:"token" json:"token" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

func (h *AuthHandler) Reset(c *gin.Context) {
	var in resetReq
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Fail(resp.LabelValidation, "token and new password are required"))
		return
	}
	if err := h.auth.ResetPassword(c.Request.Context(), in.Token, in.Password); err != nil {
		resp.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"message": "Password has been reset. Please login."}))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(h.cookieName); err == nil && token != "" {
		if err := h.sessions.Invalidate(c.Request.Context(), token); err != nil {
			h.log.Warn("session invalidate failed", zap.Error(err))
		}
	}
	h.setSessionCookie(c, "", -1)
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) Profile(c *gin.Context) {
	id := mdw.IdentityFrom(c)
	u, err := h.auth.GetUser(c.Request.Context(), id.UserID)
	if err != nil {
		resp.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"user": u}))
}

type profileReq struct {
	Email string `form:"email" json:"email" binding:"required"`
	Phone string `form:"phone" json:"phone" binding:"required"`
}

func (h *AuthHandler) ProfileUpdate(c *gin.Context) {
	var in profileReq
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Fail(resp.LabelValidation, "email and phone are required"))
		return
	}
	id := mdw.IdentityFrom(c)
	u, err := h.auth.UpdateProfile(c.Request.Context(), id.UserID, in.Email, in.Phone)
	if err != nil {
		resp.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{
		"message": "Profile updated successfully",
		"user":    u,
	}))
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, token, maxAge, "/", "", h.secure, true)
}
