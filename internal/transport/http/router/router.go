package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go-gin-inventory/internal/core/session"
	"go-gin-inventory/internal/transport/http/handler"
	mdw "go-gin-inventory/internal/transport/http/middleware"
)

type Deps struct {
	Sessions   *session.Manager
	CookieName string

	Auth      *handler.AuthHandler
	Home      *handler.HomeHandler
	API       *handler.APIHandler
	Suppliers *handler.SupplierHandler
	Products  *handler.ProductHandler
}

func NewEngine(l *zap.Logger, d Deps) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
		mdw.CurrentUser(d.CookieName, d.Sessions, l), // 会话只解析这一次
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 首页：开放读取
	r.GET("/", d.Home.Home)

	// 认证
	auth := r.Group("/auth")
	{
		anon := auth.Group("", mdw.RequireAnonymous())
		anon.GET("/login", d.Auth.LoginForm)
		anon.POST("/login", d.Auth.Login)
		anon.GET("/register", d.Auth.RegisterForm)
		anon.POST("/register", d.Auth.Register)
		anon.GET("/forgot", d.Auth.ForgotForm)
		anon.POST("/forgot", d.Auth.Forgot)
		anon.POST("/reset", d.Auth.Reset)

		auth.GET("/logout", d.Auth.Logout)

		me := auth.Group("", mdw.RequireAuthenticated())
		me.GET("/profile", d.Auth.Profile)
		me.POST("/profile", d.Auth.ProfileUpdate)
	}

	// 供应商/商品管理：先登录再验 admin
	sup := r.Group("/suppliers", mdw.RequireAuthenticated(), mdw.RequireAdmin())
	{
		sup.GET("", d.Suppliers.List)
		sup.GET("/create", d.Suppliers.CreateForm)
		sup.POST("/create", d.Suppliers.Create)
		sup.GET("/:id", d.Suppliers.Detail)
		sup.GET("/:id/update", d.Suppliers.UpdateForm)
		sup.POST("/:id/update", d.Suppliers.Update)
		sup.GET("/:id/delete", d.Suppliers.DeleteForm)
		sup.POST("/:id/delete", d.Suppliers.Delete)
	}

	prod := r.Group("/products", mdw.RequireAuthenticated(), mdw.RequireAdmin())
	{
		prod.GET("", d.Products.List)
		prod.GET("/create", d.Products.CreateForm)
		prod.POST("/create", d.Products.Create)
		prod.GET("/:id", d.Products.Detail)
		prod.GET("/:id/update", d.Products.UpdateForm)
		prod.POST("/:id/update", d.Products.Update)
		prod.GET("/:id/delete", d.Products.DeleteForm)
		prod.POST("/:id/delete", d.Products.Delete)
	}

	// 只读 JSON 接口，前端 AJAX 调
	api := r.Group("/api", cors.Default())
	{
		api.GET("/search", d.API.Search)
		api.GET("/suppliers", d.API.Suppliers)
		api.GET("/stats", d.API.Stats)
	}

	return r
}
