package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go-crud-portal/internal/core/auth"
	"go-crud-portal/internal/core/server"
	mdw "go-crud-portal/internal/transport/http/middleware"
)

// NewAPIEngine JSON API：/api/v1 公开读，写操作要 admin 令牌
func NewAPIEngine(l *zap.Logger, jwter *auth.JWTer) *gin.Engine {
	r := server.NewBaseEngine(l)

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		mdw.SimpleRecovery(),
		mdw.Metrics(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	admin := api.Group("")
	admin.Use(mdw.AuthJWT(jwter, "admin"))

	MountAllAPI(api, admin)

	return r
}
