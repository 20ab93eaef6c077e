package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	mdw "go-crud-portal/internal/transport/http/middleware"
)

// NewPortalEngine 旧 portlet 式 HTML 界面；和原来一样不带鉴权
func NewPortalEngine(l *zap.Logger) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(100, 200),
		mdw.ConcurrencyLimit(100),
		mdw.MaxBodyBytes(256<<10),
		mdw.Timeout(10*time.Second),
		mdw.SimpleRecovery(),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })

	portal := r.Group("/portal")
	MountAllPortal(portal)

	return r
}
