package router

import (
	"sync"

	"github.com/gin-gonic/gin"
)

// APIModule 在 /api/v1 下挂路由；admin 分组已带 JWT 校验
type APIModule interface {
	MountAPI(public, admin *gin.RouterGroup)
}

// PortalModule 在 /portal 下挂服务端渲染页面
type PortalModule interface {
	MountPortal(g *gin.RouterGroup)
}

var (
	mu         sync.RWMutex
	apiMods    []APIModule
	portalMods []PortalModule
)

// Register 按类型断言分发到对应列表
func Register(mod any) {
	mu.Lock()
	defer mu.Unlock()
	if m, ok := mod.(APIModule); ok {
		apiMods = append(apiMods, m)
	}
	if m, ok := mod.(PortalModule); ok {
		portalMods = append(portalMods, m)
	}
}

func MountAllAPI(public, admin *gin.RouterGroup) {
	mu.RLock()
	mods := append([]APIModule(nil), apiMods...)
	mu.RUnlock()
	for _, m := range mods {
		m.MountAPI(public, admin)
	}
}

func MountAllPortal(g *gin.RouterGroup) {
	mu.RLock()
	mods := append([]PortalModule(nil), portalMods...)
	mu.RUnlock()
	for _, m := range mods {
		m.MountPortal(g)
	}
}
