package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-crud-portal/internal/core/auth"
	resp "go-crud-portal/internal/transport/http/response"
)

// AuthHandler 用配置里的管理口令换一个 admin 角色的 JWT
type AuthHandler struct {
	jwter        *auth.JWTer
	passwordHash string
}

func NewAuthHandler(jwter *auth.JWTer, passwordHash string) *AuthHandler {
	return &AuthHandler{jwter: jwter, passwordHash: passwordHash}
}

func (h *AuthHandler) MountAPI(public, _ *gin.RouterGroup) {
	public.POST("/auth/token", h.token)
}

func (h *AuthHandler) token(c *gin.Context) {
	var in struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	if h.passwordHash == "" || !auth.CheckPassword(in.Password, h.passwordHash) {
		c.JSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, "invalid credentials"))
		return
	}
	tok, err := h.jwter.Issue("admin", "admin")
	if err != nil {
		c.JSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, "issue token failed"))
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"token": tok}))
}
