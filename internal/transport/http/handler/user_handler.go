package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-crud-portal/internal/domain"
	"go-crud-portal/internal/service"
	resp "go-crud-portal/internal/transport/http/response"
)

type UserHandler struct{ svc *service.UserService }

func NewUserHandler(svc *service.UserService) *UserHandler { return &UserHandler{svc: svc} }

func (h *UserHandler) MountAPI(public, admin *gin.RouterGroup) {
	public.GET("/users", h.list)
	public.GET("/users/search", h.search)
	public.GET("/users/username/:username", h.getByUsername)
	public.GET("/users/:id", h.getByID)
	admin.POST("/users", h.create)
	admin.PUT("/users/:id", h.update)
	admin.DELETE("/users/:id", h.delete)
}

func (h *UserHandler) list(c *gin.Context) {
	users, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, err.Error()))
		return
	}
	if users == nil {
		users = []domain.User{}
	}
	c.JSON(http.StatusOK, resp.OK(users))
}

func (h *UserHandler) getByID(c *gin.Context) {
	u, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, err.Error()))
		return
	}
	if u == nil {
		c.JSON(http.StatusNotFound, resp.Error(resp.CodeNotFound, "user not found"))
		return
	}
	c.JSON(http.StatusOK, resp.OK(u))
}

func (h *UserHandler) getByUsername(c *gin.Context) {
	u, err := h.svc.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, err.Error()))
		return
	}
	if u == nil {
		c.JSON(http.StatusNotFound, resp.Error(resp.CodeNotFound, "user not found"))
		return
	}
	c.JSON(http.StatusOK, resp.OK(u))
}

// search 支持 email（正则，不区分大小写）和 firstName（子串）两种
func (h *UserHandler) search(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		users []domain.User
		err   error
	)
	switch {
	case c.Query("email") != "":
		users, err = h.svc.SearchByEmailPattern(ctx, c.Query("email"))
	case c.Query("firstName") != "":
		users, err = h.svc.SearchByFirstName(ctx, c.Query("firstName"))
	default:
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, "email or firstName query required"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, err.Error()))
		return
	}
	if users == nil {
		users = []domain.User{}
	}
	c.JSON(http.StatusOK, resp.OK(users))
}

type userIn struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (h *UserHandler) create(c *gin.Context) {
	var in userIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	u, err := h.svc.Create(c.Request.Context(), domain.User{
		Username:  in.Username,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp.OK(u))
}

func (h *UserHandler) update(c *gin.Context) {
	var in userIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	u, err := h.svc.Update(c.Request.Context(), c.Param("id"), domain.User{
		Username:  in.Username,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
	})
	if errors.Is(err, domain.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, resp.Error(resp.CodeNotFound, err.Error()))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp.OK(u))
}

// delete id 不存在也返回成功
func (h *UserHandler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"id": c.Param("id")}))
}
