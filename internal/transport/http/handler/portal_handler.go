package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-crud-portal/internal/domain"
	"go-crud-portal/internal/service"
)

// PortalHandler 服务端渲染的用户管理页。
// 输出不做转义，行为和它替代的旧 portlet 完全一致。
type PortalHandler struct {
	svc *service.UserService
	log *zap.Logger
}

func NewPortalHandler(svc *service.UserService, log *zap.Logger) *PortalHandler {
	return &PortalHandler{svc: svc, log: log}
}

func (h *PortalHandler) MountPortal(g *gin.RouterGroup) {
	g.GET("/users", h.users)
	g.POST("/users", h.users)
}

// users 请求带 action 参数时先处理动作再重定向回列表页
func (h *PortalHandler) users(c *gin.Context) {
	if action := c.Request.FormValue("action"); action != "" {
		h.processAction(c, action)
		c.Redirect(http.StatusSeeOther, c.Request.URL.Path)
		return
	}
	h.render(c)
}

func (h *PortalHandler) processAction(c *gin.Context, action string) {
	ctx := c.Request.Context()
	switch action {
	case "addUser":
		u := domain.User{
			Username:  c.Request.FormValue("username"),
			Email:     c.Request.FormValue("email"),
			FirstName: c.Request.FormValue("firstName"),
			LastName:  c.Request.FormValue("lastName"),
		}
		if _, err := h.svc.Create(ctx, u); err != nil {
			h.log.Error("portal: create user", zap.Error(err))
		}
	case "deleteUser":
		if id := c.Request.FormValue("userId"); id != "" {
			if err := h.svc.Delete(ctx, id); err != nil {
				h.log.Error("portal: delete user", zap.Error(err))
			}
		}
	default:
		// 未知 action 静默忽略
	}
}

func (h *PortalHandler) render(c *gin.Context) {
	var b strings.Builder
	users, err := h.svc.List(c.Request.Context())
	if err != nil {
		fmt.Fprintf(&b, "<div class='error'>Error loading users: %s</div>\n", err.Error())
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(b.String()))
		return
	}

	actionURL := c.Request.URL.Path

	b.WriteString("<div class='portlet-container'>\n")
	b.WriteString("<h3>User Management Portlet</h3>\n")
	b.WriteString("<table border='1' style='width:100%; border-collapse:collapse;'>\n")
	b.WriteString("<tr><th>Username</th><th>Email</th><th>First Name</th><th>Last Name</th><th>Actions</th></tr>\n")
	for _, u := range users {
		b.WriteString("<tr>\n")
		fmt.Fprintf(&b, "<td>%s</td>\n", u.Username)
		fmt.Fprintf(&b, "<td>%s</td>\n", u.Email)
		fmt.Fprintf(&b, "<td>%s</td>\n", u.FirstName)
		fmt.Fprintf(&b, "<td>%s</td>\n", u.LastName)
		fmt.Fprintf(&b, "<td><a href='%s?action=deleteUser&userId=%s'>Delete</a></td>\n", actionURL, u.ID.Hex())
		b.WriteString("</tr>\n")
	}
	b.WriteString("</table>\n")
	fmt.Fprintf(&b, `<form method='post' action='%s'>
<input type='hidden' name='action' value='addUser'/>
<input name='username' placeholder='Username'/>
<input name='email' placeholder='Email'/>
<input name='firstName' placeholder='First Name'/>
<input name='lastName' placeholder='Last Name'/>
<button type='submit'>Add User</button>
</form>
`, actionURL)
	b.WriteString("</div>\n")

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(b.String()))
}
