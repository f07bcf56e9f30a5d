package delivery

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/blog-portal/internal/blog"
)

const (
	postsPath    = "/posts"
	loginPath    = "/account/login"
	registerPath = "/account/register"
	logoutPath   = "/account/logout"
)

// RegisterRoutes registers the web UI on g. The group is expected to carry the session
// and CSRF middleware.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	login := h.requireLogin
	admin := h.requireRole(blog.RoleAdmin)

	g.GET("/", func(c echo.Context) error { return c.Redirect(http.StatusFound, postsPath) })

	g.GET(postsPath, h.Posts)
	g.GET("/posts/new", h.NewPost, login)
	g.POST("/posts/new", h.CreatePost, login)
	g.GET("/posts/:id", h.PostDetails)
	g.GET("/posts/:id/edit", h.EditPost, login)
	g.POST("/posts/:id/edit", h.UpdatePost, login)
	g.GET("/posts/:id/delete", h.ConfirmDeletePost, login)
	g.POST("/posts/:id/delete", h.DeletePost, login)
	g.POST("/posts/:id/comments", h.AddComment, login)

	g.GET("/tags", h.Tags)
	g.GET("/tags/new", h.NewTag, login)
	g.POST("/tags/new", h.CreateTag, login)
	g.GET("/tags/:id/edit", h.EditTag, login)
	g.POST("/tags/:id/edit", h.UpdateTag, login)
	g.GET("/tags/:id/delete", h.ConfirmDeleteTag, login)
	g.POST("/tags/:id/delete", h.DeleteTag, login)

	g.GET("/comments", h.Comments)
	g.GET("/comments/:id/edit", h.EditComment, login)
	g.POST("/comments/:id/edit", h.UpdateComment, login)
	g.GET("/comments/:id/delete", h.ConfirmDeleteComment, login)
	g.POST("/comments/:id/delete", h.DeleteComment, login)

	g.GET("/admin/roles", h.Roles, admin)
	g.GET("/admin/roles/new", h.NewRole, admin)
	g.POST("/admin/roles/new", h.CreateRole, admin)
	g.GET("/admin/roles/:id/edit", h.EditRole, admin)
	g.POST("/admin/roles/:id/edit", h.UpdateRole, admin)
	g.GET("/admin/roles/:id/delete", h.ConfirmDeleteRole, admin)
	g.POST("/admin/roles/:id/delete", h.DeleteRole, admin)

	g.GET("/admin/users", h.Users, admin)
	g.GET("/admin/users/:id/edit", h.EditUser, admin)
	g.POST("/admin/users/:id/edit", h.UpdateUser, admin)

	g.GET(loginPath, h.LoginForm)
	g.POST(loginPath, h.Login)
	g.GET(registerPath, h.RegisterForm)
	g.POST(registerPath, h.Register)
	g.POST(logoutPath, h.Logout)

	g.GET("/error/:code", h.ErrorPage)
}

// ErrorPage renders the 403, 404 or 500 page.
func (h *Handler) ErrorPage(c echo.Context) error {
	code, _ := intParam(c, "code")
	return h.errorPage(c, code)
}
