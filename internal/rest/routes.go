package rest

import (
	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/blog-portal/internal/blog"
)

const (
	// API paths, relative to the /api group
	postsPath    = "/posts"
	postPath     = "/posts/:id"
	commentsPath = "/comments"
	commentPath  = "/comments/:id"
	tagsPath     = "/tags"
	tagPath      = "/tags/:id"
	rolesPath    = "/roles"
	rolePath     = "/roles/:id"
	usersPath    = "/users"
	userPath     = "/users/:id"
	registerPath = "/account/register"
	loginPath    = "/account/login"
	logoutPath   = "/account/logout"
)

// RegisterRoutes registers the API on g, which is expected to be mounted at /api
// behind the session middleware.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	admin := h.requireRole(blog.RoleAdmin)

	g.GET(postsPath, h.Posts)
	g.GET(postPath, h.PostByID)
	g.POST(postsPath, h.CreatePost, h.requireUser)
	g.PUT(postPath, h.UpdatePost, h.requireUser)
	g.DELETE(postPath, h.DeletePost, h.requireUser)

	g.GET(commentsPath, h.Comments)
	g.GET(commentPath, h.CommentByID)
	g.POST(commentsPath, h.CreateComment, h.requireUser)
	g.PUT(commentPath, h.UpdateComment, h.requireUser)
	g.DELETE(commentPath, h.DeleteComment, h.requireUser)

	g.GET(tagsPath, h.Tags)
	g.GET(tagPath, h.TagByID)
	g.POST(tagsPath, h.CreateTag, h.requireUser)
	g.PUT(tagPath, h.UpdateTag, h.requireUser)
	g.DELETE(tagPath, h.DeleteTag, h.requireUser)

	g.GET(rolesPath, h.Roles, admin)
	g.GET(rolePath, h.RoleByID, admin)
	g.POST(rolesPath, h.CreateRole, admin)
	g.PUT(rolePath, h.UpdateRole, admin)
	g.DELETE(rolePath, h.DeleteRole, admin)

	g.GET(usersPath, h.Users, admin)
	g.GET(userPath, h.UserByID, admin)
	g.PUT(userPath, h.UpdateUser, admin)

	g.POST(registerPath, h.Register)
	g.POST(loginPath, h.Login)
	g.POST(logoutPath, h.Logout)
}
