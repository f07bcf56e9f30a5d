package delivery

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/daniilsolovey/blog-portal/internal/auth"
	"github.com/daniilsolovey/blog-portal/internal/blog"
)

// CSRFField is the form field carrying the CSRF token.
const CSRFField = "_csrf"

// Handler serves the server-rendered web UI.
type Handler struct {
	posts    blog.PostService
	tags     blog.TagService
	comments blog.CommentService
	roles    blog.RoleService
	users    blog.UserService
	sessions *auth.Sessions
	log      *slog.Logger
}

func NewHandler(s blog.Services, sessions *auth.Sessions, log *slog.Logger) *Handler {
	return &Handler{
		posts:    s.Posts,
		tags:     s.Tags,
		comments: s.Comments,
		roles:    s.Roles,
		users:    s.Users,
		sessions: sessions,
		log:      log,
	}
}

// Page is the data every template receives.
type Page struct {
	Title       string
	User        *auth.Claims
	IsAdmin     bool
	IsModerator bool
	CSRF        string
	Errors      map[string]string
	Data        any
}

func (h *Handler) render(c echo.Context, status int, name, title string, data any, errs map[string]string) error {
	p := Page{
		Title:  title,
		User:   auth.ClaimsFrom(c),
		Errors: errs,
		Data:   data,
	}
	p.CSRF, _ = c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)

	if p.User != nil {
		ctx := c.Request().Context()
		// menu flags only, a failed lookup hides admin links
		p.IsAdmin, _ = h.users.IsInRole(ctx, p.User.UserID, blog.RoleAdmin)
		p.IsModerator, _ = h.users.IsInRole(ctx, p.User.UserID, blog.RoleModerator)
	}

	return c.Render(status, name, p)
}

func (h *Handler) errorPage(c echo.Context, status int) error {
	var title string
	switch status {
	case http.StatusForbidden:
		title = "Access denied"
	case http.StatusNotFound:
		title = "Page not found"
	default:
		status = http.StatusInternalServerError
		title = "Something went wrong"
	}

	return h.render(c, status, "error.html", title, status, nil)
}

// fail renders the error page that matches err.
func (h *Handler) fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, blog.ErrNotFound):
		return h.errorPage(c, http.StatusNotFound)
	case errors.Is(err, blog.ErrForbidden):
		return h.errorPage(c, http.StatusForbidden)
	case errors.Is(err, blog.ErrUnauthorized):
		return redirectToLogin(c)
	default:
		h.log.Error("web request failed", "error", err, "path", c.Request().URL.Path)
		return h.errorPage(c, http.StatusInternalServerError)
	}
}

// formErrors extracts messages to show next to a rejected form.
func formErrors(err error) (map[string]string, bool) {
	var ve *blog.ValidationError
	switch {
	case errors.As(err, &ve):
		return ve.Fields, true
	case errors.Is(err, blog.ErrConflict):
		return map[string]string{blog.GeneralField: "The record conflicts with existing data."}, true
	}
	return nil, false
}

// HTTPErrorHandler renders HTML error pages for web routes and defers to next elsewhere.
func (h *Handler) HTTPErrorHandler(next echo.HTTPErrorHandler) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed || strings.HasPrefix(c.Request().URL.Path, "/api/") || strings.HasPrefix(c.Request().URL.Path, "/rpc") {
			next(err, c)
			return
		}

		status := http.StatusInternalServerError
		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
		}

		switch status {
		case http.StatusNotFound, http.StatusMethodNotAllowed:
			status = http.StatusNotFound
		case http.StatusForbidden:
		case http.StatusTooManyRequests, http.StatusBadRequest:
			next(err, c)
			return
		default:
			h.log.Error("unhandled web error", "error", err, "path", c.Request().URL.Path)
		}

		if rerr := h.errorPage(c, status); rerr != nil {
			next(err, c)
		}
	}
}

func (h *Handler) requireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if auth.ClaimsFrom(c) == nil {
			return redirectToLogin(c)
		}
		return next(c)
	}
}

func (h *Handler) requireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := auth.ClaimsFrom(c)
			if claims == nil {
				return redirectToLogin(c)
			}

			ok, err := h.users.IsInRole(c.Request().Context(), claims.UserID, role)
			if err != nil {
				return h.fail(c, err)
			} else if !ok {
				return h.errorPage(c, http.StatusForbidden)
			}

			return next(c)
		}
	}
}

// canModify allows the author of a record and moderators to change it.
func (h *Handler) canModify(c echo.Context, authorID string) error {
	claims := auth.ClaimsFrom(c)
	if claims == nil {
		return blog.ErrUnauthorized
	} else if claims.UserID == authorID {
		return nil
	}

	for _, role := range []string{blog.RoleAdmin, blog.RoleModerator} {
		ok, err := h.users.IsInRole(c.Request().Context(), claims.UserID, role)
		if err != nil {
			return err
		} else if ok {
			return nil
		}
	}

	return fmt.Errorf("user %s cannot modify record of %s: %w", claims.UserID, authorID, blog.ErrForbidden)
}

func redirectToLogin(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, loginPath+"?returnUrl="+url.QueryEscape(c.Request().URL.RequestURI()))
}

// localURL accepts only same-site paths as redirect targets.
func localURL(raw, fallback string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return fallback
	}
	return raw
}

func intParam(c echo.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	return id, err == nil && id > 0
}
