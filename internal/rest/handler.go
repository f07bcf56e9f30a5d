package rest

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/blog-portal/internal/auth"
	"github.com/daniilsolovey/blog-portal/internal/blog"
)

// Handler serves the JSON API over the blog services.
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

func (h *Handler) handleError(c echo.Context, err error, statusCode int, message string) error {
	if statusCode >= http.StatusInternalServerError {
		h.log.Error("handleError", "error", err, "statusCode", statusCode, "message", message)
	} else {
		h.log.Debug("handleError", "error", err, "statusCode", statusCode, "message", message)
	}
	return c.JSON(statusCode, ErrorResponse{Error: message})
}

// fail maps service errors to API responses.
func (h *Handler) fail(c echo.Context, err error) error {
	var ve *blog.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, ValidationErrorResponse{Errors: ve.Fields})
	case errors.Is(err, blog.ErrNotFound):
		return h.handleError(c, err, http.StatusNotFound, "not found")
	case errors.Is(err, blog.ErrConflict):
		return h.handleError(c, err, http.StatusConflict, "conflict")
	case errors.Is(err, blog.ErrUnauthorized):
		return h.handleError(c, err, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, blog.ErrForbidden):
		return h.handleError(c, err, http.StatusForbidden, "forbidden")
	default:
		return h.handleError(c, err, http.StatusInternalServerError, "internal error")
	}
}

// requireUser rejects anonymous requests with 401.
func (h *Handler) requireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if auth.ClaimsFrom(c) == nil {
			return h.fail(c, blog.ErrUnauthorized)
		}
		return next(c)
	}
}

// requireRole rejects requests of users outside role with 403.
func (h *Handler) requireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := auth.ClaimsFrom(c)
			if claims == nil {
				return h.fail(c, blog.ErrUnauthorized)
			}

			ok, err := h.users.IsInRole(c.Request().Context(), claims.UserID, role)
			if err != nil {
				return h.fail(c, err)
			} else if !ok {
				return h.fail(c, fmt.Errorf("user %s is not in role %s: %w", claims.UserID, role, blog.ErrForbidden))
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

func created(c echo.Context, location string, body any) error {
	c.Response().Header().Set(echo.HeaderLocation, location)
	return c.JSON(http.StatusCreated, body)
}

func intParam(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, c.Param(name))
	}
	return id, nil
}

// Health handles GET /health
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
