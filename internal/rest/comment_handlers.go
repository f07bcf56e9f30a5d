package rest

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/blog-portal/internal/auth"
	"github.com/daniilsolovey/blog-portal/internal/blog"
)

// Comments handles GET /api/comments
// @Summary List comments
// @Description Returns all comments newest first, or the comments of one post oldest first when post_id is set.
// @Tags comments
// @Produce json
// @Param post_id query int false "Filter by post ID"
// @Success 200 {array} rest.Comment
// @Failure 400,500 {object} rest.ErrorResponse
// @Router /api/comments [get]
func (h *Handler) Comments(c echo.Context) error {
	var (
		comments []blog.Comment
		err      error
	)

	ctx := c.Request().Context()
	if raw := c.QueryParam("post_id"); raw != "" {
		postID, convErr := strconv.Atoi(raw)
		if convErr != nil || postID <= 0 {
			return h.handleError(c, convErr, http.StatusBadRequest, "invalid post_id")
		}
		comments, err = h.comments.ListByPost(ctx, postID)
	} else {
		comments, err = h.comments.ListAll(ctx)
	}
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, Map(comments, NewComment))
}

// CommentByID handles GET /api/comments/:id
// @Summary Get comment
// @Tags comments
// @Produce json
// @Param id path int true "Comment ID"
// @Success 200 {object} rest.Comment
// @Failure 400,404,500 {object} rest.ErrorResponse
// @Router /api/comments/{id} [get]
func (h *Handler) CommentByID(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid id")
	}

	comment, err := h.comments.GetByID(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, NewComment(*comment))
}

// CreateComment handles POST /api/comments
// @Summary Create comment
// @Description Adds a comment by the current user to an existing post.
// @Tags comments
// @Accept json
// @Produce json
// @Param comment body rest.CommentRequest true "Comment"
// @Success 201 {object} rest.Comment
// @Failure 400 {object} rest.ValidationErrorResponse
// @Failure 401,500 {object} rest.ErrorResponse
// @Router /api/comments [post]
func (h *Handler) CreateComment(c echo.Context) error {
	var req CommentRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request body")
	}

	claims := auth.ClaimsFrom(c)
	comment, err := h.comments.Create(c.Request().Context(), req.input(claims.UserID))
	if err != nil {
		return h.fail(c, err)
	}

	return created(c, fmt.Sprintf("/api/comments/%d", comment.ID), NewComment(*comment))
}

// UpdateComment handles PUT /api/comments/:id
// @Summary Update comment
// @Description Rewrites the comment. A commentId in the body must match the path. Allowed for the author and moderators.
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Comment ID"
// @Param comment body rest.CommentRequest true "Comment"
// @Success 200 {object} rest.Comment
// @Failure 400 {object} rest.ValidationErrorResponse
// @Failure 401,403,404,500 {object} rest.ErrorResponse
// @Router /api/comments/{id} [put]
func (h *Handler) UpdateComment(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid id")
	}

	var req CommentRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request body")
	}

	ctx := c.Request().Context()
	current, err := h.comments.GetByID(ctx, id)
	if err != nil {
		return h.fail(c, err)
	}
	if err := h.canModify(c, current.AuthorID); err != nil {
		return h.fail(c, err)
	}

	comment, err := h.comments.Update(ctx, id, req.input(current.AuthorID))
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, NewComment(*comment))
}

// DeleteComment handles DELETE /api/comments/:id
// @Summary Delete comment
// @Tags comments
// @Param id path int true "Comment ID"
// @Success 204
// @Failure 400,401,403,404,500 {object} rest.ErrorResponse
// @Router /api/comments/{id} [delete]
func (h *Handler) DeleteComment(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid id")
	}

	ctx := c.Request().Context()
	current, err := h.comments.GetByID(ctx, id)
	if err != nil {
		return h.fail(c, err)
	}
	if err := h.canModify(c, current.AuthorID); err != nil {
		return h.fail(c, err)
	}

	if err := h.comments.Delete(ctx, id); err != nil {
		return h.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
