package rest

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-pg/urlstruct"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/blog-portal/internal/auth"
)

const (
	maxPageSize      = 100
	totalCountHeader = "X-Total-Count"
)

// Posts handles GET /api/posts
// @Summary List posts
// @Description Returns posts without content, newest first, with optional tag and author filters and pagination. The total number of matching posts is returned in X-Total-Count.
// @Tags posts
// @Produce json
// @Param tag_id query int false "Filter by tag ID"
// @Param author_id query string false "Filter by author ID"
// @Param page query int false "Page number (default: 1)"
// @Param page_size query int false "Page size, 0 returns every post"
// @Success 200 {array} rest.PostSummary
// @Failure 400,500 {object} rest.ErrorResponse
// @Router /api/posts [get]
func (h *Handler) Posts(c echo.Context) error {
	var req PostsRequest
	if err := urlstruct.Unmarshal(c.Request().Context(), c.QueryParams(), &req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request parameters")
	}

	switch {
	case req.TagID < 0:
		return h.handleError(c, nil, http.StatusBadRequest, "invalid tag_id")
	case req.Page < 0:
		return h.handleError(c, nil, http.StatusBadRequest, "invalid page")
	case req.PageSize < 0 || req.PageSize > maxPageSize:
		return h.handleError(c, nil, http.StatusBadRequest, "invalid page_size")
	}

	if req.AuthorID != "" {
		if _, err := uuid.Parse(req.AuthorID); err != nil {
			return h.handleError(c, err, http.StatusBadRequest, "invalid author_id")
		}
	}

	ctx := c.Request().Context()
	filter := req.filter()

	posts, err := h.posts.ListAll(ctx, filter)
	if err != nil {
		return h.fail(c, err)
	}

	count, err := h.posts.Count(ctx, filter)
	if err != nil {
		return h.fail(c, err)
	}

	c.Response().Header().Set(totalCountHeader, strconv.Itoa(count))

	return c.JSON(http.StatusOK, Map(posts, NewPostSummary))
}

// PostByID handles GET /api/posts/:id
// @Summary Get post details
// @Description Returns the post with tags and comments. Every call counts as one view.
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} rest.PostDetails
// @Failure 400,404,500 {object} rest.ErrorResponse
// @Router /api/posts/{id} [get]
func (h *Handler) PostByID(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid id")
	}

	details, err := h.posts.Details(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, NewPostDetails(*details))
}

// CreatePost handles POST /api/posts
// @Summary Create post
// @Description Creates a post authored by the current user. Unknown tag IDs are ignored.
// @Tags posts
// @Accept json
// @Produce json
// @Param post body rest.PostRequest true "Post"
// @Success 201 {object} rest.Post
// @Failure 400 {object} rest.ValidationErrorResponse
// @Failure 401,409,500 {object} rest.ErrorResponse
// @Router /api/posts [post]
func (h *Handler) CreatePost(c echo.Context) error {
	var req PostRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request body")
	}

	claims := auth.ClaimsFrom(c)
	post, err := h.posts.Create(c.Request().Context(), req.input(claims.UserID))
	if err != nil {
		return h.fail(c, err)
	}

	return created(c, fmt.Sprintf("/api/posts/%d", post.ID), NewPost(*post))
}

// UpdatePost handles PUT /api/posts/:id
// @Summary Update post
// @Description Rewrites the post and replaces its tag set. Allowed for the author and moderators.
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param post body rest.PostRequest true "Post"
// @Success 200 {object} rest.Post
// @Failure 400 {object} rest.ValidationErrorResponse
// @Failure 401,403,404,500 {object} rest.ErrorResponse
// @Router /api/posts/{id} [put]
func (h *Handler) UpdatePost(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid id")
	}

	var req PostRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request body")
	}

	ctx := c.Request().Context()
	current, err := h.posts.GetByID(ctx, id)
	if err != nil {
		return h.fail(c, err)
	}
	if err := h.canModify(c, current.AuthorID); err != nil {
		return h.fail(c, err)
	}

	post, err := h.posts.Update(ctx, id, req.input(current.AuthorID))
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, NewPost(*post))
}

// DeletePost handles DELETE /api/posts/:id
// @Summary Delete post
// @Description Deletes the post with its comments and tag links. Allowed for the author and moderators.
// @Tags posts
// @Param id path int true "Post ID"
// @Success 204
// @Failure 400,401,403,404,500 {object} rest.ErrorResponse
// @Router /api/posts/{id} [delete]
func (h *Handler) DeletePost(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid id")
	}

	ctx := c.Request().Context()
	current, err := h.posts.GetByID(ctx, id)
	if err != nil {
		return h.fail(c, err)
	}
	if err := h.canModify(c, current.AuthorID); err != nil {
		return h.fail(c, err)
	}

	if err := h.posts.Delete(ctx, id); err != nil {
		return h.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
