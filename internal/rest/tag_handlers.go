package rest

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/blog-portal/internal/blog"
)

// Tags handles GET /api/tags
// @Summary List tags
// @Description Retrieves all tags ordered by name
// @Tags tags
// @Produce json
// @Success 200 {array} rest.Tag
// @Failure 500 {object} rest.ErrorResponse
// @Router /api/tags [get]
func (h *Handler) Tags(c echo.Context) error {
	tags, err := h.tags.ListAll(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, Map(tags, NewTag))
}

// TagByID handles GET /api/tags/:id
// @Summary Get tag
// @Tags tags
// @Produce json
// @Param id path int true "Tag ID"
// @Success 200 {object} rest.Tag
// @Failure 400,404,500 {object} rest.ErrorResponse
// @Router /api/tags/{id} [get]
func (h *Handler) TagByID(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid id")
	}

	tag, err := h.tags.GetByID(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, NewTag(*tag))
}

// CreateTag handles POST /api/tags
// @Summary Create tag
// @Tags tags
// @Accept json
// @Produce json
// @Param tag body rest.TagRequest true "Tag"
// @Success 201 {object} rest.Tag
// @Failure 400 {object} rest.ValidationErrorResponse
// @Failure 401,409,500 {object} rest.ErrorResponse
// @Router /api/tags [post]
func (h *Handler) CreateTag(c echo.Context) error {
	var req TagRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request body")
	}

	tag, err := h.tags.Create(c.Request().Context(), req.Name)
	if err != nil {
		return h.fail(c, err)
	}

	return created(c, fmt.Sprintf("/api/tags/%d", tag.ID), NewTag(*tag))
}

// UpdateTag handles PUT /api/tags/:id
// @Summary Rename tag
// @Description A tagId in the body must match the path.
// @Tags tags
// @Accept json
// @Produce json
// @Param id path int true "Tag ID"
// @Param tag body rest.TagRequest true "Tag"
// @Success 200 {object} rest.Tag
// @Failure 400 {object} rest.ValidationErrorResponse
// @Failure 401,404,409,500 {object} rest.ErrorResponse
// @Router /api/tags/{id} [put]
func (h *Handler) UpdateTag(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid id")
	}

	var req TagRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request body")
	}

	tag, err := h.tags.Update(c.Request().Context(), id, blog.TagInput{ID: req.TagID, Name: req.Name})
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, NewTag(*tag))
}

// DeleteTag handles DELETE /api/tags/:id
// @Summary Delete tag
// @Description Deletes the tag and detaches it from every post.
// @Tags tags
// @Param id path int true "Tag ID"
// @Success 204
// @Failure 400,401,404,500 {object} rest.ErrorResponse
// @Router /api/tags/{id} [delete]
func (h *Handler) DeleteTag(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid id")
	}

	if err := h.tags.Delete(c.Request().Context(), id); err != nil {
		return h.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
