package delivery

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/blog-portal/internal/blog"
)

const tagsPath = "/tags"

type tagForm struct {
	ID   int    `form:"tagId"`
	Name string `form:"name"`
}

func (h *Handler) Tags(c echo.Context) error {
	tags, err := h.tags.ListAll(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}

	return h.render(c, http.StatusOK, "tags.html", "Tags", tags, nil)
}

func (h *Handler) NewTag(c echo.Context) error {
	return h.render(c, http.StatusOK, "tag_form.html", "New tag", tagForm{}, nil)
}

func (h *Handler) CreateTag(c echo.Context) error {
	var form tagForm
	if err := c.Bind(&form); err != nil {
		return h.render(c, http.StatusBadRequest, "tag_form.html", "New tag", form, map[string]string{blog.GeneralField: "Invalid form data."})
	}

	_, err := h.tags.Create(c.Request().Context(), form.Name)
	if errs, ok := formErrors(err); ok {
		return h.render(c, http.StatusBadRequest, "tag_form.html", "New tag", form, errs)
	} else if err != nil {
		return h.fail(c, err)
	}

	return c.Redirect(http.StatusSeeOther, tagsPath)
}

func (h *Handler) EditTag(c echo.Context) error {
	tag, err := h.tagFromPath(c)
	if err != nil {
		return h.fail(c, err)
	}

	return h.render(c, http.StatusOK, "tag_form.html", "Edit tag", tagForm{ID: tag.ID, Name: tag.Name}, nil)
}

// UpdateTag handles POST /tags/:id/edit. The hidden tagId field must match the path.
func (h *Handler) UpdateTag(c echo.Context) error {
	id, ok := intParam(c, "id")
	if !ok {
		return h.errorPage(c, http.StatusNotFound)
	}

	var form tagForm
	if err := c.Bind(&form); err != nil {
		return h.render(c, http.StatusBadRequest, "tag_form.html", "Edit tag", form, map[string]string{blog.GeneralField: "Invalid form data."})
	}

	_, err := h.tags.Update(c.Request().Context(), id, blog.TagInput{ID: form.ID, Name: form.Name})
	if errs, ok := formErrors(err); ok {
		form.ID = id
		return h.render(c, http.StatusBadRequest, "tag_form.html", "Edit tag", form, errs)
	} else if err != nil {
		return h.fail(c, err)
	}

	return c.Redirect(http.StatusSeeOther, tagsPath)
}

func (h *Handler) ConfirmDeleteTag(c echo.Context) error {
	tag, err := h.tagFromPath(c)
	if err != nil {
		return h.fail(c, err)
	}

	return h.render(c, http.StatusOK, "tag_delete.html", "Delete tag", tag, nil)
}

func (h *Handler) DeleteTag(c echo.Context) error {
	id, ok := intParam(c, "id")
	if !ok {
		return h.errorPage(c, http.StatusNotFound)
	}

	if err := h.tags.Delete(c.Request().Context(), id); err != nil {
		return h.fail(c, err)
	}

	return c.Redirect(http.StatusSeeOther, tagsPath)
}

func (h *Handler) tagFromPath(c echo.Context) (*blog.Tag, error) {
	id, ok := intParam(c, "id")
	if !ok {
		return nil, blog.ErrNotFound
	}

	return h.tags.GetByID(c.Request().Context(), id)
}
