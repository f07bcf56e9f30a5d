package delivery

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/blog-portal/internal/blog"
)

func (h *Handler) Comments(c echo.Context) error {
	comments, err := h.comments.ListAll(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}

	return h.render(c, http.StatusOK, "comments.html", "Comments", comments, nil)
}

func (h *Handler) EditComment(c echo.Context) error {
	comment, err := h.modifiableComment(c)
	if err != nil {
		return h.fail(c, err)
	}

	form := commentForm{ID: comment.ID, Content: comment.Content, PostID: comment.PostID}
	return h.render(c, http.StatusOK, "comment_form.html", "Edit comment", form, nil)
}

func (h *Handler) UpdateComment(c echo.Context) error {
	comment, err := h.modifiableComment(c)
	if err != nil {
		return h.fail(c, err)
	}

	var form commentForm
	if err := c.Bind(&form); err != nil {
		form.ID = comment.ID
		return h.render(c, http.StatusBadRequest, "comment_form.html", "Edit comment", form, map[string]string{blog.GeneralField: "Invalid form data."})
	}

	updated, err := h.comments.Update(c.Request().Context(), comment.ID, blog.CommentInput{
		ID:       form.ID,
		Content:  form.Content,
		PostID:   form.PostID,
		AuthorID: comment.AuthorID,
	})
	if errs, ok := formErrors(err); ok {
		form.ID = comment.ID
		return h.render(c, http.StatusBadRequest, "comment_form.html", "Edit comment", form, errs)
	} else if err != nil {
		return h.fail(c, err)
	}

	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/posts/%d#comments", updated.PostID))
}

func (h *Handler) ConfirmDeleteComment(c echo.Context) error {
	comment, err := h.modifiableComment(c)
	if err != nil {
		return h.fail(c, err)
	}

	return h.render(c, http.StatusOK, "comment_delete.html", "Delete comment", comment, nil)
}

func (h *Handler) DeleteComment(c echo.Context) error {
	comment, err := h.modifiableComment(c)
	if err != nil {
		return h.fail(c, err)
	}

	if err := h.comments.Delete(c.Request().Context(), comment.ID); err != nil {
		return h.fail(c, err)
	}

	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/posts/%d#comments", comment.PostID))
}

func (h *Handler) modifiableComment(c echo.Context) (*blog.Comment, error) {
	id, ok := intParam(c, "id")
	if !ok {
		return nil, blog.ErrNotFound
	}

	comment, err := h.comments.GetByID(c.Request().Context(), id)
	if err != nil {
		return nil, err
	}

	if err := h.canModify(c, comment.AuthorID); err != nil {
		return nil, err
	}

	return comment, nil
}
