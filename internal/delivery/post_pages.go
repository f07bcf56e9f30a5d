package delivery

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/blog-portal/internal/auth"
	"github.com/daniilsolovey/blog-portal/internal/blog"
)

const postsPageSize = 10

type postList struct {
	Posts   []blog.Post
	Tags    []blog.Tag
	TagID   int
	Page    int
	Pages   int
	HasPrev bool
	HasNext bool
}

type postForm struct {
	ID      int    `form:"-"`
	Title   string `form:"title"`
	Summary string `form:"summary"`
	Content string `form:"content"`
	TagIDs  []int  `form:"tagIds"`
	AllTags []blog.Tag
}

type commentForm struct {
	ID      int    `form:"commentId"`
	Content string `form:"content"`
	PostID  int    `form:"postId"`
}

type postDetails struct {
	*blog.PostDetails
	CanModify bool
	Comment   commentForm
}

// Posts handles GET /posts
func (h *Handler) Posts(c echo.Context) error {
	ctx := c.Request().Context()

	tagID, _ := strconv.Atoi(c.QueryParam("tag_id"))
	page, _ := strconv.Atoi(c.QueryParam("page"))
	page = max(page, 1)

	filter := blog.PostFilter{Page: page, PageSize: postsPageSize}
	if tagID > 0 {
		filter.TagID = &tagID
	}

	posts, err := h.posts.ListAll(ctx, filter)
	if err != nil {
		return h.fail(c, err)
	}

	count, err := h.posts.Count(ctx, filter)
	if err != nil {
		return h.fail(c, err)
	}

	tags, err := h.tags.ListAll(ctx)
	if err != nil {
		return h.fail(c, err)
	}

	pages := (count + postsPageSize - 1) / postsPageSize
	return h.render(c, http.StatusOK, "posts.html", "Posts", postList{
		Posts:   posts,
		Tags:    tags,
		TagID:   tagID,
		Page:    page,
		Pages:   pages,
		HasPrev: page > 1,
		HasNext: page < pages,
	}, nil)
}

// PostDetails handles GET /posts/:id. Every view is counted.
func (h *Handler) PostDetails(c echo.Context) error {
	id, ok := intParam(c, "id")
	if !ok {
		return h.errorPage(c, http.StatusNotFound)
	}

	return h.renderDetails(c, http.StatusOK, id, commentForm{PostID: id}, nil)
}

// renderDetails shows the post page. Only the initial GET counts as a view, a re-rendered
// comment form does not.
func (h *Handler) renderDetails(c echo.Context, status, id int, form commentForm, errs map[string]string) error {
	ctx := c.Request().Context()

	var details *blog.PostDetails
	if errs == nil {
		var err error
		if details, err = h.posts.Details(ctx, id); err != nil {
			return h.fail(c, err)
		}
	} else {
		post, err := h.posts.GetByID(ctx, id)
		if err != nil {
			return h.fail(c, err)
		}
		comments, err := h.comments.ListByPost(ctx, id)
		if err != nil {
			return h.fail(c, err)
		}
		details = &blog.PostDetails{Post: *post, Comments: comments}
	}

	view := postDetails{PostDetails: details, Comment: form}
	if claims := auth.ClaimsFrom(c); claims != nil {
		view.CanModify = h.canModify(c, details.AuthorID) == nil
	}

	return h.render(c, status, "post.html", details.Title, view, errs)
}

// NewPost handles GET /posts/new
func (h *Handler) NewPost(c echo.Context) error {
	return h.renderPostForm(c, http.StatusOK, postForm{}, nil)
}

// CreatePost handles POST /posts/new
func (h *Handler) CreatePost(c echo.Context) error {
	var form postForm
	if err := c.Bind(&form); err != nil {
		return h.renderPostForm(c, http.StatusBadRequest, form, map[string]string{blog.GeneralField: "Invalid form data."})
	}

	post, err := h.posts.Create(c.Request().Context(), blog.PostInput{
		Title:    form.Title,
		Summary:  form.Summary,
		Content:  form.Content,
		AuthorID: auth.ClaimsFrom(c).UserID,
		TagIDs:   form.TagIDs,
	})
	if errs, ok := formErrors(err); ok {
		return h.renderPostForm(c, http.StatusBadRequest, form, errs)
	} else if err != nil {
		return h.fail(c, err)
	}

	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/posts/%d", post.ID))
}

// EditPost handles GET /posts/:id/edit
func (h *Handler) EditPost(c echo.Context) error {
	post, err := h.modifiablePost(c)
	if err != nil {
		return h.fail(c, err)
	}

	form := postForm{
		ID:      post.ID,
		Title:   post.Title,
		Summary: post.Summary,
		Content: post.Content,
	}
	for _, t := range post.Tags {
		form.TagIDs = append(form.TagIDs, t.ID)
	}

	return h.renderPostForm(c, http.StatusOK, form, nil)
}

// UpdatePost handles POST /posts/:id/edit
func (h *Handler) UpdatePost(c echo.Context) error {
	post, err := h.modifiablePost(c)
	if err != nil {
		return h.fail(c, err)
	}

	form := postForm{ID: post.ID}
	if err := c.Bind(&form); err != nil {
		return h.renderPostForm(c, http.StatusBadRequest, form, map[string]string{blog.GeneralField: "Invalid form data."})
	}

	_, err = h.posts.Update(c.Request().Context(), post.ID, blog.PostInput{
		Title:    form.Title,
		Summary:  form.Summary,
		Content:  form.Content,
		AuthorID: post.AuthorID,
		TagIDs:   form.TagIDs,
	})
	if errs, ok := formErrors(err); ok {
		return h.renderPostForm(c, http.StatusBadRequest, form, errs)
	} else if err != nil {
		return h.fail(c, err)
	}

	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/posts/%d", post.ID))
}

// ConfirmDeletePost handles GET /posts/:id/delete
func (h *Handler) ConfirmDeletePost(c echo.Context) error {
	post, err := h.modifiablePost(c)
	if err != nil {
		return h.fail(c, err)
	}

	return h.render(c, http.StatusOK, "post_delete.html", "Delete post", post, nil)
}

// DeletePost handles POST /posts/:id/delete
func (h *Handler) DeletePost(c echo.Context) error {
	post, err := h.modifiablePost(c)
	if err != nil {
		return h.fail(c, err)
	}

	if err := h.posts.Delete(c.Request().Context(), post.ID); err != nil {
		return h.fail(c, err)
	}

	return c.Redirect(http.StatusSeeOther, postsPath)
}

// AddComment handles POST /posts/:id/comments
func (h *Handler) AddComment(c echo.Context) error {
	id, ok := intParam(c, "id")
	if !ok {
		return h.errorPage(c, http.StatusNotFound)
	}

	var form commentForm
	if err := c.Bind(&form); err != nil {
		return h.renderDetails(c, http.StatusBadRequest, id, form, map[string]string{blog.GeneralField: "Invalid form data."})
	}
	form.PostID = id

	_, err := h.comments.Create(c.Request().Context(), blog.CommentInput{
		Content:  form.Content,
		PostID:   id,
		AuthorID: auth.ClaimsFrom(c).UserID,
	})
	if errs, ok := formErrors(err); ok {
		return h.renderDetails(c, http.StatusBadRequest, id, form, errs)
	} else if err != nil {
		return h.fail(c, err)
	}

	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/posts/%d#comments", id))
}

func (h *Handler) modifiablePost(c echo.Context) (*blog.Post, error) {
	id, ok := intParam(c, "id")
	if !ok {
		return nil, blog.ErrNotFound
	}

	post, err := h.posts.GetByID(c.Request().Context(), id)
	if err != nil {
		return nil, err
	}

	if err := h.canModify(c, post.AuthorID); err != nil {
		return nil, err
	}

	return post, nil
}

func (h *Handler) renderPostForm(c echo.Context, status int, form postForm, errs map[string]string) error {
	tags, err := h.tags.ListAll(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	form.AllTags = tags

	title := "New post"
	if form.ID != 0 {
		title = "Edit post"
	}

	return h.render(c, status, "post_form.html", title, form, errs)
}
