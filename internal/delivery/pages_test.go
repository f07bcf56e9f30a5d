package delivery

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniilsolovey/blog-portal/internal/auth"
	"github.com/daniilsolovey/blog-portal/internal/blog"
	"github.com/daniilsolovey/blog-portal/internal/blog/blogtest"
	"github.com/daniilsolovey/blog-portal/internal/db"
)

const (
	aliceID = "11111111-1111-4111-8111-111111111111"
	bobID   = "22222222-2222-4222-8222-222222222222"
)

type testSite struct {
	e        *echo.Echo
	sessions *auth.Sessions
}

func newTestSite(t *testing.T, s blog.Services) *testSite {
	t.Helper()

	renderer, err := NewRenderer()
	require.NoError(t, err)

	if s.Users == nil {
		s.Users = &blogtest.Users{}
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	sessions := auth.NewSessions(auth.NewTokens("test-secret", time.Hour), auth.NewMemoryRevocations(), log, false)
	h := NewHandler(s, sessions, log)

	e := echo.New()
	e.Renderer = renderer
	e.HTTPErrorHandler = h.HTTPErrorHandler(e.DefaultHTTPErrorHandler)
	e.Use(sessions.Middleware())
	h.RegisterRoutes(e.Group(""))

	return &testSite{e: e, sessions: sessions}
}

func (ts *testSite) get(t *testing.T, path, userID string) *httptest.ResponseRecorder {
	return ts.do(t, httptest.NewRequest(http.MethodGet, path, nil), userID)
}

func (ts *testSite) post(t *testing.T, path string, form url.Values, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return ts.do(t, req, userID)
}

func (ts *testSite) do(t *testing.T, req *http.Request, userID string) *httptest.ResponseRecorder {
	t.Helper()
	if userID != "" {
		token, _, err := ts.sessions.Start(userID, "user-"+userID[:4])
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	}

	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)
	return rec
}

func testPost(id int, authorID string) *blog.Post {
	return &blog.Post{
		Post: db.Post{
			ID:        id,
			Title:     fmt.Sprintf("Post %d", id),
			Summary:   "A short summary",
			Content:   "<p>Hello <strong>world</strong></p>",
			CreatedAt: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
			AuthorID:  authorID,
			Author:    &db.User{ID: authorID, UserName: "alice"},
		},
		Tags: []blog.Tag{{Tag: db.Tag{ID: 1, Name: "go"}}},
	}
}

func noTags() *blogtest.Tags {
	return &blogtest.Tags{ListAllFn: func(context.Context) ([]blog.Tag, error) {
		return []blog.Tag{{Tag: db.Tag{ID: 1, Name: "go"}}, {Tag: db.Tag{ID: 3, Name: "databases"}}}, nil
	}}
}

func TestNewRenderer(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	for _, name := range []string{"posts.html", "post.html", "post_form.html", "tags.html", "roles.html", "users.html", "login.html", "register.html", "error.html"} {
		assert.Contains(t, r.pages, name)
	}
	assert.NotContains(t, r.pages, layoutTemplate)
}

func TestPages_Posts(t *testing.T) {
	var got blog.PostFilter
	ts := newTestSite(t, blog.Services{
		Posts: &blogtest.Posts{
			ListAllFn: func(_ context.Context, f blog.PostFilter) ([]blog.Post, error) {
				got = f
				return []blog.Post{*testPost(1, aliceID)}, nil
			},
			CountFn: func(context.Context, blog.PostFilter) (int, error) { return 25, nil },
		},
		Tags: noTags(),
	})

	rec := ts.get(t, "/posts?tag_id=1&page=2", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Post 1")
	assert.Contains(t, body, "#go")
	assert.Contains(t, body, "/posts?page=3&amp;tag_id=1")
	require.NotNil(t, got.TagID)
	assert.Equal(t, 1, *got.TagID)
	assert.Equal(t, 2, got.Page)
	assert.Equal(t, postsPageSize, got.PageSize)

	rec = ts.get(t, "/", "")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, postsPath, rec.Header().Get(echo.HeaderLocation))
}

func TestPages_PostDetails(t *testing.T) {
	views := 0
	ts := newTestSite(t, blog.Services{
		Posts: &blogtest.Posts{
			DetailsFn: func(_ context.Context, id int) (*blog.PostDetails, error) {
				if id != 1 {
					return nil, fmt.Errorf("post %d: %w", id, blog.ErrNotFound)
				}
				views++
				return &blog.PostDetails{
					Post: *testPost(1, aliceID),
					Comments: []blog.Comment{{Comment: db.Comment{
						ID: 4, Content: "Great intro", PostID: 1, AuthorID: bobID,
						Author: &db.User{ID: bobID, UserName: "bob"},
					}}},
				}, nil
			},
		},
	})

	rec := ts.get(t, "/posts/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<strong>world</strong>")
	assert.Contains(t, body, "Great intro")
	assert.Contains(t, body, "Log in</a> to comment")
	assert.NotContains(t, body, "/posts/1/edit")
	assert.Equal(t, 1, views)

	rec = ts.get(t, "/posts/1", aliceID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/posts/1/edit")
	assert.Equal(t, 2, views)

	rec = ts.get(t, "/posts/2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "does not exist")
}

func TestPages_CreatePost(t *testing.T) {
	var got blog.PostInput
	ts := newTestSite(t, blog.Services{
		Posts: &blogtest.Posts{
			CreateFn: func(_ context.Context, in blog.PostInput) (*blog.Post, error) {
				got = in
				if in.Title == "" {
					return nil, blog.NewValidationError("title", "Title is required.")
				}
				return testPost(9, in.AuthorID), nil
			},
		},
		Tags: noTags(),
	})

	t.Run("Anonymous", func(t *testing.T) {
		rec := ts.get(t, "/posts/new", "")
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/account/login?returnUrl=%2Fposts%2Fnew", rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("Form", func(t *testing.T) {
		rec := ts.get(t, "/posts/new", aliceID)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "databases")
	})

	t.Run("Invalid", func(t *testing.T) {
		rec := ts.post(t, "/posts/new", url.Values{"summary": {"kept summary"}}, aliceID)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Title is required.")
		assert.Contains(t, rec.Body.String(), "kept summary")
	})

	t.Run("Created", func(t *testing.T) {
		rec := ts.post(t, "/posts/new", url.Values{
			"title":   {"Hello"},
			"summary": {"s"},
			"content": {"c"},
			"tagIds":  {"1", "3"},
		}, aliceID)
		require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
		assert.Equal(t, "/posts/9", rec.Header().Get(echo.HeaderLocation))
		assert.Equal(t, aliceID, got.AuthorID)
		assert.Equal(t, []int{1, 3}, got.TagIDs)
	})
}

func TestPages_EditPostForbidden(t *testing.T) {
	updated := false
	ts := newTestSite(t, blog.Services{
		Posts: &blogtest.Posts{
			GetByIDFn: func(_ context.Context, id int) (*blog.Post, error) { return testPost(id, aliceID), nil },
			UpdateFn: func(context.Context, int, blog.PostInput) (*blog.Post, error) {
				updated = true
				return nil, nil
			},
		},
		Tags: noTags(),
	})

	rec := ts.post(t, "/posts/1/edit", url.Values{"title": {"hijack"}}, bobID)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "do not have access")
	assert.False(t, updated)
}

func TestPages_UpdateTagMismatch(t *testing.T) {
	ts := newTestSite(t, blog.Services{
		Tags: &blogtest.Tags{
			UpdateFn: func(_ context.Context, id int, in blog.TagInput) (*blog.Tag, error) {
				if in.ID != id {
					return nil, blog.NewValidationError("id", "Tag id does not match.")
				}
				return &blog.Tag{Tag: db.Tag{ID: id, Name: in.Name}}, nil
			},
		},
	})

	rec := ts.post(t, "/tags/1/edit", url.Values{"tagId": {"2"}, "name": {"golang"}}, aliceID)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Tag id does not match.")

	rec = ts.post(t, "/tags/1/edit", url.Values{"tagId": {"1"}, "name": {"golang"}}, aliceID)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, tagsPath, rec.Header().Get(echo.HeaderLocation))
}

func TestPages_UpdateComment(t *testing.T) {
	var got blog.CommentInput
	ts := newTestSite(t, blog.Services{
		Comments: &blogtest.Comments{
			GetByIDFn: func(_ context.Context, id int) (*blog.Comment, error) {
				return &blog.Comment{Comment: db.Comment{ID: id, Content: "old", PostID: 3, AuthorID: aliceID}}, nil
			},
			UpdateFn: func(_ context.Context, id int, in blog.CommentInput) (*blog.Comment, error) {
				got = in
				if in.ID != id {
					return nil, blog.NewValidationError("id", "Comment id does not match.")
				}
				return &blog.Comment{Comment: db.Comment{ID: id, Content: in.Content, PostID: in.PostID, AuthorID: in.AuthorID}}, nil
			},
		},
	})

	rec := ts.get(t, "/comments/7/edit", aliceID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="commentId" value="7"`)

	rec = ts.post(t, "/comments/7/edit", url.Values{"content": {"new"}, "postId": {"3"}}, aliceID)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Comment id does not match.")
	assert.Contains(t, rec.Body.String(), `action="/comments/7/edit"`)

	rec = ts.post(t, "/comments/7/edit", url.Values{"commentId": {"7"}, "content": {"new"}, "postId": {"3"}}, aliceID)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/posts/3#comments", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, blog.CommentInput{ID: 7, Content: "new", PostID: 3, AuthorID: aliceID}, got)
}

func TestPages_AdminOnly(t *testing.T) {
	ts := newTestSite(t, blog.Services{
		Roles: &blogtest.Roles{
			ListAllFn: func(context.Context) ([]blog.Role, error) {
				return []blog.Role{{Role: db.Role{ID: "r1", Name: blog.RoleModerator, Description: "Moderates comments"}}}, nil
			},
		},
		Users: &blogtest.Users{
			IsInRoleFn: func(_ context.Context, userID, role string) (bool, error) {
				return userID == aliceID && role == blog.RoleAdmin, nil
			},
		},
	})

	assert.Equal(t, http.StatusSeeOther, ts.get(t, "/admin/roles", "").Code)
	assert.Equal(t, http.StatusForbidden, ts.get(t, "/admin/roles", bobID).Code)

	rec := ts.get(t, "/admin/roles", aliceID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Moderates comments")
	assert.Contains(t, rec.Body.String(), `href="/admin/users"`)
}

func TestPages_UpdateUser(t *testing.T) {
	var got blog.UserUpdate
	ts := newTestSite(t, blog.Services{
		Users: &blogtest.Users{
			IsInRoleFn: func(_ context.Context, userID, role string) (bool, error) {
				return userID == aliceID && role == blog.RoleAdmin, nil
			},
			UpdateFn: func(_ context.Context, id string, in blog.UserUpdate) (*blog.User, error) {
				got = in
				if in.Password == "short" {
					return nil, blog.NewValidationError("password", "Passwords must be at least 6 characters.")
				}
				return &blog.User{User: db.User{ID: id}}, nil
			},
		},
	})

	rec := ts.post(t, "/admin/users/"+bobID+"/edit", url.Values{
		"userName":    {"bob"},
		"email":       {"bob@example.com"},
		"isModerator": {"true"},
	}, aliceID)
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	assert.True(t, got.IsModerator)
	assert.False(t, got.IsUser)
	assert.False(t, got.IsAdmin)

	rec = ts.post(t, "/admin/users/"+bobID+"/edit", url.Values{
		"userName": {"bob"},
		"email":    {"bob@example.com"},
		"password": {"short"},
	}, aliceID)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "at least 6 characters")
	assert.NotContains(t, rec.Body.String(), `value="short"`)
}

func TestPages_Account(t *testing.T) {
	ts := newTestSite(t, blog.Services{
		Users: &blogtest.Users{
			AuthenticateFn: func(_ context.Context, login, password string) (*blog.User, error) {
				if login != "alice" || password != "Secret1" {
					return nil, blog.ErrUnauthorized
				}
				return &blog.User{User: db.User{ID: aliceID, UserName: "alice"}}, nil
			},
			RegisterFn: func(_ context.Context, in blog.Registration) (*blog.User, error) {
				return &blog.User{User: db.User{ID: bobID, UserName: in.Username}}, nil
			},
		},
	})

	tests := []struct {
		name       string
		form       url.Values
		wantStatus int
		wantTarget string
	}{
		{
			name:       "WrongPassword",
			form:       url.Values{"login": {"alice"}, "password": {"nope"}},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "ReturnURL",
			form:       url.Values{"login": {"alice"}, "password": {"Secret1"}, "returnUrl": {"/posts/new"}},
			wantStatus: http.StatusSeeOther,
			wantTarget: "/posts/new",
		},
		{
			name:       "ExternalReturnURL",
			form:       url.Values{"login": {"alice"}, "password": {"Secret1"}, "returnUrl": {"//evil.example"}},
			wantStatus: http.StatusSeeOther,
			wantTarget: postsPath,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.post(t, loginPath, tt.form, "")
			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantTarget != "" {
				assert.Equal(t, tt.wantTarget, rec.Header().Get(echo.HeaderLocation))
				assert.Contains(t, rec.Header().Get(echo.HeaderSetCookie), auth.CookieName+"=")
			}
		})
	}

	t.Run("RegisterPasswordMismatch", func(t *testing.T) {
		rec := ts.post(t, registerPath, url.Values{
			"userName": {"bob"}, "email": {"bob@example.com"},
			"password": {"Secret1"}, "confirmPassword": {"Secret2"},
		}, "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "do not match")
	})

	t.Run("Register", func(t *testing.T) {
		rec := ts.post(t, registerPath, url.Values{
			"userName": {"bob"}, "email": {"bob@example.com"},
			"password": {"Secret1"}, "confirmPassword": {"Secret1"},
		}, "")
		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, postsPath, rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("Logout", func(t *testing.T) {
		rec := ts.post(t, logoutPath, nil, aliceID)
		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Contains(t, rec.Header().Get(echo.HeaderSetCookie), "Max-Age=0")
	})
}

func TestPages_UnknownRoute(t *testing.T) {
	ts := newTestSite(t, blog.Services{})

	rec := ts.get(t, "/nowhere", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")
}

func TestLocalURL(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "", want: "/fallback"},
		{raw: "/posts/1", want: "/posts/1"},
		{raw: "//evil.example", want: "/fallback"},
		{raw: "/\\evil.example", want: "/fallback"},
		{raw: "https://evil.example", want: "/fallback"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, localURL(tt.raw, "/fallback"), tt.raw)
	}
}
