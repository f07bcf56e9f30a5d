package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
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

type testServer struct {
	e        *echo.Echo
	sessions *auth.Sessions
}

func newTestServer(s blog.Services) *testServer {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	sessions := auth.NewSessions(auth.NewTokens("test-secret", time.Hour), auth.NewMemoryRevocations(), log, false)

	e := echo.New()
	e.Use(sessions.Middleware())
	NewHandler(s, sessions, log).RegisterRoutes(e.Group("/api"))

	return &testServer{e: e, sessions: sessions}
}

func (ts *testServer) token(t *testing.T, userID, userName string) string {
	t.Helper()
	token, _, err := ts.sessions.Start(userID, userName)
	require.NoError(t, err)
	return token
}

func (ts *testServer) do(method, path, body, token string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func testPost(id int, authorID string) *blog.Post {
	return &blog.Post{
		Post: db.Post{
			ID:        id,
			Title:     fmt.Sprintf("Post %d", id),
			Summary:   "summary",
			Content:   "<p>content</p>",
			CreatedAt: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
			AuthorID:  authorID,
			Author:    &db.User{ID: authorID, UserName: "alice", PasswordHash: "secret-hash"},
		},
		Tags: []blog.Tag{{Tag: db.Tag{ID: 1, Name: "go"}}},
	}
}

func TestHandler_Posts(t *testing.T) {
	var got blog.PostFilter
	ts := newTestServer(blog.Services{Posts: &blogtest.Posts{
		ListAllFn: func(_ context.Context, f blog.PostFilter) ([]blog.Post, error) {
			got = f
			return []blog.Post{*testPost(1, aliceID)}, nil
		},
		CountFn: func(context.Context, blog.PostFilter) (int, error) { return 7, nil },
	}})

	t.Run("SuccessWithFilters", func(t *testing.T) {
		rec := ts.do(http.MethodGet, "/api/posts?tag_id=2&author_id="+aliceID+"&page=2&page_size=5", "", "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		require.NotNil(t, got.TagID)
		require.NotNil(t, got.AuthorID)
		assert.Equal(t, 2, *got.TagID)
		assert.Equal(t, aliceID, *got.AuthorID)
		assert.Equal(t, 2, got.Page)
		assert.Equal(t, 5, got.PageSize)
		assert.Equal(t, "7", rec.Header().Get(totalCountHeader))

		assert.NotContains(t, rec.Body.String(), "content")
		assert.NotContains(t, rec.Body.String(), "secret-hash")

		posts := decode[[]PostSummary](t, rec)
		require.Len(t, posts, 1)
		assert.Equal(t, "Post 1", posts[0].Title)
		assert.Equal(t, []Tag{{TagID: 1, Name: "go"}}, posts[0].Tags)
	})

	t.Run("NoFilters", func(t *testing.T) {
		rec := ts.do(http.MethodGet, "/api/posts", "", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, got.TagID)
		assert.Nil(t, got.AuthorID)
	})

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{name: "InvalidTagID", query: "tag_id=abc", want: "invalid request parameters"},
		{name: "NegativePage", query: "page=-1", want: "invalid page"},
		{name: "PageSizeTooLarge", query: "page_size=1000", want: "invalid page_size"},
		{name: "InvalidAuthorID", query: "author_id=nope", want: "invalid author_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(http.MethodGet, "/api/posts?"+tt.query, "", "")
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.want, decode[ErrorResponse](t, rec).Error)
		})
	}
}

func TestHandler_PostByID(t *testing.T) {
	ts := newTestServer(blog.Services{Posts: &blogtest.Posts{
		DetailsFn: func(_ context.Context, id int) (*blog.PostDetails, error) {
			if id != 1 {
				return nil, fmt.Errorf("post %d: %w", id, blog.ErrNotFound)
			}
			post := testPost(1, aliceID)
			post.ViewCount = 3
			return &blog.PostDetails{
				Post: *post,
				Comments: []blog.Comment{{Comment: db.Comment{
					ID: 5, Content: "Great intro", PostID: 1, AuthorID: bobID,
					Author: &db.User{ID: bobID, UserName: "bob"},
				}}},
			}, nil
		},
	}})

	rec := ts.do(http.MethodGet, "/api/posts/1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	details := decode[PostDetails](t, rec)
	assert.Equal(t, 3, details.ViewCount)
	assert.Equal(t, "<p>content</p>", details.Content)
	require.Len(t, details.Comments, 1)
	assert.Equal(t, "bob", details.Comments[0].Author.UserName)

	assert.Equal(t, http.StatusNotFound, ts.do(http.MethodGet, "/api/posts/2", "", "").Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(http.MethodGet, "/api/posts/abc", "", "").Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(http.MethodGet, "/api/posts/0", "", "").Code)
}

func TestHandler_CreatePost(t *testing.T) {
	var got blog.PostInput
	posts := &blogtest.Posts{
		CreateFn: func(_ context.Context, in blog.PostInput) (*blog.Post, error) {
			got = in
			switch in.Title {
			case "":
				return nil, blog.NewValidationError("title", "Title is required")
			case "dup":
				return nil, fmt.Errorf("db create post: %w", blog.ErrConflict)
			case "boom":
				return nil, errors.New("connection reset")
			}
			return testPost(9, in.AuthorID), nil
		},
	}
	ts := newTestServer(blog.Services{Posts: posts})
	token := ts.token(t, aliceID, "alice")

	t.Run("Anonymous", func(t *testing.T) {
		rec := ts.do(http.MethodPost, "/api/posts", `{"title":"x"}`, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Created", func(t *testing.T) {
		rec := ts.do(http.MethodPost, "/api/posts", `{"title":"Hello","content":"c","tagIds":[1,2]}`, token)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Equal(t, "/api/posts/9", rec.Header().Get(echo.HeaderLocation))
		assert.Equal(t, aliceID, got.AuthorID)
		assert.Equal(t, []int{1, 2}, got.TagIDs)
	})

	t.Run("Validation", func(t *testing.T) {
		rec := ts.do(http.MethodPost, "/api/posts", `{"title":""}`, token)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, map[string]string{"title": "Title is required"}, decode[ValidationErrorResponse](t, rec).Errors)
	})

	t.Run("Conflict", func(t *testing.T) {
		assert.Equal(t, http.StatusConflict, ts.do(http.MethodPost, "/api/posts", `{"title":"dup"}`, token).Code)
	})

	t.Run("StorageFailure", func(t *testing.T) {
		rec := ts.do(http.MethodPost, "/api/posts", `{"title":"boom"}`, token)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "internal error", decode[ErrorResponse](t, rec).Error)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, ts.do(http.MethodPost, "/api/posts", `{"title":`, token).Code)
	})
}

func TestHandler_UpdateDeletePost(t *testing.T) {
	var (
		updated blog.PostInput
		deleted int
	)
	ts := newTestServer(blog.Services{
		Posts: &blogtest.Posts{
			GetByIDFn: func(_ context.Context, id int) (*blog.Post, error) { return testPost(id, aliceID), nil },
			UpdateFn: func(_ context.Context, id int, in blog.PostInput) (*blog.Post, error) {
				updated = in
				return testPost(id, in.AuthorID), nil
			},
			DeleteFn: func(_ context.Context, id int) error {
				deleted = id
				return nil
			},
		},
		Users: &blogtest.Users{
			IsInRoleFn: func(_ context.Context, userID, role string) (bool, error) {
				return userID == "moderator" && role == blog.RoleModerator, nil
			},
		},
	})

	t.Run("OtherUserForbidden", func(t *testing.T) {
		rec := ts.do(http.MethodPut, "/api/posts/1", `{"title":"t"}`, ts.token(t, bobID, "bob"))
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = ts.do(http.MethodDelete, "/api/posts/1", "", ts.token(t, bobID, "bob"))
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Zero(t, deleted)
	})

	t.Run("AuthorUpdates", func(t *testing.T) {
		rec := ts.do(http.MethodPut, "/api/posts/1", `{"title":"t","tagIds":[3]}`, ts.token(t, aliceID, "alice"))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, aliceID, updated.AuthorID)
		assert.Equal(t, []int{3}, updated.TagIDs)
	})

	t.Run("ModeratorDeletes", func(t *testing.T) {
		rec := ts.do(http.MethodDelete, "/api/posts/4", "", ts.token(t, "moderator", "mod"))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, 4, deleted)
	})
}

func TestHandler_Comments(t *testing.T) {
	var created blog.CommentInput
	ts := newTestServer(blog.Services{
		Comments: &blogtest.Comments{
			ListAllFn: func(context.Context) ([]blog.Comment, error) { return nil, nil },
			ListByPostFn: func(_ context.Context, postID int) ([]blog.Comment, error) {
				return []blog.Comment{{Comment: db.Comment{ID: 1, PostID: postID, AuthorID: bobID}}}, nil
			},
			CreateFn: func(_ context.Context, in blog.CommentInput) (*blog.Comment, error) {
				created = in
				return &blog.Comment{Comment: db.Comment{ID: 10, PostID: in.PostID, AuthorID: in.AuthorID}}, nil
			},
		},
	})

	rec := ts.do(http.MethodGet, "/api/comments?post_id=3", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	comments := decode[[]Comment](t, rec)
	require.Len(t, comments, 1)
	assert.Equal(t, 3, comments[0].PostID)

	rec = ts.do(http.MethodGet, "/api/comments", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	assert.Equal(t, http.StatusBadRequest, ts.do(http.MethodGet, "/api/comments?post_id=x", "", "").Code)

	rec = ts.do(http.MethodPost, "/api/comments", `{"content":"hi","postId":3}`, ts.token(t, bobID, "bob"))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/api/comments/10", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, bobID, created.AuthorID)
}

func TestHandler_UpdateTag(t *testing.T) {
	ts := newTestServer(blog.Services{Tags: &blogtest.Tags{
		UpdateFn: func(_ context.Context, id int, in blog.TagInput) (*blog.Tag, error) {
			if in.ID != id {
				return nil, blog.NewValidationError("id", "id mismatch")
			}
			return &blog.Tag{Tag: db.Tag{ID: id, Name: in.Name}}, nil
		},
	}})
	token := ts.token(t, aliceID, "alice")

	rec := ts.do(http.MethodPut, "/api/tags/1", `{"tagId":2,"name":"golang"}`, token)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[ValidationErrorResponse](t, rec).Errors, "id")

	rec = ts.do(http.MethodPut, "/api/tags/1", `{"name":"golang"}`, token)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[ValidationErrorResponse](t, rec).Errors, "id")

	rec = ts.do(http.MethodPut, "/api/tags/1", `{"tagId":1,"name":"golang"}`, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, Tag{TagID: 1, Name: "golang"}, decode[Tag](t, rec))
}

func TestHandler_AdminOnly(t *testing.T) {
	ts := newTestServer(blog.Services{
		Roles: &blogtest.Roles{
			ListAllFn: func(context.Context) ([]blog.Role, error) {
				return []blog.Role{{Role: db.Role{ID: "r1", Name: blog.RoleAdmin}}}, nil
			},
		},
		Users: &blogtest.Users{
			ListAllFn: func(context.Context) ([]blog.User, error) {
				return []blog.User{{User: db.User{ID: aliceID, UserName: "alice", PasswordHash: "secret-hash"}, Roles: []string{blog.RoleAdmin}}}, nil
			},
			IsInRoleFn: func(_ context.Context, userID, role string) (bool, error) {
				return userID == aliceID && role == blog.RoleAdmin, nil
			},
		},
	})

	assert.Equal(t, http.StatusUnauthorized, ts.do(http.MethodGet, "/api/roles", "", "").Code)
	assert.Equal(t, http.StatusForbidden, ts.do(http.MethodGet, "/api/roles", "", ts.token(t, bobID, "bob")).Code)

	admin := ts.token(t, aliceID, "alice")
	rec := ts.do(http.MethodGet, "/api/roles", "", admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]Role](t, rec), 1)

	rec = ts.do(http.MethodGet, "/api/users", "", admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret-hash")
	assert.Equal(t, []string{blog.RoleAdmin}, decode[[]User](t, rec)[0].Roles)
}

func TestHandler_Account(t *testing.T) {
	ts := newTestServer(blog.Services{
		Posts: &blogtest.Posts{
			CreateFn: func(_ context.Context, in blog.PostInput) (*blog.Post, error) { return testPost(1, in.AuthorID), nil },
		},
		Users: &blogtest.Users{
			RegisterFn: func(_ context.Context, in blog.Registration) (*blog.User, error) {
				return &blog.User{User: db.User{ID: bobID, UserName: in.Username, Email: in.Email}, Roles: []string{blog.RoleUser}}, nil
			},
			AuthenticateFn: func(_ context.Context, login, password string) (*blog.User, error) {
				if login != "alice@example.com" || password != "Secret1" {
					return nil, blog.ErrUnauthorized
				}
				return &blog.User{User: db.User{ID: aliceID, UserName: "alice"}}, nil
			},
		},
	})

	rec := ts.do(http.MethodPost, "/api/account/register", `{"userName":"bob","email":"bob@example.com","password":"Secret1"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/api/users/"+bobID, rec.Header().Get(echo.HeaderLocation))

	rec = ts.do(http.MethodPost, "/api/account/login", `{"login":"alice@example.com","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(http.MethodPost, "/api/account/login", `{"login":"alice@example.com","password":"Secret1"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	login := decode[LoginResponse](t, rec)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, "alice", login.User.UserName)
	assert.Contains(t, rec.Header().Get(echo.HeaderSetCookie), auth.CookieName+"=")

	assert.Equal(t, http.StatusCreated, ts.do(http.MethodPost, "/api/posts", `{"title":"t"}`, login.Token).Code)

	rec = ts.do(http.MethodPost, "/api/account/logout", "", login.Token)
	require.Equal(t, http.StatusNoContent, rec.Code)

	assert.Equal(t, http.StatusUnauthorized, ts.do(http.MethodPost, "/api/posts", `{"title":"t"}`, login.Token).Code)
}
