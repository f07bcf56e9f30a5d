package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/blog-portal/internal/auth"
	"github.com/daniilsolovey/blog-portal/internal/blog"
)

// Users handles GET /api/users
// @Summary List users
// @Description Returns every account with its role names.
// @Tags users
// @Produce json
// @Success 200 {array} rest.User
// @Failure 401,403,500 {object} rest.ErrorResponse
// @Router /api/users [get]
func (h *Handler) Users(c echo.Context) error {
	users, err := h.users.ListAll(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, Map(users, NewUser))
}

// UserByID handles GET /api/users/:id
// @Summary Get user for editing
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} rest.UserEdit
// @Failure 401,403,404,500 {object} rest.ErrorResponse
// @Router /api/users/{id} [get]
func (h *Handler) UserByID(c echo.Context) error {
	edit, err := h.users.GetForEdit(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, NewUserEdit(*edit))
}

// UpdateUser handles PUT /api/users/:id
// @Summary Update user
// @Description Changes name, email, optionally the password, and replaces the role set in one step.
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param user body rest.UserUpdateRequest true "User"
// @Success 200 {object} rest.User
// @Failure 400 {object} rest.ValidationErrorResponse
// @Failure 401,403,404,500 {object} rest.ErrorResponse
// @Router /api/users/{id} [put]
func (h *Handler) UpdateUser(c echo.Context) error {
	var req UserUpdateRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request body")
	}

	user, err := h.users.Update(c.Request().Context(), c.Param("id"), req.update())
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, NewUser(*user))
}

// Register handles POST /api/account/register
// @Summary Register account
// @Description Creates an account in the User role.
// @Tags account
// @Accept json
// @Produce json
// @Param account body rest.RegisterRequest true "Account"
// @Success 201 {object} rest.User
// @Failure 400 {object} rest.ValidationErrorResponse
// @Failure 500 {object} rest.ErrorResponse
// @Router /api/account/register [post]
func (h *Handler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request body")
	}

	user, err := h.users.Register(c.Request().Context(), blog.Registration{
		Username: req.UserName,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return h.fail(c, err)
	}

	return created(c, "/api/users/"+user.ID, NewUser(*user))
}

// Login handles POST /api/account/login
// @Summary Log in
// @Description Checks credentials (email or user name) and returns a session token. The token is also set as the session cookie.
// @Tags account
// @Accept json
// @Produce json
// @Param credentials body rest.LoginRequest true "Credentials"
// @Success 200 {object} rest.LoginResponse
// @Failure 400,401,500 {object} rest.ErrorResponse
// @Router /api/account/login [post]
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request body")
	}

	user, err := h.users.Authenticate(c.Request().Context(), req.Login, req.Password)
	if err != nil {
		return h.fail(c, err)
	}

	token, claims, err := h.sessions.Start(user.ID, user.UserName)
	if err != nil {
		return h.fail(c, err)
	}
	h.sessions.SetCookie(c, token)

	return c.JSON(http.StatusOK, LoginResponse{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		User:      NewUser(*user),
	})
}

// Logout handles POST /api/account/logout
// @Summary Log out
// @Description Revokes the current session token.
// @Tags account
// @Success 204
// @Failure 500 {object} rest.ErrorResponse
// @Router /api/account/logout [post]
func (h *Handler) Logout(c echo.Context) error {
	if err := h.sessions.End(c.Request().Context(), auth.ClaimsFrom(c)); err != nil {
		return h.fail(c, err)
	}
	h.sessions.ClearCookie(c)

	return c.NoContent(http.StatusNoContent)
}
