package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/blog-portal/internal/auth"
	"github.com/daniilsolovey/blog-portal/internal/blog"
)

type loginForm struct {
	Login     string `form:"login"`
	Password  string `form:"password"`
	ReturnURL string `form:"returnUrl"`
}

type registerForm struct {
	Username        string `form:"userName"`
	Email           string `form:"email"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirmPassword"`
}

func (h *Handler) LoginForm(c echo.Context) error {
	form := loginForm{ReturnURL: localURL(c.QueryParam("returnUrl"), "")}
	return h.render(c, http.StatusOK, "login.html", "Log in", form, nil)
}

func (h *Handler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return h.render(c, http.StatusBadRequest, "login.html", "Log in", form, map[string]string{blog.GeneralField: "Invalid form data."})
	}

	user, err := h.users.Authenticate(c.Request().Context(), form.Login, form.Password)
	if errors.Is(err, blog.ErrUnauthorized) {
		form.Password = ""
		return h.render(c, http.StatusUnauthorized, "login.html", "Log in", form, map[string]string{blog.GeneralField: "Invalid login attempt."})
	} else if err != nil {
		return h.fail(c, err)
	}

	return h.startSession(c, user, form.ReturnURL)
}

func (h *Handler) RegisterForm(c echo.Context) error {
	return h.render(c, http.StatusOK, "register.html", "Register", registerForm{}, nil)
}

// Register creates the account and signs the new user in.
func (h *Handler) Register(c echo.Context) error {
	var form registerForm
	if err := c.Bind(&form); err != nil {
		return h.render(c, http.StatusBadRequest, "register.html", "Register", form, map[string]string{blog.GeneralField: "Invalid form data."})
	}

	if form.Password != form.ConfirmPassword {
		form.Password, form.ConfirmPassword = "", ""
		return h.render(c, http.StatusBadRequest, "register.html", "Register", form, map[string]string{"confirmPassword": "The password and confirmation password do not match."})
	}

	user, err := h.users.Register(c.Request().Context(), blog.Registration{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
	})
	if errs, ok := formErrors(err); ok {
		form.Password, form.ConfirmPassword = "", ""
		return h.render(c, http.StatusBadRequest, "register.html", "Register", form, errs)
	} else if err != nil {
		return h.fail(c, err)
	}

	return h.startSession(c, user, "")
}

func (h *Handler) Logout(c echo.Context) error {
	if err := h.sessions.End(c.Request().Context(), auth.ClaimsFrom(c)); err != nil {
		return h.fail(c, err)
	}
	h.sessions.ClearCookie(c)

	return c.Redirect(http.StatusSeeOther, postsPath)
}

func (h *Handler) startSession(c echo.Context, user *blog.User, returnURL string) error {
	token, _, err := h.sessions.Start(user.ID, user.UserName)
	if err != nil {
		return h.fail(c, err)
	}
	h.sessions.SetCookie(c, token)

	return c.Redirect(http.StatusSeeOther, localURL(returnURL, postsPath))
}
