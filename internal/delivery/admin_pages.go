package delivery

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/blog-portal/internal/blog"
)

const (
	rolesPath = "/admin/roles"
	usersPath = "/admin/users"
)

type roleForm struct {
	ID          string `form:"-"`
	Name        string `form:"name"`
	Description string `form:"description"`
}

type userForm struct {
	ID          string `form:"-"`
	Username    string `form:"userName"`
	Email       string `form:"email"`
	Password    string `form:"password"`
	IsUser      bool   `form:"isUser"`
	IsAdmin     bool   `form:"isAdmin"`
	IsModerator bool   `form:"isModerator"`
}

func (h *Handler) Roles(c echo.Context) error {
	roles, err := h.roles.ListAll(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}

	return h.render(c, http.StatusOK, "roles.html", "Roles", roles, nil)
}

func (h *Handler) NewRole(c echo.Context) error {
	return h.render(c, http.StatusOK, "role_form.html", "New role", roleForm{}, nil)
}

func (h *Handler) CreateRole(c echo.Context) error {
	var form roleForm
	if err := c.Bind(&form); err != nil {
		return h.render(c, http.StatusBadRequest, "role_form.html", "New role", form, map[string]string{blog.GeneralField: "Invalid form data."})
	}

	_, err := h.roles.Create(c.Request().Context(), blog.RoleInput{Name: form.Name, Description: form.Description})
	if errs, ok := formErrors(err); ok {
		return h.render(c, http.StatusBadRequest, "role_form.html", "New role", form, errs)
	} else if err != nil {
		return h.fail(c, err)
	}

	return c.Redirect(http.StatusSeeOther, rolesPath)
}

func (h *Handler) EditRole(c echo.Context) error {
	role, err := h.roles.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}

	form := roleForm{ID: role.ID, Name: role.Name, Description: role.Description}
	return h.render(c, http.StatusOK, "role_form.html", "Edit role", form, nil)
}

func (h *Handler) UpdateRole(c echo.Context) error {
	form := roleForm{ID: c.Param("id")}
	if err := c.Bind(&form); err != nil {
		return h.render(c, http.StatusBadRequest, "role_form.html", "Edit role", form, map[string]string{blog.GeneralField: "Invalid form data."})
	}

	_, err := h.roles.Update(c.Request().Context(), form.ID, blog.RoleInput{Name: form.Name, Description: form.Description})
	if errs, ok := formErrors(err); ok {
		return h.render(c, http.StatusBadRequest, "role_form.html", "Edit role", form, errs)
	} else if err != nil {
		return h.fail(c, err)
	}

	return c.Redirect(http.StatusSeeOther, rolesPath)
}

func (h *Handler) ConfirmDeleteRole(c echo.Context) error {
	role, err := h.roles.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}

	return h.render(c, http.StatusOK, "role_delete.html", "Delete role", role, nil)
}

func (h *Handler) DeleteRole(c echo.Context) error {
	if err := h.roles.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return h.fail(c, err)
	}

	return c.Redirect(http.StatusSeeOther, rolesPath)
}

func (h *Handler) Users(c echo.Context) error {
	users, err := h.users.ListAll(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}

	return h.render(c, http.StatusOK, "users.html", "Users", users, nil)
}

func (h *Handler) EditUser(c echo.Context) error {
	edit, err := h.users.GetForEdit(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}

	form := userForm{
		ID:          edit.ID,
		Username:    edit.Username,
		Email:       edit.Email,
		IsUser:      edit.IsUser,
		IsAdmin:     edit.IsAdmin,
		IsModerator: edit.IsModerator,
	}
	return h.render(c, http.StatusOK, "user_form.html", "Edit user", form, nil)
}

// UpdateUser handles POST /admin/users/:id/edit. Unchecked role boxes remove the role.
func (h *Handler) UpdateUser(c echo.Context) error {
	form := userForm{ID: c.Param("id")}
	if err := c.Bind(&form); err != nil {
		return h.render(c, http.StatusBadRequest, "user_form.html", "Edit user", form, map[string]string{blog.GeneralField: "Invalid form data."})
	}

	_, err := h.users.Update(c.Request().Context(), form.ID, blog.UserUpdate{
		Username:    form.Username,
		Email:       form.Email,
		Password:    form.Password,
		IsUser:      form.IsUser,
		IsAdmin:     form.IsAdmin,
		IsModerator: form.IsModerator,
	})
	if errs, ok := formErrors(err); ok {
		form.Password = ""
		return h.render(c, http.StatusBadRequest, "user_form.html", "Edit user", form, errs)
	} else if err != nil {
		return h.fail(c, err)
	}

	return c.Redirect(http.StatusSeeOther, usersPath)
}
