package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/blog-portal/internal/blog"
)

// Roles handles GET /api/roles
// @Summary List roles
// @Tags roles
// @Produce json
// @Success 200 {array} rest.Role
// @Failure 401,403,500 {object} rest.ErrorResponse
// @Router /api/roles [get]
func (h *Handler) Roles(c echo.Context) error {
	roles, err := h.roles.ListAll(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, Map(roles, NewRole))
}

// RoleByID handles GET /api/roles/:id
// @Summary Get role
// @Tags roles
// @Produce json
// @Param id path string true "Role ID"
// @Success 200 {object} rest.Role
// @Failure 401,403,404,500 {object} rest.ErrorResponse
// @Router /api/roles/{id} [get]
func (h *Handler) RoleByID(c echo.Context) error {
	role, err := h.roles.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, NewRole(*role))
}

// CreateRole handles POST /api/roles
// @Summary Create role
// @Tags roles
// @Accept json
// @Produce json
// @Param role body rest.RoleRequest true "Role"
// @Success 201 {object} rest.Role
// @Failure 400 {object} rest.ValidationErrorResponse
// @Failure 401,403,500 {object} rest.ErrorResponse
// @Router /api/roles [post]
func (h *Handler) CreateRole(c echo.Context) error {
	var req RoleRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request body")
	}

	role, err := h.roles.Create(c.Request().Context(), blog.RoleInput{Name: req.Name, Description: req.Description})
	if err != nil {
		return h.fail(c, err)
	}

	return created(c, "/api/roles/"+role.ID, NewRole(*role))
}

// UpdateRole handles PUT /api/roles/:id
// @Summary Update role
// @Tags roles
// @Accept json
// @Produce json
// @Param id path string true "Role ID"
// @Param role body rest.RoleRequest true "Role"
// @Success 200 {object} rest.Role
// @Failure 400 {object} rest.ValidationErrorResponse
// @Failure 401,403,404,500 {object} rest.ErrorResponse
// @Router /api/roles/{id} [put]
func (h *Handler) UpdateRole(c echo.Context) error {
	var req RoleRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request body")
	}

	role, err := h.roles.Update(c.Request().Context(), c.Param("id"), blog.RoleInput{Name: req.Name, Description: req.Description})
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, NewRole(*role))
}

// DeleteRole handles DELETE /api/roles/:id
// @Summary Delete role
// @Tags roles
// @Param id path string true "Role ID"
// @Success 204
// @Failure 401,403,404,500 {object} rest.ErrorResponse
// @Router /api/roles/{id} [delete]
func (h *Handler) DeleteRole(c echo.Context) error {
	if err := h.roles.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return h.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
