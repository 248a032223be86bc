package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/apiecommerce/catalog-api/internal/core/ports"
)

// UserHandler exposes administrative account operations. Routes using it
// must be guarded by the Auth and RBAC(Admin) middleware.
type UserHandler struct {
	users ports.UserRepository
	roles ports.RoleRepository
}

func NewUserHandler(users ports.UserRepository, roles ports.RoleRepository) *UserHandler {
	return &UserHandler{users: users, roles: roles}
}

type assignRoleRequest struct {
	Role string `json:"role" validate:"required,min=2"`
}

// List returns all accounts ordered by username.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      403  {object}  map[string]string
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Get returns a single account by id.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.users.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// AssignRole grants an additional role to an account. The role is created in
// the registry on first use, and granting an already-held role is a no-op.
//
// @Summary      Assign a role to a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      assignRoleRequest  true  "Role to grant"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /users/{id}/roles [post]
func (h *UserHandler) AssignRole(c echo.Context) error {
	var req assignRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	if _, err := h.roles.EnsureRole(ctx, req.Role); err != nil {
		return err
	}
	if err := h.roles.AssignRole(ctx, c.Param("id"), req.Role); err != nil {
		return err
	}

	user, err := h.users.FindByID(ctx, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
