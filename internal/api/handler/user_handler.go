package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pulsefeed/social-api/internal/core/policy"
	"github.com/pulsefeed/social-api/internal/core/ports"
)

// UserHandler handles HTTP requests for user profiles.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List returns all users visible to the caller.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userListResponse
// @Failure      401  {object}  map[string]string
// @Router       /user [get]
func (h *UserHandler) List(c echo.Context) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}
	if err := policy.CheckRequest(caller, policy.UserCollection, c.Request().Method); err != nil {
		return err
	}

	users, err := h.service.List(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserListResponse(users))
}

// Get returns a single user by public ID.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User public ID (hex UUID)"
// @Success      200  {object}  userResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /user/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}
	if err := policy.CheckRequest(caller, policy.UserItem, c.Request().Method); err != nil {
		return err
	}

	user, err := h.service.Get(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Update applies a partial profile update. Self-service only.
//
// @Summary      Update a user profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User public ID (hex UUID)"
// @Param        body  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  userResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /user/{id} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}
	if err := policy.CheckRequest(caller, policy.UserItem, c.Request().Method); err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.service.Update(c.Request().Context(), caller, c.Param("id"), ports.UserUpdate{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Avatar:    req.Avatar,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}
