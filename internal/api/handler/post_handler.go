package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pulsefeed/social-api/internal/core/policy"
	"github.com/pulsefeed/social-api/internal/core/ports"
)

// PostHandler handles HTTP requests for posts and the like interaction.
// Every route runs the coarse verb-level policy check before any lookup; the
// service layer repeats the fine object-level check after the target loads.
type PostHandler struct {
	service ports.PostService
}

func NewPostHandler(service ports.PostService) *PostHandler {
	return &PostHandler{service: service}
}

// List returns a page of posts, newest first. Anonymous callers are allowed;
// their representation carries liked=false.
//
// @Summary      List posts
// @Tags         posts
// @Produce      json
// @Param        page   query     int  false  "Page number (1-based)"
// @Param        limit  query     int  false  "Page size (max 100)"
// @Success      200    {object}  postListResponse
// @Router       /post [get]
func (h *PostHandler) List(c echo.Context) error {
	caller := ctxCaller(c)
	if err := policy.CheckRequest(caller, policy.PostCollection, c.Request().Method); err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	details, total, err := h.service.List(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostListResponse(details, total, caller))
}

// Get returns a single post by public ID.
//
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post public ID (hex UUID)"
// @Success      200  {object}  postResponse
// @Failure      404  {object}  map[string]string
// @Router       /post/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	caller := ctxCaller(c)
	if err := policy.CheckRequest(caller, policy.PostItem, c.Request().Method); err != nil {
		return err
	}

	detail, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponse(detail, caller))
}

// Create stores a new post authored by the caller.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPostRequest  true  "Post content"
// @Success      201   {object}  postResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /post [post]
func (h *PostHandler) Create(c echo.Context) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}
	if err := policy.CheckRequest(caller, policy.PostCollection, c.Request().Method); err != nil {
		return err
	}

	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	detail, err := h.service.Create(c.Request().Context(), caller, ports.CreatePostInput{
		Author: req.Author,
		Body:   req.Body,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toPostResponse(detail, caller))
}

// Update replaces a post's body. Owner-only.
//
// @Summary      Update a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Post public ID (hex UUID)"
// @Param        body  body      updatePostRequest  true  "New content"
// @Success      200   {object}  postResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /post/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}
	if err := policy.CheckRequest(caller, policy.PostItem, c.Request().Method); err != nil {
		return err
	}

	var req updatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	detail, err := h.service.Update(c.Request().Context(), caller, c.Param("id"), ports.UpdatePostInput{
		Author: req.Author,
		Body:   req.Body,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponse(detail, caller))
}

// Delete removes a post. Owner-only.
//
// @Summary      Delete a post
// @Tags         posts
// @Security     BearerAuth
// @Param        id  path  string  true  "Post public ID (hex UUID)"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /post/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}
	if err := policy.CheckRequest(caller, policy.PostItem, c.Request().Method); err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), caller, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Like adds the caller to the post's liked-by set. Idempotent.
//
// @Summary      Like a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post public ID (hex UUID)"
// @Success      200  {object}  postResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /post/{id}/like [post]
func (h *PostHandler) Like(c echo.Context) error {
	return h.toggleLike(c, true)
}

// Unlike removes the caller's like. Removing an absent like succeeds.
//
// @Summary      Remove a like from a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post public ID (hex UUID)"
// @Success      200  {object}  postResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /post/{id}/remove_like [post]
func (h *PostHandler) Unlike(c echo.Context) error {
	return h.toggleLike(c, false)
}

func (h *PostHandler) toggleLike(c echo.Context, like bool) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}
	if err := policy.CheckRequest(caller, policy.PostLike, c.Request().Method); err != nil {
		return err
	}

	var detail *ports.PostDetail
	if like {
		detail, err = h.service.Like(c.Request().Context(), caller, c.Param("id"))
	} else {
		detail, err = h.service.Unlike(c.Request().Context(), caller, c.Param("id"))
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponse(detail, caller))
}
