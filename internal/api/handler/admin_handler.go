package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vidshare/platform/internal/core/ports"
)

type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// Overview returns the moderation dashboard.
//
// @Summary      Admin overview
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.AdminOverview
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/overview [get]
func (h *AdminHandler) Overview(c echo.Context) error {
	overview, err := h.service.Overview(c.Request().Context(), actor(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, overview)
}

// Videos lists the newest videos for moderation.
//
// @Summary      Admin video list
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Video
// @Router       /api/admin/videos [get]
func (h *AdminHandler) Videos(c echo.Context) error {
	videos, err := h.service.Videos(c.Request().Context(), actor(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, videos)
}

// Comments lists the newest comments for moderation.
//
// @Summary      Admin comment list
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Comment
// @Router       /api/admin/comments [get]
func (h *AdminHandler) Comments(c echo.Context) error {
	comments, err := h.service.Comments(c.Request().Context(), actor(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comments)
}
