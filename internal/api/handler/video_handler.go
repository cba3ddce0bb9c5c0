package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vidshare/platform/internal/core/domain"
	"github.com/vidshare/platform/internal/core/ports"
)

// uploadField is the multipart field carrying the video file.
const uploadField = "file"

type VideoHandler struct {
	service ports.VideoService
}

func NewVideoHandler(service ports.VideoService) *VideoHandler {
	return &VideoHandler{service: service}
}

// Upload stores a new video.
//
// @Summary      Upload a video
// @Tags         videos
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file         formData  file    true   "Video file (mp4, avi, mov, webm)"
// @Param        title        formData  string  false  "Title"
// @Param        description  formData  string  false  "Description"
// @Success      201          {object}  domain.Video
// @Failure      400          {object}  errorResponse
// @Failure      401          {object}  errorResponse
// @Failure      413          {object}  errorResponse
// @Router       /api/upload [post]
func (h *VideoHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile(uploadField)
	if err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return err
		}
		if errors.Is(err, http.ErrMissingFile) {
			return domain.Invalid("no file provided")
		}
		return domain.Invalid("invalid multipart form")
	}

	file, err := fh.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	video, err := h.service.Upload(c.Request().Context(), actor(c), ports.UploadVideoInput{
		Title:        c.FormValue("title"),
		Description:  c.FormValue("description"),
		OriginalName: fh.Filename,
		Size:         fh.Size,
		Content:      file,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, video)
}

// Get returns the video page and counts a view.
//
// @Summary      Get a video
// @Tags         videos
// @Produce      json
// @Param        id   path      string  true  "Video ID"
// @Success      200  {object}  domain.VideoDetail
// @Failure      404  {object}  errorResponse
// @Router       /api/video/{id} [get]
func (h *VideoHandler) Get(c echo.Context) error {
	detail, err := h.service.Detail(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

// Latest returns the newest videos.
//
// @Summary      Latest videos
// @Tags         videos
// @Produce      json
// @Success      200  {array}  domain.Video
// @Router       /api/videos [get]
func (h *VideoHandler) Latest(c echo.Context) error {
	videos, err := h.service.Latest(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, videos)
}

// Trending returns the most viewed videos.
//
// @Summary      Trending videos
// @Tags         videos
// @Produce      json
// @Success      200  {array}  domain.Video
// @Router       /api/videos/trending [get]
func (h *VideoHandler) Trending(c echo.Context) error {
	videos, err := h.service.Trending(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, videos)
}

// Search matches video titles.
//
// @Summary      Search videos by title
// @Tags         videos
// @Produce      json
// @Param        q    query     string  true  "Title substring"
// @Success      200  {array}   domain.Video
// @Router       /api/videos/search [get]
func (h *VideoHandler) Search(c echo.Context) error {
	videos, err := h.service.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, videos)
}

// Library lists the caller's own videos.
//
// @Summary      My videos
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Video
// @Failure      401  {object}  errorResponse
// @Router       /api/library [get]
func (h *VideoHandler) Library(c echo.Context) error {
	videos, err := h.service.Library(c.Request().Context(), actor(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, videos)
}

// Update changes title and/or description.
//
// @Summary      Update a video
// @Tags         videos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Video ID"
// @Param        body  body      updateVideoRequest  true  "Fields to change"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/video/{id} [put]
func (h *VideoHandler) Update(c echo.Context) error {
	var req updateVideoRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	err := h.service.Update(c.Request().Context(), actor(c), c.Param("id"), domain.VideoUpdate{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "video updated"})
}

// AttachCode stores a code snippet on the video.
//
// @Summary      Attach code to a video
// @Tags         videos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Video ID"
// @Param        body  body      attachCodeRequest  true  "Code"
// @Success      200   {object}  messageResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/video/{id}/code [put]
func (h *VideoHandler) AttachCode(c echo.Context) error {
	var req attachCodeRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.service.AttachCode(c.Request().Context(), actor(c), c.Param("id"), req.Code); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "code saved"})
}

// Delete removes a video with its file and comments.
//
// @Summary      Delete a video
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Video ID"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/video/{id} [delete]
func (h *VideoHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), actor(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "video deleted"})
}
