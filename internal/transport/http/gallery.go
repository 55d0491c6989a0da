package http

import (
	"log/slog"
	"net/http"

	"heritage_cms/internal/transport/http/dto"
	"heritage_cms/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// ListGalleries godoc
// @Summary List published galleries
// @Description Public endpoint. Only published galleries are returned.
// @Tags galleries
// @Produce json
// @Success 200 {object} response.Response{data=[]dto.GalleryResponse}
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/galleries [get]
func (r *Routers) ListGalleries(c echo.Context) error {
	const op = "http.routers.ListGalleries"

	log := r.log.With(
		slog.String("op", op),
	)

	galleries, err := r.GalleryService.Galleries(c.Request().Context(), false)
	if err != nil {
		return r.writeError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(galleries))
}

// ListAllGalleries godoc
// @Summary List all galleries including unpublished
// @Tags galleries
// @Produce json
// @Success 200 {object} response.Response{data=[]dto.GalleryResponse}
// @Failure 500 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/galleries [get]
func (r *Routers) ListAllGalleries(c echo.Context) error {
	const op = "http.routers.ListAllGalleries"

	log := r.log.With(
		slog.String("op", op),
	)

	galleries, err := r.GalleryService.Galleries(c.Request().Context(), true)
	if err != nil {
		return r.writeError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(galleries))
}

// ListGalleryPhotos godoc
// @Summary List photos of a gallery
// @Description Public endpoint. Photos are ordered by sort order ascending.
// @Tags galleries
// @Produce json
// @Param id path string true "Gallery UUID" format(uuid)
// @Success 200 {object} response.Response{data=[]dto.PhotoResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/galleries/{id}/photos [get]
func (r *Routers) ListGalleryPhotos(c echo.Context) error {
	const op = "http.routers.ListGalleryPhotos"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid gallery ID format"))
	}

	photos, err := r.GalleryService.GalleryPhotos(c.Request().Context(), id)
	if err != nil {
		return r.writeError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(photos))
}

// CreateGallery godoc
// @Summary Create a gallery
// @Tags galleries
// @Accept json
// @Produce json
// @Param request body dto.CreateGalleryRequest true "Gallery data"
// @Success 201 {object} response.Response{data=dto.GalleryResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/galleries [post]
func (r *Routers) CreateGallery(c echo.Context) error {
	const op = "http.routers.CreateGallery"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.CreateGalleryRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	gallery, err := r.GalleryService.CreateGallery(c.Request().Context(), req)
	if err != nil {
		return r.writeError(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(gallery))
}

// UpdateGallery godoc
// @Summary Update a gallery
// @Description Present fields overlay stored values. The published flag is always taken from the request.
// @Tags galleries
// @Accept json
// @Produce json
// @Param id path string true "Gallery UUID" format(uuid)
// @Param request body dto.UpdateGalleryRequest true "Fields to update"
// @Success 200 {object} response.Response{data=dto.GalleryResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/galleries/{id} [patch]
func (r *Routers) UpdateGallery(c echo.Context) error {
	const op = "http.routers.UpdateGallery"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid gallery ID format"))
	}

	var req dto.UpdateGalleryRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	gallery, err := r.GalleryService.UpdateGallery(c.Request().Context(), id, req)
	if err != nil {
		return r.writeError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(gallery))
}

// DeleteGallery godoc
// @Summary Delete a gallery and its photos
// @Description Removes owned photo rows and storage objects before the gallery itself.
// @Tags galleries
// @Param id path string true "Gallery UUID" format(uuid)
// @Success 204
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/galleries/{id} [delete]
func (r *Routers) DeleteGallery(c echo.Context) error {
	const op = "http.routers.DeleteGallery"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid gallery ID format"))
	}

	if err := r.GalleryService.DeleteGallery(c.Request().Context(), id); err != nil {
		return r.writeError(c, log, err)
	}

	return c.NoContent(http.StatusNoContent)
}
