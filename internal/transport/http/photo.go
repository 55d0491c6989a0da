package http

import (
	"log/slog"
	"net/http"

	"heritage_cms/internal/lib/logger/sl"
	"heritage_cms/internal/transport/http/dto"
	"heritage_cms/internal/transport/http/dto/response"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// UploadPhoto godoc
// @Summary Upload a photo
// @Description Decodes the image, generates a thumbnail, uploads both variants and persists the metadata. Optionally attaches the photo to an owning gallery or block.
// @Tags photos
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file"
// @Param caption formData string false "Caption (blank is stored as null)"
// @Param alt_text formData string false "Alt text (blank is stored as null)"
// @Param gallery_id formData string false "Owning gallery UUID" format(uuid)
// @Param block_id formData string false "Owning block UUID" format(uuid)
// @Success 201 {object} response.Response{data=dto.PhotoResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/photos [post]
func (r *Routers) UploadPhoto(c echo.Context) error {
	const op = "http.routers.UploadPhoto"

	log := r.log.With(
		slog.String("op", op),
	)

	file, err := c.FormFile("file")
	if err != nil {
		log.Warn("empty file in request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "file is required"))
	}

	upload, err := readFileUpload(file)
	if err != nil {
		log.Error("failed to read file", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	input := dto.PhotoUploadInput{
		File:    *upload,
		Caption: c.FormValue("caption"),
		AltText: c.FormValue("alt_text"),
	}

	// A photo belongs to at most one container; gallery_id and block_id
	// both name the owner column.
	ownerStr := c.FormValue("gallery_id")
	if ownerStr == "" {
		ownerStr = c.FormValue("block_id")
	}
	if ownerStr != "" {
		ownerID, err := uuid.Parse(ownerStr)
		if err != nil {
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid owner ID format"))
		}
		input.OwnerID = &ownerID
	}

	photo, err := r.PhotoService.Upload(c.Request().Context(), input)
	if err != nil {
		return r.writeError(c, log, err)
	}

	log.Info("photo uploaded",
		slog.String("photo_id", photo.ID.String()),
		slog.String("object_key", photo.ObjectKey),
	)

	return c.JSON(http.StatusCreated, response.SuccessResponse(photo))
}

// DeletePhoto godoc
// @Summary Delete a photo
// @Description Removes the metadata row and every storage object the photo references.
// @Tags photos
// @Param id path string true "Photo UUID" format(uuid)
// @Success 204
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/photos/{id} [delete]
func (r *Routers) DeletePhoto(c echo.Context) error {
	const op = "http.routers.DeletePhoto"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid photo ID format"))
	}

	if err := r.PhotoService.Delete(c.Request().Context(), id); err != nil {
		return r.writeError(c, log, err)
	}

	return c.NoContent(http.StatusNoContent)
}
