package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"heritage_cms/internal/lib/logger/sl"
	"heritage_cms/internal/transport/http/dto"
	"heritage_cms/internal/transport/http/dto/response"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ListReenactmentBlocks godoc
// @Summary Reenactment blocks grouped by category
// @Description Public endpoint. Categories in sort order with their blocks; uncategorized blocks appear in a trailing "other" group.
// @Tags reenactment
// @Produce json
// @Success 200 {object} response.Response{data=[]dto.BlocksByCategoryResponse}
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/reenactment/blocks [get]
func (r *Routers) ListReenactmentBlocks(c echo.Context) error {
	const op = "http.routers.ListReenactmentBlocks"

	log := r.log.With(
		slog.String("op", op),
	)

	groups, err := r.ReenactmentService.BlocksGroupedByCategory(c.Request().Context())
	if err != nil {
		return r.writeError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(groups))
}

// ListReenactmentCategories godoc
// @Summary List reenactment categories
// @Tags reenactment
// @Produce json
// @Success 200 {object} response.Response{data=[]dto.CategoryResponse}
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/reenactment/categories [get]
func (r *Routers) ListReenactmentCategories(c echo.Context) error {
	const op = "http.routers.ListReenactmentCategories"

	log := r.log.With(
		slog.String("op", op),
	)

	categories, err := r.ReenactmentService.Categories(c.Request().Context())
	if err != nil {
		return r.writeError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(categories))
}

// CreateReenactmentCategory godoc
// @Summary Create a reenactment category
// @Description The code is normalized (trimmed, lowercased, whitespace to underscores) before the duplicate check.
// @Tags reenactment
// @Accept json
// @Produce json
// @Param request body dto.CreateCategoryRequest true "Category data"
// @Success 201 {object} response.Response{data=dto.CategoryResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/reenactment/categories [post]
func (r *Routers) CreateReenactmentCategory(c echo.Context) error {
	const op = "http.routers.CreateReenactmentCategory"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.CreateCategoryRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	category, err := r.ReenactmentService.CreateCategory(c.Request().Context(), req)
	if err != nil {
		return r.writeError(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(category))
}

// UpdateReenactmentCategory godoc
// @Summary Update a reenactment category
// @Description Names and sort order only; the code is immutable after creation.
// @Tags reenactment
// @Accept json
// @Produce json
// @Param id path string true "Category UUID" format(uuid)
// @Param request body dto.UpdateCategoryRequest true "Fields to update"
// @Success 200 {object} response.Response{data=dto.CategoryResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/reenactment/categories/{id} [patch]
func (r *Routers) UpdateReenactmentCategory(c echo.Context) error {
	const op = "http.routers.UpdateReenactmentCategory"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid category ID format"))
	}

	var req dto.UpdateCategoryRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	category, err := r.ReenactmentService.UpdateCategory(c.Request().Context(), id, req)
	if err != nil {
		return r.writeError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(category))
}

// DeleteReenactmentCategory godoc
// @Summary Delete a reenactment category
// @Description Blocks referencing the category keep their rows and fall into the "other" group.
// @Tags reenactment
// @Param id path string true "Category UUID" format(uuid)
// @Success 204
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/reenactment/categories/{id} [delete]
func (r *Routers) DeleteReenactmentCategory(c echo.Context) error {
	const op = "http.routers.DeleteReenactmentCategory"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid category ID format"))
	}

	if err := r.ReenactmentService.DeleteCategory(c.Request().Context(), id); err != nil {
		return r.writeError(c, log, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetReenactmentBlock godoc
// @Summary Get a reenactment block with its photos
// @Tags reenactment
// @Produce json
// @Param id path string true "Block UUID" format(uuid)
// @Success 200 {object} response.Response{data=dto.BlockDetailResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/reenactment/blocks/{id} [get]
func (r *Routers) GetReenactmentBlock(c echo.Context) error {
	const op = "http.routers.GetReenactmentBlock"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid block ID format"))
	}

	block, err := r.ReenactmentService.Block(c.Request().Context(), id)
	if err != nil {
		return r.writeError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(block))
}

// CreateReenactmentBlock godoc
// @Summary Create a reenactment block
// @Description Accepts JSON or multipart/form-data. A multipart file is ingested and becomes the block image.
// @Tags reenactment
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Param request body dto.CreateBlockRequest true "Block data (JSON variant)"
// @Success 201 {object} response.Response{data=dto.BlockResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/reenactment/blocks [post]
func (r *Routers) CreateReenactmentBlock(c echo.Context) error {
	const op = "http.routers.CreateReenactmentBlock"

	log := r.log.With(
		slog.String("op", op),
	)

	if isMultipart(c) {
		input, err := r.parseBlockUploadInput(c)
		if err != nil {
			log.Warn("failed to parse multipart form", sl.Err(err))
			return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
		}

		block, err := r.ReenactmentService.CreateBlockWithFile(c.Request().Context(), *input)
		if err != nil {
			return r.writeError(c, log, err)
		}

		return c.JSON(http.StatusCreated, response.SuccessResponse(block))
	}

	var req dto.CreateBlockRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	block, err := r.ReenactmentService.CreateBlock(c.Request().Context(), req)
	if err != nil {
		return r.writeError(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(block))
}

// UpdateReenactmentBlock godoc
// @Summary Update a reenactment block
// @Tags reenactment
// @Accept json
// @Produce json
// @Param id path string true "Block UUID" format(uuid)
// @Param request body dto.UpdateBlockRequest true "Fields to update"
// @Success 200 {object} response.Response{data=dto.BlockResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/reenactment/blocks/{id} [patch]
func (r *Routers) UpdateReenactmentBlock(c echo.Context) error {
	const op = "http.routers.UpdateReenactmentBlock"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid block ID format"))
	}

	var req dto.UpdateBlockRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	block, err := r.ReenactmentService.UpdateBlock(c.Request().Context(), id, req)
	if err != nil {
		return r.writeError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(block))
}

// DeleteReenactmentBlock godoc
// @Summary Delete a reenactment block and its photos
// @Tags reenactment
// @Param id path string true "Block UUID" format(uuid)
// @Success 204
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/reenactment/blocks/{id} [delete]
func (r *Routers) DeleteReenactmentBlock(c echo.Context) error {
	const op = "http.routers.DeleteReenactmentBlock"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid block ID format"))
	}

	if err := r.ReenactmentService.DeleteBlock(c.Request().Context(), id); err != nil {
		return r.writeError(c, log, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (r *Routers) parseBlockUploadInput(c echo.Context) (*dto.BlockUploadInput, error) {
	input := &dto.BlockUploadInput{
		Title: c.FormValue("title"),
		Text:  c.FormValue("text"),
	}

	if catStr := c.FormValue("category_id"); catStr != "" {
		catID, err := uuid.Parse(catStr)
		if err != nil {
			return nil, err
		}
		input.CategoryID = &catID
	}

	if sortStr := c.FormValue("sort_order"); sortStr != "" {
		sortOrder, err := strconv.Atoi(sortStr)
		if err != nil {
			return nil, err
		}
		input.SortOrder = &sortOrder
	}

	if file, err := c.FormFile("file"); err == nil {
		upload, err := readFileUpload(file)
		if err != nil {
			return nil, err
		}
		input.File = upload
	}

	return input, nil
}
