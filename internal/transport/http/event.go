package http

import (
	"log/slog"
	"net/http"

	"heritage_cms/internal/lib/logger/sl"
	"heritage_cms/internal/transport/http/dto"
	"heritage_cms/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// ListEvents godoc
// @Summary List events
// @Description Public endpoint. Events are ordered by date descending, undated last.
// @Tags events
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(10)
// @Success 200 {object} response.Response{data=dto.EventListResponse}
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/events [get]
func (r *Routers) ListEvents(c echo.Context) error {
	const op = "http.routers.ListEvents"

	log := r.log.With(
		slog.String("op", op),
	)

	page, perPage := parsePagination(c)

	events, err := r.EventService.Events(c.Request().Context(), page, perPage)
	if err != nil {
		return r.writeError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(events))
}

// GetEvent godoc
// @Summary Get a single event
// @Tags events
// @Produce json
// @Param id path string true "Event UUID" format(uuid)
// @Success 200 {object} response.Response{data=dto.EventResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/events/{id} [get]
func (r *Routers) GetEvent(c echo.Context) error {
	const op = "http.routers.GetEvent"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid event ID format"))
	}

	event, err := r.EventService.Event(c.Request().Context(), id)
	if err != nil {
		return r.writeError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(event))
}

// CreateEvent godoc
// @Summary Create an event
// @Description Accepts JSON or multipart/form-data. A multipart file is ingested and becomes the event image.
// @Tags events
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Param request body dto.CreateEventRequest true "Event data (JSON variant)"
// @Success 201 {object} response.Response{data=dto.EventResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/events [post]
func (r *Routers) CreateEvent(c echo.Context) error {
	const op = "http.routers.CreateEvent"

	log := r.log.With(
		slog.String("op", op),
	)

	if isMultipart(c) {
		input, err := r.parseEventUploadInput(c)
		if err != nil {
			log.Warn("failed to parse multipart form", sl.Err(err))
			return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
		}

		event, err := r.EventService.CreateEventWithFile(c.Request().Context(), *input)
		if err != nil {
			return r.writeError(c, log, err)
		}

		return c.JSON(http.StatusCreated, response.SuccessResponse(event))
	}

	var req dto.CreateEventRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	event, err := r.EventService.CreateEvent(c.Request().Context(), req)
	if err != nil {
		return r.writeError(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(event))
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Accepts JSON (partial update) or multipart/form-data (full field replacement plus optional image).
// @Tags events
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Event UUID" format(uuid)
// @Param request body dto.UpdateEventRequest true "Fields to update (JSON variant)"
// @Success 200 {object} response.Response{data=dto.EventResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/events/{id} [patch]
func (r *Routers) UpdateEvent(c echo.Context) error {
	const op = "http.routers.UpdateEvent"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid event ID format"))
	}

	if isMultipart(c) {
		input, err := r.parseEventUploadInput(c)
		if err != nil {
			log.Warn("failed to parse multipart form", sl.Err(err))
			return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
		}

		event, err := r.EventService.UpdateEventWithFile(c.Request().Context(), id, *input)
		if err != nil {
			return r.writeError(c, log, err)
		}

		return c.JSON(http.StatusOK, response.SuccessResponse(event))
	}

	var req dto.UpdateEventRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	event, err := r.EventService.UpdateEvent(c.Request().Context(), id, req)
	if err != nil {
		return r.writeError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(event))
}

// DeleteEvent godoc
// @Summary Delete an event
// @Tags events
// @Param id path string true "Event UUID" format(uuid)
// @Success 204
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/events/{id} [delete]
func (r *Routers) DeleteEvent(c echo.Context) error {
	const op = "http.routers.DeleteEvent"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid event ID format"))
	}

	if err := r.EventService.DeleteEvent(c.Request().Context(), id); err != nil {
		return r.writeError(c, log, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (r *Routers) parseEventUploadInput(c echo.Context) (*dto.EventUploadInput, error) {
	input := &dto.EventUploadInput{
		Title: c.FormValue("title"),
		Text:  c.FormValue("text"),
		Link:  c.FormValue("link"),
		Date:  c.FormValue("date"),
	}

	// The file part is optional for events.
	if file, err := c.FormFile("file"); err == nil {
		upload, err := readFileUpload(file)
		if err != nil {
			return nil, err
		}
		input.File = upload
	}

	return input, nil
}
