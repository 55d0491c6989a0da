package http

import (
	"log/slog"
	"net/http"

	"heritage_cms/internal/transport/http/dto"
	"heritage_cms/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// CreateContact godoc
// @Summary Submit a contact message
// @Description Public endpoint. Persists the message and notifies the admin address asynchronously.
// @Tags contacts
// @Accept json
// @Produce json
// @Param request body dto.CreateContactRequest true "Contact message"
// @Success 201 {object} response.Response{data=dto.ContactResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/contacts [post]
func (r *Routers) CreateContact(c echo.Context) error {
	const op = "http.routers.CreateContact"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.CreateContactRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	contact, err := r.ContactService.CreateContact(c.Request().Context(), req)
	if err != nil {
		return r.writeError(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(contact))
}

// ListContacts godoc
// @Summary List contact messages
// @Tags contacts
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(10)
// @Success 200 {object} response.Response{data=dto.ContactListResponse}
// @Failure 500 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/contacts [get]
func (r *Routers) ListContacts(c echo.Context) error {
	const op = "http.routers.ListContacts"

	log := r.log.With(
		slog.String("op", op),
	)

	page, perPage := parsePagination(c)

	contacts, err := r.ContactService.Contacts(c.Request().Context(), page, perPage)
	if err != nil {
		return r.writeError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(contacts))
}

// UnreadContactCount godoc
// @Summary Count unread contact messages
// @Tags contacts
// @Produce json
// @Success 200 {object} response.Response{data=object{unread=int}}
// @Failure 500 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/contacts/unread-count [get]
func (r *Routers) UnreadContactCount(c echo.Context) error {
	const op = "http.routers.UnreadContactCount"

	log := r.log.With(
		slog.String("op", op),
	)

	count, err := r.ContactService.UnreadCount(c.Request().Context())
	if err != nil {
		return r.writeError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(map[string]int64{"unread": count}))
}

// MarkContactRead godoc
// @Summary Mark a contact message as read
// @Description Idempotent. Returns the remaining unread count either way.
// @Tags contacts
// @Produce json
// @Param id path string true "Contact UUID" format(uuid)
// @Success 200 {object} response.Response{data=object{unread=int}}
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/contacts/{id}/read [patch]
func (r *Routers) MarkContactRead(c echo.Context) error {
	const op = "http.routers.MarkContactRead"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid contact ID format"))
	}

	count, err := r.ContactService.MarkRead(c.Request().Context(), id)
	if err != nil {
		return r.writeError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(map[string]int64{"unread": count}))
}

// DeleteContact godoc
// @Summary Delete a contact message
// @Tags contacts
// @Param id path string true "Contact UUID" format(uuid)
// @Success 204
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/contacts/{id} [delete]
func (r *Routers) DeleteContact(c echo.Context) error {
	const op = "http.routers.DeleteContact"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid contact ID format"))
	}

	if err := r.ContactService.DeleteContact(c.Request().Context(), id); err != nil {
		return r.writeError(c, log, err)
	}

	return c.NoContent(http.StatusNoContent)
}
