package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"heritage_cms/internal/domain/models"
	"heritage_cms/internal/lib/logger/sl"
	"heritage_cms/internal/storage"
	"heritage_cms/internal/storage/objectstore"
	"heritage_cms/internal/transport/http/dto"
	"heritage_cms/internal/transport/http/dto/response"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	_ "heritage_cms/docs"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
}

type ContactService interface {
	CreateContact(ctx context.Context, req dto.CreateContactRequest) (*dto.ContactResponse, error)
	Contacts(ctx context.Context, page, perPage int) (*dto.ContactListResponse, error)
	UnreadCount(ctx context.Context) (int64, error)
	MarkRead(ctx context.Context, id uuid.UUID) (int64, error)
	DeleteContact(ctx context.Context, id uuid.UUID) error
}

type EventService interface {
	CreateEvent(ctx context.Context, req dto.CreateEventRequest) (*dto.EventResponse, error)
	CreateEventWithFile(ctx context.Context, input dto.EventUploadInput) (*dto.EventResponse, error)
	Event(ctx context.Context, id uuid.UUID) (*dto.EventResponse, error)
	Events(ctx context.Context, page, perPage int) (*dto.EventListResponse, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, req dto.UpdateEventRequest) (*dto.EventResponse, error)
	UpdateEventWithFile(ctx context.Context, id uuid.UUID, input dto.EventUploadInput) (*dto.EventResponse, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) error
}

type GalleryService interface {
	CreateGallery(ctx context.Context, req dto.CreateGalleryRequest) (*dto.GalleryResponse, error)
	UpdateGallery(ctx context.Context, id uuid.UUID, req dto.UpdateGalleryRequest) (*dto.GalleryResponse, error)
	Galleries(ctx context.Context, includeUnpublished bool) ([]dto.GalleryResponse, error)
	GalleryPhotos(ctx context.Context, id uuid.UUID) ([]dto.PhotoResponse, error)
	DeleteGallery(ctx context.Context, id uuid.UUID) error
}

type PhotoService interface {
	Upload(ctx context.Context, input dto.PhotoUploadInput) (*dto.PhotoResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ReenactmentService interface {
	BlocksGroupedByCategory(ctx context.Context) ([]dto.BlocksByCategoryResponse, error)
	Categories(ctx context.Context) ([]dto.CategoryResponse, error)
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	Block(ctx context.Context, id uuid.UUID) (*dto.BlockDetailResponse, error)
	CreateBlock(ctx context.Context, req dto.CreateBlockRequest) (*dto.BlockResponse, error)
	CreateBlockWithFile(ctx context.Context, input dto.BlockUploadInput) (*dto.BlockResponse, error)
	UpdateBlock(ctx context.Context, id uuid.UUID, req dto.UpdateBlockRequest) (*dto.BlockResponse, error)
	DeleteBlock(ctx context.Context, id uuid.UUID) error
}

type Routers struct {
	log                *slog.Logger
	AuthService        AuthService
	ContactService     ContactService
	EventService       EventService
	GalleryService     GalleryService
	PhotoService       PhotoService
	ReenactmentService ReenactmentService
}

func NewRouter(
	log *slog.Logger,
	authService AuthService,
	contactService ContactService,
	eventService EventService,
	galleryService GalleryService,
	photoService PhotoService,
	reenactmentService ReenactmentService,
) *Routers {
	return &Routers{
		log:                log,
		AuthService:        authService,
		ContactService:     contactService,
		EventService:       eventService,
		GalleryService:     galleryService,
		PhotoService:       photoService,
		ReenactmentService: reenactmentService,
	}
}

// writeError maps domain errors onto the HTTP surface. Anything not
// recognized becomes a logged 500 without leaking internals.
func (r *Routers) writeError(c echo.Context, log *slog.Logger, err error) error {
	var upErr *objectstore.UploadError

	switch {
	case errors.Is(err, storage.ErrNotFound):
		return c.JSON(http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, storage.ErrInvalidImageFormat):
		return c.JSON(http.StatusBadRequest, response.ErrInvalidImage)
	case errors.Is(err, storage.ErrDuplicateCode):
		return c.JSON(http.StatusBadRequest, response.ErrDuplicateCategoryCode)
	case errors.Is(err, storage.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	case errors.As(err, &upErr):
		log.Error("object storage upload failed",
			slog.String("key", upErr.Key),
			slog.String("code", upErr.Code),
			slog.String("request_id", upErr.RequestID),
		)
		return c.JSON(http.StatusBadGateway, response.ErrUploadFailed)
	default:
		log.Error("request failed", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}
}

func parseUUIDParam(c echo.Context, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Param(name))
}

func isMultipart(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
}

func parsePagination(c echo.Context) (page, perPage int) {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		page = 1
	}

	perPage, err = strconv.Atoi(c.QueryParam("per_page"))
	if err != nil || perPage < 1 || perPage > 100 {
		perPage = 10
	}

	return page, perPage
}

// readFileUpload reads a multipart file fully into memory so the
// service layer can decode it before touching the network.
func readFileUpload(file *multipart.FileHeader) (*dto.FileUpload, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}

	return &dto.FileUpload{
		Name:        file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
