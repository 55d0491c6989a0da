package repository

import (
	"context"
	"time"

	"heritage_cms/internal/domain/models"

	"github.com/google/uuid"
)

type PhotoRepository interface {
	CreatePhoto(ctx context.Context, photo *models.Photo) (*models.Photo, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Photo, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Photo, error)
	DeletePhoto(ctx context.Context, id uuid.UUID) error
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error
}

type GalleryRepository interface {
	CreateGallery(ctx context.Context, gallery *models.Gallery) (*models.Gallery, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Gallery, error)
	FindAll(ctx context.Context) ([]models.Gallery, error)
	FindPublished(ctx context.Context) ([]models.Gallery, error)
	UpdateGallery(ctx context.Context, gallery *models.Gallery) error
	DeleteGallery(ctx context.Context, id uuid.UUID) error
}

type EventRepository interface {
	CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
	FindAll(ctx context.Context, page, perPage int) ([]models.Event, int, error)
	UpdateEvent(ctx context.Context, event *models.Event) error
	DeleteEvent(ctx context.Context, id uuid.UUID) error
}

type ContactRepository interface {
	CreateContact(ctx context.Context, contact *models.Contact) (*models.Contact, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Contact, error)
	FindAll(ctx context.Context, page, perPage int) ([]models.Contact, int, error)
	MarkRead(ctx context.Context, id uuid.UUID, readAt time.Time) error
	DeleteContact(ctx context.Context, id uuid.UUID) error
	CountUnread(ctx context.Context) (int64, error)
}

type ReenactmentRepository interface {
	CreateCategory(ctx context.Context, cat *models.ReenactmentCategory) (*models.ReenactmentCategory, error)
	FindCategoryByID(ctx context.Context, id uuid.UUID) (*models.ReenactmentCategory, error)
	FindCategoryByCode(ctx context.Context, code string) (*models.ReenactmentCategory, error)
	FindCategories(ctx context.Context) ([]models.ReenactmentCategory, error)
	UpdateCategory(ctx context.Context, cat *models.ReenactmentCategory) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	CreateBlock(ctx context.Context, block *models.Block) (*models.Block, error)
	FindBlockByID(ctx context.Context, id uuid.UUID) (*models.Block, error)
	FindBlocks(ctx context.Context) ([]models.Block, error)
	UpdateBlock(ctx context.Context, block *models.Block) error
	DeleteBlock(ctx context.Context, id uuid.UUID) error
}

type TokenRepository interface {
	SaveRefreshToken(ctx context.Context, email, token string, exp time.Duration) error
	GetRefreshToken(ctx context.Context, email, token string) (bool, error)
	DeleteRefreshToken(ctx context.Context, email, token string) error
}
