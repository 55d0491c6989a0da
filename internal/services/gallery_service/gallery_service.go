package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"heritage_cms/internal/domain/models"
	"heritage_cms/internal/lib/logger/sl"
	"heritage_cms/internal/lib/patch"
	"heritage_cms/internal/repository"
	"heritage_cms/internal/storage"
	"heritage_cms/internal/transport/http/dto"

	"github.com/google/uuid"
)

// PhotoCleanup is the slice of the photo service the gallery needs:
// storage-and-row cleanup of owned photos, listing, and URL resolution.
type PhotoCleanup interface {
	DeleteAllForOwner(ctx context.Context, ownerID uuid.UUID) error
	Photos(ctx context.Context, ownerID uuid.UUID) ([]dto.PhotoResponse, error)
	PublicURL(objectKey string) string
}

type GalleryService struct {
	log    *slog.Logger
	repo   repository.GalleryRepository
	photos PhotoCleanup
}

func NewGalleryService(log *slog.Logger, repo repository.GalleryRepository, photos PhotoCleanup) *GalleryService {
	return &GalleryService{
		log:    log,
		repo:   repo,
		photos: photos,
	}
}

func (s *GalleryService) CreateGallery(ctx context.Context, req dto.CreateGalleryRequest) (*dto.GalleryResponse, error) {
	const op = "gallery_service.CreateGallery"

	log := s.log.With(
		slog.String("op", op),
		slog.String("title", req.Title),
	)

	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%s: title is required: %w", op, storage.ErrInvalidInput)
	}

	now := time.Now().UTC()
	gallery := &models.Gallery{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		IsPublished: req.IsPublished,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.CreateGallery(ctx, gallery)
	if err != nil {
		log.Error("failed to create gallery", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("gallery created", slog.String("gallery_id", created.ID.String()))

	return s.mapResponse(created), nil
}

// UpdateGallery overlays present fields onto the stored gallery. The
// published flag is always taken from the request, never defaulted.
func (s *GalleryService) UpdateGallery(ctx context.Context, id uuid.UUID, req dto.UpdateGalleryRequest) (*dto.GalleryResponse, error) {
	const op = "gallery_service.UpdateGallery"

	log := s.log.With(
		slog.String("op", op),
		slog.String("gallery_id", id.String()),
	)

	gallery, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	gallery.IsPublished = req.IsPublished
	patch.Apply(&gallery.Title, req.Title)
	if req.Description != nil {
		gallery.Description = req.Description
	}
	if req.Image != nil {
		gallery.Image = req.Image
	}

	if err := s.repo.UpdateGallery(ctx, gallery); err != nil {
		log.Error("failed to update gallery", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("gallery updated")

	return s.mapResponse(gallery), nil
}

func (s *GalleryService) Galleries(ctx context.Context, includeUnpublished bool) ([]dto.GalleryResponse, error) {
	const op = "gallery_service.Galleries"

	var (
		galleries []models.Gallery
		err       error
	)
	if includeUnpublished {
		galleries, err = s.repo.FindAll(ctx)
	} else {
		galleries, err = s.repo.FindPublished(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]dto.GalleryResponse, 0, len(galleries))
	for i := range galleries {
		out = append(out, *s.mapResponse(&galleries[i]))
	}

	return out, nil
}

// GalleryPhotos returns the photos owned by a gallery, sort order asc.
func (s *GalleryService) GalleryPhotos(ctx context.Context, id uuid.UUID) ([]dto.PhotoResponse, error) {
	const op = "gallery_service.GalleryPhotos"

	photos, err := s.photos.Photos(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return photos, nil
}

// DeleteGallery removes owned photos (rows plus best-effort storage
// objects) before the gallery row, keeping the ordering invariant
// visible in the service rather than hidden in a database cascade.
func (s *GalleryService) DeleteGallery(ctx context.Context, id uuid.UUID) error {
	const op = "gallery_service.DeleteGallery"

	log := s.log.With(
		slog.String("op", op),
		slog.String("gallery_id", id.String()),
	)

	if err := s.photos.DeleteAllForOwner(ctx, id); err != nil {
		log.Error("failed to delete gallery photos", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.DeleteGallery(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("gallery deleted")

	return nil
}

func (s *GalleryService) mapResponse(gallery *models.Gallery) *dto.GalleryResponse {
	imageURL := ""
	if gallery.Image != nil {
		imageURL = s.photos.PublicURL(*gallery.Image)
	}

	return &dto.GalleryResponse{
		ID:          gallery.ID,
		Title:       gallery.Title,
		Description: gallery.Description,
		ImageURL:    imageURL,
		IsPublished: gallery.IsPublished,
		CreatedAt:   gallery.CreatedAt,
		UpdatedAt:   gallery.UpdatedAt,
	}
}
