package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log/slog"
	"strings"
	"time"

	"heritage_cms/internal/domain/models"
	"heritage_cms/internal/lib/besteffort"
	"heritage_cms/internal/lib/logger/sl"
	"heritage_cms/internal/lib/publicurl"
	"heritage_cms/internal/repository"
	"heritage_cms/internal/storage"
	"heritage_cms/internal/storage/objectstore"
	"heritage_cms/internal/transport/http/dto"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const thumbJPEGQuality = 85

// PhotoService implements the image ingestion pipeline: decode,
// thumbnail, upload both variants, persist metadata. Uploads happen
// before the row insert, so a failed upload never leaves a Photo row;
// the reverse gap (persist failure after upload) leaves orphaned
// objects and is a documented limitation.
type PhotoService struct {
	log       *slog.Logger
	repo      repository.PhotoRepository
	store     objectstore.Store
	resolver  publicurl.Resolver
	bucket    string
	thumbSize int
}

func NewPhotoService(log *slog.Logger, repo repository.PhotoRepository, store objectstore.Store, resolver publicurl.Resolver, bucket string, thumbSize int) *PhotoService {
	return &PhotoService{
		log:       log,
		repo:      repo,
		store:     store,
		resolver:  resolver,
		bucket:    bucket,
		thumbSize: thumbSize,
	}
}

func (s *PhotoService) Upload(ctx context.Context, input dto.PhotoUploadInput) (*dto.PhotoResponse, error) {
	const op = "photo_service.Upload"

	log := s.log.With(
		slog.String("op", op),
		slog.String("filename", input.File.Name),
	)

	img, err := imaging.Decode(bytes.NewReader(input.File.Data))
	if err != nil {
		log.Warn("upload rejected", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, storage.ErrInvalidImageFormat)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	base := uuid.NewString()
	objectKey := "original/" + base + "_" + input.File.Name
	thumbKey := "thumbs/" + base + "_thumb.jpg"

	// Scale the longer dimension to the configured size; the zero
	// dimension keeps the aspect ratio.
	var thumb *image.NRGBA
	if width >= height {
		thumb = imaging.Resize(img, s.thumbSize, 0, imaging.Lanczos)
	} else {
		thumb = imaging.Resize(img, 0, s.thumbSize, imaging.Lanczos)
	}

	var thumbBuf bytes.Buffer
	if err := imaging.Encode(&thumbBuf, thumb, imaging.JPEG, imaging.JPEGQuality(thumbJPEGQuality)); err != nil {
		return nil, fmt.Errorf("%s: failed to encode thumbnail: %w", op, err)
	}

	if err := s.store.Upload(ctx, objectKey, bytes.NewReader(input.File.Data), int64(len(input.File.Data)), input.File.ContentType); err != nil {
		log.Error("original upload failed", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.store.Upload(ctx, thumbKey, bytes.NewReader(thumbBuf.Bytes()), int64(thumbBuf.Len()), "image/jpeg"); err != nil {
		log.Error("thumbnail upload failed", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	photo := &models.Photo{
		ID:           uuid.New(),
		ObjectKey:    objectKey,
		Bucket:       s.bucket,
		OriginalName: input.File.Name,
		ContentType:  input.File.ContentType,
		SizeBytes:    int64(len(input.File.Data)),
		Width:        width,
		Height:       height,
		Versions: models.VersionMap{
			models.VersionOriginal:  objectKey,
			models.VersionThumbnail: thumbKey,
		},
		GalleryID:   input.OwnerID,
		Caption:     optionalString(input.Caption),
		AltText:     optionalString(input.AltText),
		IsPublished: true,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.repo.CreatePhoto(ctx, photo)
	if err != nil {
		log.Error("failed to persist photo", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("photo ingested",
		slog.String("object_key", created.ObjectKey),
		slog.Int("width", created.Width),
		slog.Int("height", created.Height),
	)

	return s.mapResponse(created), nil
}

// Delete removes the photo row and every storage object it references.
// Object deletes are best-effort: one failed delete never blocks the
// remaining objects or the row removal.
func (s *PhotoService) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "photo_service.Delete"

	log := s.log.With(
		slog.String("op", op),
		slog.String("photo_id", id.String()),
	)

	photo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.deleteObjects(ctx, log, photo)

	if err := s.repo.DeletePhoto(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("photo deleted")

	return nil
}

// DeleteAllForOwner cleans up every photo belonging to an owning
// container (gallery or block) and batch-deletes the rows. Zero owned
// photos is a no-op, not an error.
func (s *PhotoService) DeleteAllForOwner(ctx context.Context, ownerID uuid.UUID) error {
	const op = "photo_service.DeleteAllForOwner"

	log := s.log.With(
		slog.String("op", op),
		slog.String("owner_id", ownerID.String()),
	)

	photos, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for i := range photos {
		s.deleteObjects(ctx, log, &photos[i])
	}

	if err := s.repo.DeleteByOwner(ctx, ownerID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("owner photos deleted", slog.Int("count", len(photos)))

	return nil
}

// Photos lists the photos of an owning container in sort order, with
// resolved public URLs.
func (s *PhotoService) Photos(ctx context.Context, ownerID uuid.UUID) ([]dto.PhotoResponse, error) {
	const op = "photo_service.Photos"

	photos, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]dto.PhotoResponse, 0, len(photos))
	for i := range photos {
		out = append(out, *s.mapResponse(&photos[i]))
	}

	return out, nil
}

// PublicURL resolves a raw image key for entities that store one
// (events, galleries, blocks).
func (s *PhotoService) PublicURL(objectKey string) string {
	return s.resolver.Resolve(objectKey)
}

func (s *PhotoService) deleteObjects(ctx context.Context, log *slog.Logger, photo *models.Photo) {
	for _, key := range photo.StorageKeys() {
		key := key
		besteffort.Run(log, "photo_service.deleteObject", func() error {
			return s.store.Delete(ctx, key)
		})
	}
}

func (s *PhotoService) mapResponse(photo *models.Photo) *dto.PhotoResponse {
	urls := make(map[string]string, len(photo.Versions))
	for label, key := range photo.Versions {
		if url := s.resolver.Resolve(key); url != "" {
			urls[label] = url
		}
	}

	return &dto.PhotoResponse{
		ID:           photo.ID,
		ObjectKey:    photo.ObjectKey,
		Bucket:       photo.Bucket,
		OriginalName: photo.OriginalName,
		ContentType:  photo.ContentType,
		SizeBytes:    photo.SizeBytes,
		Width:        photo.Width,
		Height:       photo.Height,
		Versions:     photo.Versions,
		URLs:         urls,
		GalleryID:    photo.GalleryID,
		Caption:      photo.Caption,
		AltText:      photo.AltText,
		SortOrder:    photo.SortOrder,
		IsPublished:  photo.IsPublished,
		CreatedAt:    photo.CreatedAt,
	}
}

func optionalString(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
