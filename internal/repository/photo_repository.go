package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"heritage_cms/internal/domain/models"
	"heritage_cms/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type PhotoRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewPhotoRepository(db *pgxpool.Pool) *PhotoRepo {
	return &PhotoRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var photoColumns = []string{
	"id",
	"object_key",
	"bucket",
	"original_name",
	"content_type",
	"size_bytes",
	"width",
	"height",
	"versions",
	"gallery_id",
	"caption",
	"alt_text",
	"sort_order",
	"is_published",
	"created_at",
}

func (r *PhotoRepo) CreatePhoto(ctx context.Context, photo *models.Photo) (*models.Photo, error) {
	const op = "repository.photo_repository.CreatePhoto"

	query, args, err := r.sb.Insert("photos").
		Columns(photoColumns...).
		Values(
			photo.ID,
			photo.ObjectKey,
			photo.Bucket,
			photo.OriginalName,
			photo.ContentType,
			photo.SizeBytes,
			photo.Width,
			photo.Height,
			photo.Versions,
			photo.GalleryID,
			photo.Caption,
			photo.AltText,
			photo.SortOrder,
			photo.IsPublished,
			photo.CreatedAt,
		).
		Suffix("RETURNING " + strings.Join(photoColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	row := r.db.QueryRow(ctx, query, args...)

	var created models.Photo
	if err := scanPhoto(row, &created); err != nil {
		return nil, fmt.Errorf("%s: failed to create photo: %w", op, err)
	}

	return &created, nil
}

func (r *PhotoRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Photo, error) {
	const op = "repository.photo_repository.FindByID"

	query, args, err := r.sb.Select(photoColumns...).
		From("photos").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	row := r.db.QueryRow(ctx, query, args...)

	var photo models.Photo
	if err := scanPhoto(row, &photo); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: failed to get photo: %w", op, err)
	}

	return &photo, nil
}

func (r *PhotoRepo) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Photo, error) {
	const op = "repository.photo_repository.FindByOwner"

	query, args, err := r.sb.Select(photoColumns...).
		From("photos").
		Where(sq.Eq{"gallery_id": ownerID}).
		OrderBy("sort_order ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}
	defer rows.Close()

	var photos []models.Photo
	for rows.Next() {
		var p models.Photo
		if err := scanPhoto(rows, &p); err != nil {
			return nil, fmt.Errorf("%s: row scanning failed: %w", op, err)
		}
		photos = append(photos, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration error: %w", op, err)
	}

	return photos, nil
}

func (r *PhotoRepo) DeletePhoto(ctx context.Context, id uuid.UUID) error {
	const op = "repository.photo_repository.DeletePhoto"

	query, args, err := r.sb.Delete("photos").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to delete photo: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// DeleteByOwner removes every photo row belonging to the owning
// container in a single statement. Zero matches is not an error.
func (r *PhotoRepo) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	const op = "repository.photo_repository.DeleteByOwner"

	query, args, err := r.sb.Delete("photos").
		Where(sq.Eq{"gallery_id": ownerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: failed to delete photos: %w", op, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPhoto(row rowScanner, p *models.Photo) error {
	return row.Scan(
		&p.ID,
		&p.ObjectKey,
		&p.Bucket,
		&p.OriginalName,
		&p.ContentType,
		&p.SizeBytes,
		&p.Width,
		&p.Height,
		&p.Versions,
		&p.GalleryID,
		&p.Caption,
		&p.AltText,
		&p.SortOrder,
		&p.IsPublished,
		&p.CreatedAt,
	)
}
