package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"heritage_cms/internal/domain/models"
	"heritage_cms/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type GalleryRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewGalleryRepository(db *pgxpool.Pool) *GalleryRepo {
	return &GalleryRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var galleryColumns = []string{
	"id",
	"title",
	"description",
	"image",
	"is_published",
	"created_at",
	"updated_at",
}

func (r *GalleryRepo) CreateGallery(ctx context.Context, gallery *models.Gallery) (*models.Gallery, error) {
	const op = "repository.gallery_repository.CreateGallery"

	query, args, err := r.sb.Insert("galleries").
		Columns(galleryColumns...).
		Values(
			gallery.ID,
			gallery.Title,
			gallery.Description,
			gallery.Image,
			gallery.IsPublished,
			gallery.CreatedAt,
			gallery.UpdatedAt,
		).
		Suffix("RETURNING " + strings.Join(galleryColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	row := r.db.QueryRow(ctx, query, args...)

	var created models.Gallery
	if err := scanGallery(row, &created); err != nil {
		return nil, fmt.Errorf("%s: failed to create gallery: %w", op, err)
	}

	return &created, nil
}

func (r *GalleryRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Gallery, error) {
	const op = "repository.gallery_repository.FindByID"

	query, args, err := r.sb.Select(galleryColumns...).
		From("galleries").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	row := r.db.QueryRow(ctx, query, args...)

	var gallery models.Gallery
	if err := scanGallery(row, &gallery); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: failed to get gallery: %w", op, err)
	}

	return &gallery, nil
}

func (r *GalleryRepo) FindAll(ctx context.Context) ([]models.Gallery, error) {
	const op = "repository.gallery_repository.FindAll"

	return r.findWhere(ctx, op, nil)
}

func (r *GalleryRepo) FindPublished(ctx context.Context) ([]models.Gallery, error) {
	const op = "repository.gallery_repository.FindPublished"

	return r.findWhere(ctx, op, sq.Eq{"is_published": true})
}

func (r *GalleryRepo) findWhere(ctx context.Context, op string, where interface{}) ([]models.Gallery, error) {
	builder := r.sb.Select(galleryColumns...).
		From("galleries").
		OrderBy("created_at DESC")
	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}
	defer rows.Close()

	var galleries []models.Gallery
	for rows.Next() {
		var g models.Gallery
		if err := scanGallery(rows, &g); err != nil {
			return nil, fmt.Errorf("%s: row scanning failed: %w", op, err)
		}
		galleries = append(galleries, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration error: %w", op, err)
	}

	return galleries, nil
}

func (r *GalleryRepo) UpdateGallery(ctx context.Context, gallery *models.Gallery) error {
	const op = "repository.gallery_repository.UpdateGallery"

	query, args, err := r.sb.Update("galleries").
		Set("title", gallery.Title).
		Set("description", gallery.Description).
		Set("image", gallery.Image).
		Set("is_published", gallery.IsPublished).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": gallery.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to update gallery: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

func (r *GalleryRepo) DeleteGallery(ctx context.Context, id uuid.UUID) error {
	const op = "repository.gallery_repository.DeleteGallery"

	query, args, err := r.sb.Delete("galleries").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to delete gallery: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

func scanGallery(row rowScanner, g *models.Gallery) error {
	return row.Scan(
		&g.ID,
		&g.Title,
		&g.Description,
		&g.Image,
		&g.IsPublished,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
}
