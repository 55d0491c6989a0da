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

type ReenactmentRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewReenactmentRepository(db *pgxpool.Pool) *ReenactmentRepo {
	return &ReenactmentRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var categoryColumns = []string{
	"id",
	"code",
	"name_de",
	"name_en",
	"name_fr",
	"sort_order",
	"created_at",
}

var blockColumns = []string{
	"id",
	"title",
	"text",
	"image",
	"category_id",
	"sort_order",
	"created_at",
}

func (r *ReenactmentRepo) CreateCategory(ctx context.Context, cat *models.ReenactmentCategory) (*models.ReenactmentCategory, error) {
	const op = "repository.reenactment_repository.CreateCategory"

	query, args, err := r.sb.Insert("reenactment_categories").
		Columns(categoryColumns...).
		Values(
			cat.ID,
			cat.Code,
			cat.NameDe,
			cat.NameEn,
			cat.NameFr,
			cat.SortOrder,
			cat.CreatedAt,
		).
		Suffix("RETURNING " + strings.Join(categoryColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	row := r.db.QueryRow(ctx, query, args...)

	var created models.ReenactmentCategory
	if err := scanCategory(row, &created); err != nil {
		return nil, fmt.Errorf("%s: failed to create category: %w", op, err)
	}

	return &created, nil
}

func (r *ReenactmentRepo) FindCategoryByID(ctx context.Context, id uuid.UUID) (*models.ReenactmentCategory, error) {
	const op = "repository.reenactment_repository.FindCategoryByID"

	return r.findCategory(ctx, op, sq.Eq{"id": id})
}

func (r *ReenactmentRepo) FindCategoryByCode(ctx context.Context, code string) (*models.ReenactmentCategory, error) {
	const op = "repository.reenactment_repository.FindCategoryByCode"

	return r.findCategory(ctx, op, sq.Eq{"code": code})
}

func (r *ReenactmentRepo) findCategory(ctx context.Context, op string, where sq.Eq) (*models.ReenactmentCategory, error) {
	query, args, err := r.sb.Select(categoryColumns...).
		From("reenactment_categories").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	row := r.db.QueryRow(ctx, query, args...)

	var cat models.ReenactmentCategory
	if err := scanCategory(row, &cat); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: failed to get category: %w", op, err)
	}

	return &cat, nil
}

func (r *ReenactmentRepo) FindCategories(ctx context.Context) ([]models.ReenactmentCategory, error) {
	const op = "repository.reenactment_repository.FindCategories"

	query, args, err := r.sb.Select(categoryColumns...).
		From("reenactment_categories").
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

	var cats []models.ReenactmentCategory
	for rows.Next() {
		var c models.ReenactmentCategory
		if err := scanCategory(rows, &c); err != nil {
			return nil, fmt.Errorf("%s: row scanning failed: %w", op, err)
		}
		cats = append(cats, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration error: %w", op, err)
	}

	return cats, nil
}

func (r *ReenactmentRepo) UpdateCategory(ctx context.Context, cat *models.ReenactmentCategory) error {
	const op = "repository.reenactment_repository.UpdateCategory"

	query, args, err := r.sb.Update("reenactment_categories").
		Set("name_de", cat.NameDe).
		Set("name_en", cat.NameEn).
		Set("name_fr", cat.NameFr).
		Set("sort_order", cat.SortOrder).
		Where(sq.Eq{"id": cat.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to update category: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

func (r *ReenactmentRepo) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	const op = "repository.reenactment_repository.DeleteCategory"

	query, args, err := r.sb.Delete("reenactment_categories").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to delete category: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

func (r *ReenactmentRepo) CreateBlock(ctx context.Context, block *models.Block) (*models.Block, error) {
	const op = "repository.reenactment_repository.CreateBlock"

	query, args, err := r.sb.Insert("blocks").
		Columns(blockColumns...).
		Values(
			block.ID,
			block.Title,
			block.Text,
			block.Image,
			block.CategoryID,
			block.SortOrder,
			block.CreatedAt,
		).
		Suffix("RETURNING " + strings.Join(blockColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	row := r.db.QueryRow(ctx, query, args...)

	var created models.Block
	if err := scanBlock(row, &created); err != nil {
		return nil, fmt.Errorf("%s: failed to create block: %w", op, err)
	}

	return &created, nil
}

func (r *ReenactmentRepo) FindBlockByID(ctx context.Context, id uuid.UUID) (*models.Block, error) {
	const op = "repository.reenactment_repository.FindBlockByID"

	query, args, err := r.sb.Select(blockColumns...).
		From("blocks").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	row := r.db.QueryRow(ctx, query, args...)

	var block models.Block
	if err := scanBlock(row, &block); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: failed to get block: %w", op, err)
	}

	return &block, nil
}

func (r *ReenactmentRepo) FindBlocks(ctx context.Context) ([]models.Block, error) {
	const op = "repository.reenactment_repository.FindBlocks"

	query, args, err := r.sb.Select(blockColumns...).
		From("blocks").
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

	var blocks []models.Block
	for rows.Next() {
		var b models.Block
		if err := scanBlock(rows, &b); err != nil {
			return nil, fmt.Errorf("%s: row scanning failed: %w", op, err)
		}
		blocks = append(blocks, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration error: %w", op, err)
	}

	return blocks, nil
}

func (r *ReenactmentRepo) UpdateBlock(ctx context.Context, block *models.Block) error {
	const op = "repository.reenactment_repository.UpdateBlock"

	query, args, err := r.sb.Update("blocks").
		Set("title", block.Title).
		Set("text", block.Text).
		Set("image", block.Image).
		Set("category_id", block.CategoryID).
		Set("sort_order", block.SortOrder).
		Where(sq.Eq{"id": block.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to update block: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

func (r *ReenactmentRepo) DeleteBlock(ctx context.Context, id uuid.UUID) error {
	const op = "repository.reenactment_repository.DeleteBlock"

	query, args, err := r.sb.Delete("blocks").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to delete block: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

func scanCategory(row rowScanner, c *models.ReenactmentCategory) error {
	return row.Scan(
		&c.ID,
		&c.Code,
		&c.NameDe,
		&c.NameEn,
		&c.NameFr,
		&c.SortOrder,
		&c.CreatedAt,
	)
}

func scanBlock(row rowScanner, b *models.Block) error {
	return row.Scan(
		&b.ID,
		&b.Title,
		&b.Text,
		&b.Image,
		&b.CategoryID,
		&b.SortOrder,
		&b.CreatedAt,
	)
}
