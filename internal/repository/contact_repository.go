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

type ContactRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewContactRepository(db *pgxpool.Pool) *ContactRepo {
	return &ContactRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var contactColumns = []string{
	"id",
	"name",
	"email",
	"message",
	"created_at",
	"is_read",
	"read_at",
}

func (r *ContactRepo) CreateContact(ctx context.Context, contact *models.Contact) (*models.Contact, error) {
	const op = "repository.contact_repository.CreateContact"

	query, args, err := r.sb.Insert("contacts").
		Columns(contactColumns...).
		Values(
			contact.ID,
			contact.Name,
			contact.Email,
			contact.Message,
			contact.CreatedAt,
			contact.IsRead,
			contact.ReadAt,
		).
		Suffix("RETURNING " + strings.Join(contactColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	row := r.db.QueryRow(ctx, query, args...)

	var created models.Contact
	if err := scanContact(row, &created); err != nil {
		return nil, fmt.Errorf("%s: failed to create contact: %w", op, err)
	}

	return &created, nil
}

func (r *ContactRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Contact, error) {
	const op = "repository.contact_repository.FindByID"

	query, args, err := r.sb.Select(contactColumns...).
		From("contacts").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	row := r.db.QueryRow(ctx, query, args...)

	var contact models.Contact
	if err := scanContact(row, &contact); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: failed to get contact: %w", op, err)
	}

	return &contact, nil
}

func (r *ContactRepo) FindAll(ctx context.Context, page, perPage int) ([]models.Contact, int, error) {
	const op = "repository.contact_repository.FindAll"

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM contacts").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: failed to count contacts: %w", op, err)
	}

	query, args, err := r.sb.Select(contactColumns...).
		From("contacts").
		OrderBy("created_at DESC").
		Limit(uint64(perPage)).
		Offset(uint64((page - 1) * perPage)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}
	defer rows.Close()

	var contacts []models.Contact
	for rows.Next() {
		var c models.Contact
		if err := scanContact(rows, &c); err != nil {
			return nil, 0, fmt.Errorf("%s: row scanning failed: %w", op, err)
		}
		contacts = append(contacts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: rows iteration error: %w", op, err)
	}

	return contacts, total, nil
}

// MarkRead sets the read flag and timestamp only when the contact is
// still unread, so a repeated call never touches the original read time.
func (r *ContactRepo) MarkRead(ctx context.Context, id uuid.UUID, readAt time.Time) error {
	const op = "repository.contact_repository.MarkRead"

	query, args, err := r.sb.Update("contacts").
		Set("is_read", true).
		Set("read_at", readAt).
		Where(sq.Eq{"id": id, "is_read": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: failed to mark contact read: %w", op, err)
	}

	return nil
}

func (r *ContactRepo) DeleteContact(ctx context.Context, id uuid.UUID) error {
	const op = "repository.contact_repository.DeleteContact"

	query, args, err := r.sb.Delete("contacts").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to delete contact: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

func (r *ContactRepo) CountUnread(ctx context.Context) (int64, error) {
	const op = "repository.contact_repository.CountUnread"

	var count int64
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM contacts WHERE is_read = false").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to count unread: %w", op, err)
	}

	return count, nil
}

func scanContact(row rowScanner, c *models.Contact) error {
	return row.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Message,
		&c.CreatedAt,
		&c.IsRead,
		&c.ReadAt,
	)
}
