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

type EventRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewEventRepository(db *pgxpool.Pool) *EventRepo {
	return &EventRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var eventColumns = []string{
	"id",
	"title",
	"text",
	"image",
	"link",
	"date",
	"created_at",
	"updated_at",
}

func (r *EventRepo) CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	const op = "repository.event_repository.CreateEvent"

	query, args, err := r.sb.Insert("events").
		Columns(eventColumns...).
		Values(
			event.ID,
			event.Title,
			event.Text,
			event.Image,
			event.Link,
			event.Date,
			event.CreatedAt,
			event.UpdatedAt,
		).
		Suffix("RETURNING " + strings.Join(eventColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	row := r.db.QueryRow(ctx, query, args...)

	var created models.Event
	if err := scanEvent(row, &created); err != nil {
		return nil, fmt.Errorf("%s: failed to create event: %w", op, err)
	}

	return &created, nil
}

func (r *EventRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	const op = "repository.event_repository.FindByID"

	query, args, err := r.sb.Select(eventColumns...).
		From("events").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	row := r.db.QueryRow(ctx, query, args...)

	var event models.Event
	if err := scanEvent(row, &event); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: failed to get event: %w", op, err)
	}

	return &event, nil
}

// FindAll returns one page of events newest-first by event date, plus
// the total row count for pagination.
func (r *EventRepo) FindAll(ctx context.Context, page, perPage int) ([]models.Event, int, error) {
	const op = "repository.event_repository.FindAll"

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM events").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: failed to count events: %w", op, err)
	}

	query, args, err := r.sb.Select(eventColumns...).
		From("events").
		OrderBy("date DESC NULLS LAST", "created_at DESC").
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

	var events []models.Event
	for rows.Next() {
		var e models.Event
		if err := scanEvent(rows, &e); err != nil {
			return nil, 0, fmt.Errorf("%s: row scanning failed: %w", op, err)
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: rows iteration error: %w", op, err)
	}

	return events, total, nil
}

func (r *EventRepo) UpdateEvent(ctx context.Context, event *models.Event) error {
	const op = "repository.event_repository.UpdateEvent"

	query, args, err := r.sb.Update("events").
		Set("title", event.Title).
		Set("text", event.Text).
		Set("image", event.Image).
		Set("link", event.Link).
		Set("date", event.Date).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": event.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to update event: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

func (r *EventRepo) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	const op = "repository.event_repository.DeleteEvent"

	query, args, err := r.sb.Delete("events").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to delete event: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

func scanEvent(row rowScanner, e *models.Event) error {
	return row.Scan(
		&e.ID,
		&e.Title,
		&e.Text,
		&e.Image,
		&e.Link,
		&e.Date,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
}
