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

const dateLayout = "2006-01-02"

// ImageIngester is the slice of the photo service the event service
// needs: running the ingestion pipeline and resolving stored keys.
type ImageIngester interface {
	Upload(ctx context.Context, input dto.PhotoUploadInput) (*dto.PhotoResponse, error)
	PublicURL(objectKey string) string
}

type EventService struct {
	log    *slog.Logger
	repo   repository.EventRepository
	photos ImageIngester
}

func NewEventService(log *slog.Logger, repo repository.EventRepository, photos ImageIngester) *EventService {
	return &EventService{
		log:    log,
		repo:   repo,
		photos: photos,
	}
}

func (s *EventService) CreateEvent(ctx context.Context, req dto.CreateEventRequest) (*dto.EventResponse, error) {
	const op = "event_service.CreateEvent"

	log := s.log.With(
		slog.String("op", op),
		slog.String("title", req.Title),
	)

	if err := validateEventFields(op, req.Title, req.Text); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	event := &models.Event{
		ID:        uuid.New(),
		Title:     req.Title,
		Text:      req.Text,
		Image:     req.Image,
		Link:      req.Link,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if req.Date != nil {
		date, err := parseEventDate(op, *req.Date)
		if err != nil {
			return nil, err
		}
		event.Date = date
	}

	created, err := s.repo.CreateEvent(ctx, event)
	if err != nil {
		log.Error("failed to create event", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("event created", slog.String("event_id", created.ID.String()))

	return s.mapResponse(created), nil
}

// CreateEventWithFile handles the multipart form variant; an attached
// file goes through the ingestion pipeline and its object key becomes
// the event image.
func (s *EventService) CreateEventWithFile(ctx context.Context, input dto.EventUploadInput) (*dto.EventResponse, error) {
	const op = "event_service.CreateEventWithFile"

	log := s.log.With(
		slog.String("op", op),
		slog.String("title", input.Title),
	)

	if err := validateEventFields(op, input.Title, input.Text); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	event := &models.Event{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.applyMultipart(ctx, op, event, input); err != nil {
		return nil, err
	}

	created, err := s.repo.CreateEvent(ctx, event)
	if err != nil {
		log.Error("failed to create event", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("event created", slog.String("event_id", created.ID.String()))

	return s.mapResponse(created), nil
}

func (s *EventService) Event(ctx context.Context, id uuid.UUID) (*dto.EventResponse, error) {
	const op = "event_service.Event"

	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.mapResponse(event), nil
}

func (s *EventService) Events(ctx context.Context, page, perPage int) (*dto.EventListResponse, error) {
	const op = "event_service.Events"

	events, total, err := s.repo.FindAll(ctx, page, perPage)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		out = append(out, *s.mapResponse(&events[i]))
	}

	return &dto.EventListResponse{
		Events:  out,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}, nil
}

func (s *EventService) UpdateEvent(ctx context.Context, id uuid.UUID, req dto.UpdateEventRequest) (*dto.EventResponse, error) {
	const op = "event_service.UpdateEvent"

	log := s.log.With(
		slog.String("op", op),
		slog.String("event_id", id.String()),
	)

	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	patch.Apply(&event.Title, req.Title)
	patch.Apply(&event.Text, req.Text)
	if req.Image != nil {
		event.Image = req.Image
	}
	if req.Link != nil {
		event.Link = req.Link
	}
	if req.Date != nil {
		date, err := parseEventDate(op, *req.Date)
		if err != nil {
			return nil, err
		}
		event.Date = date
	}

	if err := s.repo.UpdateEvent(ctx, event); err != nil {
		log.Error("failed to update event", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("event updated")

	return s.mapResponse(event), nil
}

func (s *EventService) UpdateEventWithFile(ctx context.Context, id uuid.UUID, input dto.EventUploadInput) (*dto.EventResponse, error) {
	const op = "event_service.UpdateEventWithFile"

	log := s.log.With(
		slog.String("op", op),
		slog.String("event_id", id.String()),
	)

	if err := validateEventFields(op, input.Title, input.Text); err != nil {
		return nil, err
	}

	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.applyMultipart(ctx, op, event, input); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateEvent(ctx, event); err != nil {
		log.Error("failed to update event", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("event updated")

	return s.mapResponse(event), nil
}

func (s *EventService) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	const op = "event_service.DeleteEvent"

	if err := s.repo.DeleteEvent(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("event deleted",
		slog.String("op", op),
		slog.String("event_id", id.String()),
	)

	return nil
}

// applyMultipart sets the form-supplied fields on the event. Blank link
// and date clear the stored values; an attached file is ingested first.
func (s *EventService) applyMultipart(ctx context.Context, op string, event *models.Event, input dto.EventUploadInput) error {
	event.Title = input.Title
	event.Text = input.Text

	if input.File != nil {
		photo, err := s.photos.Upload(ctx, dto.PhotoUploadInput{File: *input.File})
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		event.Image = &photo.ObjectKey
	}

	if link := strings.TrimSpace(input.Link); link != "" {
		event.Link = &input.Link
	} else {
		event.Link = nil
	}

	if strings.TrimSpace(input.Date) != "" {
		date, err := parseEventDate(op, input.Date)
		if err != nil {
			return err
		}
		event.Date = date
	} else {
		event.Date = nil
	}

	return nil
}

func (s *EventService) mapResponse(event *models.Event) *dto.EventResponse {
	imageURL := ""
	if event.Image != nil {
		imageURL = s.photos.PublicURL(*event.Image)
	}

	return &dto.EventResponse{
		ID:        event.ID,
		Title:     event.Title,
		Text:      event.Text,
		ImageURL:  imageURL,
		Link:      event.Link,
		Date:      event.Date,
		CreatedAt: event.CreatedAt,
		UpdatedAt: event.UpdatedAt,
	}
}

func validateEventFields(op, title, text string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%s: title is required: %w", op, storage.ErrInvalidInput)
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%s: text is required: %w", op, storage.ErrInvalidInput)
	}
	return nil
}

func parseEventDate(op, value string) (*time.Time, error) {
	date, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("%s: malformed date %q: %w", op, value, storage.ErrInvalidInput)
	}
	return &date, nil
}
