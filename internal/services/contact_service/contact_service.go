package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"heritage_cms/internal/domain/models"
	"heritage_cms/internal/lib/logger/sl"
	"heritage_cms/internal/repository"
	"heritage_cms/internal/transport/http/dto"

	"github.com/google/uuid"
)

// Notifier delivers the admin notification for a new contact message.
type Notifier interface {
	SendContactMessage(ctx context.Context, name, email, message string) error
}

type ContactService struct {
	log      *slog.Logger
	repo     repository.ContactRepository
	notifier Notifier
	retries  int
	delay    time.Duration

	wg sync.WaitGroup
}

func NewContactService(log *slog.Logger, repo repository.ContactRepository, notifier Notifier, retries int, delay time.Duration) *ContactService {
	if retries < 1 {
		retries = 1
	}

	return &ContactService{
		log:      log,
		repo:     repo,
		notifier: notifier,
		retries:  retries,
		delay:    delay,
	}
}

// CreateContact persists the message, then notifies the admin address
// asynchronously. Notification failure never affects the saved contact.
func (s *ContactService) CreateContact(ctx context.Context, req dto.CreateContactRequest) (*dto.ContactResponse, error) {
	const op = "contact_service.CreateContact"

	log := s.log.With(
		slog.String("op", op),
		slog.String("email", req.Email),
	)

	contact := &models.Contact{
		ID:        uuid.New(),
		Name:      req.Name,
		Email:     req.Email,
		Message:   req.Message,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.repo.CreateContact(ctx, contact)
	if err != nil {
		log.Error("failed to create contact", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("contact created", slog.String("contact_id", created.ID.String()))

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.notifyWithRetry(created.Name, created.Email, created.Message)
	}()

	return mapResponse(created), nil
}

func (s *ContactService) Contacts(ctx context.Context, page, perPage int) (*dto.ContactListResponse, error) {
	const op = "contact_service.Contacts"

	contacts, total, err := s.repo.FindAll(ctx, page, perPage)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]dto.ContactResponse, 0, len(contacts))
	for i := range contacts {
		out = append(out, *mapResponse(&contacts[i]))
	}

	return &dto.ContactListResponse{
		Contacts: out,
		Total:    total,
		Page:     page,
		PerPage:  perPage,
	}, nil
}

func (s *ContactService) UnreadCount(ctx context.Context) (int64, error) {
	const op = "contact_service.UnreadCount"

	count, err := s.repo.CountUnread(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return count, nil
}

// MarkRead marks a contact as read and returns the new unread count.
// Idempotent: the read timestamp is set only on the first transition,
// and a missing id just returns the current count.
func (s *ContactService) MarkRead(ctx context.Context, id uuid.UUID) (int64, error) {
	const op = "contact_service.MarkRead"

	contact, err := s.repo.FindByID(ctx, id)
	if err == nil && !contact.IsRead {
		if err := s.repo.MarkRead(ctx, id, time.Now().UTC()); err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
	}

	return s.UnreadCount(ctx)
}

func (s *ContactService) DeleteContact(ctx context.Context, id uuid.UUID) error {
	const op = "contact_service.DeleteContact"

	if err := s.repo.DeleteContact(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Wait blocks until in-flight notifications finish. Used on shutdown
// and by tests.
func (s *ContactService) Wait() {
	s.wg.Wait()
}

// notifyWithRetry attempts the admin notification a bounded number of
// times with a fixed delay. Exhaustion is logged, never surfaced.
func (s *ContactService) notifyWithRetry(name, email, message string) {
	const op = "contact_service.notifyWithRetry"

	log := s.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)

	var lastErr error
	for attempt := 1; attempt <= s.retries; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		lastErr = s.notifier.SendContactMessage(ctx, name, email, message)
		cancel()

		if lastErr == nil {
			return
		}

		log.Warn("notification attempt failed",
			slog.Int("attempt", attempt),
			sl.Err(lastErr),
		)

		if attempt < s.retries {
			time.Sleep(s.delay)
		}
	}

	log.Error("notification failed, retries exhausted", sl.Err(lastErr))
}

func mapResponse(contact *models.Contact) *dto.ContactResponse {
	return &dto.ContactResponse{
		ID:        contact.ID,
		Name:      contact.Name,
		Email:     contact.Email,
		Message:   contact.Message,
		CreatedAt: contact.CreatedAt,
		IsRead:    contact.IsRead,
		ReadAt:    contact.ReadAt,
	}
}
