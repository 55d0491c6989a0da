package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"heritage_cms/internal/domain/models"
	"heritage_cms/internal/storage"
	"heritage_cms/internal/transport/http/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockGalleryRepository struct {
	mock.Mock
}

func (m *MockGalleryRepository) CreateGallery(ctx context.Context, gallery *models.Gallery) (*models.Gallery, error) {
	args := m.Called(ctx, gallery)
	if args.Get(0) == nil {
		if args.Error(1) == nil {
			return gallery, nil
		}
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Gallery), args.Error(1)
}

func (m *MockGalleryRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Gallery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Gallery), args.Error(1)
}

func (m *MockGalleryRepository) FindAll(ctx context.Context) ([]models.Gallery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Gallery), args.Error(1)
}

func (m *MockGalleryRepository) FindPublished(ctx context.Context) ([]models.Gallery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Gallery), args.Error(1)
}

func (m *MockGalleryRepository) UpdateGallery(ctx context.Context, gallery *models.Gallery) error {
	args := m.Called(ctx, gallery)
	return args.Error(0)
}

func (m *MockGalleryRepository) DeleteGallery(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPhotoCleanup records the call order so the cascade invariant
// (photos before container row) can be asserted.
type MockPhotoCleanup struct {
	mock.Mock
	callOrder *[]string
}

func (m *MockPhotoCleanup) DeleteAllForOwner(ctx context.Context, ownerID uuid.UUID) error {
	if m.callOrder != nil {
		*m.callOrder = append(*m.callOrder, "photos")
	}
	args := m.Called(ctx, ownerID)
	return args.Error(0)
}

func (m *MockPhotoCleanup) Photos(ctx context.Context, ownerID uuid.UUID) ([]dto.PhotoResponse, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.PhotoResponse), args.Error(1)
}

func (m *MockPhotoCleanup) PublicURL(objectKey string) string {
	args := m.Called(objectKey)
	return args.String(0)
}

func TestGalleryService_CreateGallery(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockGalleryRepository)
	mockPhotos := new(MockPhotoCleanup)
	service := NewGalleryService(slog.Default(), mockRepo, mockPhotos)

	tests := []struct {
		name      string
		req       dto.CreateGalleryRequest
		mockSetup func()
		wantErr   error
	}{
		{
			name: "successful creation",
			req:  dto.CreateGalleryRequest{Title: "Summer camp", IsPublished: true},
			mockSetup: func() {
				mockRepo.On("CreateGallery", ctx, mock.AnythingOfType("*models.Gallery")).
					Return(nil, nil).Once()
			},
		},
		{
			name:      "missing title",
			req:       dto.CreateGalleryRequest{Title: "   "},
			mockSetup: func() {},
			wantErr:   storage.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			resp, err := service.CreateGallery(ctx, tt.req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.req.Title, resp.Title)
			assert.Equal(t, tt.req.IsPublished, resp.IsPublished)
		})
	}
}

func TestGalleryService_UpdateGallery_PublishedAlwaysOverwritten(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockGalleryRepository)
	mockPhotos := new(MockPhotoCleanup)
	service := NewGalleryService(slog.Default(), mockRepo, mockPhotos)

	id := uuid.New()
	stored := &models.Gallery{ID: id, Title: "Old title", IsPublished: true}

	mockRepo.On("FindByID", ctx, id).Return(stored, nil).Once()
	mockRepo.On("UpdateGallery", ctx, mock.MatchedBy(func(g *models.Gallery) bool {
		return g.Title == "Old title" && !g.IsPublished
	})).Return(nil).Once()
	mockPhotos.On("PublicURL", mock.Anything).Return("").Maybe()

	// Request carries no title and omits the flag, which decodes to
	// false: the flag must still be written.
	resp, err := service.UpdateGallery(ctx, id, dto.UpdateGalleryRequest{})

	require.NoError(t, err)
	assert.False(t, resp.IsPublished)
	assert.Equal(t, "Old title", resp.Title)
	mockRepo.AssertExpectations(t)
}

func TestGalleryService_Galleries_PublishedFilter(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockGalleryRepository)
	mockPhotos := new(MockPhotoCleanup)
	service := NewGalleryService(slog.Default(), mockRepo, mockPhotos)

	published := []models.Gallery{{ID: uuid.New(), Title: "Public", IsPublished: true}}
	all := append(published, models.Gallery{ID: uuid.New(), Title: "Draft"})

	mockRepo.On("FindPublished", ctx).Return(published, nil).Once()
	mockRepo.On("FindAll", ctx).Return(all, nil).Once()
	mockPhotos.On("PublicURL", mock.Anything).Return("").Maybe()

	publicList, err := service.Galleries(ctx, false)
	require.NoError(t, err)
	assert.Len(t, publicList, 1)

	adminList, err := service.Galleries(ctx, true)
	require.NoError(t, err)
	assert.Len(t, adminList, 2)
}

func TestGalleryService_DeleteGallery_PhotosFirst(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockGalleryRepository)

	var order []string
	mockPhotos := &MockPhotoCleanup{callOrder: &order}
	service := NewGalleryService(slog.Default(), mockRepo, mockPhotos)

	id := uuid.New()
	mockPhotos.On("DeleteAllForOwner", ctx, id).Return(nil).Once()
	mockRepo.On("DeleteGallery", ctx, id).Run(func(mock.Arguments) {
		order = append(order, "gallery")
	}).Return(nil).Once()

	err := service.DeleteGallery(ctx, id)

	require.NoError(t, err)
	assert.Equal(t, []string{"photos", "gallery"}, order)
}

func TestGalleryService_DeleteGallery_PhotoCleanupFails(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockGalleryRepository)
	mockPhotos := new(MockPhotoCleanup)
	service := NewGalleryService(slog.Default(), mockRepo, mockPhotos)

	id := uuid.New()
	mockPhotos.On("DeleteAllForOwner", ctx, id).Return(errors.New("db down")).Once()

	err := service.DeleteGallery(ctx, id)

	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "DeleteGallery")
}
