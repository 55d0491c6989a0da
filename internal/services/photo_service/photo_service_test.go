package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"strings"
	"testing"

	"heritage_cms/internal/domain/models"
	"heritage_cms/internal/lib/publicurl"
	"heritage_cms/internal/storage"
	"heritage_cms/internal/transport/http/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPhotoRepository struct {
	mock.Mock
}

// CreatePhoto echoes the argument back when the setup returns (nil, nil),
// mirroring the repository's RETURNING behavior.
func (m *MockPhotoRepository) CreatePhoto(ctx context.Context, photo *models.Photo) (*models.Photo, error) {
	args := m.Called(ctx, photo)
	if args.Get(0) == nil {
		if args.Error(1) == nil {
			return photo, nil
		}
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Photo), args.Error(1)
}

func (m *MockPhotoRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Photo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Photo), args.Error(1)
}

func (m *MockPhotoRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Photo, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Photo), args.Error(1)
}

func (m *MockPhotoRepository) DeletePhoto(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPhotoRepository) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	args := m.Called(ctx, ownerID)
	return args.Error(0)
}

type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, key, reader, size, contentType)
	return args.Error(0)
}

func (m *MockObjectStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x += 10 {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return buf.Bytes()
}

func newTestService(repo *MockPhotoRepository, store *MockObjectStore) *PhotoService {
	resolver := publicurl.Resolver{FriendlyBase: "https://cdn.example.org", Bucket: "media"}
	return NewPhotoService(slog.Default(), repo, store, resolver, "media", 300)
}

func TestPhotoService_Upload_InvalidImage(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockPhotoRepository)
	mockStore := new(MockObjectStore)
	service := newTestService(mockRepo, mockStore)

	_, err := service.Upload(ctx, dto.PhotoUploadInput{
		File: dto.FileUpload{
			Name:        "notes.txt",
			ContentType: "text/plain",
			Data:        []byte("definitely not an image"),
		},
	})

	assert.ErrorIs(t, err, storage.ErrInvalidImageFormat)
	mockStore.AssertNotCalled(t, "Upload")
	mockRepo.AssertNotCalled(t, "CreatePhoto")
}

func TestPhotoService_Upload_Success(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockPhotoRepository)
	mockStore := new(MockObjectStore)
	service := newTestService(mockRepo, mockStore)

	data := pngBytes(t, 800, 600)

	var originalKey, thumbKey string
	mockStore.On("Upload", ctx, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "original/")
	}), mock.Anything, int64(len(data)), "image/png").
		Run(func(args mock.Arguments) { originalKey = args.String(1) }).
		Return(nil).Once()
	mockStore.On("Upload", ctx, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "thumbs/")
	}), mock.Anything, mock.Anything, "image/jpeg").
		Run(func(args mock.Arguments) { thumbKey = args.String(1) }).
		Return(nil).Once()

	mockRepo.On("CreatePhoto", ctx, mock.AnythingOfType("*models.Photo")).
		Return(nil, nil).Once()

	resp, err := service.Upload(ctx, dto.PhotoUploadInput{
		File: dto.FileUpload{
			Name:        "castle.png",
			ContentType: "image/png",
			Data:        data,
		},
		Caption: "  ",
	})

	require.NoError(t, err)
	mockStore.AssertExpectations(t)
	mockRepo.AssertExpectations(t)

	assert.Equal(t, 800, resp.Width)
	assert.Equal(t, 600, resp.Height)
	assert.True(t, strings.HasSuffix(originalKey, "_castle.png"))
	assert.True(t, strings.HasSuffix(thumbKey, "_thumb.jpg"))
	assert.Equal(t, originalKey, resp.Versions[models.VersionOriginal])
	assert.Equal(t, thumbKey, resp.Versions[models.VersionThumbnail])
	assert.Nil(t, resp.Caption, "blank caption should be stored as null")
	assert.True(t, resp.IsPublished)
	assert.Equal(t, "https://cdn.example.org/media/"+originalKey, resp.URLs[models.VersionOriginal])
}

func TestPhotoService_Upload_ThumbnailDimensions(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		srcWidth    int
		srcHeight   int
		thumbWidth  int
		thumbHeight int
	}{
		{"landscape long side shrinks to limit", 800, 600, 300, 225},
		{"portrait long side shrinks to limit", 600, 800, 225, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockPhotoRepository)
			mockStore := new(MockObjectStore)
			service := newTestService(mockRepo, mockStore)

			var thumbData []byte
			mockStore.On("Upload", ctx, mock.MatchedBy(func(key string) bool {
				return strings.HasPrefix(key, "original/")
			}), mock.Anything, mock.Anything, "image/png").
				Return(nil).Once()
			mockStore.On("Upload", ctx, mock.MatchedBy(func(key string) bool {
				return strings.HasPrefix(key, "thumbs/")
			}), mock.Anything, mock.Anything, "image/jpeg").
				Run(func(args mock.Arguments) {
					data, err := io.ReadAll(args.Get(2).(io.Reader))
					require.NoError(t, err)
					thumbData = data
				}).
				Return(nil).Once()

			mockRepo.On("CreatePhoto", ctx, mock.AnythingOfType("*models.Photo")).
				Return(nil, nil).Once()

			_, err := service.Upload(ctx, dto.PhotoUploadInput{
				File: dto.FileUpload{
					Name:        "castle.png",
					ContentType: "image/png",
					Data:        pngBytes(t, tt.srcWidth, tt.srcHeight),
				},
			})

			require.NoError(t, err)
			mockStore.AssertExpectations(t)

			thumb, err := jpeg.Decode(bytes.NewReader(thumbData))
			require.NoError(t, err)
			bounds := thumb.Bounds()
			assert.Equal(t, tt.thumbWidth, bounds.Dx())
			assert.Equal(t, tt.thumbHeight, bounds.Dy())
		})
	}
}

func TestPhotoService_Upload_OriginalUploadFails(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockPhotoRepository)
	mockStore := new(MockObjectStore)
	service := newTestService(mockRepo, mockStore)

	data := pngBytes(t, 100, 100)

	mockStore.On("Upload", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("connection refused")).Once()

	_, err := service.Upload(ctx, dto.PhotoUploadInput{
		File: dto.FileUpload{Name: "x.png", ContentType: "image/png", Data: data},
	})

	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "CreatePhoto")
}

func TestPhotoService_Delete(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockPhotoRepository)
	mockStore := new(MockObjectStore)
	service := newTestService(mockRepo, mockStore)

	photoID := uuid.New()
	photo := &models.Photo{
		ID:        photoID,
		ObjectKey: "original/a_x.png",
		Versions: models.VersionMap{
			models.VersionOriginal:  "original/a_x.png",
			models.VersionThumbnail: "thumbs/a_thumb.jpg",
		},
	}

	mockRepo.On("FindByID", ctx, photoID).Return(photo, nil).Once()
	// One failing object delete must not block the rest.
	mockStore.On("Delete", ctx, "original/a_x.png").Return(errors.New("gone already")).Once()
	mockStore.On("Delete", ctx, "thumbs/a_thumb.jpg").Return(nil).Once()
	mockRepo.On("DeletePhoto", ctx, photoID).Return(nil).Once()

	err := service.Delete(ctx, photoID)

	assert.NoError(t, err)
	mockStore.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestPhotoService_Delete_NotFound(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockPhotoRepository)
	mockStore := new(MockObjectStore)
	service := newTestService(mockRepo, mockStore)

	photoID := uuid.New()
	mockRepo.On("FindByID", ctx, photoID).Return(nil, storage.ErrNotFound).Once()

	err := service.Delete(ctx, photoID)

	assert.ErrorIs(t, err, storage.ErrNotFound)
	mockStore.AssertNotCalled(t, "Delete")
}

func TestPhotoService_DeleteAllForOwner(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockPhotoRepository)
	mockStore := new(MockObjectStore)
	service := newTestService(mockRepo, mockStore)

	ownerID := uuid.New()
	photos := []models.Photo{
		{
			ID:        uuid.New(),
			ObjectKey: "original/a_x.png",
			Versions: models.VersionMap{
				models.VersionOriginal:  "original/a_x.png",
				models.VersionThumbnail: "thumbs/a_thumb.jpg",
			},
		},
		{
			ID:        uuid.New(),
			ObjectKey: "original/b_y.png",
			Versions: models.VersionMap{
				models.VersionOriginal:  "original/b_y.png",
				models.VersionThumbnail: "thumbs/b_thumb.jpg",
			},
		},
	}

	mockRepo.On("FindByOwner", ctx, ownerID).Return(photos, nil).Once()
	mockStore.On("Delete", ctx, mock.Anything).Return(nil).Times(4)
	mockRepo.On("DeleteByOwner", ctx, ownerID).Return(nil).Once()

	err := service.DeleteAllForOwner(ctx, ownerID)

	assert.NoError(t, err)
	mockStore.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestPhotoService_DeleteAllForOwner_Empty(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockPhotoRepository)
	mockStore := new(MockObjectStore)
	service := newTestService(mockRepo, mockStore)

	ownerID := uuid.New()
	mockRepo.On("FindByOwner", ctx, ownerID).Return([]models.Photo{}, nil).Once()
	mockRepo.On("DeleteByOwner", ctx, ownerID).Return(nil).Once()

	err := service.DeleteAllForOwner(ctx, ownerID)

	assert.NoError(t, err)
	mockStore.AssertNotCalled(t, "Delete")
}
