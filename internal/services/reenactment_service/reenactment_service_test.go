package services

import (
	"context"
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

type MockReenactmentRepository struct {
	mock.Mock
}

func (m *MockReenactmentRepository) CreateCategory(ctx context.Context, cat *models.ReenactmentCategory) (*models.ReenactmentCategory, error) {
	args := m.Called(ctx, cat)
	if args.Get(0) == nil {
		if args.Error(1) == nil {
			return cat, nil
		}
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReenactmentCategory), args.Error(1)
}

func (m *MockReenactmentRepository) FindCategoryByID(ctx context.Context, id uuid.UUID) (*models.ReenactmentCategory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReenactmentCategory), args.Error(1)
}

func (m *MockReenactmentRepository) FindCategoryByCode(ctx context.Context, code string) (*models.ReenactmentCategory, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReenactmentCategory), args.Error(1)
}

func (m *MockReenactmentRepository) FindCategories(ctx context.Context) ([]models.ReenactmentCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReenactmentCategory), args.Error(1)
}

func (m *MockReenactmentRepository) UpdateCategory(ctx context.Context, cat *models.ReenactmentCategory) error {
	args := m.Called(ctx, cat)
	return args.Error(0)
}

func (m *MockReenactmentRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReenactmentRepository) CreateBlock(ctx context.Context, block *models.Block) (*models.Block, error) {
	args := m.Called(ctx, block)
	if args.Get(0) == nil {
		if args.Error(1) == nil {
			return block, nil
		}
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Block), args.Error(1)
}

func (m *MockReenactmentRepository) FindBlockByID(ctx context.Context, id uuid.UUID) (*models.Block, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Block), args.Error(1)
}

func (m *MockReenactmentRepository) FindBlocks(ctx context.Context) ([]models.Block, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Block), args.Error(1)
}

func (m *MockReenactmentRepository) UpdateBlock(ctx context.Context, block *models.Block) error {
	args := m.Called(ctx, block)
	return args.Error(0)
}

func (m *MockReenactmentRepository) DeleteBlock(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPhotoPipeline struct {
	mock.Mock
}

func (m *MockPhotoPipeline) Upload(ctx context.Context, input dto.PhotoUploadInput) (*dto.PhotoResponse, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PhotoResponse), args.Error(1)
}

func (m *MockPhotoPipeline) Photos(ctx context.Context, ownerID uuid.UUID) ([]dto.PhotoResponse, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.PhotoResponse), args.Error(1)
}

func (m *MockPhotoPipeline) DeleteAllForOwner(ctx context.Context, ownerID uuid.UUID) error {
	args := m.Called(ctx, ownerID)
	return args.Error(0)
}

func (m *MockPhotoPipeline) PublicURL(objectKey string) string {
	args := m.Called(objectKey)
	return args.String(0)
}

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  My Code  ", "my_code"},
		{"CAVALRY", "cavalry"},
		{"field   kitchen", "field_kitchen"},
		{"uniforms", "uniforms"},
		{"   ", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeCode(tt.in))
	}
}

func TestReenactmentService_CreateCategory_NormalizesBeforeDupCheck(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockReenactmentRepository)
	mockPhotos := new(MockPhotoPipeline)
	service := NewReenactmentService(slog.Default(), mockRepo, mockPhotos)

	mockRepo.On("FindCategoryByCode", ctx, "my_code").
		Return(nil, storage.ErrNotFound).Once()
	mockRepo.On("CreateCategory", ctx, mock.MatchedBy(func(c *models.ReenactmentCategory) bool {
		return c.Code == "my_code"
	})).Return(nil, nil).Once()

	resp, err := service.CreateCategory(ctx, dto.CreateCategoryRequest{
		Code:   "  My Code  ",
		NameDe: "Meine Kategorie",
		NameEn: "My category",
		NameFr: "Ma categorie",
	})

	require.NoError(t, err)
	assert.Equal(t, "my_code", resp.Code)
	assert.Equal(t, "Meine Kategorie", resp.Names["de"])
	mockRepo.AssertExpectations(t)
}

func TestReenactmentService_CreateCategory_Duplicate(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockReenactmentRepository)
	mockPhotos := new(MockPhotoPipeline)
	service := NewReenactmentService(slog.Default(), mockRepo, mockPhotos)

	existing := &models.ReenactmentCategory{ID: uuid.New(), Code: "cavalry"}
	mockRepo.On("FindCategoryByCode", ctx, "cavalry").Return(existing, nil).Once()

	_, err := service.CreateCategory(ctx, dto.CreateCategoryRequest{
		Code:   "  CAVALRY ",
		NameDe: "Kavallerie",
		NameEn: "Cavalry",
		NameFr: "Cavalerie",
	})

	assert.ErrorIs(t, err, storage.ErrDuplicateCode)
	mockRepo.AssertNotCalled(t, "CreateCategory")
}

func TestReenactmentService_BlocksGroupedByCategory(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockReenactmentRepository)
	mockPhotos := new(MockPhotoPipeline)
	service := NewReenactmentService(slog.Default(), mockRepo, mockPhotos)

	catID := uuid.New()
	categories := []models.ReenactmentCategory{
		{ID: catID, Code: "uniforms", NameDe: "Uniformen", NameEn: "Uniforms", NameFr: "Uniformes", SortOrder: 1},
	}
	blocks := []models.Block{
		{ID: uuid.New(), Title: "Tunic", Text: "...", CategoryID: &catID},
		{ID: uuid.New(), Title: "Loose ends", Text: "..."},
	}

	mockRepo.On("FindCategories", ctx).Return(categories, nil).Once()
	mockRepo.On("FindBlocks", ctx).Return(blocks, nil).Once()
	mockPhotos.On("PublicURL", mock.Anything).Return("").Maybe()

	groups, err := service.BlocksGroupedByCategory(ctx)

	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, "uniforms", groups[0].Code)
	require.Len(t, groups[0].Blocks, 1)
	require.NotNil(t, groups[0].Blocks[0].CategoryCode)
	assert.Equal(t, "uniforms", *groups[0].Blocks[0].CategoryCode)

	other := groups[1]
	assert.Equal(t, "other", other.Code)
	assert.Nil(t, other.ID)
	assert.Equal(t, 999, other.SortOrder)
	assert.Equal(t, "Sonstige", other.Names["de"])
	assert.Equal(t, "Autre", other.Names["fr"])
	require.Len(t, other.Blocks, 1)
	assert.Equal(t, "Loose ends", other.Blocks[0].Title)
}

func TestReenactmentService_BlocksGroupedByCategory_NoOtherWhenAllCategorized(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockReenactmentRepository)
	mockPhotos := new(MockPhotoPipeline)
	service := NewReenactmentService(slog.Default(), mockRepo, mockPhotos)

	catID := uuid.New()
	categories := []models.ReenactmentCategory{
		{ID: catID, Code: "camp_life", SortOrder: 1},
	}
	blocks := []models.Block{
		{ID: uuid.New(), Title: "Cooking", Text: "...", CategoryID: &catID},
	}

	mockRepo.On("FindCategories", ctx).Return(categories, nil).Once()
	mockRepo.On("FindBlocks", ctx).Return(blocks, nil).Once()
	mockPhotos.On("PublicURL", mock.Anything).Return("").Maybe()

	groups, err := service.BlocksGroupedByCategory(ctx)

	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "camp_life", groups[0].Code)
}

func TestReenactmentService_BlocksGroupedByCategory_EmptyCategoryKept(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockReenactmentRepository)
	mockPhotos := new(MockPhotoPipeline)
	service := NewReenactmentService(slog.Default(), mockRepo, mockPhotos)

	categories := []models.ReenactmentCategory{
		{ID: uuid.New(), Code: "artillery", SortOrder: 1},
	}

	mockRepo.On("FindCategories", ctx).Return(categories, nil).Once()
	mockRepo.On("FindBlocks", ctx).Return([]models.Block{}, nil).Once()

	groups, err := service.BlocksGroupedByCategory(ctx)

	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.NotNil(t, groups[0].Blocks)
	assert.Empty(t, groups[0].Blocks)
}

func TestReenactmentService_Block_WithPhotos(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockReenactmentRepository)
	mockPhotos := new(MockPhotoPipeline)
	service := NewReenactmentService(slog.Default(), mockRepo, mockPhotos)

	blockID := uuid.New()
	block := &models.Block{ID: blockID, Title: "Drill", Text: "..."}
	photos := []dto.PhotoResponse{{ID: uuid.New()}, {ID: uuid.New()}}

	mockRepo.On("FindBlockByID", ctx, blockID).Return(block, nil).Once()
	mockPhotos.On("Photos", ctx, blockID).Return(photos, nil).Once()

	resp, err := service.Block(ctx, blockID)

	require.NoError(t, err)
	assert.Equal(t, "Drill", resp.Title)
	assert.Len(t, resp.Photos, 2)
}

func TestReenactmentService_DeleteBlock_PhotosFirst(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockReenactmentRepository)
	mockPhotos := new(MockPhotoPipeline)
	service := NewReenactmentService(slog.Default(), mockRepo, mockPhotos)

	blockID := uuid.New()
	mockRepo.On("FindBlockByID", ctx, blockID).
		Return(&models.Block{ID: blockID, Title: "Drill", Text: "..."}, nil).Once()
	mockPhotos.On("DeleteAllForOwner", ctx, blockID).Return(nil).Once()
	mockRepo.On("DeleteBlock", ctx, blockID).Return(nil).Once()

	err := service.DeleteBlock(ctx, blockID)

	require.NoError(t, err)
	mockPhotos.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestReenactmentService_DeleteBlock_NotFound(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockReenactmentRepository)
	mockPhotos := new(MockPhotoPipeline)
	service := NewReenactmentService(slog.Default(), mockRepo, mockPhotos)

	blockID := uuid.New()
	mockRepo.On("FindBlockByID", ctx, blockID).Return(nil, storage.ErrNotFound).Once()

	err := service.DeleteBlock(ctx, blockID)

	assert.ErrorIs(t, err, storage.ErrNotFound)
	mockPhotos.AssertNotCalled(t, "DeleteAllForOwner")
}

func TestReenactmentService_CreateBlockWithFile(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockReenactmentRepository)
	mockPhotos := new(MockPhotoPipeline)
	service := NewReenactmentService(slog.Default(), mockRepo, mockPhotos)

	mockRepo.On("CreateBlock", ctx, mock.AnythingOfType("*models.Block")).
		Return(nil, nil).Once()
	mockPhotos.On("Upload", ctx, mock.MatchedBy(func(in dto.PhotoUploadInput) bool {
		return in.OwnerID != nil
	})).Return(&dto.PhotoResponse{ObjectKey: "original/a_drill.png"}, nil).Once()
	mockRepo.On("FindBlockByID", ctx, mock.Anything).
		Return(&models.Block{Title: "Drill", Text: "..."}, nil).Once()
	mockRepo.On("UpdateBlock", ctx, mock.MatchedBy(func(b *models.Block) bool {
		return b.Image != nil && *b.Image == "original/a_drill.png"
	})).Return(nil).Once()
	mockPhotos.On("PublicURL", mock.Anything).Return("").Maybe()

	_, err := service.CreateBlockWithFile(ctx, dto.BlockUploadInput{
		Title: "Drill",
		Text:  "...",
		File:  &dto.FileUpload{Name: "drill.png", Data: []byte{1}},
	})

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockPhotos.AssertExpectations(t)
}
