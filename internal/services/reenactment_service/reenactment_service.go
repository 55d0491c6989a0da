package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
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

// The synthetic group collecting blocks without a category.
var otherGroupNames = map[string]string{
	"de": "Sonstige",
	"en": "Other",
	"fr": "Autre",
}

const otherGroupSortOrder = 999

var whitespaceRe = regexp.MustCompile(`\s+`)

// PhotoPipeline is the slice of the photo service the reenactment
// blocks need. Blocks own photos exactly like galleries do.
type PhotoPipeline interface {
	Upload(ctx context.Context, input dto.PhotoUploadInput) (*dto.PhotoResponse, error)
	Photos(ctx context.Context, ownerID uuid.UUID) ([]dto.PhotoResponse, error)
	DeleteAllForOwner(ctx context.Context, ownerID uuid.UUID) error
	PublicURL(objectKey string) string
}

type ReenactmentService struct {
	log    *slog.Logger
	repo   repository.ReenactmentRepository
	photos PhotoPipeline
}

func NewReenactmentService(log *slog.Logger, repo repository.ReenactmentRepository, photos PhotoPipeline) *ReenactmentService {
	return &ReenactmentService{
		log:    log,
		repo:   repo,
		photos: photos,
	}
}

// BlocksGroupedByCategory builds the public reenactment page: every
// category in sort order with its blocks, plus a trailing "other"
// group when uncategorized blocks exist.
func (s *ReenactmentService) BlocksGroupedByCategory(ctx context.Context) ([]dto.BlocksByCategoryResponse, error) {
	const op = "reenactment_service.BlocksGroupedByCategory"

	categories, err := s.repo.FindCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	blocks, err := s.repo.FindBlocks(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	codes := categoryCodes(categories)

	grouped := make(map[uuid.UUID][]dto.BlockResponse)
	for i := range blocks {
		key := uuid.Nil
		if blocks[i].CategoryID != nil {
			key = *blocks[i].CategoryID
		}
		grouped[key] = append(grouped[key], *s.mapBlock(&blocks[i], codes))
	}

	result := make([]dto.BlocksByCategoryResponse, 0, len(categories)+1)
	for i := range categories {
		cat := categories[i]
		group := grouped[cat.ID]
		if group == nil {
			group = []dto.BlockResponse{}
		}
		id := cat.ID
		result = append(result, dto.BlocksByCategoryResponse{
			ID:        &id,
			Code:      cat.Code,
			Names:     cat.Names(),
			SortOrder: cat.SortOrder,
			Blocks:    group,
		})
	}

	if uncategorized := grouped[uuid.Nil]; len(uncategorized) > 0 {
		result = append(result, dto.BlocksByCategoryResponse{
			Code:      "other",
			Names:     otherGroupNames,
			SortOrder: otherGroupSortOrder,
			Blocks:    uncategorized,
		})
	}

	return result, nil
}

func (s *ReenactmentService) Categories(ctx context.Context) ([]dto.CategoryResponse, error) {
	const op = "reenactment_service.Categories"

	categories, err := s.repo.FindCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, *mapCategory(&categories[i]))
	}

	return out, nil
}

// CreateCategory normalizes the code (trimmed, lowercased, internal
// whitespace collapsed to underscores) and rejects duplicates of the
// normalized value.
func (s *ReenactmentService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	const op = "reenactment_service.CreateCategory"

	log := s.log.With(
		slog.String("op", op),
		slog.String("code", req.Code),
	)

	code := NormalizeCode(req.Code)
	if code == "" {
		return nil, fmt.Errorf("%s: code is required: %w", op, storage.ErrInvalidInput)
	}

	if _, err := s.repo.FindCategoryByCode(ctx, code); err == nil {
		log.Warn("duplicate category code", slog.String("normalized", code))
		return nil, fmt.Errorf("%s: code %q: %w", op, code, storage.ErrDuplicateCode)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	sortOrder := 0
	if req.SortOrder != nil {
		sortOrder = *req.SortOrder
	}

	cat := &models.ReenactmentCategory{
		ID:        uuid.New(),
		Code:      code,
		NameDe:    req.NameDe,
		NameEn:    req.NameEn,
		NameFr:    req.NameFr,
		SortOrder: sortOrder,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.repo.CreateCategory(ctx, cat)
	if err != nil {
		log.Error("failed to create category", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("category created", slog.String("category_id", created.ID.String()))

	return mapCategory(created), nil
}

func (s *ReenactmentService) UpdateCategory(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	const op = "reenactment_service.UpdateCategory"

	cat, err := s.repo.FindCategoryByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	patch.Apply(&cat.NameDe, req.NameDe)
	patch.Apply(&cat.NameEn, req.NameEn)
	patch.Apply(&cat.NameFr, req.NameFr)
	patch.Apply(&cat.SortOrder, req.SortOrder)

	if err := s.repo.UpdateCategory(ctx, cat); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return mapCategory(cat), nil
}

func (s *ReenactmentService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	const op = "reenactment_service.DeleteCategory"

	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Block returns a block with its owned photos.
func (s *ReenactmentService) Block(ctx context.Context, id uuid.UUID) (*dto.BlockDetailResponse, error) {
	const op = "reenactment_service.Block"

	block, err := s.repo.FindBlockByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	photos, err := s.photos.Photos(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &dto.BlockDetailResponse{
		BlockResponse: *s.mapBlock(block, s.codeLookup(ctx, block.CategoryID)),
		Photos:        photos,
	}, nil
}

func (s *ReenactmentService) CreateBlock(ctx context.Context, req dto.CreateBlockRequest) (*dto.BlockResponse, error) {
	const op = "reenactment_service.CreateBlock"

	log := s.log.With(
		slog.String("op", op),
		slog.String("title", req.Title),
	)

	if err := validateBlockFields(op, req.Title, req.Text); err != nil {
		return nil, err
	}

	sortOrder := 0
	if req.SortOrder != nil {
		sortOrder = *req.SortOrder
	}

	block := &models.Block{
		ID:         uuid.New(),
		Title:      req.Title,
		Text:       req.Text,
		CategoryID: req.CategoryID,
		SortOrder:  sortOrder,
		CreatedAt:  time.Now().UTC(),
	}

	created, err := s.repo.CreateBlock(ctx, block)
	if err != nil {
		log.Error("failed to create block", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("block created", slog.String("block_id", created.ID.String()))

	return s.mapBlock(created, s.codeLookup(ctx, created.CategoryID)), nil
}

// CreateBlockWithFile handles the multipart variant; an attached file
// goes through the ingestion pipeline and becomes the block image.
func (s *ReenactmentService) CreateBlockWithFile(ctx context.Context, input dto.BlockUploadInput) (*dto.BlockResponse, error) {
	const op = "reenactment_service.CreateBlockWithFile"

	if err := validateBlockFields(op, input.Title, input.Text); err != nil {
		return nil, err
	}

	req := dto.CreateBlockRequest{
		Title:      input.Title,
		Text:       input.Text,
		CategoryID: input.CategoryID,
		SortOrder:  input.SortOrder,
	}

	created, err := s.CreateBlock(ctx, req)
	if err != nil {
		return nil, err
	}

	if input.File == nil {
		return created, nil
	}

	photo, err := s.photos.Upload(ctx, dto.PhotoUploadInput{File: *input.File, OwnerID: &created.ID})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	image := photo.ObjectKey
	return s.UpdateBlock(ctx, created.ID, dto.UpdateBlockRequest{Image: &image})
}

func (s *ReenactmentService) UpdateBlock(ctx context.Context, id uuid.UUID, req dto.UpdateBlockRequest) (*dto.BlockResponse, error) {
	const op = "reenactment_service.UpdateBlock"

	block, err := s.repo.FindBlockByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	patch.Apply(&block.Title, req.Title)
	patch.Apply(&block.Text, req.Text)
	patch.Apply(&block.SortOrder, req.SortOrder)
	if req.Image != nil {
		block.Image = req.Image
	}
	if req.CategoryID != nil {
		block.CategoryID = req.CategoryID
	}

	if err := s.repo.UpdateBlock(ctx, block); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.mapBlock(block, s.codeLookup(ctx, block.CategoryID)), nil
}

// DeleteBlock removes owned photos before the block row, mirroring
// gallery deletion (blocks are owning containers for photos).
func (s *ReenactmentService) DeleteBlock(ctx context.Context, id uuid.UUID) error {
	const op = "reenactment_service.DeleteBlock"

	log := s.log.With(
		slog.String("op", op),
		slog.String("block_id", id.String()),
	)

	if _, err := s.repo.FindBlockByID(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.photos.DeleteAllForOwner(ctx, id); err != nil {
		log.Error("failed to delete block photos", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.DeleteBlock(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("block deleted")

	return nil
}

// NormalizeCode trims, lowercases and collapses internal whitespace of
// a category code to underscores: "  My Code  " -> "my_code".
func NormalizeCode(code string) string {
	return whitespaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(code)), "_")
}

func (s *ReenactmentService) mapBlock(block *models.Block, codes map[uuid.UUID]string) *dto.BlockResponse {
	imageURL := ""
	if block.Image != nil {
		imageURL = s.photos.PublicURL(*block.Image)
	}

	var categoryCode *string
	if block.CategoryID != nil {
		if code, ok := codes[*block.CategoryID]; ok {
			categoryCode = &code
		}
	}

	return &dto.BlockResponse{
		ID:           block.ID,
		Title:        block.Title,
		Text:         block.Text,
		ImageURL:     imageURL,
		CategoryID:   block.CategoryID,
		CategoryCode: categoryCode,
		SortOrder:    block.SortOrder,
	}
}

// codeLookup resolves a single category code; missing categories are
// simply omitted from the response.
func (s *ReenactmentService) codeLookup(ctx context.Context, categoryID *uuid.UUID) map[uuid.UUID]string {
	if categoryID == nil {
		return nil
	}

	cat, err := s.repo.FindCategoryByID(ctx, *categoryID)
	if err != nil {
		return nil
	}

	return map[uuid.UUID]string{cat.ID: cat.Code}
}

func categoryCodes(categories []models.ReenactmentCategory) map[uuid.UUID]string {
	codes := make(map[uuid.UUID]string, len(categories))
	for i := range categories {
		codes[categories[i].ID] = categories[i].Code
	}
	return codes
}

func mapCategory(cat *models.ReenactmentCategory) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:        cat.ID,
		Code:      cat.Code,
		Names:     cat.Names(),
		SortOrder: cat.SortOrder,
	}
}

func validateBlockFields(op, title, text string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%s: title is required: %w", op, storage.ErrInvalidInput)
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%s: text is required: %w", op, storage.ErrInvalidInput)
	}
	return nil
}
