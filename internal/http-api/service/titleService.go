package service

import (
	"context"
	"errors"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"

	"gorm.io/gorm"
)

type TitleService interface {
	List(ctx context.Context, filters repository.TitleFilters, page, pageSize int) (*dto.Paginated[dto.TitleReadResponse], error)
	GetByID(ctx context.Context, id int64) (*dto.TitleReadResponse, error)
	Create(ctx context.Context, req dto.TitleWriteDTO) (*dto.TitleReadResponse, error)
	Update(ctx context.Context, id int64, req dto.TitleWriteDTO) (*dto.TitleReadResponse, error)
	UpdatePartial(ctx context.Context, id int64, patch dto.TitlePatchDTO) (*dto.TitleReadResponse, error)
	Delete(ctx context.Context, id int64) error
}

type titleService struct {
	titleRepo    repository.TitleRepository
	categoryRepo repository.CategoryRepository
	genreRepo    repository.GenreRepository
}

func NewTitleService(titleRepo repository.TitleRepository, categoryRepo repository.CategoryRepository, genreRepo repository.GenreRepository) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
	}
}

// List returns the read shape: nested category/genres plus the rating,
// recomputed from current reviews on every call.
func (s *titleService) List(ctx context.Context, filters repository.TitleFilters, page, pageSize int) (*dto.Paginated[dto.TitleReadResponse], error) {
	titles, total, err := s.titleRepo.GetAll(ctx, filters, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TitleReadResponse, 0, len(titles))
	for i := range titles {
		rating, err := s.titleRepo.AverageRating(ctx, titles[i].ID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *dto.TitleFromModel(&titles[i], rating))
	}
	return dto.NewPaginated(responses, int(total), page, pageSize), nil
}

func (s *titleService) GetByID(ctx context.Context, id int64) (*dto.TitleReadResponse, error) {
	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rating, err := s.titleRepo.AverageRating(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.TitleFromModel(title, rating), nil
}

func (s *titleService) Create(ctx context.Context, req dto.TitleWriteDTO) (*dto.TitleReadResponse, error) {
	category, genres, err := s.resolveRefs(ctx, req)
	if err != nil {
		return nil, err
	}

	title := &models.Title{
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		Genres:      genres,
	}
	if category != nil {
		title.CategoryID = &category.ID
	}

	if err := s.titleRepo.Create(ctx, title); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, title.ID)
}

func (s *titleService) Update(ctx context.Context, id int64, req dto.TitleWriteDTO) (*dto.TitleReadResponse, error) {
	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	category, genres, err := s.resolveRefs(ctx, req)
	if err != nil {
		return nil, err
	}

	title.Name = req.Name
	title.Year = req.Year
	title.Description = req.Description
	title.CategoryID = nil
	if category != nil {
		title.CategoryID = &category.ID
	}

	if err := s.titleRepo.Update(ctx, title); err != nil {
		return nil, err
	}
	if err := s.titleRepo.ReplaceGenres(ctx, id, genres); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// UpdatePartial applies a PATCH: only the fields present in the body change,
// everything else keeps its stored value.
func (s *titleService) UpdatePartial(ctx context.Context, id int64, patch dto.TitlePatchDTO) (*dto.TitleReadResponse, error) {
	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if patch.Name != nil {
		title.Name = *patch.Name
	}
	if patch.Year != nil {
		title.Year = patch.Year
	}
	if patch.Description != nil {
		title.Description = patch.Description
	}
	if patch.Category != nil {
		category, err := s.categoryRepo.GetBySlug(ctx, *patch.Category)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrValidation
			}
			return nil, err
		}
		title.CategoryID = &category.ID
	}

	var genres []models.Genre
	if patch.Genre != nil {
		genres, err = s.genreRepo.GetBySlugs(ctx, patch.Genre)
		if err != nil {
			return nil, err
		}
		if len(genres) != len(patch.Genre) {
			return nil, ErrValidation
		}
	}

	if err := s.titleRepo.Update(ctx, title); err != nil {
		return nil, err
	}
	if patch.Genre != nil {
		if err := s.titleRepo.ReplaceGenres(ctx, id, genres); err != nil {
			return nil, err
		}
	}
	return s.GetByID(ctx, id)
}

func (s *titleService) Delete(ctx context.Context, id int64) error {
	if err := s.titleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// resolveRefs turns write-shape slugs into records. An unknown slug is the
// caller's mistake, not a missing resource.
func (s *titleService) resolveRefs(ctx context.Context, req dto.TitleWriteDTO) (*models.Category, []models.Genre, error) {
	var category *models.Category
	if req.Category != nil {
		var err error
		category, err = s.categoryRepo.GetBySlug(ctx, *req.Category)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, ErrValidation
			}
			return nil, nil, err
		}
	}

	genres, err := s.genreRepo.GetBySlugs(ctx, req.Genre)
	if err != nil {
		return nil, nil, err
	}
	if len(genres) != len(req.Genre) {
		return nil, nil, ErrValidation
	}
	return category, genres, nil
}
