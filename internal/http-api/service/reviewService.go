package service

import (
	"context"
	"errors"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/policy"
	"reviewhub/internal/http-api/repository"

	"gorm.io/gorm"
)

type ReviewService interface {
	Create(ctx context.Context, actor policy.Actor, titleID int64, req dto.CreateReviewDTO) (*dto.ReviewResponse, error)
	GetByTitle(ctx context.Context, titleID int64, page, pageSize int) (*dto.Paginated[dto.ReviewResponse], error)
	Get(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error)
	Update(ctx context.Context, actor policy.Actor, titleID, reviewID int64, patch dto.UpdateReviewDTO) (*dto.ReviewResponse, error)
	Delete(ctx context.Context, actor policy.Actor, titleID, reviewID int64) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, titleRepo repository.TitleRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		titleRepo:  titleRepo,
	}
}

// Create posts a review under a title. Order matters: missing title is 404,
// a second review by the same author is a conflict, and only then is the
// score range checked.
func (s *reviewService) Create(ctx context.Context, actor policy.Actor, titleID int64, req dto.CreateReviewDTO) (*dto.ReviewResponse, error) {
	if !policy.AllowReview(actor, policy.ActionCreate, "") {
		return nil, ErrForbidden
	}

	if _, err := s.titleRepo.GetByID(ctx, titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if _, err := s.reviewRepo.GetByAuthorAndTitle(ctx, actor.ID, titleID); err == nil {
		return nil, ErrConflict
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if req.Score == nil || *req.Score < 1 || *req.Score > 10 {
		return nil, ErrValidation
	}

	review := &models.Review{
		TitleID:  titleID,
		AuthorID: actor.ID,
		Text:     req.Text,
		Score:    *req.Score,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		// the unique index closes the race the pre-check leaves open
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, err
	}

	created, err := s.reviewRepo.GetByID(ctx, review.ID)
	if err != nil {
		return nil, err
	}
	return dto.ReviewFromModel(created), nil
}

func (s *reviewService) GetByTitle(ctx context.Context, titleID int64, page, pageSize int) (*dto.Paginated[dto.ReviewResponse], error) {
	if _, err := s.titleRepo.GetByID(ctx, titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	reviews, total, err := s.reviewRepo.GetByTitle(ctx, titleID, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, *dto.ReviewFromModel(&reviews[i]))
	}
	return dto.NewPaginated(responses, int(total), page, pageSize), nil
}

func (s *reviewService) Get(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error) {
	review, err := s.getScoped(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	return dto.ReviewFromModel(review), nil
}

func (s *reviewService) Update(ctx context.Context, actor policy.Actor, titleID, reviewID int64, patch dto.UpdateReviewDTO) (*dto.ReviewResponse, error) {
	review, err := s.getScoped(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if !policy.AllowReview(actor, policy.ActionUpdate, review.AuthorID) {
		return nil, ErrForbidden
	}

	if patch.Text != nil {
		review.Text = *patch.Text
	}
	if patch.Score != nil {
		if *patch.Score < 1 || *patch.Score > 10 {
			return nil, ErrValidation
		}
		review.Score = *patch.Score
	}

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}

	updated, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	return dto.ReviewFromModel(updated), nil
}

func (s *reviewService) Delete(ctx context.Context, actor policy.Actor, titleID, reviewID int64) error {
	review, err := s.getScoped(ctx, titleID, reviewID)
	if err != nil {
		return err
	}

	if !policy.AllowReview(actor, policy.ActionDelete, review.AuthorID) {
		return ErrForbidden
	}
	return s.reviewRepo.Delete(ctx, review)
}

// getScoped resolves a review inside its title's path scope; a mismatched
// title/review pair is a 404, never a silent empty result.
func (s *reviewService) getScoped(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	review, err := s.reviewRepo.GetByTitleAndID(ctx, titleID, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return review, nil
}
