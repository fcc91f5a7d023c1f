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

type CommentService interface {
	Create(ctx context.Context, actor policy.Actor, titleID, reviewID int64, req dto.CreateCommentDTO) (*dto.CommentResponse, error)
	GetByReview(ctx context.Context, titleID, reviewID int64, page, pageSize int) (*dto.Paginated[dto.CommentResponse], error)
	Get(ctx context.Context, titleID, reviewID, commentID int64) (*dto.CommentResponse, error)
	Update(ctx context.Context, actor policy.Actor, titleID, reviewID, commentID int64, patch dto.UpdateCommentDTO) (*dto.CommentResponse, error)
	Delete(ctx context.Context, actor policy.Actor, titleID, reviewID, commentID int64) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
}

func NewCommentService(commentRepo repository.CommentRepository, reviewRepo repository.ReviewRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
	}
}

// Create posts a comment under a review. Unlike reviews, any number of
// comments per author per review is fine.
func (s *commentService) Create(ctx context.Context, actor policy.Actor, titleID, reviewID int64, req dto.CreateCommentDTO) (*dto.CommentResponse, error) {
	if !policy.AllowComment(actor, policy.ActionCreate, "") {
		return nil, ErrForbidden
	}

	if _, err := s.resolveReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ReviewID: reviewID,
		AuthorID: actor.ID,
		Text:     req.Text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	created, err := s.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, err
	}
	return dto.CommentFromModel(created), nil
}

// GetByReview lists comments for a review. The review must belong to the
// title named in the path; a mismatch fails loudly.
func (s *commentService) GetByReview(ctx context.Context, titleID, reviewID int64, page, pageSize int) (*dto.Paginated[dto.CommentResponse], error) {
	if _, err := s.resolveReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comments, total, err := s.commentRepo.GetByReview(ctx, reviewID, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, *dto.CommentFromModel(&comments[i]))
	}
	return dto.NewPaginated(responses, int(total), page, pageSize), nil
}

func (s *commentService) Get(ctx context.Context, titleID, reviewID, commentID int64) (*dto.CommentResponse, error) {
	comment, err := s.getScoped(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	return dto.CommentFromModel(comment), nil
}

func (s *commentService) Update(ctx context.Context, actor policy.Actor, titleID, reviewID, commentID int64, patch dto.UpdateCommentDTO) (*dto.CommentResponse, error) {
	comment, err := s.getScoped(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if !policy.AllowComment(actor, policy.ActionUpdate, comment.AuthorID) {
		return nil, ErrForbidden
	}

	if patch.Text != nil {
		comment.Text = *patch.Text
	}
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	updated, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	return dto.CommentFromModel(updated), nil
}

func (s *commentService) Delete(ctx context.Context, actor policy.Actor, titleID, reviewID, commentID int64) error {
	comment, err := s.getScoped(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if !policy.AllowComment(actor, policy.ActionDelete, comment.AuthorID) {
		return ErrForbidden
	}
	return s.commentRepo.Delete(ctx, comment)
}

func (s *commentService) resolveReview(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	review, err := s.reviewRepo.GetByTitleAndID(ctx, titleID, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return review, nil
}

func (s *commentService) getScoped(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error) {
	if _, err := s.resolveReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByReviewAndID(ctx, reviewID, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return comment, nil
}
