package service

import (
	"context"
	"testing"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/policy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func commentWithAuthor(id, reviewID int64, authorID string) *models.Comment {
	username := "commenter"
	return &models.Comment{
		ID:       id,
		ReviewID: reviewID,
		AuthorID: authorID,
		Text:     "agreed",
		Author:   models.User{ID: authorID, Email: "commenter@x.com", Username: &username},
	}
}

func TestCreateComment_Success(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	reviewRepo := new(MockReviewRepository)
	svc := NewCommentService(commentRepo, reviewRepo)

	reviewRepo.On("GetByTitleAndID", mock.Anything, int64(5), int64(42)).
		Return(reviewWithAuthor(42, 5, "someone-else"), nil).Once()
	commentRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Comment) bool {
		return c.ReviewID == 42 && c.AuthorID == "u1" && c.Text == "agreed"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Comment).ID = 9
	}).Return(nil).Once()
	commentRepo.On("GetByID", mock.Anything, int64(9)).Return(commentWithAuthor(9, 42, "u1"), nil).Once()

	resp, err := svc.Create(context.Background(), userActor("u1"), 5, 42, dto.CreateCommentDTO{Text: "agreed"})

	assert.NoError(t, err)
	assert.Equal(t, int64(9), resp.ID)
	assert.Equal(t, "commenter", resp.Author)
	commentRepo.AssertExpectations(t)
}

func TestCreateComment_ReviewNotUnderTitle(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	reviewRepo := new(MockReviewRepository)
	svc := NewCommentService(commentRepo, reviewRepo)

	reviewRepo.On("GetByTitleAndID", mock.Anything, int64(6), int64(42)).
		Return(nil, gorm.ErrRecordNotFound).Once()

	_, err := svc.Create(context.Background(), userActor("u1"), 6, 42, dto.CreateCommentDTO{Text: "x"})

	assert.ErrorIs(t, err, ErrNotFound)
	commentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetComment_ScopeMismatchIsNotFound(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	reviewRepo := new(MockReviewRepository)
	svc := NewCommentService(commentRepo, reviewRepo)

	reviewRepo.On("GetByTitleAndID", mock.Anything, int64(5), int64(42)).
		Return(reviewWithAuthor(42, 5, "u1"), nil).Once()
	// comment 9 exists, but under a different review
	commentRepo.On("GetByReviewAndID", mock.Anything, int64(42), int64(9)).
		Return(nil, gorm.ErrRecordNotFound).Once()

	_, err := svc.Get(context.Background(), 5, 42, 9)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateComment_AuthorOrStaffOnly(t *testing.T) {
	tests := []struct {
		name    string
		actor   policy.Actor
		allowed bool
	}{
		{"author", userActor("author-1"), true},
		{"moderator", policy.Actor{ID: "m1", Role: models.RoleModerator, Authenticated: true}, true},
		{"admin", policy.Actor{ID: "a1", Role: models.RoleAdmin, Authenticated: true}, true},
		{"stranger", userActor("u2"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commentRepo := new(MockCommentRepository)
			reviewRepo := new(MockReviewRepository)
			svc := NewCommentService(commentRepo, reviewRepo)

			reviewRepo.On("GetByTitleAndID", mock.Anything, int64(5), int64(42)).
				Return(reviewWithAuthor(42, 5, "irrelevant"), nil)
			commentRepo.On("GetByReviewAndID", mock.Anything, int64(42), int64(9)).
				Return(commentWithAuthor(9, 42, "author-1"), nil)
			commentRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
			commentRepo.On("GetByID", mock.Anything, int64(9)).Return(commentWithAuthor(9, 42, "author-1"), nil)

			_, err := svc.Update(context.Background(), tt.actor, 5, 42, 9, dto.UpdateCommentDTO{Text: strPtr("edited")})

			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrForbidden)
				commentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestDeleteComment_Stranger(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	reviewRepo := new(MockReviewRepository)
	svc := NewCommentService(commentRepo, reviewRepo)

	reviewRepo.On("GetByTitleAndID", mock.Anything, int64(5), int64(42)).
		Return(reviewWithAuthor(42, 5, "irrelevant"), nil).Once()
	commentRepo.On("GetByReviewAndID", mock.Anything, int64(42), int64(9)).
		Return(commentWithAuthor(9, 42, "author-1"), nil).Once()

	err := svc.Delete(context.Background(), userActor("u2"), 5, 42, 9)

	assert.ErrorIs(t, err, ErrForbidden)
	commentRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestListComments_PassesScopeAndPaging(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	reviewRepo := new(MockReviewRepository)
	svc := NewCommentService(commentRepo, reviewRepo)

	reviewRepo.On("GetByTitleAndID", mock.Anything, int64(5), int64(42)).
		Return(reviewWithAuthor(42, 5, "u1"), nil).Once()
	commentRepo.On("GetByReview", mock.Anything, int64(42), 2, 10).
		Return([]models.Comment{*commentWithAuthor(9, 42, "u1")}, int64(11), nil).Once()

	page, err := svc.GetByReview(context.Background(), 5, 42, 2, 10)

	assert.NoError(t, err)
	assert.Equal(t, 11, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Data, 1)
	commentRepo.AssertExpectations(t)
}
