package dto

import (
	"time"

	"reviewhub/internal/http-api/models"
)

// CreateReviewDTO for POST /api/v1/titles/:title_id/reviews. Score range is
// re-checked in the service after shape validation.
type CreateReviewDTO struct {
	Text  string `json:"text" binding:"required"`
	Score *int   `json:"score" binding:"required"`
}

// UpdateReviewDTO is the partial-update shape.
type UpdateReviewDTO struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

// ReviewResponse renders the author as a display name, never an account id.
type ReviewResponse struct {
	ID      int64     `json:"id"`
	Text    string    `json:"text"`
	Score   int       `json:"score"`
	Author  string    `json:"author"`
	PubDate time.Time `json:"pub_date"`
}

func ReviewFromModel(review *models.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:      review.ID,
		Text:    review.Text,
		Score:   review.Score,
		Author:  review.Author.DisplayName(),
		PubDate: review.PubDate,
	}
}
