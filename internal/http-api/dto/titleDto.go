package dto

import "reviewhub/internal/http-api/models"

// TitleWriteDTO is the create/update shape: category and genres are referenced
// by slug.
type TitleWriteDTO struct {
	Name        string   `json:"name" binding:"required,max=200"`
	Year        *int     `json:"year"`
	Description *string  `json:"description"`
	Genre       []string `json:"genre"`
	Category    *string  `json:"category"`
}

// TitlePatchDTO is the partial-update shape: absent fields stay unchanged.
// A present empty genre list clears the genres; clearing year, description or
// category takes a full PUT.
type TitlePatchDTO struct {
	Name        *string  `json:"name" binding:"omitempty,max=200"`
	Year        *int     `json:"year"`
	Description *string  `json:"description"`
	Genre       []string `json:"genre"`
	Category    *string  `json:"category"`
}

// TitleReadResponse is the list/retrieve shape: nested category and genre
// objects plus the derived rating. Rating is null for a reviewless title.
type TitleReadResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Year        *int              `json:"year"`
	Rating      *float64          `json:"rating"`
	Description *string           `json:"description"`
	Genre       []GenreResponse   `json:"genre"`
	Category    *CategoryResponse `json:"category"`
}

func TitleFromModel(t *models.Title, rating *float64) *TitleReadResponse {
	genres := make([]GenreResponse, 0, len(t.Genres))
	for _, g := range t.Genres {
		genres = append(genres, GenreFromModel(g))
	}

	var category *CategoryResponse
	if t.Category != nil {
		c := CategoryFromModel(*t.Category)
		category = &c
	}

	return &TitleReadResponse{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Rating:      rating,
		Description: t.Description,
		Genre:       genres,
		Category:    category,
	}
}
