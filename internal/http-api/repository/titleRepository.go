package repository

import (
	"context"
	"fmt"

	"reviewhub/internal/http-api/models"

	"gorm.io/gorm"
)

// TitleFilters are the optional /titles list filters; zero values mean
// "not provided". Provided filters are ANDed together.
type TitleFilters struct {
	Name         string // case-sensitive substring
	Year         *int   // exact match
	GenreSlug    string
	CategorySlug string
}

type TitleRepository interface {
	GetAll(ctx context.Context, filters TitleFilters, page, pageSize int) ([]models.Title, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Title, error)
	Create(ctx context.Context, title *models.Title) error
	Update(ctx context.Context, title *models.Title) error
	ReplaceGenres(ctx context.Context, titleID int64, genres []models.Genre) error
	Delete(ctx context.Context, id int64) error
	AverageRating(ctx context.Context, titleID int64) (*float64, error)
}

type titleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

func (r *titleRepository) applyFilters(q *gorm.DB, filters TitleFilters) *gorm.DB {
	if filters.Name != "" {
		q = q.Where("titles.name LIKE ?", "%"+filters.Name+"%")
	}
	if filters.Year != nil {
		q = q.Where("titles.year = ?", *filters.Year)
	}
	if filters.GenreSlug != "" {
		q = q.Joins("JOIN title_genres tg ON tg.title_id = titles.id").
			Joins("JOIN genres g ON g.id = tg.genre_id").
			Where("g.slug = ?", filters.GenreSlug)
	}
	if filters.CategorySlug != "" {
		q = q.Joins("JOIN categories c ON c.id = titles.category_id").
			Where("c.slug = ?", filters.CategorySlug)
	}
	return q
}

func (r *titleRepository) GetAll(ctx context.Context, filters TitleFilters, page, pageSize int) ([]models.Title, int64, error) {
	var list []models.Title
	var total int64

	// each finisher gets its own chain: Count's Distinct("titles.id") would
	// otherwise stick to the statement and gut the Find's select list
	countQ := r.applyFilters(r.db.WithContext(ctx).Model(&models.Title{}), filters)
	if err := countQ.Distinct("titles.id").Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count titles: %w", err)
	}

	offset := (page - 1) * pageSize
	findQ := r.applyFilters(r.db.WithContext(ctx).Model(&models.Title{}), filters)
	if err := findQ.Distinct("titles.*").
		Preload("Category").
		Preload("Genres").
		Order("titles.id asc").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("get titles: %w", err)
	}
	return list, total, nil
}

func (r *titleRepository) GetByID(ctx context.Context, id int64) (*models.Title, error) {
	var title models.Title
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Genres").
		First(&title, "titles.id = ?", id).Error; err != nil {
		return nil, err
	}
	return &title, nil
}

func (r *titleRepository) Create(ctx context.Context, title *models.Title) error {
	if err := r.db.WithContext(ctx).Create(title).Error; err != nil {
		return fmt.Errorf("create title: %w", err)
	}
	return nil
}

// Update persists scalar fields and the category reference; genre links are
// replaced separately via ReplaceGenres.
func (r *titleRepository) Update(ctx context.Context, title *models.Title) error {
	if err := r.db.WithContext(ctx).Model(title).
		Select("Name", "Year", "Description", "CategoryID").
		Updates(title).Error; err != nil {
		return fmt.Errorf("update title: %w", err)
	}
	return nil
}

func (r *titleRepository) ReplaceGenres(ctx context.Context, titleID int64, genres []models.Genre) error {
	title := models.Title{ID: titleID}
	if err := r.db.WithContext(ctx).Model(&title).Association("Genres").Replace(genres); err != nil {
		return fmt.Errorf("replace title genres: %w", err)
	}
	return nil
}

// Delete removes the title and, explicitly, everything it owns: genre links,
// reviews and the reviews' comments.
func (r *titleRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var title models.Title
		if err := tx.First(&title, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("review_id IN (?)",
			tx.Model(&models.Review{}).Select("id").Where("title_id = ?", id),
		).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("title_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("title_id = ?", id).Delete(&models.TitleGenre{}).Error; err != nil {
			return err
		}
		return tx.Delete(&title).Error
	})
}

// AverageRating returns the mean review score for a title, or nil when the
// title has no reviews. SQL AVG over zero rows is NULL and that NULL must
// survive to the caller — a reviewless title has no rating, not a zero one.
func (r *titleRepository) AverageRating(ctx context.Context, titleID int64) (*float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Select("AVG(score)").
		Where("title_id = ?", titleID).
		Scan(&avg).Error
	if err != nil {
		return nil, fmt.Errorf("average rating: %w", err)
	}
	return avg, nil
}
