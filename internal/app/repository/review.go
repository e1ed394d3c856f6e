package repository

import (
	"errors"

	"api_yamdb/internal/app/ds"

	"gorm.io/gorm"
)

var (
	ErrReviewNotFound = errors.New("отзыв не найден")
	ErrReviewExists   = errors.New("вы уже оставляли отзыв на это произведение")
)

func (r *Repository) GetReviews(titleID, limit, offset int) ([]ds.Review, error) {
	var reviews []ds.Review
	err := r.db.Preload("Author").
		Where("title_id = ?", titleID).
		Order("pub_date DESC").
		Limit(limit).Offset(offset).
		Find(&reviews).Error
	return reviews, err
}

// GetReviewByPath ищет отзыв строго по паре (title_id, review_id).
// Отзыв, существующий под другим произведением, считается не найденным.
func (r *Repository) GetReviewByPath(titleID, reviewID int) (ds.Review, error) {
	var review ds.Review
	err := r.db.Preload("Author").
		Where("review_id = ? AND title_id = ?", reviewID, titleID).
		First(&review).Error
	if err != nil {
		return ds.Review{}, ErrReviewNotFound
	}
	return review, nil
}

// ReviewExists проверяет, оставлял ли автор отзыв на произведение
func (r *Repository) ReviewExists(titleID, authorID int) (bool, error) {
	var count int64
	err := r.db.Model(&ds.Review{}).
		Where("title_id = ? AND author_id = ?", titleID, authorID).
		Count(&count).Error
	return count > 0, err
}

// CreateReview создает отзыв. Уникальность (title_id, author_id)
// дополнительно гарантируется индексом в базе: при гонке двух запросов
// выживает ровно один, второй получает ErrReviewExists.
func (r *Repository) CreateReview(review *ds.Review) error {
	err := r.db.Create(review).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrReviewExists
	}
	return err
}

func (r *Repository) UpdateReview(reviewID int, updates map[string]interface{}) error {
	return r.db.Model(&ds.Review{}).Where("review_id = ?", reviewID).Updates(updates).Error
}

func (r *Repository) DeleteReview(reviewID int) error {
	result := r.db.Where("review_id = ?", reviewID).Delete(&ds.Review{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}
