package repository

import (
	"errors"
	"strings"

	"api_yamdb/internal/app/ds"
)

var ErrTitleNotFound = errors.New("произведение не найдено")

// TitleFilter — параметры фильтрации списка произведений
type TitleFilter struct {
	Name         string
	Year         *int
	CategorySlug string
	GenreSlug    string
}

func (r *Repository) GetTitle(id int) (ds.Title, error) {
	var title ds.Title
	err := r.db.Preload("Category").Preload("Genres").Where("title_id = ?", id).First(&title).Error
	if err != nil {
		return ds.Title{}, ErrTitleNotFound
	}
	return title, nil
}

func (r *Repository) GetTitles(filter TitleFilter, limit, offset int) ([]ds.Title, error) {
	var titles []ds.Title

	q := r.db.Model(&ds.Title{}).Preload("Category").Preload("Genres").Order("titles.name")

	if filter.Name != "" {
		q = q.Where("LOWER(titles.name) LIKE ?", "%"+strings.ToLower(filter.Name)+"%")
	}
	if filter.Year != nil {
		q = q.Where("titles.year = ?", *filter.Year)
	}
	if filter.CategorySlug != "" {
		q = q.Joins("JOIN categories ON categories.category_id = titles.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.GenreSlug != "" {
		q = q.Joins("JOIN title_genres ON title_genres.title_id = titles.title_id").
			Joins("JOIN genres ON genres.genre_id = title_genres.genre_id").
			Where("genres.slug = ?", filter.GenreSlug)
	}

	err := q.Limit(limit).Offset(offset).Find(&titles).Error
	return titles, err
}

// GetTitleRatings возвращает средний балл отзывов по каждому произведению.
// Произведения без отзывов в карте отсутствуют.
func (r *Repository) GetTitleRatings(titleIDs []int) (map[int]float64, error) {
	if len(titleIDs) == 0 {
		return map[int]float64{}, nil
	}

	var rows []struct {
		TitleID int
		Rating  float64
	}

	err := r.db.Model(&ds.Review{}).
		Select("title_id, AVG(score) AS rating").
		Where("title_id IN ?", titleIDs).
		Group("title_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	ratings := make(map[int]float64, len(rows))
	for _, row := range rows {
		ratings[row.TitleID] = row.Rating
	}
	return ratings, nil
}

func (r *Repository) CreateTitle(title *ds.Title) error {
	return r.db.Create(title).Error
}

func (r *Repository) UpdateTitle(id int, updates map[string]interface{}) error {
	return r.db.Model(&ds.Title{}).Where("title_id = ?", id).Updates(updates).Error
}

// ReplaceTitleGenres заменяет набор жанров произведения
func (r *Repository) ReplaceTitleGenres(title *ds.Title, genres []ds.Genre) error {
	return r.db.Model(title).Association("Genres").Replace(genres)
}

func (r *Repository) DeleteTitle(id int) error {
	result := r.db.Where("title_id = ?", id).Delete(&ds.Title{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTitleNotFound
	}
	return nil
}

func (r *Repository) UpdateTitleImage(id int, imageURL *string) error {
	return r.db.Model(&ds.Title{}).Where("title_id = ?", id).Update("image_url", imageURL).Error
}
