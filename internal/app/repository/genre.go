package repository

import (
	"errors"
	"strings"

	"api_yamdb/internal/app/ds"
)

var ErrGenreNotFound = errors.New("жанр не найден")

func (r *Repository) GetGenres(search string, limit, offset int) ([]ds.Genre, error) {
	var genres []ds.Genre
	q := r.db.Order("name")
	if search != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	err := q.Limit(limit).Offset(offset).Find(&genres).Error
	return genres, err
}

func (r *Repository) GetGenreBySlug(slug string) (ds.Genre, error) {
	var genre ds.Genre
	err := r.db.Where("slug = ?", slug).First(&genre).Error
	if err != nil {
		return ds.Genre{}, ErrGenreNotFound
	}
	return genre, nil
}

// GetGenresBySlugs возвращает жанры для набора слагов.
// Если хотя бы один слаг не найден — ошибка.
func (r *Repository) GetGenresBySlugs(slugs []string) ([]ds.Genre, error) {
	var genres []ds.Genre
	err := r.db.Where("slug IN ?", slugs).Find(&genres).Error
	if err != nil {
		return nil, err
	}
	if len(genres) != len(slugs) {
		return nil, ErrGenreNotFound
	}
	return genres, nil
}

func (r *Repository) CreateGenre(genre *ds.Genre) error {
	return r.db.Create(genre).Error
}

func (r *Repository) DeleteGenreBySlug(slug string) error {
	result := r.db.Where("slug = ?", slug).Delete(&ds.Genre{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGenreNotFound
	}
	return nil
}
