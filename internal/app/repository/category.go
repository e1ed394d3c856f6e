package repository

import (
	"errors"
	"strings"

	"api_yamdb/internal/app/ds"
)

var ErrCategoryNotFound = errors.New("категория не найдена")

func (r *Repository) GetCategories(search string, limit, offset int) ([]ds.Category, error) {
	var categories []ds.Category
	q := r.db.Order("name")
	if search != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	err := q.Limit(limit).Offset(offset).Find(&categories).Error
	return categories, err
}

func (r *Repository) GetCategoryBySlug(slug string) (ds.Category, error) {
	var category ds.Category
	err := r.db.Where("slug = ?", slug).First(&category).Error
	if err != nil {
		return ds.Category{}, ErrCategoryNotFound
	}
	return category, nil
}

func (r *Repository) CreateCategory(category *ds.Category) error {
	return r.db.Create(category).Error
}

func (r *Repository) DeleteCategoryBySlug(slug string) error {
	result := r.db.Where("slug = ?", slug).Delete(&ds.Category{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
