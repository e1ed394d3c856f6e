package repository

import (
	"errors"

	"api_yamdb/internal/app/ds"
)

var ErrCommentNotFound = errors.New("комментарий не найден")

func (r *Repository) GetComments(titleID, reviewID, limit, offset int) ([]ds.Comment, error) {
	var comments []ds.Comment
	err := r.db.Preload("Author").
		Joins("JOIN reviews ON reviews.review_id = comments.review_id").
		Where("comments.review_id = ? AND reviews.title_id = ?", reviewID, titleID).
		Order("comments.pub_date DESC").
		Limit(limit).Offset(offset).
		Find(&comments).Error
	return comments, err
}

// GetCommentByPath ищет комментарий строго по тройке
// (title_id, review_id, comment_id): несогласованный путь — не найдено.
func (r *Repository) GetCommentByPath(titleID, reviewID, commentID int) (ds.Comment, error) {
	var comment ds.Comment
	err := r.db.Preload("Author").
		Joins("JOIN reviews ON reviews.review_id = comments.review_id").
		Where("comments.comment_id = ? AND comments.review_id = ? AND reviews.title_id = ?",
			commentID, reviewID, titleID).
		First(&comment).Error
	if err != nil {
		return ds.Comment{}, ErrCommentNotFound
	}
	return comment, nil
}

func (r *Repository) CreateComment(comment *ds.Comment) error {
	return r.db.Create(comment).Error
}

func (r *Repository) UpdateComment(commentID int, updates map[string]interface{}) error {
	return r.db.Model(&ds.Comment{}).Where("comment_id = ?", commentID).Updates(updates).Error
}

func (r *Repository) DeleteComment(commentID int) error {
	result := r.db.Where("comment_id = ?", commentID).Delete(&ds.Comment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}
