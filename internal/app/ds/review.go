package ds

import "time"

// Review — отзыв на произведение.
// Пара (title_id, author_id) уникальна: один отзыв на произведение от автора.
type Review struct {
	ReviewID int       `gorm:"primaryKey;column:review_id"`
	TitleID  int       `gorm:"not null;uniqueIndex:idx_review_title_author"`
	Title    Title     `gorm:"constraint:OnDelete:CASCADE"`
	AuthorID int       `gorm:"not null;uniqueIndex:idx_review_title_author"`
	Author   User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Text     string    `gorm:"type:text;not null"`
	Score    int       `gorm:"not null"`
	PubDate  time.Time `gorm:"column:pub_date;autoCreateTime"`
}
