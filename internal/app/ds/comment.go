package ds

import "time"

type Comment struct {
	CommentID int       `gorm:"primaryKey;column:comment_id"`
	ReviewID  int       `gorm:"not null"`
	Review    Review    `gorm:"constraint:OnDelete:CASCADE"`
	AuthorID  int       `gorm:"not null"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Text      string    `gorm:"type:text;not null"`
	PubDate   time.Time `gorm:"column:pub_date;autoCreateTime"`
}
