package ds

type Category struct {
	CategoryID int    `gorm:"primaryKey;column:category_id" json:"-"`
	Name       string `gorm:"size:256;not null" json:"name"`
	Slug       string `gorm:"size:50;unique;not null" json:"slug"`
}
