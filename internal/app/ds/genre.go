package ds

type Genre struct {
	GenreID int    `gorm:"primaryKey;column:genre_id" json:"-"`
	Name    string `gorm:"size:256;not null" json:"name"`
	Slug    string `gorm:"size:50;unique;not null" json:"slug"`
}
