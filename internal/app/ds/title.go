package ds

type Title struct {
	TitleID     int     `gorm:"primaryKey;column:title_id"`
	Name        string  `gorm:"size:256;not null"`
	Year        int     `gorm:"not null"`
	Description string  `gorm:"type:text"`
	ImageURL    *string `gorm:"size:256"`
	CategoryID  *int
	Category    Category `gorm:"constraint:OnDelete:SET NULL"`
	Genres      []Genre  `gorm:"many2many:title_genres;joinForeignKey:TitleID;joinReferences:GenreID"`
}
