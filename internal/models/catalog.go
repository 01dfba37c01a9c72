package models

type Genre struct {
	ID   uint   `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name string `gorm:"type:varchar(100);not null" json:"name,omitempty"`
}

func (Genre) TableName() string {
	return "genres"
}

// Mpa is a Motion Picture Association rating.
type Mpa struct {
	ID   uint   `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name string `gorm:"type:varchar(20);not null" json:"name,omitempty"`
}

func (Mpa) TableName() string {
	return "mpa_ratings"
}

// DefaultGenres is the seeded genre catalog.
var DefaultGenres = []Genre{
	{ID: 1, Name: "Comedy"},
	{ID: 2, Name: "Drama"},
	{ID: 3, Name: "Animation"},
	{ID: 4, Name: "Thriller"},
	{ID: 5, Name: "Documentary"},
	{ID: 6, Name: "Action"},
}

// DefaultMpaRatings is the seeded rating catalog.
var DefaultMpaRatings = []Mpa{
	{ID: 1, Name: "G"},
	{ID: 2, Name: "PG"},
	{ID: 3, Name: "PG-13"},
	{ID: 4, Name: "R"},
	{ID: 5, Name: "NC-17"},
}
