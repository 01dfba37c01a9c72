package models

import (
	"time"
)

// EarliestReleaseDate is the date of the first public film screening.
// Release dates must be strictly after it.
var EarliestReleaseDate = NewDate(1895, time.December, 28)

// MaxDescriptionLength is counted in characters, not bytes.
const MaxDescriptionLength = 200

type Film struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"type:varchar(255);not null" json:"name"`
	Description string  `gorm:"type:varchar(200)" json:"description"`
	ReleaseDate Date    `gorm:"not null" json:"releaseDate"`
	Duration    int     `gorm:"not null" json:"duration"`
	MpaID       *uint   `gorm:"index" json:"-"`
	Mpa         *Mpa    `gorm:"-" json:"mpa,omitempty"`
	Genres      []Genre `gorm:"-" json:"genres"`
}

func (Film) TableName() string {
	return "films"
}

// GenreIDs returns the film's genre ids in order with duplicates dropped.
func (f *Film) GenreIDs() []uint {
	seen := make(map[uint]bool, len(f.Genres))
	ids := make([]uint, 0, len(f.Genres))
	for _, g := range f.Genres {
		if seen[g.ID] {
			continue
		}
		seen[g.ID] = true
		ids = append(ids, g.ID)
	}
	return ids
}

// RatingID returns the referenced MPA rating id, if any.
func (f *Film) RatingID() *uint {
	if f.Mpa != nil && f.Mpa.ID != 0 {
		id := f.Mpa.ID
		return &id
	}
	return f.MpaID
}

// FilmLike records that a user endorses a film. A user likes a film at most once.
type FilmLike struct {
	FilmID    uint      `gorm:"primaryKey;autoIncrement:false"`
	UserID    uint      `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (FilmLike) TableName() string {
	return "film_likes"
}

// FilmGenre links a film to a genre; Position keeps the caller's order.
type FilmGenre struct {
	FilmID   uint `gorm:"primaryKey;autoIncrement:false"`
	GenreID  uint `gorm:"primaryKey;autoIncrement:false"`
	Position int  `gorm:"not null;default:0"`
}

func (FilmGenre) TableName() string {
	return "film_genres"
}
