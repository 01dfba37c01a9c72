package models

import (
	"time"
)

// Friendship is one undirected edge of the friend graph. The pair is stored
// once, with the smaller user id in UserLowID.
type Friendship struct {
	UserLowID  uint      `gorm:"primaryKey;autoIncrement:false"`
	UserHighID uint      `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

// NewFriendship returns the canonical edge between a and b.
func NewFriendship(a, b uint) Friendship {
	if a > b {
		a, b = b, a
	}
	return Friendship{UserLowID: a, UserHighID: b}
}

// Other returns the end of the edge that is not id.
func (f Friendship) Other(id uint) uint {
	if f.UserLowID == id {
		return f.UserHighID
	}
	return f.UserLowID
}

// Has reports whether id is one of the two ends.
func (f Friendship) Has(id uint) bool {
	return f.UserLowID == id || f.UserHighID == id
}

func (Friendship) TableName() string {
	return "friendships"
}
