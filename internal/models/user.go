package models

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Email    string `gorm:"type:varchar(255);not null" json:"email"`
	Login    string `gorm:"type:varchar(100);not null" json:"login"`
	Name     string `gorm:"type:varchar(255)" json:"name"`
	Birthday Date   `gorm:"not null" json:"birthday"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}
