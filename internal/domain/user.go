package domain

import (
	"time"
)

// User represents a registered account
type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string    `gorm:"type:varchar(50);not null;uniqueIndex" json:"username"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	IsActive  bool      `gorm:"default:false" json:"isActive"`
	LastSeen  time.Time `gorm:"type:timestamptz;default:now();not null" json:"lastSeen"`
	CreatedAt time.Time `gorm:"type:timestamptz;default:now();not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamptz;default:now();not null" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}
