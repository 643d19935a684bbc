package model

import "time"

type User struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	Email        string    `gorm:"size:254;uniqueIndex;not null"`
	FirstName    string    `gorm:"size:100"`
	LastName     string    `gorm:"size:100"`
	PasswordHash string    `gorm:"size:60;not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
