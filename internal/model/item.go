package model

import "time"

// Item is a listed secondhand good. UID is the storage-generated key;
// ItemID is the application-assigned decimal-string id (max existing + 1).
type Item struct {
	UID         uint64    `gorm:"primaryKey;autoIncrement"`
	ItemID      string    `gorm:"column:item_id;size:32;uniqueIndex;not null"`
	Name        string    `gorm:"size:120"`
	Description string    `gorm:"type:text"`
	Category    string    `gorm:"size:64"`
	Condition   string    `gorm:"size:64"`
	Zipcode     string    `gorm:"size:16"`
	Image       string    `gorm:"size:512"`
	Comments    string    `gorm:"type:text"`
	AgeDays     float64   `gorm:"column:age_days"`
	AgeYears    float64   `gorm:"column:age_years"`
	DateAdded   int64     `gorm:"column:date_added"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Item) TableName() string {
	return "items"
}
