package models

// DefaultTagColor is used for tags created on first use.
const DefaultTagColor = "#007bff"

type Tag struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Color string `gorm:"size:7;default:'#007bff'" json:"color"`
}
