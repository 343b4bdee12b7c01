package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Book struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Author       string    `gorm:"size:255;not null" json:"author"`
	Description  string    `gorm:"size:2048" json:"description,omitempty"`
	Price        float64   `gorm:"type:decimal(8,2)" json:"price"`
	Quantity     int       `gorm:"not null" json:"quantity"`
	Availability bool      `gorm:"not null;default:true" json:"availability"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (b *Book) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
