package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Borrow struct {
	ID         uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	UserID     uuid.UUID  `gorm:"type:char(36);index;not null" json:"userId"`
	BookID     uuid.UUID  `gorm:"type:char(36);index;not null" json:"bookId"`
	BookTitle  string     `gorm:"size:255;not null" json:"bookTitle"`
	BorrowedAt time.Time  `gorm:"not null" json:"borrowedAt"`
	DueDate    time.Time  `gorm:"not null" json:"dueDate"`
	Returned   bool       `gorm:"not null;default:false" json:"returned"`
	ReturnedAt *time.Time `json:"returnedAt,omitempty"`
	Fine       float64    `gorm:"type:decimal(8,2);default:0" json:"fine"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func (b *Borrow) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
