package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rushikeshdhande/Library-Management-System/internal/models"
)

type GormBorrowStore struct {
	db *gorm.DB
}

func NewGormBorrowStore(db *gorm.DB) *GormBorrowStore {
	return &GormBorrowStore{db: db}
}

func (s *GormBorrowStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Borrow, error) {
	var borrows []models.Borrow
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&borrows).Error
	if err != nil {
		return nil, err
	}
	return borrows, nil
}
