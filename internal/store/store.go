// Package store holds the persistence contracts the service layer depends
// on, plus their gorm implementations. Absence is reported as ErrNotFound
// so callers never see driver errors.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/rushikeshdhande/Library-Management-System/internal/models"
)

var ErrNotFound = errors.New("record not found")

type UserStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindVerifiedByEmail(ctx context.Context, email string) (*models.User, error)
	// FindUnverifiedByEmail returns unverified rows newest first.
	FindUnverifiedByEmail(ctx context.Context, email string) ([]models.User, error)
	CountUnverifiedByEmail(ctx context.Context, email string) (int64, error)
	// FindByResetTokenHash only matches rows whose reset expiry is after
	// now.
	FindByResetTokenHash(ctx context.Context, hash string, now time.Time) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Save(ctx context.Context, user *models.User) error
}

type BorrowStore interface {
	// ListByUser returns the user's borrow records newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Borrow, error)
}
