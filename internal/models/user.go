package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User rows are created unverified. Retried registrations for the same
// email coexist as separate unverified rows, so Email carries a plain
// index, not a unique one; the service keeps verified emails unique.
type User struct {
	ID                     uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	Name                   string     `gorm:"size:255;not null" json:"name"`
	Email                  string     `gorm:"index;size:255;not null" json:"email"`
	PasswordHash           string     `gorm:"size:255;not null" json:"-"`
	AccountVerified        bool       `gorm:"not null;default:false" json:"accountVerified"`
	VerificationCode       *int       `json:"-"`
	VerificationCodeExpire *time.Time `json:"-"`
	ResetPasswordTokenHash *string    `gorm:"size:64;index" json:"-"`
	ResetPasswordExpire    *time.Time `json:"-"`
	CreatedAt              time.Time  `json:"createdAt"`
	UpdatedAt              time.Time  `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// SetVerificationCode sets the OTP pair; the two fields always move
// together.
func (u *User) SetVerificationCode(code int, expiresAt time.Time) {
	u.VerificationCode = &code
	u.VerificationCodeExpire = &expiresAt
}

// MarkVerified transitions the account to verified and clears the OTP
// pair. There is no transition back.
func (u *User) MarkVerified() {
	u.AccountVerified = true
	u.VerificationCode = nil
	u.VerificationCodeExpire = nil
}

// SetResetToken sets the reset pair; the two fields always move together.
func (u *User) SetResetToken(tokenHash string, expiresAt time.Time) {
	u.ResetPasswordTokenHash = &tokenHash
	u.ResetPasswordExpire = &expiresAt
}

// ClearResetToken unsets the reset pair, either after a successful reset
// or to roll back a token whose email never went out.
func (u *User) ClearResetToken() {
	u.ResetPasswordTokenHash = nil
	u.ResetPasswordExpire = nil
}
