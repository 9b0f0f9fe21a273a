package models

import (
	"github.com/google/uuid"
)

// KYCStatus values kept by the user directory.
const (
	KYCPending  = "pending"
	KYCApproved = "approved"
	KYCRejected = "rejected"
)

// UserRef is the directory entry of a platform user. The users table is owned
// by the identity service; this service only reads it.
type UserRef struct {
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Phone     string    `json:"phone" db:"phone"`
	KYCStatus string    `json:"kyc_status" db:"kyc_status"`
}

// KYCApproved reports whether the user may move money out of the platform.
func (u *UserRef) KYCApproved() bool {
	return u.KYCStatus == KYCApproved
}

// Party converts the directory entry into a transaction party.
func (u *UserRef) Party(walletID uuid.UUID) Party {
	return Party{
		UserID:   u.UserID,
		WalletID: walletID,
		Name:     u.Name,
		Email:    u.Email,
		Phone:    u.Phone,
	}
}
