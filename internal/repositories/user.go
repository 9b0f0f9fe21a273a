package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-remit-wallet/internal/models"
)

// UserRepository reads the user directory.
type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByIdentifier looks a user up by email or phone.
func (r *UserRepository) FindByIdentifier(ctx context.Context, identifier string) (*models.UserRef, error) {
	const query = `
		SELECT user_id, name, COALESCE(email, '') AS email, COALESCE(phone, '') AS phone, kyc_status
		FROM users
		WHERE LOWER(email) = LOWER($1) OR phone = $1
		LIMIT 1
	`
	identifier = strings.TrimSpace(identifier)

	var user models.UserRef
	err := r.db.GetContext(ctx, &user, query, identifier)
	logQuery(query, []any{identifier}, user.UserID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", models.ErrRecipientNotFound, identifier)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID returns the directory entry of userID.
func (r *UserRepository) GetByID(ctx context.Context, userID uuid.UUID) (*models.UserRef, error) {
	const query = `
		SELECT user_id, name, COALESCE(email, '') AS email, COALESCE(phone, '') AS phone, kyc_status
		FROM users
		WHERE user_id = $1
	`

	var user models.UserRef
	err := r.db.GetContext(ctx, &user, query, userID)
	logQuery(query, []any{userID}, user.UserID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", models.ErrUserNotFound, userID)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
