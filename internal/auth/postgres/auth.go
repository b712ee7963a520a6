package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/frahmantamala/project-dashboard/internal/auth"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

const credentialsQuery = `SELECT id, email, role, password_hash, is_active FROM users WHERE `

func (r *Repository) GetCredentialsByEmail(ctx context.Context, email string) (*auth.Credentials, error) {
	return r.scan(ctx, credentialsQuery+"email = ?", email)
}

func (r *Repository) GetCredentialsByID(ctx context.Context, userID string) (*auth.Credentials, error) {
	return r.scan(ctx, credentialsQuery+"id = ?", userID)
}

func (r *Repository) scan(ctx context.Context, query string, arg interface{}) (*auth.Credentials, error) {
	var c auth.Credentials
	row := r.db.WithContext(ctx).Raw(query, arg).Row()
	if err := row.Scan(&c.UserID, &c.Email, &c.Role, &c.PasswordHash, &c.IsActive); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}
