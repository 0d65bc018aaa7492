package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"storeapi/internal/apperrors"
	"storeapi/internal/models"
)

// uniqueViolation is the Postgres error code for a unique constraint hit.
const uniqueViolation = "23505"

type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(userID string) (*models.User, error)
}

type userRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewUserRepository(db *sqlx.DB, logger *zap.Logger) UserRepository {
	return &userRepository{db: db, logger: logger}
}

func (r *userRepository) CreateUser(user *models.User) error {
	query := `INSERT INTO users (user_id, name, email, password_hash, role) VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	err := r.db.QueryRowx(query, user.UserID, user.Name, user.Email, user.PasswordHash, user.Role).StructScan(user)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return apperrors.Wrap(apperrors.KindDuplicateEmail, "email already exists", err)
		}
		r.logger.Error("Failed to insert user", zap.Error(err))
		return err
	}
	return nil
}

func (r *userRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	query := `SELECT id, user_id, name, email, password_hash, role, created_at FROM users WHERE email = $1`
	err := r.db.Get(&user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.Wrap(apperrors.KindNotFound, "user not found", err)
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByID(userID string) (*models.User, error) {
	var user models.User
	query := `SELECT id, user_id, name, email, password_hash, role, created_at FROM users WHERE user_id = $1`
	err := r.db.Get(&user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.Wrap(apperrors.KindNotFound, "user not found", err)
		}
		return nil, err
	}
	return &user, nil
}
