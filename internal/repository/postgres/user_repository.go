package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/linuskangsoftware/bubbly/internal/domain"
	"github.com/linuskangsoftware/bubbly/internal/domain/repository"
	"github.com/linuskangsoftware/bubbly/internal/pkg/errors"
)

type userRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewUserRepository(db *DB) repository.UserRepository {
	return &userRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

const userColumns = `id, handle, display_name, bio, image, verified, moderator, xp, created_at, updated_at`

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	users := make([]domain.User, 0)
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		r.logger.Error("Failed to list users", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return users, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	err := r.db.GetContext(ctx, &user, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrUserNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get user by ID", zap.String("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &user, nil
}

func (r *userRepository) GetByHandle(ctx context.Context, handle string) (*domain.User, error) {
	var user domain.User
	query := `SELECT ` + userColumns + ` FROM users WHERE handle = $1`
	err := r.db.GetContext(ctx, &user, query, handle)
	if err == sql.ErrNoRows {
		return nil, errors.ErrUserNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get user by handle", zap.String("handle", handle), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &user, nil
}

func (r *userRepository) Search(ctx context.Context, query string, limit int) ([]domain.User, error) {
	users := make([]domain.User, 0)
	pattern := "%" + strings.ToLower(query) + "%"
	sqlQuery := `
		SELECT ` + userColumns + `
		FROM users
		WHERE LOWER(handle) LIKE $1 OR LOWER(COALESCE(display_name, '')) LIKE $1
		ORDER BY xp DESC
		LIMIT $2
	`
	if err := r.db.SelectContext(ctx, &users, sqlQuery, pattern, limit); err != nil {
		r.logger.Error("Failed to search users", zap.String("query", query), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return users, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (id, handle, display_name, bio, image, verified, moderator, xp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Handle, user.DisplayName, user.Bio, user.Image,
		user.Verified, user.Moderator, user.XP,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errors.ErrHandleTaken
		}
		r.logger.Error("Failed to create user", zap.String("handle", user.Handle), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return user, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id string, patch domain.ProfilePatch) (*domain.User, error) {
	query := `
		UPDATE users
		SET display_name = COALESCE($2, display_name),
		    handle       = COALESCE($3, handle),
		    bio          = COALESCE($4, bio),
		    image        = COALESCE($5, image),
		    updated_at   = now()
		WHERE id = $1
		RETURNING ` + userColumns

	var user domain.User
	err := r.db.GetContext(ctx, &user, query,
		id, patch.DisplayName, patch.Handle, patch.Bio, patch.Image,
	)
	if err == sql.ErrNoRows {
		return nil, errors.ErrUserNotFound
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errors.ErrHandleTaken
		}
		r.logger.Error("Failed to update profile", zap.String("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &user, nil
}

func (r *userRepository) AdjustXP(ctx context.Context, id string, delta int) (*domain.User, error) {
	query := `
		UPDATE users
		SET xp = xp + $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + userColumns

	var user domain.User
	err := r.db.GetContext(ctx, &user, query, id, delta)
	if err == sql.ErrNoRows {
		return nil, errors.ErrUserNotFound
	}
	if err != nil {
		r.logger.Error("Failed to adjust XP", zap.String("id", id), zap.Int("delta", delta), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &user, nil
}

func (r *userRepository) SetModerator(ctx context.Context, id string, moderator bool) error {
	return r.setFlag(ctx, id, "moderator", moderator)
}

func (r *userRepository) SetVerified(ctx context.Context, id string, verified bool) error {
	return r.setFlag(ctx, id, "verified", verified)
}

func (r *userRepository) setFlag(ctx context.Context, id, column string, value bool) error {
	// column приходит только из SetModerator/SetVerified, не из запроса
	query := `UPDATE users SET ` + column + ` = $2, updated_at = now() WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, value)
	if err != nil {
		r.logger.Error("Failed to set user flag", zap.String("id", id), zap.String("flag", column), zap.Error(err))
		return errors.ErrDatabaseError
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.ErrDatabaseError
	}
	if affected == 0 {
		return errors.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete user", zap.String("id", id), zap.Error(err))
		return errors.ErrDatabaseError
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.ErrDatabaseError
	}
	if affected == 0 {
		return errors.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) Top(ctx context.Context, limit int) ([]domain.User, error) {
	users := make([]domain.User, 0)
	query := `SELECT ` + userColumns + ` FROM users ORDER BY xp DESC LIMIT $1`
	if err := r.db.SelectContext(ctx, &users, query, limit); err != nil {
		r.logger.Error("Failed to get top users", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return users, nil
}

func (r *userRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`); err != nil {
		r.logger.Error("Failed to count users", zap.Error(err))
		return 0, errors.ErrDatabaseError
	}
	return count, nil
}

func isUniqueViolation(err error) bool {
	// 23505 = unique_violation
	return err != nil && strings.Contains(err.Error(), "23505")
}
