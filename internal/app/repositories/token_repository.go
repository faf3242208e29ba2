package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/profrate/profrate/internal/pkg/apperrors"
	"github.com/profrate/profrate/internal/pkg/dberrors"
	"github.com/profrate/profrate/internal/pkg/logger"
)

// TokenRepository handles refresh token database operations
type TokenRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateToken stores a new refresh token
func (r *TokenRepository) CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error {
	sql, args, err := r.sb.Insert("refresh_tokens").
		Columns("token", "user_id", "expiry_date", "is_revoked", "created_at").
		Values(token, userID, expiryDate, false, time.Now()).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build create token query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "refresh_tokens_token_key") {
			logger.Warn().Int64("userID", userID).Msg("Attempted to create duplicate refresh token")
			return apperrors.ErrTokenInvalid
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing create token query")
		return fmt.Errorf("error creating token: %w", err)
	}

	return nil
}

// GetTokenByValue retrieves token information by value. Revoked and expired
// tokens surface as their respective sentinel errors.
func (r *TokenRepository) GetTokenByValue(ctx context.Context, token string) (int64, time.Time, error) {
	var userID int64
	var expiryDate time.Time
	var isRevoked bool

	sql, args, err := r.sb.Select("user_id", "expiry_date", "is_revoked").
		From("refresh_tokens").
		Where(squirrel.Eq{"token": token}).
		Limit(1).
		ToSql()

	if err != nil {
		return 0, time.Time{}, fmt.Errorf("failed to build get token query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&userID, &expiryDate, &isRevoked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, time.Time{}, apperrors.ErrTokenNotFound
		}
		logger.Error().Err(err).Msg("Error scanning refresh token row")
		return 0, time.Time{}, fmt.Errorf("error retrieving token: %w", err)
	}

	if isRevoked {
		return 0, time.Time{}, apperrors.ErrTokenRevoked
	}

	if expiryDate.Before(time.Now()) {
		return 0, time.Time{}, apperrors.ErrTokenExpired
	}

	return userID, expiryDate, nil
}

// RevokeToken revokes a single refresh token
func (r *TokenRepository) RevokeToken(ctx context.Context, token string) error {
	sql, args, err := r.sb.Update("refresh_tokens").
		Set("is_revoked", true).
		Where(squirrel.Eq{"token": token}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build revoke token query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error revoking token: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTokenNotFound
	}

	return nil
}

// RevokeAllUserTokens revokes every refresh token belonging to a user
func (r *TokenRepository) RevokeAllUserTokens(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.Update("refresh_tokens").
		Set("is_revoked", true).
		Where(squirrel.Eq{"user_id": userID, "is_revoked": false}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build revoke user tokens query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error revoking user tokens: %w", err)
	}

	return nil
}

// DeleteExpiredTokens removes tokens past their expiry date
func (r *TokenRepository) DeleteExpiredTokens(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Delete("refresh_tokens").
		Where(squirrel.Lt{"expiry_date": time.Now()}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build delete expired tokens query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error deleting expired tokens: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}
