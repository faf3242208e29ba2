// Package services holds the business logic of the rating catalogue:
//   - AuthService: registration, login and token lifecycle
//   - CatalogueService: professor/module/module-instance lookups and listings
//   - RatingService: rating upserts and on-demand average aggregation
//
// Services depend on small store interfaces rather than the concrete pgx
// repositories so the logic is testable without a database.
package services

import (
	"context"
	"time"

	"github.com/profrate/profrate/internal/app/models"
)

// ProfessorStore is the professor persistence surface the services need.
type ProfessorStore interface {
	GetByID(ctx context.Context, id string) (*models.Professor, error)
	GetAll(ctx context.Context) ([]*models.Professor, error)
}

// ModuleStore is the module persistence surface the services need.
type ModuleStore interface {
	GetByCode(ctx context.Context, code string) (*models.Module, error)
}

// ModuleInstanceStore is the module-instance persistence surface the
// services need. GetByKey and GetAll return instances with the teaching
// set populated.
type ModuleInstanceStore interface {
	GetByKey(ctx context.Context, moduleCode string, year, semester int) (*models.ModuleInstance, error)
	GetAll(ctx context.Context) ([]*models.ModuleInstance, error)
}

// RatingStore is the rating persistence surface the services need. The
// average methods return the arithmetic mean together with the rating count;
// the mean is meaningless when the count is zero.
type RatingStore interface {
	Upsert(ctx context.Context, rating *models.Rating) error
	AverageForProfessor(ctx context.Context, professorID string) (float64, int64, error)
	AverageForProfessorInModule(ctx context.Context, professorID, moduleCode string) (float64, int64, error)
}

// UserStore is the user persistence surface the auth service needs.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, userID int64) error
}

// RefreshTokenStore is the refresh token persistence surface the auth
// service needs.
type RefreshTokenStore interface {
	CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error
	GetTokenByValue(ctx context.Context, token string) (int64, time.Time, error)
	RevokeToken(ctx context.Context, token string) error
	RevokeAllUserTokens(ctx context.Context, userID int64) error
}
