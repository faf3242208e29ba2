package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/profrate/profrate/internal/app/models"
	"github.com/profrate/profrate/internal/pkg/apperrors"
	"github.com/profrate/profrate/internal/pkg/dberrors"
)

// ModuleRepository handles database operations for modules
type ModuleRepository struct {
	db *pgxpool.Pool
}

// NewModuleRepository creates a new module repository
func NewModuleRepository(db *pgxpool.Pool) *ModuleRepository {
	return &ModuleRepository{
		db: db,
	}
}

// Create creates a new module
func (r *ModuleRepository) Create(ctx context.Context, module *models.Module) error {
	query := `
		INSERT INTO modules (code, name)
		VALUES ($1, $2)
	`

	_, err := r.db.Exec(ctx, query, module.Code, module.Name)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrResourceAlreadyExists
		}
		return fmt.Errorf("error creating module: %w", err)
	}

	return nil
}

// GetByCode retrieves a module by its short code
func (r *ModuleRepository) GetByCode(ctx context.Context, code string) (*models.Module, error) {
	query := `
		SELECT code, name
		FROM modules
		WHERE code = $1
	`

	var module models.Module
	err := r.db.QueryRow(ctx, query, code).Scan(
		&module.Code,
		&module.Name,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrModuleNotFound
		}
		return nil, fmt.Errorf("error retrieving module: %w", err)
	}

	return &module, nil
}
