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

// ProfessorRepository handles database operations for professors
type ProfessorRepository struct {
	db *pgxpool.Pool
}

// NewProfessorRepository creates a new professor repository
func NewProfessorRepository(db *pgxpool.Pool) *ProfessorRepository {
	return &ProfessorRepository{
		db: db,
	}
}

// Create creates a new professor
func (r *ProfessorRepository) Create(ctx context.Context, professor *models.Professor) error {
	query := `
		INSERT INTO professors (id, name)
		VALUES ($1, $2)
	`

	_, err := r.db.Exec(ctx, query, professor.ID, professor.Name)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrResourceAlreadyExists
		}
		return fmt.Errorf("error creating professor: %w", err)
	}

	return nil
}

// GetByID retrieves a professor by its short code
func (r *ProfessorRepository) GetByID(ctx context.Context, id string) (*models.Professor, error) {
	query := `
		SELECT id, name
		FROM professors
		WHERE id = $1
	`

	var professor models.Professor
	err := r.db.QueryRow(ctx, query, id).Scan(
		&professor.ID,
		&professor.Name,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfessorNotFound
		}
		return nil, fmt.Errorf("error retrieving professor: %w", err)
	}

	return &professor, nil
}

// GetAll retrieves all professors in storage order
func (r *ProfessorRepository) GetAll(ctx context.Context) ([]*models.Professor, error) {
	query := `
		SELECT id, name
		FROM professors
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var professors []*models.Professor
	for rows.Next() {
		var professor models.Professor
		if err := rows.Scan(
			&professor.ID,
			&professor.Name,
		); err != nil {
			return nil, err
		}
		professors = append(professors, &professor)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return professors, nil
}
