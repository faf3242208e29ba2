package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/profrate/profrate/internal/app/models"
)

// RatingRepository handles database operations for ratings
type RatingRepository struct {
	db *pgxpool.Pool
}

// NewRatingRepository creates a new rating repository
func NewRatingRepository(db *pgxpool.Pool) *RatingRepository {
	return &RatingRepository{
		db: db,
	}
}

// Upsert stores a rating for the (user, professor, module_instance) triple.
// If a rating already exists for the key its value is overwritten in place;
// serialization of concurrent writes to the same key is delegated to the
// unique constraint.
func (r *RatingRepository) Upsert(ctx context.Context, rating *models.Rating) error {
	query := `
		INSERT INTO ratings (user_id, professor_id, module_instance_id, rating)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, professor_id, module_instance_id)
		DO UPDATE SET rating = EXCLUDED.rating
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		rating.UserID, rating.ProfessorID, rating.ModuleInstanceID, rating.Value).Scan(&rating.ID)
	if err != nil {
		return fmt.Errorf("error upserting rating: %w", err)
	}

	return nil
}

// AverageForProfessor returns the arithmetic mean of all ratings for a
// professor together with the rating count. The mean is 0 when count is 0.
func (r *RatingRepository) AverageForProfessor(ctx context.Context, professorID string) (float64, int64, error) {
	query := `
		SELECT COALESCE(AVG(rating), 0), COUNT(*)
		FROM ratings
		WHERE professor_id = $1
	`

	var avg float64
	var count int64
	err := r.db.QueryRow(ctx, query, professorID).Scan(&avg, &count)
	if err != nil {
		return 0, 0, fmt.Errorf("error computing professor average: %w", err)
	}

	return avg, count, nil
}

// AverageForProfessorInModule returns the mean of the professor's ratings
// pooled across every instance of the given module, with the rating count.
func (r *RatingRepository) AverageForProfessorInModule(ctx context.Context, professorID, moduleCode string) (float64, int64, error) {
	query := `
		SELECT COALESCE(AVG(r.rating), 0), COUNT(*)
		FROM ratings r
		JOIN module_instances mi ON mi.id = r.module_instance_id
		WHERE r.professor_id = $1 AND mi.module_code = $2
	`

	var avg float64
	var count int64
	err := r.db.QueryRow(ctx, query, professorID, moduleCode).Scan(&avg, &count)
	if err != nil {
		return 0, 0, fmt.Errorf("error computing professor module average: %w", err)
	}

	return avg, count, nil
}
