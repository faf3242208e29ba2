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

// ModuleInstanceRepository handles database operations for module instances
// and their teaching-professor join table.
type ModuleInstanceRepository struct {
	db *pgxpool.Pool
}

// NewModuleInstanceRepository creates a new module instance repository
func NewModuleInstanceRepository(db *pgxpool.Pool) *ModuleInstanceRepository {
	return &ModuleInstanceRepository{
		db: db,
	}
}

// Create creates a new module instance
func (r *ModuleInstanceRepository) Create(ctx context.Context, instance *models.ModuleInstance) error {
	query := `
		INSERT INTO module_instances (module_code, year, semester)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, instance.ModuleCode, instance.Year, instance.Semester).Scan(&instance.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "module_instances_module_year_semester_key") {
			return apperrors.ErrResourceAlreadyExists
		}
		return fmt.Errorf("error creating module instance: %w", err)
	}

	return nil
}

// AddProfessor adds a professor to an instance's teaching set. Adding the
// same professor twice is a no-op.
func (r *ModuleInstanceRepository) AddProfessor(ctx context.Context, instanceID int64, professorID string) error {
	query := `
		INSERT INTO module_instance_professors (module_instance_id, professor_id)
		VALUES ($1, $2)
		ON CONFLICT (module_instance_id, professor_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, instanceID, professorID)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrResourceNotFound
		}
		return fmt.Errorf("error adding professor to module instance: %w", err)
	}

	return nil
}

// GetByKey retrieves a module instance by its natural key with the teaching
// set populated.
func (r *ModuleInstanceRepository) GetByKey(ctx context.Context, moduleCode string, year, semester int) (*models.ModuleInstance, error) {
	query := `
		SELECT id, module_code, year, semester
		FROM module_instances
		WHERE module_code = $1 AND year = $2 AND semester = $3
	`

	var instance models.ModuleInstance
	err := r.db.QueryRow(ctx, query, moduleCode, year, semester).Scan(
		&instance.ID,
		&instance.ModuleCode,
		&instance.Year,
		&instance.Semester,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrModuleInstanceNotFound
		}
		return nil, fmt.Errorf("error retrieving module instance: %w", err)
	}

	professors, err := r.getProfessors(ctx, instance.ID)
	if err != nil {
		return nil, err
	}
	instance.Professors = professors

	return &instance, nil
}

// GetAll retrieves all module instances in storage order, with the parent
// module and the teaching set populated.
func (r *ModuleInstanceRepository) GetAll(ctx context.Context) ([]*models.ModuleInstance, error) {
	query := `
		SELECT mi.id, mi.module_code, mi.year, mi.semester, m.name
		FROM module_instances mi
		JOIN modules m ON m.code = mi.module_code
		ORDER BY mi.id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var instances []*models.ModuleInstance
	for rows.Next() {
		var instance models.ModuleInstance
		var moduleName string
		if err := rows.Scan(
			&instance.ID,
			&instance.ModuleCode,
			&instance.Year,
			&instance.Semester,
			&moduleName,
		); err != nil {
			return nil, err
		}
		instance.Module = &models.Module{Code: instance.ModuleCode, Name: moduleName}
		instances = append(instances, &instance)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachProfessors(ctx, instances); err != nil {
		return nil, err
	}

	return instances, nil
}

// getProfessors loads the teaching set for a single instance
func (r *ModuleInstanceRepository) getProfessors(ctx context.Context, instanceID int64) ([]models.Professor, error) {
	query := `
		SELECT p.id, p.name
		FROM module_instance_professors mip
		JOIN professors p ON p.id = mip.professor_id
		WHERE mip.module_instance_id = $1
		ORDER BY p.id
	`

	rows, err := r.db.Query(ctx, query, instanceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var professors []models.Professor
	for rows.Next() {
		var professor models.Professor
		if err := rows.Scan(&professor.ID, &professor.Name); err != nil {
			return nil, err
		}
		professors = append(professors, professor)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return professors, nil
}

// attachProfessors loads the teaching sets for a batch of instances with a
// single join query.
func (r *ModuleInstanceRepository) attachProfessors(ctx context.Context, instances []*models.ModuleInstance) error {
	if len(instances) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(instances))
	byID := make(map[int64]*models.ModuleInstance, len(instances))
	for _, instance := range instances {
		ids = append(ids, instance.ID)
		byID[instance.ID] = instance
	}

	query := `
		SELECT mip.module_instance_id, p.id, p.name
		FROM module_instance_professors mip
		JOIN professors p ON p.id = mip.professor_id
		WHERE mip.module_instance_id = ANY($1)
		ORDER BY mip.module_instance_id, p.id
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var instanceID int64
		var professor models.Professor
		if err := rows.Scan(&instanceID, &professor.ID, &professor.Name); err != nil {
			return err
		}
		if instance, ok := byID[instanceID]; ok {
			instance.Professors = append(instance.Professors, professor)
		}
	}

	return rows.Err()
}
