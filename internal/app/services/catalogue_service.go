package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/profrate/profrate/internal/app/models"
	"github.com/profrate/profrate/internal/app/models/dto"
	"github.com/profrate/profrate/internal/pkg/apperrors"
	"github.com/profrate/profrate/internal/pkg/validation"
)

// CatalogueService handles professor, module and module-instance lookups.
// All lookups are exact-match on primary keys.
type CatalogueService struct {
	professorStore ProfessorStore
	moduleStore    ModuleStore
	instanceStore  ModuleInstanceStore
}

// NewCatalogueService creates a new catalogue service instance
func NewCatalogueService(professorStore ProfessorStore, moduleStore ModuleStore, instanceStore ModuleInstanceStore) *CatalogueService {
	return &CatalogueService{
		professorStore: professorStore,
		moduleStore:    moduleStore,
		instanceStore:  instanceStore,
	}
}

// GetProfessor retrieves a professor by its short code
func (s *CatalogueService) GetProfessor(ctx context.Context, id string) (*models.Professor, error) {
	id = strings.TrimSpace(id)
	if !validation.IsValidCode(id) {
		return nil, fmt.Errorf("%w: malformed professor id %q", apperrors.ErrValidationFailed, id)
	}

	return s.professorStore.GetByID(ctx, id)
}

// GetModule retrieves a module by its short code
func (s *CatalogueService) GetModule(ctx context.Context, code string) (*models.Module, error) {
	code = strings.TrimSpace(code)
	if !validation.IsValidCode(code) {
		return nil, fmt.Errorf("%w: malformed module code %q", apperrors.ErrValidationFailed, code)
	}

	return s.moduleStore.GetByCode(ctx, code)
}

// GetModuleInstance retrieves one offering of a module by its natural key,
// with the teaching set populated.
func (s *CatalogueService) GetModuleInstance(ctx context.Context, moduleCode string, year, semester int) (*models.ModuleInstance, error) {
	moduleCode = strings.TrimSpace(moduleCode)
	if !validation.IsValidCode(moduleCode) {
		return nil, fmt.Errorf("%w: malformed module code %q", apperrors.ErrValidationFailed, moduleCode)
	}
	if !models.IsValidSemester(semester) {
		return nil, fmt.Errorf("%w: semester must be 1 or 2", apperrors.ErrValidationFailed)
	}

	return s.instanceStore.GetByKey(ctx, moduleCode, year, semester)
}

// ListModuleInstances returns the denormalized projection of every module
// instance in storage order.
func (s *CatalogueService) ListModuleInstances(ctx context.Context) ([]dto.ModuleInstanceResponse, error) {
	instances, err := s.instanceStore.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing module instances: %w", err)
	}

	result := make([]dto.ModuleInstanceResponse, 0, len(instances))
	for _, instance := range instances {
		item := dto.ModuleInstanceResponse{
			Code:       instance.ModuleCode,
			Year:       instance.Year,
			Semester:   instance.Semester,
			Professors: make([]dto.ProfessorResponse, 0, len(instance.Professors)),
		}
		if instance.Module != nil {
			item.Name = instance.Module.Name
		}
		for _, professor := range instance.Professors {
			item.Professors = append(item.Professors, dto.ProfessorResponse{
				ID:   professor.ID,
				Name: professor.Name,
			})
		}
		result = append(result, item)
	}

	return result, nil
}
