package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profrate/profrate/internal/app/models"
	"github.com/profrate/profrate/internal/pkg/apperrors"
)

func newCatalogueFixture() *CatalogueService {
	professors := newMockProfessorStore()
	professors.add(&models.Professor{ID: "JE1", Name: "Professor J. Excellent"})

	modules := newMockModuleStore()
	cd1 := &models.Module{Code: "CD1", Name: "Computing for Dummies"}
	modules.add(cd1)

	instances := newMockInstanceStore()
	instances.add(&models.ModuleInstance{
		ID:         1,
		ModuleCode: "CD1",
		Year:       2017,
		Semester:   1,
		Module:     cd1,
		Professors: []models.Professor{
			{ID: "JE1", Name: "Professor J. Excellent"},
			{ID: "VS1", Name: "Professor V. Smart"},
		},
	})
	instances.add(&models.ModuleInstance{
		ID:         2,
		ModuleCode: "CD1",
		Year:       2017,
		Semester:   2,
		Module:     cd1,
		Professors: []models.Professor{{ID: "JE1", Name: "Professor J. Excellent"}},
	})

	return NewCatalogueService(professors, modules, instances)
}

func TestGetProfessor(t *testing.T) {
	s := newCatalogueFixture()

	professor, err := s.GetProfessor(context.Background(), "JE1")
	require.NoError(t, err)
	assert.Equal(t, "Professor J. Excellent", professor.Name)
}

func TestGetProfessorNotFound(t *testing.T) {
	s := newCatalogueFixture()

	_, err := s.GetProfessor(context.Background(), "XX9")
	assert.ErrorIs(t, err, apperrors.ErrProfessorNotFound)
}

func TestGetProfessorMalformedID(t *testing.T) {
	s := newCatalogueFixture()

	for _, id := range []string{"", "j", "je1", "J!1", "TOOLONGCODE1"} {
		_, err := s.GetProfessor(context.Background(), id)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed, "id %q should be rejected", id)
	}
}

func TestGetModule(t *testing.T) {
	s := newCatalogueFixture()

	module, err := s.GetModule(context.Background(), "CD1")
	require.NoError(t, err)
	assert.Equal(t, "Computing for Dummies", module.Name)
}

func TestGetModuleNotFound(t *testing.T) {
	s := newCatalogueFixture()

	_, err := s.GetModule(context.Background(), "ZZ9")
	assert.ErrorIs(t, err, apperrors.ErrModuleNotFound)
}

func TestGetModuleInstance(t *testing.T) {
	s := newCatalogueFixture()

	instance, err := s.GetModuleInstance(context.Background(), "CD1", 2017, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), instance.ID)
	assert.Len(t, instance.Professors, 2)
	assert.True(t, instance.Teaches("VS1"))
	assert.False(t, instance.Teaches("XX9"))
}

func TestGetModuleInstanceInvalidSemester(t *testing.T) {
	s := newCatalogueFixture()

	for _, semester := range []int{0, 3, -1} {
		_, err := s.GetModuleInstance(context.Background(), "CD1", 2017, semester)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed, "semester %d should be rejected", semester)
	}
}

func TestGetModuleInstanceNotFound(t *testing.T) {
	s := newCatalogueFixture()

	_, err := s.GetModuleInstance(context.Background(), "CD1", 2099, 1)
	assert.ErrorIs(t, err, apperrors.ErrModuleInstanceNotFound)
}

func TestListModuleInstances(t *testing.T) {
	s := newCatalogueFixture()

	result, err := s.ListModuleInstances(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 2)

	first := result[0]
	assert.Equal(t, "CD1", first.Code)
	assert.Equal(t, "Computing for Dummies", first.Name)
	assert.Equal(t, 2017, first.Year)
	assert.Equal(t, 1, first.Semester)
	require.Len(t, first.Professors, 2)
	assert.Equal(t, "JE1", first.Professors[0].ID)
	assert.Equal(t, "Professor V. Smart", first.Professors[1].Name)

	second := result[1]
	assert.Equal(t, 2, second.Semester)
	assert.Len(t, second.Professors, 1)
}
