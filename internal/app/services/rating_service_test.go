package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profrate/profrate/internal/app/models"
	"github.com/profrate/profrate/internal/app/models/dto"
	"github.com/profrate/profrate/internal/pkg/apperrors"
)

// ratingFixture wires a RatingService against in-memory stores seeded with a
// small catalogue: two professors, two modules, three offerings.
type ratingFixture struct {
	service   *RatingService
	ratings   *mockRatingStore
	catalogue *mockProfessorStore
}

func newRatingFixture() *ratingFixture {
	professors := newMockProfessorStore()
	professors.add(&models.Professor{ID: "JE1", Name: "Professor J. Excellent"})
	professors.add(&models.Professor{ID: "VS1", Name: "Professor V. Smart"})

	modules := newMockModuleStore()
	modules.add(&models.Module{Code: "CD1", Name: "Computing for Dummies"})
	modules.add(&models.Module{Code: "PG1", Name: "Programming for the Gifted"})

	instances := newMockInstanceStore()
	ratings := newMockRatingStore()
	for _, instance := range []*models.ModuleInstance{
		{
			ID: 1, ModuleCode: "CD1", Year: 2017, Semester: 1,
			Professors: []models.Professor{{ID: "JE1"}, {ID: "VS1"}},
		},
		{
			ID: 2, ModuleCode: "CD1", Year: 2017, Semester: 2,
			Professors: []models.Professor{{ID: "JE1"}},
		},
		{
			ID: 3, ModuleCode: "PG1", Year: 2018, Semester: 1,
			Professors: []models.Professor{{ID: "VS1"}},
		},
	} {
		instances.add(instance)
		ratings.registerInstance(instance)
	}

	return &ratingFixture{
		service:   NewRatingService(ratings, professors, modules, instances, zerolog.Nop()),
		ratings:   ratings,
		catalogue: professors,
	}
}

func submitReq(professorID, moduleCode string, year, semester, rating int) *dto.SubmitRatingRequest {
	return &dto.SubmitRatingRequest{
		ProfessorID: professorID,
		ModuleCode:  moduleCode,
		Year:        year,
		Semester:    semester,
		Rating:      rating,
	}
}

func TestSubmitRatingStoresValue(t *testing.T) {
	f := newRatingFixture()
	ctx := context.Background()

	err := f.service.SubmitRating(ctx, 1, submitReq("JE1", "CD1", 2017, 1, 4))
	require.NoError(t, err)
	assert.Equal(t, 1, f.ratings.count())

	avg, err := f.service.AverageForProfessor(ctx, "JE1")
	require.NoError(t, err)
	assert.Equal(t, 4, avg)
}

func TestSubmitRatingBoundaryValues(t *testing.T) {
	f := newRatingFixture()
	ctx := context.Background()

	require.NoError(t, f.service.SubmitRating(ctx, 1, submitReq("JE1", "CD1", 2017, 1, 1)))
	require.NoError(t, f.service.SubmitRating(ctx, 2, submitReq("JE1", "CD1", 2017, 1, 5)))
	assert.Equal(t, 2, f.ratings.count())
}

func TestSubmitRatingRejectsOutOfRange(t *testing.T) {
	f := newRatingFixture()
	ctx := context.Background()

	for _, value := range []int{0, 6, -1, 100} {
		err := f.service.SubmitRating(ctx, 1, submitReq("JE1", "CD1", 2017, 1, value))
		assert.ErrorIs(t, err, apperrors.ErrRatingOutOfRange, "rating %d should be rejected", value)
	}
	assert.Equal(t, 0, f.ratings.count())
}

func TestSubmitRatingOverwritesExisting(t *testing.T) {
	f := newRatingFixture()
	ctx := context.Background()

	require.NoError(t, f.service.SubmitRating(ctx, 1, submitReq("JE1", "CD1", 2017, 1, 2)))
	require.NoError(t, f.service.SubmitRating(ctx, 1, submitReq("JE1", "CD1", 2017, 1, 5)))

	// Resubmission replaces the stored value, it does not add a row
	assert.Equal(t, 1, f.ratings.count())

	avg, err := f.service.AverageForProfessor(ctx, "JE1")
	require.NoError(t, err)
	assert.Equal(t, 5, avg)
}

func TestSubmitRatingDistinctKeysAreSeparate(t *testing.T) {
	f := newRatingFixture()
	ctx := context.Background()

	// Same user and professor, different offerings
	require.NoError(t, f.service.SubmitRating(ctx, 1, submitReq("JE1", "CD1", 2017, 1, 3)))
	require.NoError(t, f.service.SubmitRating(ctx, 1, submitReq("JE1", "CD1", 2017, 2, 5)))
	// Different user, same offering
	require.NoError(t, f.service.SubmitRating(ctx, 2, submitReq("JE1", "CD1", 2017, 1, 4)))

	assert.Equal(t, 3, f.ratings.count())
}

func TestSubmitRatingUnknownProfessor(t *testing.T) {
	f := newRatingFixture()

	err := f.service.SubmitRating(context.Background(), 1, submitReq("XX9", "CD1", 2017, 1, 3))
	assert.ErrorIs(t, err, apperrors.ErrProfessorNotFound)
	assert.Equal(t, 0, f.ratings.count())
}

func TestSubmitRatingUnknownModule(t *testing.T) {
	f := newRatingFixture()

	err := f.service.SubmitRating(context.Background(), 1, submitReq("JE1", "ZZ9", 2017, 1, 3))
	assert.ErrorIs(t, err, apperrors.ErrModuleNotFound)
	assert.Equal(t, 0, f.ratings.count())
}

func TestSubmitRatingUnknownInstance(t *testing.T) {
	f := newRatingFixture()

	err := f.service.SubmitRating(context.Background(), 1, submitReq("JE1", "CD1", 2099, 1, 3))
	assert.ErrorIs(t, err, apperrors.ErrModuleInstanceNotFound)
	assert.Equal(t, 0, f.ratings.count())
}

func TestSubmitRatingProfessorNotTeaching(t *testing.T) {
	f := newRatingFixture()

	// JE1 exists but does not teach PG1 in 2018 semester 1
	err := f.service.SubmitRating(context.Background(), 1, submitReq("JE1", "PG1", 2018, 1, 3))
	assert.ErrorIs(t, err, apperrors.ErrProfessorNotTeaching)
	assert.Equal(t, 0, f.ratings.count())
}

func TestSubmitRatingInvalidSemester(t *testing.T) {
	f := newRatingFixture()

	err := f.service.SubmitRating(context.Background(), 1, submitReq("JE1", "CD1", 2017, 3, 3))
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestSubmitRatingMalformedIdentifiers(t *testing.T) {
	f := newRatingFixture()
	ctx := context.Background()

	err := f.service.SubmitRating(ctx, 1, submitReq("je1!", "CD1", 2017, 1, 3))
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	err = f.service.SubmitRating(ctx, 1, submitReq("JE1", "cd 1", 2017, 1, 3))
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestAverageForProfessorRoundsHalfUp(t *testing.T) {
	f := newRatingFixture()
	ctx := context.Background()

	// 3 and 4 average to 3.5, which rounds up to 4
	require.NoError(t, f.service.SubmitRating(ctx, 1, submitReq("JE1", "CD1", 2017, 1, 3)))
	require.NoError(t, f.service.SubmitRating(ctx, 2, submitReq("JE1", "CD1", 2017, 1, 4)))

	avg, err := f.service.AverageForProfessor(ctx, "JE1")
	require.NoError(t, err)
	assert.Equal(t, 4, avg)

	// 4 and 5 average to 4.5, which rounds up to 5
	require.NoError(t, f.service.SubmitRating(ctx, 1, submitReq("VS1", "PG1", 2018, 1, 4)))
	require.NoError(t, f.service.SubmitRating(ctx, 2, submitReq("VS1", "PG1", 2018, 1, 5)))

	avg, err = f.service.AverageForProfessor(ctx, "VS1")
	require.NoError(t, err)
	assert.Equal(t, 5, avg)
}

func TestAverageForProfessorNoRatings(t *testing.T) {
	f := newRatingFixture()

	avg, err := f.service.AverageForProfessor(context.Background(), "JE1")
	require.NoError(t, err)
	assert.Equal(t, 0, avg)
}

func TestAverageForProfessorUnknown(t *testing.T) {
	f := newRatingFixture()

	_, err := f.service.AverageForProfessor(context.Background(), "XX9")
	assert.ErrorIs(t, err, apperrors.ErrProfessorNotFound)
}

func TestAverageForProfessorSpansModules(t *testing.T) {
	f := newRatingFixture()
	ctx := context.Background()

	// VS1 teaches both CD1 2017/1 and PG1 2018/1
	require.NoError(t, f.service.SubmitRating(ctx, 1, submitReq("VS1", "CD1", 2017, 1, 2)))
	require.NoError(t, f.service.SubmitRating(ctx, 1, submitReq("VS1", "PG1", 2018, 1, 5)))

	avg, err := f.service.AverageForProfessor(ctx, "VS1")
	require.NoError(t, err)
	assert.Equal(t, 4, avg) // mean 3.5 rounds up
}

func TestAverageForProfessorInModulePoolsInstances(t *testing.T) {
	f := newRatingFixture()
	ctx := context.Background()

	// JE1 rated in both CD1 offerings, plus an unrelated VS1 rating
	require.NoError(t, f.service.SubmitRating(ctx, 1, submitReq("JE1", "CD1", 2017, 1, 2)))
	require.NoError(t, f.service.SubmitRating(ctx, 1, submitReq("JE1", "CD1", 2017, 2, 5)))
	require.NoError(t, f.service.SubmitRating(ctx, 1, submitReq("VS1", "PG1", 2018, 1, 1)))

	avg, err := f.service.AverageForProfessorInModule(ctx, "JE1", "CD1")
	require.NoError(t, err)
	assert.Equal(t, 4, avg) // mean 3.5 over the two CD1 offerings
}

func TestAverageForProfessorInModuleNoRatings(t *testing.T) {
	f := newRatingFixture()

	avg, err := f.service.AverageForProfessorInModule(context.Background(), "JE1", "CD1")
	require.NoError(t, err)
	assert.Equal(t, 0, avg)
}

func TestAverageForProfessorInModuleUnknownModule(t *testing.T) {
	f := newRatingFixture()
	ctx := context.Background()

	// The module lookup fails even though the professor exists and is rated
	require.NoError(t, f.service.SubmitRating(ctx, 1, submitReq("JE1", "CD1", 2017, 1, 3)))

	_, err := f.service.AverageForProfessorInModule(ctx, "JE1", "ZZ9")
	assert.ErrorIs(t, err, apperrors.ErrModuleNotFound)
}

func TestAverageForProfessorInModuleUnknownProfessor(t *testing.T) {
	f := newRatingFixture()

	_, err := f.service.AverageForProfessorInModule(context.Background(), "XX9", "CD1")
	assert.ErrorIs(t, err, apperrors.ErrProfessorNotFound)
}

func TestListProfessorRatings(t *testing.T) {
	f := newRatingFixture()
	ctx := context.Background()

	require.NoError(t, f.service.SubmitRating(ctx, 1, submitReq("JE1", "CD1", 2017, 1, 3)))
	require.NoError(t, f.service.SubmitRating(ctx, 2, submitReq("JE1", "CD1", 2017, 1, 4)))

	result, err := f.service.ListProfessorRatings(ctx)
	require.NoError(t, err)
	require.Len(t, result, 2)

	assert.Equal(t, "JE1", result[0].ID)
	assert.Equal(t, "Professor J. Excellent", result[0].Name)
	assert.Equal(t, 4, result[0].Rating)

	// VS1 has no ratings yet
	assert.Equal(t, "VS1", result[1].ID)
	assert.Equal(t, 0, result[1].Rating)
}

func TestRoundAverage(t *testing.T) {
	tests := []struct {
		name  string
		avg   float64
		count int64
		want  int
	}{
		{"no ratings", 0, 0, 0},
		{"exact integer", 3, 4, 3},
		{"half rounds up low", 3.5, 2, 4},
		{"half rounds up high", 4.5, 2, 5},
		{"below half rounds down", 3.4, 10, 3},
		{"above half rounds up", 3.6, 10, 4},
		{"minimum", 1, 1, 1},
		{"maximum", 5, 3, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, roundAverage(tt.avg, tt.count))
		})
	}
}
