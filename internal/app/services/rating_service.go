package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/profrate/profrate/internal/app/models"
	"github.com/profrate/profrate/internal/app/models/dto"
	"github.com/profrate/profrate/internal/pkg/apperrors"
	"github.com/profrate/profrate/internal/pkg/validation"
)

// RatingService handles rating submission and average aggregation.
//
// Averages are rounded half-up (math.Round over a non-negative mean) and 0 is
// the sentinel for "no ratings", never a real score.
type RatingService struct {
	ratingStore    RatingStore
	professorStore ProfessorStore
	moduleStore    ModuleStore
	instanceStore  ModuleInstanceStore
	logger         zerolog.Logger
}

// NewRatingService creates a new rating service instance
func NewRatingService(
	ratingStore RatingStore,
	professorStore ProfessorStore,
	moduleStore ModuleStore,
	instanceStore ModuleInstanceStore,
	logger zerolog.Logger,
) *RatingService {
	return &RatingService{
		ratingStore:    ratingStore,
		professorStore: professorStore,
		moduleStore:    moduleStore,
		instanceStore:  instanceStore,
		logger:         logger,
	}
}

// SubmitRating validates and stores a rating for the authenticated user.
// The value must be within 1..5 and the professor must be a current member
// of the instance's teaching set; both are checked before any mutation.
// Resubmission for the same (user, professor, instance) key overwrites the
// stored value.
func (s *RatingService) SubmitRating(ctx context.Context, userID int64, req *dto.SubmitRatingRequest) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", apperrors.ErrValidationFailed)
	}

	if req.Rating < models.RatingMin || req.Rating > models.RatingMax {
		return apperrors.ErrRatingOutOfRange
	}
	if !models.IsValidSemester(req.Semester) {
		return fmt.Errorf("%w: semester must be 1 or 2", apperrors.ErrValidationFailed)
	}

	professorID := strings.TrimSpace(req.ProfessorID)
	moduleCode := strings.TrimSpace(req.ModuleCode)
	if !validation.IsValidCode(professorID) {
		return fmt.Errorf("%w: malformed professor id %q", apperrors.ErrValidationFailed, req.ProfessorID)
	}
	if !validation.IsValidCode(moduleCode) {
		return fmt.Errorf("%w: malformed module code %q", apperrors.ErrValidationFailed, req.ModuleCode)
	}

	professor, err := s.professorStore.GetByID(ctx, professorID)
	if err != nil {
		return err
	}

	if _, err := s.moduleStore.GetByCode(ctx, moduleCode); err != nil {
		return err
	}

	instance, err := s.instanceStore.GetByKey(ctx, moduleCode, req.Year, req.Semester)
	if err != nil {
		return err
	}

	if !instance.Teaches(professor.ID) {
		return apperrors.ErrProfessorNotTeaching
	}

	rating := &models.Rating{
		UserID:           userID,
		ProfessorID:      professor.ID,
		ModuleInstanceID: instance.ID,
		Value:            req.Rating,
	}

	if err := s.ratingStore.Upsert(ctx, rating); err != nil {
		return fmt.Errorf("error storing rating: %w", err)
	}

	s.logger.Debug().
		Int64("userID", userID).
		Str("professorID", professor.ID).
		Int64("instanceID", instance.ID).
		Int("rating", req.Rating).
		Msg("Rating stored")

	return nil
}

// AverageForProfessor returns the rounded mean of all ratings for a
// professor across every module instance, or 0 when the professor has no
// ratings. The professor must exist.
func (s *RatingService) AverageForProfessor(ctx context.Context, professorID string) (int, error) {
	if _, err := s.professorStore.GetByID(ctx, professorID); err != nil {
		return 0, err
	}

	avg, count, err := s.ratingStore.AverageForProfessor(ctx, professorID)
	if err != nil {
		return 0, err
	}

	return roundAverage(avg, count), nil
}

// AverageForProfessorInModule returns the rounded mean of the professor's
// ratings pooled across all instances of the given module, or 0 when no
// ratings exist. Both the professor and the module must exist; this is
// checked before aggregation, independent of whether ratings exist.
func (s *RatingService) AverageForProfessorInModule(ctx context.Context, professorID, moduleCode string) (int, error) {
	if _, err := s.professorStore.GetByID(ctx, professorID); err != nil {
		return 0, err
	}
	if _, err := s.moduleStore.GetByCode(ctx, moduleCode); err != nil {
		return 0, err
	}

	avg, count, err := s.ratingStore.AverageForProfessorInModule(ctx, professorID, moduleCode)
	if err != nil {
		return 0, err
	}

	return roundAverage(avg, count), nil
}

// ListProfessorRatings returns every known professor with its rounded
// average rating (0 when unrated).
func (s *RatingService) ListProfessorRatings(ctx context.Context) ([]dto.ProfessorRatingResponse, error) {
	professors, err := s.professorStore.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing professors: %w", err)
	}

	result := make([]dto.ProfessorRatingResponse, 0, len(professors))
	for _, professor := range professors {
		avg, count, err := s.ratingStore.AverageForProfessor(ctx, professor.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, dto.ProfessorRatingResponse{
			ID:     professor.ID,
			Name:   professor.Name,
			Rating: roundAverage(avg, count),
		})
	}

	return result, nil
}

// roundAverage rounds a mean rating half-up; a zero count yields the 0
// sentinel. Half-up means 3.5 rounds to 4 and 4.5 rounds to 5.
func roundAverage(avg float64, count int64) int {
	if count == 0 {
		return 0
	}
	return int(math.Round(avg))
}
