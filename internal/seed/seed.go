package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/profrate/profrate/internal/app/models"
	appRepos "github.com/profrate/profrate/internal/app/repositories"
	"github.com/profrate/profrate/internal/pkg/apperrors"
)

// CreateDefaultData seeds the catalogue with a small set of professors,
// modules and module instances so a fresh install is immediately usable.
// Existing rows are left untouched.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	professorRepo := appRepos.NewProfessorRepository(dbPool)
	moduleRepo := appRepos.NewModuleRepository(dbPool)
	instanceRepo := appRepos.NewModuleInstanceRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (Professors/Modules)...")
	var finalErr error

	professors := []*appModels.Professor{
		{ID: "JE1", Name: "Professor J. Excellent"},
		{ID: "VS1", Name: "Professor V. Smart"},
	}
	for _, p := range professors {
		if err := professorRepo.Create(ctx, p); err != nil && !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
			lgr.Error().Err(err).Str("professorId", p.ID).Msg("Error creating default professor")
			finalErr = errors.Join(finalErr, err)
		}
	}

	modules := []*appModels.Module{
		{Code: "CD1", Name: "Computing for Dummies"},
		{Code: "PG1", Name: "Programming for the Gifted"},
	}
	for _, m := range modules {
		if err := moduleRepo.Create(ctx, m); err != nil && !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
			lgr.Error().Err(err).Str("moduleCode", m.Code).Msg("Error creating default module")
			finalErr = errors.Join(finalErr, err)
		}
	}

	type instanceSeed struct {
		moduleCode string
		year       int
		semester   int
		professors []string
	}
	instances := []instanceSeed{
		{moduleCode: "CD1", year: 2017, semester: 1, professors: []string{"JE1", "VS1"}},
		{moduleCode: "CD1", year: 2017, semester: 2, professors: []string{"JE1"}},
		{moduleCode: "PG1", year: 2018, semester: 1, professors: []string{"VS1"}},
	}

	for _, is := range instances {
		instance := &appModels.ModuleInstance{
			ModuleCode: is.moduleCode,
			Year:       is.year,
			Semester:   is.semester,
		}

		err := instanceRepo.Create(ctx, instance)
		if err != nil {
			if !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
				lgr.Error().Err(err).
					Str("moduleCode", is.moduleCode).
					Int("year", is.year).
					Int("semester", is.semester).
					Msg("Error creating default module instance")
				finalErr = errors.Join(finalErr, err)
				continue
			}

			// Already seeded, look up its ID so the teaching links can be verified
			existing, errGet := instanceRepo.GetByKey(ctx, is.moduleCode, is.year, is.semester)
			if errGet != nil {
				lgr.Error().Err(errGet).
					Str("moduleCode", is.moduleCode).
					Msg("Error getting existing module instance")
				finalErr = errors.Join(finalErr, errGet)
				continue
			}
			instance.ID = existing.ID
		}

		for _, professorID := range is.professors {
			if err := instanceRepo.AddProfessor(ctx, instance.ID, professorID); err != nil {
				lgr.Error().Err(err).
					Str("professorId", professorID).
					Int64("instanceId", instance.ID).
					Msg("Error linking professor to module instance")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	if finalErr == nil {
		lgr.Info().Msg("Default data check/creation complete.")
	}
	return finalErr
}
