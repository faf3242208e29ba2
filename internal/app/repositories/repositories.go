package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository           *UserRepository
	TokenRepository          *TokenRepository
	ProfessorRepository      *ProfessorRepository
	ModuleRepository         *ModuleRepository
	ModuleInstanceRepository *ModuleInstanceRepository
	RatingRepository         *RatingRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:           NewUserRepository(db),
		TokenRepository:          NewTokenRepository(db),
		ProfessorRepository:      NewProfessorRepository(db),
		ModuleRepository:         NewModuleRepository(db),
		ModuleInstanceRepository: NewModuleInstanceRepository(db),
		RatingRepository:         NewRatingRepository(db),
	}
}
