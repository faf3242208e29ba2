package services

import (
	"context"
	"time"

	"github.com/profrate/profrate/internal/app/models"
	"github.com/profrate/profrate/internal/pkg/apperrors"
)

// In-memory store implementations used across the service tests.

type mockProfessorStore struct {
	order      []string
	professors map[string]*models.Professor
}

func newMockProfessorStore() *mockProfessorStore {
	return &mockProfessorStore{professors: make(map[string]*models.Professor)}
}

func (m *mockProfessorStore) add(p *models.Professor) {
	if _, ok := m.professors[p.ID]; !ok {
		m.order = append(m.order, p.ID)
	}
	m.professors[p.ID] = p
}

func (m *mockProfessorStore) GetByID(_ context.Context, id string) (*models.Professor, error) {
	p, ok := m.professors[id]
	if !ok {
		return nil, apperrors.ErrProfessorNotFound
	}
	return p, nil
}

func (m *mockProfessorStore) GetAll(_ context.Context) ([]*models.Professor, error) {
	result := make([]*models.Professor, 0, len(m.order))
	for _, id := range m.order {
		result = append(result, m.professors[id])
	}
	return result, nil
}

type mockModuleStore struct {
	modules map[string]*models.Module
}

func newMockModuleStore() *mockModuleStore {
	return &mockModuleStore{modules: make(map[string]*models.Module)}
}

func (m *mockModuleStore) add(mod *models.Module) {
	m.modules[mod.Code] = mod
}

func (m *mockModuleStore) GetByCode(_ context.Context, code string) (*models.Module, error) {
	mod, ok := m.modules[code]
	if !ok {
		return nil, apperrors.ErrModuleNotFound
	}
	return mod, nil
}

type mockInstanceStore struct {
	instances []*models.ModuleInstance
}

func newMockInstanceStore() *mockInstanceStore {
	return &mockInstanceStore{}
}

func (m *mockInstanceStore) add(instance *models.ModuleInstance) {
	m.instances = append(m.instances, instance)
}

func (m *mockInstanceStore) GetByKey(_ context.Context, moduleCode string, year, semester int) (*models.ModuleInstance, error) {
	for _, instance := range m.instances {
		if instance.ModuleCode == moduleCode && instance.Year == year && instance.Semester == semester {
			return instance, nil
		}
	}
	return nil, apperrors.ErrModuleInstanceNotFound
}

func (m *mockInstanceStore) GetAll(_ context.Context) ([]*models.ModuleInstance, error) {
	return m.instances, nil
}

type ratingKey struct {
	userID     int64
	professor  string
	instanceID int64
}

type mockRatingStore struct {
	nextID  int64
	ratings map[ratingKey]*models.Rating
	// instanceModules maps instance IDs to module codes for the per-module
	// aggregation.
	instanceModules map[int64]string
}

func newMockRatingStore() *mockRatingStore {
	return &mockRatingStore{
		ratings:         make(map[ratingKey]*models.Rating),
		instanceModules: make(map[int64]string),
	}
}

func (m *mockRatingStore) registerInstance(instance *models.ModuleInstance) {
	m.instanceModules[instance.ID] = instance.ModuleCode
}

func (m *mockRatingStore) Upsert(_ context.Context, rating *models.Rating) error {
	key := ratingKey{rating.UserID, rating.ProfessorID, rating.ModuleInstanceID}
	if existing, ok := m.ratings[key]; ok {
		existing.Value = rating.Value
		rating.ID = existing.ID
		return nil
	}
	m.nextID++
	rating.ID = m.nextID
	stored := *rating
	m.ratings[key] = &stored
	return nil
}

func (m *mockRatingStore) AverageForProfessor(_ context.Context, professorID string) (float64, int64, error) {
	var sum, count int64
	for key, rating := range m.ratings {
		if key.professor == professorID {
			sum += int64(rating.Value)
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

func (m *mockRatingStore) AverageForProfessorInModule(_ context.Context, professorID, moduleCode string) (float64, int64, error) {
	var sum, count int64
	for key, rating := range m.ratings {
		if key.professor == professorID && m.instanceModules[key.instanceID] == moduleCode {
			sum += int64(rating.Value)
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

func (m *mockRatingStore) count() int {
	return len(m.ratings)
}

type mockUserStore struct {
	nextID int64
	users  map[int64]*models.User
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: make(map[int64]*models.User)}
}

func (m *mockUserStore) Create(_ context.Context, user *models.User) error {
	for _, existing := range m.users {
		if existing.Username == user.Username {
			return apperrors.ErrUsernameAlreadyExists
		}
		if existing.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	m.nextID++
	user.ID = m.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (m *mockUserStore) UpdateLastLogin(_ context.Context, userID int64) error {
	user, ok := m.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	now := time.Now()
	user.LastLoginAt = &now
	return nil
}

type tokenRecord struct {
	userID  int64
	expiry  time.Time
	revoked bool
}

type mockTokenStore struct {
	tokens map[string]*tokenRecord
}

func newMockTokenStore() *mockTokenStore {
	return &mockTokenStore{tokens: make(map[string]*tokenRecord)}
}

func (m *mockTokenStore) CreateToken(_ context.Context, token string, userID int64, expiryDate time.Time) error {
	m.tokens[token] = &tokenRecord{userID: userID, expiry: expiryDate}
	return nil
}

func (m *mockTokenStore) GetTokenByValue(_ context.Context, token string) (int64, time.Time, error) {
	record, ok := m.tokens[token]
	if !ok {
		return 0, time.Time{}, apperrors.ErrTokenNotFound
	}
	if record.revoked {
		return 0, time.Time{}, apperrors.ErrTokenRevoked
	}
	if time.Now().After(record.expiry) {
		return 0, time.Time{}, apperrors.ErrTokenExpired
	}
	return record.userID, record.expiry, nil
}

func (m *mockTokenStore) RevokeToken(_ context.Context, token string) error {
	record, ok := m.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	record.revoked = true
	return nil
}

func (m *mockTokenStore) RevokeAllUserTokens(_ context.Context, userID int64) error {
	for _, record := range m.tokens {
		if record.userID == userID {
			record.revoked = true
		}
	}
	return nil
}
