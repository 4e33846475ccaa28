package citation

import (
	"context"

	"github.com/google/uuid"

	"github.com/interpolice/interpolice-backend/internal/domain"
)

// Hand-written func-field mocks for the private repo interfaces.

type citizenRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Citizen, error)
	ExistsFunc  func(ctx context.Context, id uuid.UUID) (bool, error)
	LockFunc    func(ctx context.Context, id uuid.UUID) error

	lockCalls int
}

func (m *citizenRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Citizen, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *citizenRepoMock) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return m.ExistsFunc(ctx, id)
}

func (m *citizenRepoMock) Lock(ctx context.Context, id uuid.UUID) error {
	m.lockCalls++
	return m.LockFunc(ctx, id)
}

type citationRepoMock struct {
	CreateFunc            func(ctx context.Context, c *domain.Citation) (*domain.Citation, error)
	GetByIDFunc           func(ctx context.Context, id uuid.UUID) (*domain.Citation, error)
	CountByCitizenFunc    func(ctx context.Context, citizenID uuid.UUID) (int, error)
	ListByCitizenFunc     func(ctx context.Context, citizenID uuid.UUID, limit, offset int) ([]*domain.Citation, int, error)
	ListFunc              func(ctx context.Context, limit, offset int) ([]*domain.Citation, int, error)
	UpdateDescriptionFunc func(ctx context.Context, id uuid.UUID, description string) (*domain.Citation, error)
	DeleteFunc            func(ctx context.Context, id uuid.UUID) error

	createCalls int
}

func (m *citationRepoMock) Create(ctx context.Context, c *domain.Citation) (*domain.Citation, error) {
	m.createCalls++
	return m.CreateFunc(ctx, c)
}

func (m *citationRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Citation, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *citationRepoMock) CountByCitizen(ctx context.Context, citizenID uuid.UUID) (int, error) {
	return m.CountByCitizenFunc(ctx, citizenID)
}

func (m *citationRepoMock) ListByCitizen(ctx context.Context, citizenID uuid.UUID, limit, offset int) ([]*domain.Citation, int, error) {
	return m.ListByCitizenFunc(ctx, citizenID, limit, offset)
}

func (m *citationRepoMock) List(ctx context.Context, limit, offset int) ([]*domain.Citation, int, error) {
	return m.ListFunc(ctx, limit, offset)
}

func (m *citationRepoMock) UpdateDescription(ctx context.Context, id uuid.UUID, description string) (*domain.Citation, error) {
	return m.UpdateDescriptionFunc(ctx, id, description)
}

func (m *citationRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}

type recordRepoMock struct {
	CreateFunc func(ctx context.Context, rec *domain.CriminalRecord) (*domain.CriminalRecord, error)

	createCalls int
}

func (m *recordRepoMock) Create(ctx context.Context, rec *domain.CriminalRecord) (*domain.CriminalRecord, error) {
	m.createCalls++
	return m.CreateFunc(ctx, rec)
}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc != nil {
		return m.RunInTxFunc(ctx, fn)
	}
	return fn(ctx)
}
