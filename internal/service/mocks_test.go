package service_test

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/macrolog/internal/error_values"
	"github.com/limbo/macrolog/pkg/entity"
)

type mockState int

const (
	stateSuccess mockState = iota
	stateDBError
	stateNotFound
	stateOwnerNotFound
	stateWrongOwner
	stateDuplicate
)

var errDB = errors.New("db error")

type usersRepoMock struct {
	state mockState
	user  entity.User
}

func (m *usersRepoMock) Create(ctx context.Context, user *entity.User) error {
	switch m.state {
	case stateDuplicate:
		return errorvalues.ErrUserExists
	case stateDBError:
		return errDB
	}
	m.user = *user
	m.user.ID = uuid.New()
	return nil
}

func (m *usersRepoMock) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	switch m.state {
	case stateNotFound:
		return nil, errorvalues.ErrUserNotFound
	case stateDBError:
		return nil, errDB
	}
	u := m.user
	return &u, nil
}

func (m *usersRepoMock) FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error) {
	switch m.state {
	case stateNotFound:
		return nil, errorvalues.ErrUserNotFound
	case stateDBError:
		return nil, errDB
	}
	u := m.user
	return &u, nil
}

func (m *usersRepoMock) Delete(ctx context.Context, uid uuid.UUID) error {
	switch m.state {
	case stateNotFound:
		return errorvalues.ErrUserNotFound
	case stateDBError:
		return errDB
	}
	return nil
}

// mealsRepoMock keeps created meals in memory and filters them like the store does.
type mealsRepoMock struct {
	mu    sync.Mutex
	state mockState
	meals []entity.Meal
}

func (m *mealsRepoMock) Create(ctx context.Context, meal *entity.Meal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.state {
	case stateOwnerNotFound:
		return errorvalues.ErrOwnerNotFound
	case stateDBError:
		return errDB
	}
	meal.ID = uuid.New()
	m.meals = append(m.meals, *meal)
	return nil
}

func (m *mealsRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*entity.Meal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == stateDBError {
		return nil, errDB
	}
	for _, meal := range m.meals {
		if meal.ID == id {
			if m.state == stateWrongOwner {
				meal.UserID = uuid.New()
			}
			return &meal, nil
		}
	}
	return nil, errorvalues.ErrMealNotFound
}

func (m *mealsRepoMock) filter(keep func(entity.Meal) bool) ([]entity.Meal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == stateDBError {
		return nil, errDB
	}
	result := make([]entity.Meal, 0)
	for _, meal := range m.meals {
		if keep(meal) {
			result = append(result, meal)
		}
	}
	return result, nil
}

func (m *mealsRepoMock) GetByDate(ctx context.Context, uid uuid.UUID, date string) ([]entity.Meal, error) {
	return m.filter(func(meal entity.Meal) bool { return meal.UserID == uid && meal.Date == date })
}

func (m *mealsRepoMock) GetByDateRange(ctx context.Context, uid uuid.UUID, from, to string) ([]entity.Meal, error) {
	return m.filter(func(meal entity.Meal) bool {
		return meal.UserID == uid && meal.Date >= from && meal.Date <= to
	})
}

func (m *mealsRepoMock) GetAll(ctx context.Context, uid uuid.UUID) ([]entity.Meal, error) {
	return m.filter(func(meal entity.Meal) bool { return meal.UserID == uid })
}

func (m *mealsRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == stateDBError {
		return errDB
	}
	for i, meal := range m.meals {
		if meal.ID == id {
			m.meals = append(m.meals[:i], m.meals[i+1:]...)
			return nil
		}
	}
	return errorvalues.ErrMealNotFound
}

type targetsRepoMock struct {
	state  mockState
	target *entity.TargetProfile
}

func (m *targetsRepoMock) Get(ctx context.Context, uid uuid.UUID) (*entity.TargetProfile, error) {
	switch m.state {
	case stateDBError:
		return nil, errDB
	}
	if m.target == nil {
		return nil, errorvalues.ErrTargetsNotFound
	}
	t := *m.target
	return &t, nil
}

func (m *targetsRepoMock) Upsert(ctx context.Context, target *entity.TargetProfile) error {
	switch m.state {
	case stateOwnerNotFound:
		return errorvalues.ErrOwnerNotFound
	case stateDBError:
		return errDB
	}
	t := *target
	m.target = &t
	return nil
}

type estimatorMock struct {
	estimate *entity.MacroEstimate
	err      error
	calls    int
}

func (m *estimatorMock) Estimate(ctx context.Context, description string) (*entity.MacroEstimate, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	e := *m.estimate
	return &e, nil
}
