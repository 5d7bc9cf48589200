package api_test

import (
	"context"
	"errors"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/macrolog/internal/error_values"
	"github.com/limbo/macrolog/internal/service"
	"github.com/limbo/macrolog/pkg/entity"
	"github.com/limbo/macrolog/pkg/nutrition"
)

var errMocked = errors.New("mocked error")

type userServiceMock struct {
	// err is returned by every call except GetByID
	err error
	// missing makes GetByID report the user as deleted
	missing bool
}

func (m *userServiceMock) Register(ctx context.Context, req *service.RegisterRequest) (*entity.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &entity.User{ID: testUID, Email: req.Email, Name: req.Name}, nil
}

func (m *userServiceMock) Login(ctx context.Context, email, password string) (*entity.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &entity.User{ID: testUID, Email: email, Name: "tester"}, nil
}

func (m *userServiceMock) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if m.missing {
		return nil, errorvalues.ErrUserNotFound
	}
	return &entity.User{ID: id, Email: testEmail, Name: "tester"}, nil
}

func (m *userServiceMock) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &entity.User{ID: testUID, Email: email, Name: "tester"}, nil
}

func (m *userServiceMock) DeleteAccount(ctx context.Context, id uuid.UUID, password string) error {
	return m.err
}

type mealsServiceMock struct {
	err      error
	meals    []entity.Meal
	estimate *entity.MacroEstimate
	// records which listing call was made
	called string
	from   string
	to     string
}

func (m *mealsServiceMock) LogMeal(ctx context.Context, uid uuid.UUID, req *service.LogMealRequest) (*entity.Meal, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &entity.Meal{
		ID: uuid.New(), UserID: uid, Date: req.Date, Name: req.Name,
		Calories: req.Calories, Protein: req.Protein, Fats: req.Fats, Carbs: req.Carbs,
	}, nil
}

func (m *mealsServiceMock) AnalyzeMeal(ctx context.Context, description string) (*entity.MacroEstimate, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.estimate, nil
}

func (m *mealsServiceMock) LogEstimatedMeal(ctx context.Context, uid uuid.UUID, description, date string) (*entity.Meal, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &entity.Meal{
		ID: uuid.New(), UserID: uid, Date: date, Name: m.estimate.Name, IsAIEstimated: true,
		Calories: m.estimate.Calories, Protein: m.estimate.Protein, Fats: m.estimate.Fats, Carbs: m.estimate.Carbs,
	}, nil
}

func (m *mealsServiceMock) GetMealsByDate(ctx context.Context, uid uuid.UUID, date string) ([]entity.Meal, error) {
	m.called, m.from, m.to = "date", date, date
	return m.meals, m.err
}

func (m *mealsServiceMock) GetMealsByRange(ctx context.Context, uid uuid.UUID, from, to string) ([]entity.Meal, error) {
	m.called, m.from, m.to = "range", from, to
	return m.meals, m.err
}

func (m *mealsServiceMock) GetAllMeals(ctx context.Context, uid uuid.UUID) ([]entity.Meal, error) {
	m.called = "all"
	return m.meals, m.err
}

func (m *mealsServiceMock) DeleteMeal(ctx context.Context, mealID, uid uuid.UUID) error {
	return m.err
}

type targetsServiceMock struct {
	err     error
	targets *entity.TargetProfile
}

func (m *targetsServiceMock) GetTargets(ctx context.Context, uid uuid.UUID) (*entity.TargetProfile, error) {
	return m.targets, m.err
}

func (m *targetsServiceMock) SaveTargets(ctx context.Context, uid uuid.UUID, req *service.SaveTargetsRequest) (*entity.TargetProfile, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.targets = &entity.TargetProfile{
		UserID:         uid,
		TargetCalories: req.TargetCalories,
		TargetProtein:  req.TargetProtein,
		TargetFats:     req.TargetFats,
		TargetCarbs:    req.TargetCarbs,
	}
	return m.targets, nil
}

type calendarServiceMock struct {
	err     error
	meals   []entity.Meal
	targets *entity.TargetProfile
	from    string
	to      string
}

func (m *calendarServiceMock) Calendar(ctx context.Context, uid uuid.UUID, from, to string) (*service.CalendarView, error) {
	m.from, m.to = from, to
	if m.err != nil {
		return nil, m.err
	}
	view := service.CalendarView{From: from, To: to, Targets: m.targets, Days: []service.DaySummary{}}
	aggregated := nutrition.AggregateByDate(m.meals)
	for _, date := range nutrition.SortedDates(aggregated) {
		view.Days = append(view.Days, service.DaySummary{
			Aggregate:  aggregated[date],
			Comparison: nutrition.Classify(aggregated[date], m.targets),
		})
	}
	return &view, nil
}

func (m *calendarServiceMock) Day(ctx context.Context, uid uuid.UUID, date string) (*service.DayReport, error) {
	if m.err != nil {
		return nil, m.err
	}
	if !nutrition.ValidDateKey(date) {
		return nil, errorvalues.ErrInvalidDate
	}
	day := nutrition.AggregateByDate(m.meals)[date]
	return &service.DayReport{
		Date:       date,
		Aggregate:  day,
		Targets:    m.targets,
		Comparison: nutrition.Classify(day, m.targets),
	}, nil
}
