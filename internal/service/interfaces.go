package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/limbo/macrolog/pkg/entity"
	"github.com/limbo/macrolog/pkg/nutrition"
)

type RegisterRequest struct {
	Email    string `validate:"required,email,max=254"`
	Name     string `validate:"required,min=2,max=100"`
	Password string `validate:"required,min=8,max=72"`
}

type LogMealRequest struct {
	// Defaults to today's key when empty
	Date          string  `validate:"omitempty,datekey"`
	Name          string  `validate:"required,max=200"`
	Calories      float64 `validate:"gte=0"`
	Protein       float64 `validate:"gte=0"`
	Fats          float64 `validate:"gte=0"`
	Carbs         float64 `validate:"gte=0"`
	IsAIEstimated bool
}

type SaveTargetsRequest struct {
	TargetCalories float64 `validate:"gte=0"`
	TargetProtein  float64 `validate:"gte=0"`
	TargetFats     float64 `validate:"gte=0"`
	TargetCarbs    float64 `validate:"gte=0"`
}

// DaySummary is one calendar cell. Comparison is nil when no targets are set.
type DaySummary struct {
	Aggregate  *entity.DailyAggregate `json:"aggregate"`
	Comparison *nutrition.Comparison  `json:"comparison"`
}

type CalendarView struct {
	From    string                `json:"from"`
	To      string                `json:"to"`
	Targets *entity.TargetProfile `json:"targets"`
	Days    []DaySummary          `json:"days"`
}

// DayReport is the detail view of one date. Aggregate is nil when nothing was logged,
// Comparison is nil when either the aggregate or the targets are missing.
type DayReport struct {
	Date       string                 `json:"date"`
	Aggregate  *entity.DailyAggregate `json:"aggregate"`
	Targets    *entity.TargetProfile  `json:"targets"`
	Comparison *nutrition.Comparison  `json:"comparison"`
}

// NutrientEstimator is the hosted text-to-macros model.
type NutrientEstimator interface {
	Estimate(ctx context.Context, description string) (*entity.MacroEstimate, error)
}

type UserServiceI interface {
	// Validates user's credentials, creates new row in database. Returns user's data with ID
	Register(ctx context.Context, req *RegisterRequest) (*entity.User, error)
	// Compares given credentials. If ok, give back user's data with ID.
	Login(ctx context.Context, email, password string) (*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	DeleteAccount(ctx context.Context, id uuid.UUID, password string) error
}

type MealsServiceI interface {
	LogMeal(ctx context.Context, uid uuid.UUID, req *LogMealRequest) (*entity.Meal, error)
	// Asks the estimator for macros without storing anything
	AnalyzeMeal(ctx context.Context, description string) (*entity.MacroEstimate, error)
	// Estimates and stores the meal flagged as AI estimated
	LogEstimatedMeal(ctx context.Context, uid uuid.UUID, description, date string) (*entity.Meal, error)
	GetMealsByDate(ctx context.Context, uid uuid.UUID, date string) ([]entity.Meal, error)
	GetMealsByRange(ctx context.Context, uid uuid.UUID, from, to string) ([]entity.Meal, error)
	GetAllMeals(ctx context.Context, uid uuid.UUID) ([]entity.Meal, error)
	DeleteMeal(ctx context.Context, mealID, uid uuid.UUID) error
}

type TargetsServiceI interface {
	// Returns nil profile without error when targets are not set
	GetTargets(ctx context.Context, uid uuid.UUID) (*entity.TargetProfile, error)
	SaveTargets(ctx context.Context, uid uuid.UUID, req *SaveTargetsRequest) (*entity.TargetProfile, error)
}

type CalendarServiceI interface {
	Calendar(ctx context.Context, uid uuid.UUID, from, to string) (*CalendarView, error)
	Day(ctx context.Context, uid uuid.UUID, date string) (*DayReport, error)
}
