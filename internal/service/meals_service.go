package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/macrolog/internal/error_values"
	"github.com/limbo/macrolog/internal/repository"
	"github.com/limbo/macrolog/pkg/entity"
	"github.com/limbo/macrolog/pkg/nutrition"
)

type MealsService struct {
	repo      repository.MealsRepositoryI
	estimator NutrientEstimator
	loc       *time.Location
}

// NewMealsService builds the service. loc is the zone "today" is computed in.
func NewMealsService(mealsRepo repository.MealsRepositoryI, estimator NutrientEstimator, loc *time.Location) *MealsService {
	if mealsRepo == nil || estimator == nil {
		log.Fatal("on meals service provided nil dependencies")
	}
	if loc == nil {
		loc = time.Local
	}
	return &MealsService{
		repo:      mealsRepo,
		estimator: estimator,
		loc:       loc,
	}
}

func (ms *MealsService) LogMeal(ctx context.Context, uid uuid.UUID, req *LogMealRequest) (*entity.Meal, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	date := req.Date
	if date == "" {
		date = nutrition.Today(ms.loc)
	}
	meal := entity.Meal{
		UserID:        uid,
		Date:          date,
		Name:          req.Name,
		Calories:      req.Calories,
		Protein:       req.Protein,
		Fats:          req.Fats,
		Carbs:         req.Carbs,
		IsAIEstimated: req.IsAIEstimated,
	}
	if err := ms.repo.Create(ctx, &meal); err != nil {
		if errors.Is(err, errorvalues.ErrOwnerNotFound) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("meals repository error: " + err.Error())
	}
	return &meal, nil
}

func (ms *MealsService) AnalyzeMeal(ctx context.Context, description string) (*entity.MacroEstimate, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, errorvalues.ErrEmptyDescription
	}
	estimate, err := ms.estimator.Estimate(ctx, description)
	if err != nil {
		if errors.Is(err, errorvalues.ErrEstimationFailed) {
			return nil, err
		}
		return nil, errors.Join(errorvalues.ErrEstimationFailed, err)
	}
	return estimate, nil
}

func (ms *MealsService) LogEstimatedMeal(ctx context.Context, uid uuid.UUID, description, date string) (*entity.Meal, error) {
	if date != "" && !nutrition.ValidDateKey(date) {
		return nil, errorvalues.ErrInvalidDate
	}
	estimate, err := ms.AnalyzeMeal(ctx, description)
	if err != nil {
		return nil, err
	}
	return ms.LogMeal(ctx, uid, &LogMealRequest{
		Date:          date,
		Name:          estimate.Name,
		Calories:      estimate.Calories,
		Protein:       estimate.Protein,
		Fats:          estimate.Fats,
		Carbs:         estimate.Carbs,
		IsAIEstimated: true,
	})
}

func (ms *MealsService) GetMealsByDate(ctx context.Context, uid uuid.UUID, date string) ([]entity.Meal, error) {
	if !nutrition.ValidDateKey(date) {
		return nil, errorvalues.ErrInvalidDate
	}
	meals, err := ms.repo.GetByDate(ctx, uid, date)
	if err != nil {
		return nil, errors.New("meals repository error: " + err.Error())
	}
	return meals, nil
}

func (ms *MealsService) GetMealsByRange(ctx context.Context, uid uuid.UUID, from, to string) ([]entity.Meal, error) {
	if err := checkRange(from, to); err != nil {
		return nil, err
	}
	meals, err := ms.repo.GetByDateRange(ctx, uid, from, to)
	if err != nil {
		return nil, errors.New("meals repository error: " + err.Error())
	}
	return meals, nil
}

func (ms *MealsService) GetAllMeals(ctx context.Context, uid uuid.UUID) ([]entity.Meal, error) {
	meals, err := ms.repo.GetAll(ctx, uid)
	if err != nil {
		return nil, errors.New("meals repository error: " + err.Error())
	}
	return meals, nil
}

func (ms *MealsService) DeleteMeal(ctx context.Context, mealID, uid uuid.UUID) error {
	meal, err := ms.repo.GetByID(ctx, mealID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrMealNotFound) {
			return err
		}
		return errors.New("meals repository error: " + err.Error())
	}
	if meal.UserID != uid {
		return errorvalues.ErrWrongOwner
	}
	err = ms.repo.Delete(ctx, mealID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrMealNotFound) {
			return err
		}
		return errors.New("meals repository error: " + err.Error())
	}
	return nil
}

// Keys compare lexicographically in calendar order.
func checkRange(from, to string) error {
	if !nutrition.ValidDateKey(from) || !nutrition.ValidDateKey(to) {
		return errorvalues.ErrInvalidDate
	}
	if from > to {
		return errorvalues.ErrInvalidRange
	}
	return nil
}
