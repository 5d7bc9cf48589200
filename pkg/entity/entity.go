package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
}

// Meal is a single logged meal. Date is a YYYY-MM-DD key and the only field
// used for grouping; CreatedAt only orders meals inside a day.
type Meal struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"uid"`
	Date          string    `json:"date"`
	Name          string    `json:"meal_name"`
	Calories      float64   `json:"calories"`
	Protein       float64   `json:"protein"`
	Fats          float64   `json:"fats"`
	Carbs         float64   `json:"carbs"`
	IsAIEstimated bool      `json:"is_ai_estimated"`
	CreatedAt     time.Time `json:"created_at"`
}

type TargetProfile struct {
	UserID         uuid.UUID `json:"uid"`
	TargetCalories float64   `json:"target_calories"`
	TargetProtein  float64   `json:"target_protein"`
	TargetFats     float64   `json:"target_fats"`
	TargetCarbs    float64   `json:"target_carbs"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DailyAggregate holds one user's totals for one date. It is derived and never stored.
type DailyAggregate struct {
	Date     string  `json:"date"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fats     float64 `json:"fats"`
	Carbs    float64 `json:"carbs"`
	Meals    []Meal  `json:"meals"`
}

// MacroEstimate is what the nutrient estimator returns for a free-text description.
type MacroEstimate struct {
	Name     string  `json:"meal_name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fats     float64 `json:"fats"`
	Carbs    float64 `json:"carbs"`
}
