package nutrition

import (
	"math"

	"github.com/limbo/macrolog/pkg/entity"
)

// CalorieTolerance is the share of the calorie target within which a day counts as met.
const CalorieTolerance = 0.10

type DayState string

const (
	StateMet     DayState = "met"
	StateSurplus DayState = "surplus"
	StateDeficit DayState = "deficit"
)

type Indicator string

const (
	Ahead  Indicator = "ahead"
	Behind Indicator = "behind"
)

type Nutrients struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fats     float64 `json:"fats"`
	Carbs    float64 `json:"carbs"`
}

type Indicators struct {
	Calories Indicator `json:"calories"`
	Protein  Indicator `json:"protein"`
	Fats     Indicator `json:"fats"`
	Carbs    Indicator `json:"carbs"`
}

type Comparison struct {
	State      DayState   `json:"state"`
	Tolerance  float64    `json:"tolerance"`
	Deltas     Nutrients  `json:"deltas"`
	Indicators Indicators `json:"indicators"`
}

// Classify compares a day against the user's targets. It returns nil when either
// side is missing; that is "no classification", not a fourth state.
//
// Only calories use the tolerance band. Indicators are a plain actual >= target check.
func Classify(day *entity.DailyAggregate, target *entity.TargetProfile) *Comparison {
	if day == nil || target == nil {
		return nil
	}
	return &Comparison{
		State:     CalorieState(day.Calories, target.TargetCalories),
		Tolerance: target.TargetCalories * CalorieTolerance,
		Deltas: Nutrients{
			Calories: day.Calories - target.TargetCalories,
			Protein:  day.Protein - target.TargetProtein,
			Fats:     day.Fats - target.TargetFats,
			Carbs:    day.Carbs - target.TargetCarbs,
		},
		Indicators: Indicators{
			Calories: Compare(day.Calories, target.TargetCalories),
			Protein:  Compare(day.Protein, target.TargetProtein),
			Fats:     Compare(day.Fats, target.TargetFats),
			Carbs:    Compare(day.Carbs, target.TargetCarbs),
		},
	}
}

// CalorieState classifies actual calories against target. The band edge counts as met.
func CalorieState(actual, target float64) DayState {
	tolerance := target * CalorieTolerance
	d := actual - target
	switch {
	case math.Abs(d) <= tolerance:
		return StateMet
	case d > tolerance:
		return StateSurplus
	default:
		return StateDeficit
	}
}

func Compare(actual, target float64) Indicator {
	if actual >= target {
		return Ahead
	}
	return Behind
}
