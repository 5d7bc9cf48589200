package nutrition

import (
	"math"
	"sort"

	"github.com/limbo/macrolog/pkg/entity"
)

// AggregateByDate groups meals by their date key and sums the four nutrients.
// Meals keep their input order inside a bucket. Dates without meals are absent
// from the result, so callers must check containment instead of reading zeros.
// The input must already be filtered to a single user.
func AggregateByDate(meals []entity.Meal) map[string]*entity.DailyAggregate {
	aggregated := make(map[string]*entity.DailyAggregate)
	for _, meal := range meals {
		day, ok := aggregated[meal.Date]
		if !ok {
			day = &entity.DailyAggregate{
				Date:  meal.Date,
				Meals: make([]entity.Meal, 0, 1),
			}
			aggregated[meal.Date] = day
		}
		day.Calories += amount(meal.Calories)
		day.Protein += amount(meal.Protein)
		day.Fats += amount(meal.Fats)
		day.Carbs += amount(meal.Carbs)
		day.Meals = append(day.Meals, meal)
	}
	return aggregated
}

// SortedDates returns the keys of aggregated in ascending order.
func SortedDates(aggregated map[string]*entity.DailyAggregate) []string {
	dates := make([]string, 0, len(aggregated))
	for date := range aggregated {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

// NaN and infinities are what malformed numbers turn into; they count as zero.
func amount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Coalesce maps a nullable stored value onto a nutrient amount.
func Coalesce(v *float64) float64 {
	if v == nil {
		return 0
	}
	return amount(*v)
}
