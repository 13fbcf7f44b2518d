package domain

import "time"

// TenureStage is a discount tier derived from membership duration.
// Stages are ordered thresholds in whole years; the highest threshold
// met wins, discounts are not cumulative.
type TenureStage struct {
	Name         string
	MinYears     int
	DiscountRate float64
}

// tenureStages ordered from highest threshold to lowest
var tenureStages = []TenureStage{
	{Name: "platinum", MinYears: 10, DiscountRate: 0.50},
	{Name: "diamond", MinYears: 7, DiscountRate: 0.30},
	{Name: "gold", MinYears: 5, DiscountRate: 0.20},
	{Name: "silver", MinYears: 3, DiscountRate: 0.10},
	{Name: "bronze", MinYears: 1, DiscountRate: 0.05},
	{Name: "regular", MinYears: 0, DiscountRate: 0},
}

// StageForTenure selects the stage for a number of full membership years
func StageForTenure(years int) TenureStage {
	for _, stage := range tenureStages {
		if years >= stage.MinYears {
			return stage
		}
	}
	return tenureStages[len(tenureStages)-1]
}

// StageForMember resolves the member's stage at the given moment.
// A manual discount rate overrides tenure entirely and reports as the
// "manual" stage.
func StageForMember(m *Member, at time.Time) TenureStage {
	if m.ManualDiscountRate != nil {
		return TenureStage{Name: "manual", MinYears: 0, DiscountRate: *m.ManualDiscountRate}
	}
	return StageForTenure(m.TenureYears(at))
}

// DefaultTrainerRate ставка за сессию для тренеров вне таблицы
const DefaultTrainerRate = 7700

// trainerRates ставка за одну сессию по имени тренера
var trainerRates = map[string]int{
	"tanaka":    8800,
	"takahashi": 8800,
	"suzuki":    8250,
	"sato":      7700,
	"yamamoto":  7150,
}

// TrainerRate returns the per-session rate for a trainer by name,
// falling back to the default rate for unknown or absent trainers.
func TrainerRate(name *string) int {
	if name == nil {
		return DefaultTrainerRate
	}
	if rate, ok := trainerRates[*name]; ok {
		return rate
	}
	return DefaultTrainerRate
}
