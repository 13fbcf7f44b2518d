package domain

import "time"

// Plan represents a membership plan
type Plan string

const (
	PlanStandard       Plan = "standard"
	PlanPremium        Plan = "premium"
	PlanDigitalPrepaid Plan = "digital_prepaid"
	PlanTicket         Plan = "ticket"
	PlanVIP            Plan = "vip"
)

// HorizonDays returns how many days ahead the plan allows booking
func (p Plan) HorizonDays() int {
	if days, ok := planHorizonDays[p]; ok {
		return days
	}
	return DefaultHorizonDays
}

// BaseMonthlyFee returns the fixed monthly fee for the plan.
// Prepaid and ticket plans carry no monthly base fee.
func (p Plan) BaseMonthlyFee() int {
	return planBaseFees[p]
}

// Valid reports whether p is a known plan
func (p Plan) Valid() bool {
	switch p {
	case PlanStandard, PlanPremium, PlanDigitalPrepaid, PlanTicket, PlanVIP:
		return true
	}
	return false
}

// Member represents a studio member
type Member struct {
	ID                 int64
	Name               string
	Plan               Plan
	ContractedSessions int
	JoinDate           time.Time
	ManualDiscountRate *float64 // Overrides tenure-based discount when set
	MainTrainer        *string
	IsActive           bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TenureYears returns full years of membership as of the given moment
func (m *Member) TenureYears(at time.Time) int {
	years := at.Year() - m.JoinDate.Year()
	anniversary := m.JoinDate.AddDate(years, 0, 0)
	if anniversary.After(at) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
