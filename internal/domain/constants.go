package domain

// Operating window of the studio. Candidate slots are enumerated on
// a fixed grid inside this window; the window end is exclusive.
const (
	OperatingWindowStart = "08:00"
	OperatingWindowEnd   = "22:00"
	SlotStepMinutes      = 15
)

// Booking rules
const (
	// CancellationDeadlineHours граница бесплатной отмены: отмена за 24 часа
	// и более проходит без штрафа, позже как cancelled_late
	CancellationDeadlineHours = 24

	// MinBookingLeadTimeHours минимальное время до начала бронирования
	MinBookingLeadTimeHours = 24

	// DefaultHorizonDays горизонт бронирования для неизвестного плана
	DefaultHorizonDays = 30
)

// planHorizonDays задаёт горизонт бронирования (в днях) по плану
var planHorizonDays = map[Plan]int{
	PlanPremium:        60,
	PlanStandard:       30,
	PlanDigitalPrepaid: 7,
	PlanTicket:         30,
	PlanVIP:            90,
}

// planBaseFees фиксированная абонентская плата по плану (йены в месяц).
// У prepaid/ticket планов абонентской платы нет.
var planBaseFees = map[Plan]int{
	PlanStandard: 11000,
	PlanPremium:  22000,
	PlanVIP:      55000,
}

// Business validation constants
const (
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MinDurationMinutes          = 15
	MaxDurationMinutes          = 240
)

// Time format constants
const (
	TimeFormat  = "15:04"      // HH:MM
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM
)
