package domain

import (
	"time"

	"github.com/m04kA/GMS-BookingService/pkg/types"
)

// Staff represents a trainer who takes bookings
type Staff struct {
	ID                    int64
	Name                  string
	Color                 string // Display color for the reception calendar
	IsActive              bool
	MaxConcurrentBookings int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Shift is a recurring weekly availability window for a staff member.
// At most one active shift per staff and day of week is consulted.
type Shift struct {
	ID        int64
	StaffID   int64
	DayOfWeek int // 0=Sunday .. 6=Saturday
	StartTime types.TimeString
	EndTime   types.TimeString
	IsActive  bool
}

// ShiftOverride is a date-specific exception to the weekly schedule.
// Both times nil means the staff member is off that day regardless of
// the regular shift. An override always wins over the weekly shift.
type ShiftOverride struct {
	ID        int64
	StaffID   int64
	Date      time.Time
	StartTime *types.TimeString
	EndTime   *types.TimeString
}

// EffectiveShift is the resolved availability window of a staff member
// for one concrete date, after overrides are applied.
type EffectiveShift struct {
	Available bool
	StartTime types.TimeString
	EndTime   types.TimeString
}

// ResolveShift computes the effective shift for a date: a date override
// wins; a day-off override blocks the whole day; otherwise the active
// weekly shift matching the date's weekday applies; with neither, the
// staff member is unavailable. An override missing either boundary is
// treated as a day off: a half-defined window is not a usable shift.
func ResolveShift(date time.Time, shifts []*Shift, overrides []*ShiftOverride) EffectiveShift {
	for _, o := range overrides {
		if sameDate(o.Date, date) {
			if o.StartTime == nil || o.EndTime == nil {
				return EffectiveShift{Available: false}
			}
			return EffectiveShift{Available: true, StartTime: *o.StartTime, EndTime: *o.EndTime}
		}
	}

	weekday := int(date.Weekday())
	for _, s := range shifts {
		if s.IsActive && s.DayOfWeek == weekday {
			return EffectiveShift{Available: true, StartTime: s.StartTime, EndTime: s.EndTime}
		}
	}

	return EffectiveShift{Available: false}
}

func sameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
