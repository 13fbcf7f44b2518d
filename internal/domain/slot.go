package domain

import "github.com/m04kA/GMS-BookingService/pkg/types"

// AvailableSlot represents a candidate interval at least one staff
// member can take, annotated with who is free for it.
type AvailableSlot struct {
	StartTime       types.TimeString
	DurationMinutes int
	StaffIDs        []int64 // Staff available for this slot
}

// HasStaff returns true if the given staff member is free for the slot
func (s *AvailableSlot) HasStaff(staffID int64) bool {
	for _, id := range s.StaffIDs {
		if id == staffID {
			return true
		}
	}
	return false
}
