package domain

import "time"

// ServiceMenu defines a bookable service and the length of its slot
type ServiceMenu struct {
	ID              int64
	Name            string
	DurationMinutes int
	Price           float64
	IsActive        bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
