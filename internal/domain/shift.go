package domain

import "time"

// ShiftStatus represents lifecycle states of a shift.
type ShiftStatus string

const (
	ShiftStatusOpen     ShiftStatus = "OPEN"
	ShiftStatusAssigned ShiftStatus = "ASSIGNED"
	ShiftStatusCanceled ShiftStatus = "CANCELED"
)

// Shift is a dispatchable work shift.
// Date is kept as an ISO calendar date (YYYY-MM-DD) and Start/End as
// HH:MM wall-clock strings; shifts carry no timezone of their own.
type Shift struct {
	ID            string
	Date          string
	Start         string
	End           string
	Type          string
	WorkLocation  string
	Status        ShiftStatus
	AssigneeEmail *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Snapshot captures the shift fields embedded into notifications.
func (s *Shift) Snapshot() ShiftSnapshot {
	return ShiftSnapshot{
		Date:         s.Date,
		Start:        s.Start,
		End:          s.End,
		Type:         s.Type,
		WorkLocation: s.WorkLocation,
	}
}

// ShiftSnapshot is the immutable shift state at notification time.
type ShiftSnapshot struct {
	Date         string `json:"date"`
	Start        string `json:"start"`
	End          string `json:"end"`
	Type         string `json:"type"`
	WorkLocation string `json:"workLocation"`
}

// ShiftTemplate is a reusable blueprint for recurring shifts.
type ShiftTemplate struct {
	ID           string
	Name         string
	Start        string
	End          string
	Type         string
	WorkLocation string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
