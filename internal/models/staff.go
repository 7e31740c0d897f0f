package models

import "time"

// DateLayout is the calendar-date wire format used across the API.
const DateLayout = "2006-01-02"

// StaffCategory enumerates the fixed staff classification.
type StaffCategory string

const (
	CategoryDoctor   StaffCategory = "Doctor"
	CategoryNurse    StaffCategory = "Nurse"
	CategoryFaculty  StaffCategory = "Faculty"
	CategoryPG       StaffCategory = "PG"
	CategoryInternee StaffCategory = "Internee"
)

// Categories lists every valid staff category in display order.
var Categories = []StaffCategory{
	CategoryDoctor,
	CategoryNurse,
	CategoryFaculty,
	CategoryPG,
	CategoryInternee,
}

// Valid reports whether the category is part of the fixed enumeration.
func (c StaffCategory) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Staff represents a hospital staff member.
//
// CampsAttended is derived from the assignments table and is recomputed
// after every assignment mutation; callers can never set it directly.
type Staff struct {
	ID            int64         `db:"id" json:"id"`
	SerialNo      *int          `db:"serial_no" json:"serialNo,omitempty"`
	Name          string        `db:"name" json:"name"`
	Category      StaffCategory `db:"category" json:"category"`
	PGYear        *string       `db:"pg_year" json:"pgYear,omitempty"`
	JoiningDate   *time.Time    `db:"joining_date" json:"joiningDate,omitempty"`
	CampsAttended int           `db:"camps_attended" json:"campsAttended"`
}
