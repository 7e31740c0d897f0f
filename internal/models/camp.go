package models

import "time"

// Camp represents a medical camp event.
type Camp struct {
	ID       int64     `db:"id" json:"id"`
	Title    string    `db:"title" json:"title"`
	CampDate time.Time `db:"camp_date" json:"campDate"`
}
