package models

// Assignment links a staff member to a camp. The (campId, staffId) pair
// is unique; re-assigning the same pair is a no-op.
type Assignment struct {
	ID      int64 `db:"id" json:"id"`
	CampID  int64 `db:"camp_id" json:"campId"`
	StaffID int64 `db:"staff_id" json:"staffId"`
}

// AssignmentDetail enriches assignments with display fields for listings.
type AssignmentDetail struct {
	Assignment
	CampTitle string `db:"camp_title" json:"campTitle"`
	StaffName string `db:"staff_name" json:"staffName"`
}
