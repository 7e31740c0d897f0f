package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// recountAttendanceQuery republishes the derived camps_attended counter for
// every staff row from the assignments table. The counter is never trusted
// from callers; this full recount is the single writer of the column.
const recountAttendanceQuery = `UPDATE staff SET camps_attended = (SELECT COUNT(*) FROM assignments WHERE assignments.staff_id = staff.id)`

// recountAttendance runs inside the caller's transaction so readers never
// observe an assignment change without the matching counter update.
func recountAttendance(ctx context.Context, tx *sqlx.Tx) error {
	if _, err := tx.ExecContext(ctx, recountAttendanceQuery); err != nil {
		return fmt.Errorf("recount attendance: %w", err)
	}
	return nil
}
