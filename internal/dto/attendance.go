package dto

import (
	"github.com/noah-isme/attendance-api/internal/attendance"
	"github.com/noah-isme/attendance-api/internal/models"
)

// RosterEntry is one student of a roster with its resolved status for the day.
type RosterEntry struct {
	models.StudentDetail
	Date         string            `json:"date"`
	AttendanceID *int64            `json:"attendanceId,omitempty"`
	Status       attendance.Status `json:"status"`
	IsPresent    bool              `json:"isPresent"`
}

// NewRosterEntry resolves the status of a roster row for day.
func NewRosterEntry(row models.RosterRow, day string) RosterEntry {
	status := attendance.Resolve(row.RecordStatus)
	return RosterEntry{
		StudentDetail: row.StudentDetail,
		Date:          day,
		AttendanceID:  row.AttendanceID,
		Status:        status,
		IsPresent:     status.Present(),
	}
}

// PeriodStatsResponse wraps period statistics the way the dashboard charts expect.
type PeriodStatsResponse struct {
	Stats []attendance.PeriodStat `json:"stats"`
}

// CountResponse carries a single count.
type CountResponse struct {
	Count int `json:"count"`
}
