package models

import "time"

// AttendanceStatus is the stored status of an attendance record.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "PRESENT"
	AttendanceStatusAbsent  AttendanceStatus = "ABSENT"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusAbsent:
		return true
	default:
		return false
	}
}

// StatusFromPresence maps the presence flag sent by clients to a stored status.
func StatusFromPresence(present bool) AttendanceStatus {
	if present {
		return AttendanceStatusPresent
	}
	return AttendanceStatusAbsent
}

// Attendance is the single record of a student for one calendar day.
type Attendance struct {
	ID        int64            `db:"id" json:"id"`
	StudentID int64            `db:"student_id" json:"studentId"`
	Date      time.Time        `db:"date" json:"date"`
	Status    AttendanceStatus `db:"status" json:"status"`
	CreatedAt time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time        `db:"updated_at" json:"updatedAt"`
}

// RosterRow is a student joined with its optional record for one day.
type RosterRow struct {
	StudentDetail
	AttendanceID *int64            `db:"attendance_id" json:"attendanceId,omitempty"`
	RecordStatus *AttendanceStatus `db:"record_status" json:"-"`
}

// RosterFilter scopes a roster query to one normalized day.
type RosterFilter struct {
	Date           time.Time
	DepartmentCode string
	LevelCode      string
	LevelID        int64
	StudentID      int64
}

// DailyCount holds the number of records per status for one day.
type DailyCount struct {
	Date    time.Time `db:"date" json:"date"`
	Present int       `db:"present" json:"present"`
	Absent  int       `db:"absent" json:"absent"`
}

// PopulationFilter narrows statistics to a department and/or level by code.
type PopulationFilter struct {
	DepartmentCode string
	LevelCode      string
}
