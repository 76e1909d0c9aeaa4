package attendance

import "github.com/noah-isme/attendance-api/internal/models"

// Status is the resolved attendance state of a student for one day.
type Status string

const (
	StatusPresent  Status = "PRESENT"
	StatusAbsent   Status = "ABSENT"
	StatusUnmarked Status = "UNMARKED"
)

// Present reports whether the status counts towards the presence rate.
func (s Status) Present() bool {
	return s == StatusPresent
}

// Resolve maps the stored status of the day's record to a resolved status.
// A nil status means no record exists. Unknown stored values resolve as unmarked.
func Resolve(recorded *models.AttendanceStatus) Status {
	if recorded == nil || !recorded.Valid() {
		return StatusUnmarked
	}
	if *recorded == models.AttendanceStatusPresent {
		return StatusPresent
	}
	return StatusAbsent
}
