package dto

// MonthlyOverview is the dashboard summary of one month for a department and level.
type MonthlyOverview struct {
	Month            string    `json:"month"`
	DepartmentCode   string    `json:"departmentCode"`
	LevelCode        string    `json:"levelCode"`
	TotalStudents    int       `json:"totalStudents"`
	TotalDepartments int       `json:"totalDepartments"`
	TotalLevels      int       `json:"totalLevels"`
	AttendanceRate   int       `json:"attendanceRate"`
	DailyStats       []DayStat `json:"dailyStats"`
}

// DayStat holds the recorded marks of one weekday.
type DayStat struct {
	Date         string `json:"date"`
	Label        string `json:"label"`
	Present      int    `json:"present"`
	Absent       int    `json:"absent"`
	PresenceRate int    `json:"presenceRate"`
}
