package models

import "time"

// Student represents a learner registered in a department and level.
type Student struct {
	ID           int64     `db:"id" json:"id"`
	FirstName    string    `db:"first_name" json:"firstName"`
	LastName     string    `db:"last_name" json:"lastName"`
	Email        *string   `db:"email" json:"email,omitempty"`
	Address      *string   `db:"address" json:"address,omitempty"`
	DepartmentID int64     `db:"department_id" json:"departmentId"`
	LevelID      int64     `db:"level_id" json:"levelId"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// StudentDetail extends a student with its department and level labels.
type StudentDetail struct {
	Student
	DepartmentCode string `db:"department_code" json:"departmentCode"`
	DepartmentName string `db:"department_name" json:"departmentName"`
	LevelCode      string `db:"level_code" json:"levelCode"`
	LevelName      string `db:"level_name" json:"levelName"`
}

// FullName returns "First Last".
func (s StudentDetail) FullName() string {
	return s.FirstName + " " + s.LastName
}

// StudentFilter captures optional listing criteria. Empty fields do not filter.
// All returns every matching row and ignores Page and PageSize.
type StudentFilter struct {
	DepartmentCode string
	LevelCode      string
	LevelID        int64
	Search         string
	Page           int
	PageSize       int
	All            bool
}
