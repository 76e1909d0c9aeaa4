package models

import "time"

// Department is an academic department such as GI or BDAI.
type Department struct {
	ID        int64     `db:"id" json:"id"`
	Code      string    `db:"code" json:"code"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
	Levels    []Level   `db:"-" json:"levels,omitempty"`
}

// Level is a year of study inside a department, e.g. GI2.
type Level struct {
	ID             int64     `db:"id" json:"id"`
	Code           string    `db:"code" json:"code"`
	Name           string    `db:"name" json:"name"`
	DepartmentID   int64     `db:"department_id" json:"departmentId"`
	DepartmentCode string    `db:"department_code" json:"departmentCode"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}
