package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/noah-isme/attendance-api/internal/models"
)

const studentDetailColumns = `s.id, s.first_name, s.last_name, s.email, s.address, s.department_id, s.level_id, s.created_at, s.updated_at,
d.code AS department_code, d.name AS department_name, l.code AS level_code, l.name AS level_name`

const studentDetailFrom = `FROM students s
JOIN departments d ON d.id = s.department_id
JOIN levels l ON l.id = s.level_id`

// whereBuilder accumulates positional conditions for lib/pq.
type whereBuilder struct {
	conditions []string
	args       []interface{}
}

func (w *whereBuilder) add(format string, value interface{}) {
	w.args = append(w.args, value)
	w.conditions = append(w.conditions, fmt.Sprintf(format, len(w.args)))
}

func (w *whereBuilder) population(f models.PopulationFilter) {
	if f.DepartmentCode != "" {
		w.add("d.code = $%d", f.DepartmentCode)
	}
	if f.LevelCode != "" {
		w.add("l.code = $%d", f.LevelCode)
	}
}

func (w *whereBuilder) clause() string {
	if len(w.conditions) == 0 {
		return "WHERE 1=1"
	}
	return "WHERE " + strings.Join(w.conditions, " AND ")
}

// sqlDate renders a normalized day for DATE columns.
func sqlDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
