package models

// ModuleInstance represents one offering of a module in a given year and
// semester, taught by a set of professors. At most one instance exists per
// (module, year, semester); the teaching set lives in the
// module_instance_professors join table.
type ModuleInstance struct {
	ID         int64  `json:"id" db:"id"`
	ModuleCode string `json:"moduleCode" db:"module_code"`
	Year       int    `json:"year" db:"year"`
	Semester   int    `json:"semester" db:"semester"`

	// Relations (populated when needed)
	Module     *Module     `json:"module,omitempty"`
	Professors []Professor `json:"professors,omitempty"`
}

// Teaches reports whether the professor with the given ID is in this
// instance's teaching set.
func (m *ModuleInstance) Teaches(professorID string) bool {
	for _, p := range m.Professors {
		if p.ID == professorID {
			return true
		}
	}
	return false
}
