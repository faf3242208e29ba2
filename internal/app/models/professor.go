package models

// Professor defines the professor model based on the 'professors' table.
// The ID is the professor's short code, e.g. "JE1". Professors are immutable
// once created.
type Professor struct {
	ID   string `json:"id" db:"id" example:"JE1"`
	Name string `json:"name" db:"name" example:"Professor J. Excellent"`
}
