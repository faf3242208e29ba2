package dto

// SubmitRatingRequest represents a rating submission. Field names follow the
// public wire format.
type SubmitRatingRequest struct {
	ProfessorID string `json:"professor_id" binding:"required"`
	ModuleCode  string `json:"module_code" binding:"required"`
	Year        int    `json:"year" binding:"required"`
	Semester    int    `json:"semester" binding:"required,oneof=1 2"`
	Rating      int    `json:"rating" binding:"required,min=1,max=5"`
}

// SubmitRatingResponse acknowledges a stored rating
type SubmitRatingResponse struct {
	Success bool `json:"success" example:"true"`
}

// ProfessorRatingResponse is one row of the professor average-rating listing.
// Rating is 0 when the professor has no ratings yet.
type ProfessorRatingResponse struct {
	ID     string `json:"id" example:"JE1"`
	Name   string `json:"name" example:"Professor J. Excellent"`
	Rating int    `json:"rating" example:"4"`
}

// ModuleRatingResponse is the professor-in-module average. Rating is 0 when
// no ratings exist for that pairing.
type ModuleRatingResponse struct {
	Rating int `json:"rating" example:"3"`
}
