package dto

// ProfessorResponse is the inlined professor projection used inside module
// instance listings.
type ProfessorResponse struct {
	ID   string `json:"id" example:"JE1"`
	Name string `json:"name" example:"Professor J. Excellent"`
}

// ModuleInstanceResponse is the denormalized module instance projection:
// module code and name inlined, professors inlined, so a consumer needs no
// further joins.
type ModuleInstanceResponse struct {
	Code       string              `json:"code" example:"CD1"`
	Name       string              `json:"name" example:"Computing for Dummies"`
	Year       int                 `json:"year" example:"2023"`
	Semester   int                 `json:"semester" example:"1"`
	Professors []ProfessorResponse `json:"professors"`
}
