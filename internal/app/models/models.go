package models

// Semester identifies which half of the academic year a module instance runs in.
// Only two semesters exist: 1 (autumn) and 2 (spring).
const (
	SemesterFirst  = 1
	SemesterSecond = 2
)

// IsValidSemester reports whether s is a known semester number.
func IsValidSemester(s int) bool {
	return s == SemesterFirst || s == SemesterSecond
}

// Rating value bounds
const (
	RatingMin = 1
	RatingMax = 5
)
