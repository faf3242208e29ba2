package models

// Rating is a user's 1-5 score for a professor's teaching of a specific
// module instance. The (user, professor, module_instance) triple is unique;
// resubmission overwrites the value in place.
type Rating struct {
	ID               int64  `json:"id" db:"id"`
	UserID           int64  `json:"userId" db:"user_id"`
	ProfessorID      string `json:"professorId" db:"professor_id"`
	ModuleInstanceID int64  `json:"moduleInstanceId" db:"module_instance_id"`
	Value            int    `json:"rating" db:"rating"`
}
