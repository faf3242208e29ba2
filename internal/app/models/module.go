package models

// Module defines the module model based on the 'modules' table.
// The Code is the module's short code, e.g. "CD1". Modules are immutable
// once created.
type Module struct {
	Code string `json:"code" db:"code" example:"CD1"`
	Name string `json:"name" db:"name" example:"Computing for Dummies"`
}
