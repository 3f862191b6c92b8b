package model

// User is the single account the service reports on.
type User struct {
	ID     string `json:"id" db:"id"`
	Email  string `json:"email" db:"email"`
	Name   string `json:"name" db:"name"`
	Points int    `json:"points" db:"points"`
	Level  string `json:"level" db:"level"`
}
