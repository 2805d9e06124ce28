package model

import (
	"time"

	"bistro/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID         = "id"
	FieldName       = "name"
	FieldEmail      = "email"
	FieldPassword   = "password"
	FieldRole       = "role"
	FieldPhone      = "phone"
	FieldIsActive   = "is_active"
	FieldIsSignedUp = "is_signed_up"
	FieldIsSignedIn = "is_signed_in"
	FieldLastLogin  = "last_login"
)

// User is the single identity record for customers and staff. Role decides which side of the API it may use.
type User struct {
	ID         string     `db:"id"`
	Name       string     `db:"name"`
	Email      string     `db:"email"`
	Password   string     `db:"password"`
	Role       string     `db:"role"`
	Phone      *string    `db:"phone"`
	IsActive   bool       `db:"is_active"`
	IsSignedUp bool       `db:"is_signed_up"`
	IsSignedIn bool       `db:"is_signed_in"`
	LastLogin  *time.Time `db:"last_login"`
	model.Metadata
}
