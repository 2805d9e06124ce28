package model

import (
	"time"

	"bistro/shared/model"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID              = "id"
	FieldName            = "name"
	FieldEmail           = "email"
	FieldReservationDate = "reservation_date"
	FieldStartsAt        = "starts_at"
	FieldEndsAt          = "ends_at"
	FieldTableNumber     = "table_number"
	FieldStatus          = "status"
)

const (
	StatusConfirmed = "Confirmed"
	StatusSeated    = "Seated"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
	StatusNoShow    = "NoShow"
)

type Reservation struct {
	ID              string    `db:"id"`
	Name            string    `db:"name"`
	Phone           string    `db:"phone"`
	Email           string    `db:"email"`
	ReservationDate time.Time `db:"reservation_date"`
	StartsAt        time.Time `db:"starts_at"`
	EndsAt          time.Time `db:"ends_at"`
	NoOfGuest       int       `db:"no_of_guest"`
	TableNumber     int       `db:"table_number"`
	Status          string    `db:"status"`
	model.Metadata
}
