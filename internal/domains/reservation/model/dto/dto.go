package dto

import (
	"time"

	"bistro/internal/domains/reservation/model"
	"bistro/shared"
	"bistro/shared/constant"
	gDto "bistro/shared/dto"
	gModel "bistro/shared/model"
	"bistro/shared/timezone"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	Name        string `json:"name"        validate:"required,max=100"`
	Phone       string `json:"phone"       validate:"required,max=20"`
	Email       string `json:"email"       validate:"required,email,max=100"`
	Date        string `json:"date"        validate:"required"`
	FromTime    string `json:"fromTime"    validate:"required"`
	ToTime      string `json:"toTime"      validate:"required"`
	Guests      int    `json:"guests"      validate:"required,min=1,max=50"`
	TableNumber int    `json:"tableNumber" validate:"required,min=1"`
}

// Slot is a validated reservation window on a single day.
type Slot struct {
	Date     time.Time
	StartsAt time.Time
	EndsAt   time.Time
}

// ParseSlot parses the date and clock values and rejects windows that do not move forward in time.
func (r *CreateReservationRequest) ParseSlot() (Slot, error) {
	day, err := timezone.ParseDate(r.Date)
	if err != nil {
		return Slot{}, err
	}

	fromHour, fromMinute, err := timezone.ParseClock(r.FromTime)
	if err != nil {
		return Slot{}, err
	}

	toHour, toMinute, err := timezone.ParseClock(r.ToTime)
	if err != nil {
		return Slot{}, err
	}

	slot := Slot{
		Date:     day,
		StartsAt: timezone.Combine(day, fromHour, fromMinute),
		EndsAt:   timezone.Combine(day, toHour, toMinute),
	}

	if !slot.EndsAt.After(slot.StartsAt) {
		return Slot{}, ErrEmptySlot
	}

	return slot, nil
}

func (r *CreateReservationRequest) ToModel(user string, slot Slot) model.Reservation {
	return model.Reservation{
		ID:              uuid.NewString(),
		Name:            r.Name,
		Phone:           r.Phone,
		Email:           r.Email,
		ReservationDate: slot.Date,
		StartsAt:        slot.StartsAt,
		EndsAt:          slot.EndsAt,
		NoOfGuest:       r.Guests,
		TableNumber:     r.TableNumber,
		Status:          model.StatusConfirmed,
		Metadata:        gModel.NewMetadata(timezone.Now(), user),
	}
}

type UpdateStatusRequest struct {
	Status string `db:"status" json:"status" validate:"required,oneof=Confirmed Seated Completed Cancelled NoShow"`
}

type ReservationResponse struct {
	ID              string `json:"reservation_id"`
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	ReservationDate string `json:"reservation_date"`
	FromTime        string `json:"from_time"`
	ToTime          string `json:"to_time"`
	NoOfGuest       int    `json:"no_of_guest"`
	TableNumber     int    `json:"table_number"`
	Status          string `json:"status"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(model model.Reservation) {
	r.ID = model.ID
	r.Name = model.Name
	r.Phone = model.Phone
	r.Email = model.Email
	r.ReservationDate = model.ReservationDate.Format(constant.DateOnly)
	r.FromTime = timezone.Format(model.StartsAt, constant.ClockFormat)
	r.ToTime = timezone.Format(model.EndsAt, constant.ClockFormat)
	r.NoOfGuest = model.NoOfGuest
	r.TableNumber = model.TableNumber
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}

type ReservationConfirmedEvent struct {
	ReservationID string    `json:"reservation_id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	TableNumber   int       `json:"table_number"`
	Guests        int       `json:"guests"`
	StartsAt      time.Time `json:"starts_at"`
	EndsAt        time.Time `json:"ends_at"`
}

func NewReservationConfirmedEvent(reservation model.Reservation) ReservationConfirmedEvent {
	return ReservationConfirmedEvent{
		ReservationID: reservation.ID,
		Name:          reservation.Name,
		Email:         reservation.Email,
		Phone:         reservation.Phone,
		TableNumber:   reservation.TableNumber,
		Guests:        reservation.NoOfGuest,
		StartsAt:      reservation.StartsAt,
		EndsAt:        reservation.EndsAt,
	}
}
